package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Emoji       string         `json:"emoji"`
	MaxMembers  int            `json:"maxMembers" gorm:"default:20"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Group DTOs
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Emoji       *string `json:"emoji"`
}

type GroupSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Emoji         string    `json:"emoji"`
	MemberCount   int       `json:"memberCount"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
}

type MemberInfo struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	AvatarURL   string    `json:"avatarUrl"`
	Role        string    `json:"role"`
	LoggedToday bool      `json:"loggedToday"`
}
