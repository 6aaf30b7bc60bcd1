package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupInvite struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID    uuid.UUID      `json:"groupId" gorm:"type:uuid;index;not null"`
	InviterID  uuid.UUID      `json:"inviterId" gorm:"type:uuid;not null"`
	InviteCode string         `json:"inviteCode" gorm:"uniqueIndex;not null"`
	ExpiresAt  *time.Time     `json:"expiresAt"`
	MaxUses    int            `json:"maxUses" gorm:"default:0"` // 0 = unlimited
	UsedCount  int            `json:"usedCount" gorm:"default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (gi *GroupInvite) BeforeCreate(tx *gorm.DB) error {
	if gi.ID == uuid.Nil {
		gi.ID = uuid.New()
	}
	if gi.InviteCode == "" {
		gi.InviteCode = generateInviteCode()
	}
	return nil
}

// IsValid checks if the invite is still usable
func (gi *GroupInvite) IsValid() bool {
	if gi.ExpiresAt != nil && time.Now().After(*gi.ExpiresAt) {
		return false
	}
	if gi.MaxUses > 0 && gi.UsedCount >= gi.MaxUses {
		return false
	}
	return true
}

func generateInviteCode() string {
	b := make([]byte, 6) // 12 hex chars
	rand.Read(b)
	return hex.EncodeToString(b)
}

type CreateInviteRequest struct {
	MaxUses   int `json:"maxUses"`   // 0 = unlimited
	ExpiresIn int `json:"expiresIn"` // hours, 0 = never
}
