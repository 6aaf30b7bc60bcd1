package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn is one logged event by a member in one group on one calendar day.
// LoggedDay is the UTC date of the user-supplied timestamp, stored at UTC
// midnight, and is what all streak accounting keys on. LoggedAt keeps the
// original timestamp for display.
type CheckIn struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID      `json:"groupId" gorm:"type:uuid;not null;index:idx_checkin_group_day"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	LoggedDay time.Time      `json:"loggedDay" gorm:"not null;index:idx_checkin_group_day"`
	LoggedAt  time.Time      `json:"loggedAt" gorm:"not null"`
	Note      *string        `json:"note"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ci *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

type CreateCheckInRequest struct {
	GroupIDs []uuid.UUID `json:"groupIds" validate:"required"`
	LoggedAt *time.Time  `json:"loggedAt"` // defaults to now
	Note     *string     `json:"note"`
}
