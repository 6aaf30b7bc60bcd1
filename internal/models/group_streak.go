package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupStreak is the shared consecutive-day counter for a group. One row per
// group, created in zero state alongside the group. Mutated only by the
// streak engine (recalculation and insurance paths).
//
// LastStreakDate is stored at UTC midnight and is nil only while the group
// has never completed a day. LongestStreak never decreases.
type GroupStreak struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID        uuid.UUID      `json:"groupId" gorm:"type:uuid;uniqueIndex;not null"`
	CurrentStreak  int            `json:"currentStreak" gorm:"default:0"`
	LongestStreak  int            `json:"longestStreak" gorm:"default:0"`
	LastStreakDate *time.Time     `json:"lastStreakDate"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (gs *GroupStreak) BeforeCreate(tx *gorm.DB) error {
	if gs.ID == uuid.Nil {
		gs.ID = uuid.New()
	}
	return nil
}
