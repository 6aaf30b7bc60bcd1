package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email               string         `json:"email" gorm:"uniqueIndex;not null"`
	Password            string         `json:"-"`
	AuthProvider        string         `json:"authProvider" gorm:"default:email"`
	Username            string         `json:"username" gorm:"uniqueIndex"`
	FirstName           string         `json:"firstName"`
	AvatarURL           string         `json:"avatarUrl"`
	Bio                 string         `json:"bio"`
	IsPremium           bool           `json:"isPremium" gorm:"default:false"`
	StreakInsuranceUsed bool           `json:"streakInsuranceUsed" gorm:"default:false"`
	FCMToken            string         `json:"-" gorm:"column:fcm_token"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName resolves the name shown to other members: username first,
// then first name, then the raw identifier.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.ID.String()
}

// Auth DTOs
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
