package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type UserStatus string

const (
	UserActive UserStatus = "ACTIVE"
)

type User struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	Email         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	Role          UserRole   `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	Status        UserStatus `gorm:"type:varchar(10);not null;default:ACTIVE" json:"status"`
	EmailVerified bool       `gorm:"not null;default:false" json:"emailVerified"`
	Phone         string     `json:"phone,omitempty"`
	PhoneVerified bool       `gorm:"not null;default:false" json:"phoneVerified"`

	// OAuth fields
	GoogleID     string `gorm:"index" json:"-"`
	AuthProvider string `json:"authProvider"` // "email" or "google"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OAuthRequest struct {
	Token string `json:"token" binding:"required"` // ID token from the frontend
	Name  string `json:"name"`                     // optional, for first-time setup
}

type SendPhoneCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}
