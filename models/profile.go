package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeB2C UserType = "b2c" // individual customer
	UserTypeB2B UserType = "b2b" // business customer, wholesale pricing
)

type Profile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Phone        string    `gorm:"not null" json:"phone"`
	UserType     UserType  `gorm:"type:VARCHAR(10);default:'b2c'" json:"user_type"`
	BusinessName string    `json:"business_name"`
	GSTNumber    string    `json:"gst_number"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UserType == "" {
		p.UserType = UserTypeB2C
	}
	return nil
}

// GuestUser is a short-lived identity for visitors who shop before
// registering. Its ID owns cart rows exactly like a profile ID does.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
