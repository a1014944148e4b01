package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID               string     `gorm:"primaryKey;size:36"      json:"id"`
	Name             string     `gorm:"size:30;not null"        json:"name"`
	Email            string     `gorm:"index;not null"          json:"email"`
	PasswordHash     string     `gorm:"not null"                json:"-"`
	Avatar           *string    `                               json:"avatar,omitempty"`
	IsStaff          bool       `gorm:"default:false;not null"  json:"isStaff"`
	Active           bool       `gorm:"default:false;not null"  json:"active"`
	ActivationToken  *string    `gorm:"index"                   json:"-"`
	ActivationExpiry *time.Time `                               json:"-"`
	CreatedAt        time.Time  `gorm:"not null"                json:"createdAt"`
}

// BeforeCreate assigns the id once; an id set by the caller is kept.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
