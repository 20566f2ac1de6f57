package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "ADMIN"
	RoleBarber = "BARBER"
	RoleClient = "CLIENT"
	RoleUser   = "USER"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'CLIENT'" json:"role"`

	Phone    string `gorm:"size:20" json:"phone,omitempty"`
	Location string `gorm:"size:100" json:"location,omitempty"`
	Country  string `gorm:"size:100" json:"country,omitempty"`
	Gender   string `gorm:"size:20" json:"gender,omitempty"`
	Avatar   string `gorm:"size:255" json:"avatar,omitempty"`

	// Derived from workplace membership, kept denormalized so user
	// listings can filter on it without a join.
	IsBarber bool `gorm:"default:false" json:"isBarber"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
