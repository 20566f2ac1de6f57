package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workplace is a physical location barbers are assigned to. Membership
// drives the users' denormalized isBarber flag.
type Workplace struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`

	Barbers []User `gorm:"many2many:workplace_barbers;" json:"barbers,omitempty"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *Workplace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
