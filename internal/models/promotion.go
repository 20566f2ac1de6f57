package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Promotion struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	Code        string `gorm:"size:50;uniqueIndex" json:"code"`

	// Percentage and fixed-amount discounts can coexist; display prefers
	// the percentage when both are set.
	Discount       *float64 `json:"discount,omitempty"`
	DiscountAmount *float64 `json:"discountAmount,omitempty"`

	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	IsActive   bool      `gorm:"default:true" json:"isActive"`

	Image string `gorm:"size:255" json:"image,omitempty"`

	BarberID *string `gorm:"size:36" json:"barberId,omitempty"`
	Barber   *User   `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
