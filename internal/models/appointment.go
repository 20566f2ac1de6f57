package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID string `gorm:"size:36;index" json:"clientId"`
	Client   User   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberID string `gorm:"size:36;index" json:"barberId"`
	Barber   User   `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	SpecialtyID *string    `gorm:"size:36" json:"specialtyId,omitempty"`
	Specialty   *Specialty `gorm:"foreignKey:SpecialtyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"specialty,omitempty"`

	Date string `gorm:"size:10;index" json:"date"` // 2006-01-02
	Time string `gorm:"size:5" json:"time"`        // 15:04

	Status string `gorm:"size:20;default:'PENDING';index" json:"status"`

	PaymentMethodID *string        `gorm:"size:36" json:"paymentMethodId,omitempty"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"paymentMethod,omitempty"`
	PaymentStatus   string         `gorm:"size:20;default:'PENDING'" json:"paymentStatus"`
	PaymentProof    string         `gorm:"size:255" json:"paymentProof,omitempty"`

	Price float64 `json:"price"`
	Notes string  `gorm:"size:255" json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
