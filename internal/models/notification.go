package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationInfo    = "INFO"
	NotificationWarning = "WARNING"
	NotificationPromo   = "PROMO"
)

type Notification struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Empty UserID means a broadcast; TargetRole narrows broadcasts to one
	// role ("" = everyone).
	UserID     *string `gorm:"size:36;index" json:"userId,omitempty"`
	TargetRole string  `gorm:"size:20" json:"targetRole,omitempty"`

	Type  string `gorm:"size:20;default:'INFO'" json:"type"`
	Title string `gorm:"size:100;not null" json:"title"`
	Body  string `gorm:"size:500" json:"body,omitempty"`

	// Entity references for deep links (appointmentId, promotionId, ...).
	Data datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
