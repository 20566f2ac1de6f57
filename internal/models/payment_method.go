package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentTypePagoMovil     = "PAGO_MOVIL"
	PaymentTypeBinance       = "BINANCE"
	PaymentTypeTransferencia = "TRANSFERENCIA"
	PaymentTypeEfectivo      = "EFECTIVO"
	PaymentTypeOtro          = "OTRO"
)

// PaymentMethod config is a type-keyed bag: each payment rail stores only
// the fields that belong to it (phone/bank/idNumber for pago móvil,
// wallet/network for Binance, accountNumber/bankName for transfers).
type PaymentMethod struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name     string         `gorm:"size:100;not null" json:"name"`
	Type     string         `gorm:"size:30" json:"type,omitempty"`
	Config   datatypes.JSON `gorm:"type:jsonb" json:"config,omitempty"`
	IsActive bool           `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
