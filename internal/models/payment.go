package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Payment is a rent payment recorded against a lease. The gateway that
// collects the money lives in the main web app; this service only reads.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LeaseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"lease_id"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;not null" json:"payment_date"`
	Method      string    `gorm:"type:text" json:"method"`
	Status      string    `gorm:"type:text;not null;default:'completed';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Lease Lease `gorm:"foreignKey:LeaseID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
