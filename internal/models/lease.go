package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lease statuses
const (
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
)

// Lease binds a tenant to a unit for a period. PaymentDueDay is the day of
// month rent is due (1-28).
type Lease struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UnitID          uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	StartDate       time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null" json:"end_date"`
	MonthlyRent     float64   `gorm:"type:numeric(10,2);not null" json:"monthly_rent"`
	SecurityDeposit float64   `gorm:"type:numeric(10,2)" json:"security_deposit"`
	PaymentDueDay   int       `gorm:"default:1" json:"payment_due_day"`
	Status          string    `gorm:"type:text;not null;default:'active';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tenant User `gorm:"foreignKey:TenantID;references:ID" json:"-"`
	Unit   Unit `gorm:"foreignKey:UnitID;references:ID" json:"-"`
}

func (Lease) TableName() string {
	return "leases"
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
