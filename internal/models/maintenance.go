package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceRequest is a tenant-reported issue. The assistant can create one
// after the tenant confirms the offer in a yes/no turn.
type MaintenanceRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UnitID      uuid.UUID `gorm:"type:uuid;index" json:"unit_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:text;default:'general'" json:"category"`
	Priority    string    `gorm:"type:text;default:'medium'" json:"priority"`
	Status      string    `gorm:"type:text;not null;default:'open';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tenant User `gorm:"foreignKey:TenantID;references:ID" json:"-"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
