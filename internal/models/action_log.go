package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action types recorded by the assistant.
const (
	ActionProvideInfo          = "provide_info"
	ActionMaintenanceDiagnosis = "maintenance_diagnosis"
	ActionPaymentInfo          = "payment_info"
	ActionLeaseInfo            = "lease_info"
	ActionPropertyInfo         = "property_info"
	ActionEscalate             = "escalate"
)

// ActionLog is a write-only audit entry describing what the assistant did for
// a message. Failed inserts are logged and never block the bot response.
type ActionLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MessageID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"message_id"`
	ActionType string         `gorm:"type:text;not null" json:"action_type"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	Success    bool           `gorm:"default:true" json:"success"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Message ChatMessage `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ActionLog) TableName() string {
	return "chatbot_action_logs"
}

func (a *ActionLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
