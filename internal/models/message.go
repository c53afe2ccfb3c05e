package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserMessage is a cross-role message (tenant -> landlord/admin). The
// escalation handler creates one when a conversation is handed off.
type UserMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Subject     string    `gorm:"type:text;not null" json:"subject"`
	Body        string    `gorm:"type:text" json:"body"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserMessage) TableName() string {
	return "user_messages"
}

func (m *UserMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Notification is a dashboard notification record for a user. Delivery over
// email/WhatsApp is handled by the notification service, fire-and-forget.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"type:text;not null" json:"type"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// MessageFeedback stores the tenant's helpful/not-helpful rating on a bot
// message. Recorded by the feedback endpoint, outside the dialogue core.
type MessageFeedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MessageID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"message_id"`
	Helpful      bool      `gorm:"not null" json:"helpful"`
	FeedbackText string    `gorm:"type:text" json:"feedback_text"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Message ChatMessage `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MessageFeedback) TableName() string {
	return "message_feedback"
}

func (f *MessageFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
