package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EscalatedRating is the satisfaction-rating sentinel marking a conversation
// handed off to a human.
const EscalatedRating = -1

// Conversation is a bounded chatbot session for one tenant. Created lazily on
// the first inbound message; end time management belongs to the web app.
type Conversation struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StartTime          time.Time  `gorm:"autoCreateTime" json:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	SatisfactionRating *int       `json:"satisfaction_rating,omitempty"`

	Tenant User `gorm:"foreignKey:TenantID;references:ID" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChatMessage is one utterance in a conversation. Messages are append-only;
// a user message is always persisted before the bot response it triggers.
type ChatMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_conv_msgs,priority:1" json:"conversation_id"`
	FromBot        bool      `gorm:"not null;default:false" json:"from_bot"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_conv_msgs,priority:2" json:"created_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ConversationContext is the per-conversation scratch state used to resolve
// references like "yes" and "what about X" across turns. One row per
// conversation, read-modify-written on every turn. Version backs the
// optimistic write check in the context repo.
type ConversationContext struct {
	ConversationID      uuid.UUID      `gorm:"type:uuid;primary_key" json:"conversation_id"`
	TopicsDiscussed     pq.StringArray `gorm:"type:text[]" json:"topics_discussed"`
	LastTopic           string         `gorm:"type:text" json:"last_topic"`
	LastBotMessage      string         `gorm:"type:text" json:"last_bot_message"`
	QuestionCount       int            `gorm:"default:0" json:"question_count"`
	EntitiesMentioned   pq.StringArray `gorm:"type:text[]" json:"entities_mentioned"`
	NeedsHumanAttention bool           `gorm:"default:false" json:"needs_human_attention"`
	LastResponseAt      time.Time      `json:"last_response_at"`
	Version             int            `gorm:"default:0" json:"-"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ConversationContext) TableName() string {
	return "conversation_contexts"
}
