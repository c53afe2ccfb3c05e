package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// KnowledgeBaseEntry is a curated FAQ item. Keywords is free text (comma or
// space separated) matched by the keyword tier of the FAQ lookup.
type KnowledgeBaseEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	Answer    string         `gorm:"type:text;not null" json:"answer"`
	Category  string         `gorm:"type:text;index" json:"category"`
	Keywords  string         `gorm:"type:text" json:"keywords"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KnowledgeBaseEntry) TableName() string {
	return "knowledge_base"
}

func (kb *KnowledgeBaseEntry) BeforeCreate(tx *gorm.DB) error {
	if kb.ID == uuid.Nil {
		kb.ID = uuid.New()
	}
	return nil
}
