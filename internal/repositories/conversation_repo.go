package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/models"
)

type ConversationRepo interface {
	// ActiveByTenant returns the tenant's open conversation, or nil when
	// there is none.
	ActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	Create(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error)
	AppendMessage(ctx context.Context, conversationID uuid.UUID, fromBot bool, text string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.ChatMessage, error)
	FlagEscalated(ctx context.Context, conversationID uuid.UUID) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) ActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND end_time IS NULL", tenantID).
		Order("start_time DESC").
		Take(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) Create(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error) {
	conv := models.Conversation{TenantID: tenantID}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) AppendMessage(ctx context.Context, conversationID uuid.UUID, fromBot bool, text string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		ConversationID: conversationID,
		FromBot:        fromBot,
		Text:           text,
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *conversationRepo) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *conversationRepo) FlagEscalated(ctx context.Context, conversationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("satisfaction_rating", models.EscalatedRating).Error
}
