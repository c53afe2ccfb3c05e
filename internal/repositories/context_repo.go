package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/models"
)

// ErrVersionConflict is returned when a context write lost the race against a
// concurrent turn. Callers should re-read and retry.
var ErrVersionConflict = errors.New("conversation context was modified concurrently")

type ContextRepo interface {
	// GetOrCreate returns the conversation's context, lazily creating a
	// default record on first access.
	GetOrCreate(ctx context.Context, conversationID uuid.UUID) (*models.ConversationContext, error)
	// Save overwrites the stored context. The write is guarded by an
	// optimistic version check; ErrVersionConflict means a concurrent turn
	// got there first.
	Save(ctx context.Context, record *models.ConversationContext) error
	// PruneIdle deletes contexts whose last response is older than the
	// cutoff, returning the number removed.
	PruneIdle(ctx context.Context, olderThan time.Duration) (int64, error)
}

type contextRepo struct {
	db *gorm.DB
}

func NewContextRepo(db *gorm.DB) ContextRepo {
	return &contextRepo{db: db}
}

func (r *contextRepo) GetOrCreate(ctx context.Context, conversationID uuid.UUID) (*models.ConversationContext, error) {
	var record models.ConversationContext
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Take(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = models.ConversationContext{
		ConversationID:    conversationID,
		TopicsDiscussed:   []string{},
		EntitiesMentioned: []string{},
		LastResponseAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *contextRepo) Save(ctx context.Context, record *models.ConversationContext) error {
	expected := record.Version
	record.Version = expected + 1
	record.LastResponseAt = time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.ConversationContext{}).
		Where("conversation_id = ? AND version = ?", record.ConversationID, expected).
		Updates(map[string]interface{}{
			"topics_discussed":      record.TopicsDiscussed,
			"last_topic":            record.LastTopic,
			"last_bot_message":      record.LastBotMessage,
			"question_count":        record.QuestionCount,
			"entities_mentioned":    record.EntitiesMentioned,
			"needs_human_attention": record.NeedsHumanAttention,
			"last_response_at":      record.LastResponseAt,
			"version":               record.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		record.Version = expected
		return ErrVersionConflict
	}
	return nil
}

func (r *contextRepo) PruneIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := r.db.WithContext(ctx).
		Where("last_response_at < ?", cutoff).
		Delete(&models.ConversationContext{})
	return res.RowsAffected, res.Error
}
