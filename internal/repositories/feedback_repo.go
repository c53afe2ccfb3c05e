package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/havenstead/tenant-assist-be/internal/models"
)

type FeedbackRepo interface {
	// Record stores (or replaces) the tenant's rating of a bot message.
	Record(ctx context.Context, messageID uuid.UUID, helpful bool, feedbackText string) error
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepo {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Record(ctx context.Context, messageID uuid.UUID, helpful bool, feedbackText string) error {
	fb := models.MessageFeedback{
		MessageID:    messageID,
		Helpful:      helpful,
		FeedbackText: feedbackText,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"helpful", "feedback_text"}),
		}).
		Create(&fb).Error
}
