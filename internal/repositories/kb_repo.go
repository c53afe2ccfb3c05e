package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

type KBRepo interface {
	dialogue.KnowledgeStore
	List(ctx context.Context, limit int) ([]models.KnowledgeBaseEntry, error)
	Create(ctx context.Context, entry *models.KnowledgeBaseEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type kbRepo struct {
	db *gorm.DB
}

func NewKBRepo(db *gorm.DB) KBRepo {
	return &kbRepo{db: db}
}

func (r *kbRepo) FindExact(ctx context.Context, question string) (*dialogue.FAQEntry, error) {
	var entry models.KnowledgeBaseEntry
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(question)) = LOWER(TRIM(?)) AND is_active = ?", question, true).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toFAQEntry(&entry), nil
}

func (r *kbRepo) FindContaining(ctx context.Context, question string) (*dialogue.FAQEntry, error) {
	var entry models.KnowledgeBaseEntry
	err := r.db.WithContext(ctx).
		Where("question ILIKE ? AND is_active = ?", "%"+question+"%", true).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toFAQEntry(&entry), nil
}

func (r *kbRepo) FindByKeywords(ctx context.Context, words []string) ([]dialogue.FAQEntry, error) {
	if len(words) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&models.KnowledgeBaseEntry{}).Where("is_active = ?", true)
	cond := r.db.Where("keywords ILIKE ?", "%"+words[0]+"%")
	for _, w := range words[1:] {
		cond = cond.Or("keywords ILIKE ?", "%"+w+"%")
	}

	var entries []models.KnowledgeBaseEntry
	if err := query.Where(cond).Limit(20).Find(&entries).Error; err != nil {
		return nil, err
	}

	out := make([]dialogue.FAQEntry, 0, len(entries))
	for i := range entries {
		out = append(out, *toFAQEntry(&entries[i]))
	}
	return out, nil
}

func (r *kbRepo) List(ctx context.Context, limit int) ([]models.KnowledgeBaseEntry, error) {
	var entries []models.KnowledgeBaseEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *kbRepo) Create(ctx context.Context, entry *models.KnowledgeBaseEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *kbRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.KnowledgeBaseEntry{}, "id = ?", id).Error
}

func toFAQEntry(entry *models.KnowledgeBaseEntry) *dialogue.FAQEntry {
	return &dialogue.FAQEntry{
		ID:       entry.ID,
		Question: entry.Question,
		Answer:   entry.Answer,
		Category: entry.Category,
		Keywords: entry.Keywords,
	}
}
