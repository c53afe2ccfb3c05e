package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

type PaymentRepo interface {
	dialogue.PaymentSource
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) RecentPayments(ctx context.Context, leaseID uuid.UUID, limit int) ([]dialogue.PaymentRecord, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("lease_id = ? AND status = ?", leaseID, models.PaymentStatusCompleted).
		Order("payment_date DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	records := make([]dialogue.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, dialogue.PaymentRecord{
			Amount: p.Amount,
			PaidAt: p.PaymentDate,
			Method: p.Method,
		})
	}
	return records, nil
}
