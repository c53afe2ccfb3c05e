package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/models"
)

type NotificationRepo interface {
	Create(ctx context.Context, userID uuid.UUID, notifType, title, body string) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, userID uuid.UUID, notifType, title, body string) error {
	n := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}
	return r.db.WithContext(ctx).Create(&n).Error
}
