package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/models"
)

type ActionLogRepo interface {
	Log(ctx context.Context, messageID uuid.UUID, actionType string, details map[string]interface{}, success bool) error
}

type actionLogRepo struct {
	db *gorm.DB
}

func NewActionLogRepo(db *gorm.DB) ActionLogRepo {
	return &actionLogRepo{db: db}
}

func (r *actionLogRepo) Log(ctx context.Context, messageID uuid.UUID, actionType string, details map[string]interface{}, success bool) error {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
	entry := models.ActionLog{
		MessageID:  messageID,
		ActionType: actionType,
		Details:    datatypes.JSON(payload),
		Success:    success,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}
