package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

type MaintenanceRepo interface {
	dialogue.MaintenanceCreator
}

type maintenanceRepo struct {
	db *gorm.DB
}

func NewMaintenanceRepo(db *gorm.DB) MaintenanceRepo {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) CreateRequest(ctx context.Context, tenantID uuid.UUID, title, description, category, priority string) (uuid.UUID, error) {
	req := models.MaintenanceRequest{
		TenantID:    tenantID,
		UnitID:      r.unitForTenant(ctx, tenantID),
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      "open",
	}
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return uuid.Nil, err
	}
	return req.ID, nil
}

// unitForTenant resolves the unit from the tenant's active lease; a missing
// lease just leaves the request unassigned.
func (r *maintenanceRepo) unitForTenant(ctx context.Context, tenantID uuid.UUID) uuid.UUID {
	var lease models.Lease
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, models.LeaseStatusActive).
		Order("start_date DESC").
		Take(&lease).Error
	if err != nil {
		return uuid.Nil
	}
	return lease.UnitID
}
