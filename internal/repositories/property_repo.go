package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

type PropertyRepo interface {
	dialogue.PropertySource
}

type propertyRepo struct {
	db *gorm.DB
}

func NewPropertyRepo(db *gorm.DB) PropertyRepo {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) PropertyForTenant(ctx context.Context, tenantID uuid.UUID) (*dialogue.PropertyInfo, error) {
	type row struct {
		Address     string
		Description string
		UnitNumber  string
		Bedrooms    int
		Bathrooms   int
	}
	var res row
	err := r.db.WithContext(ctx).
		Table("leases").
		Select("properties.address, properties.description, units.unit_number, units.bedrooms, units.bathrooms").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("leases.tenant_id = ? AND leases.status = ?", tenantID, models.LeaseStatusActive).
		Order("leases.start_date DESC").
		Limit(1).
		Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &dialogue.PropertyInfo{
		Address:     res.Address,
		Description: res.Description,
		UnitNumber:  res.UnitNumber,
		Bedrooms:    res.Bedrooms,
		Bathrooms:   res.Bathrooms,
	}, nil
}
