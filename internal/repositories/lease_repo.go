package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

// RentReminder is one upcoming rent charge, joined with the tenant contact,
// used by the reminder job.
type RentReminder struct {
	TenantID    uuid.UUID
	TenantName  string
	TenantEmail string
	TenantPhone string
	Amount      float64
	DueDay      int
}

type LeaseRepo interface {
	dialogue.LeaseSource
	// DueWithin returns reminders for active leases whose next due day falls
	// within the given number of days from now.
	DueWithin(ctx context.Context, days int) ([]RentReminder, error)
}

type leaseRepo struct {
	db *gorm.DB
}

func NewLeaseRepo(db *gorm.DB) LeaseRepo {
	return &leaseRepo{db: db}
}

// activeLeaseRow carries the lease joined with property address and landlord.
type activeLeaseRow struct {
	models.Lease
	PropertyAddress string
	LandlordID      uuid.UUID
	LandlordName    string
}

func (r *leaseRepo) ActiveLease(ctx context.Context, tenantID uuid.UUID) (*dialogue.Lease, error) {
	var row activeLeaseRow
	err := r.db.WithContext(ctx).
		Table("leases").
		Select("leases.*, properties.address AS property_address, properties.landlord_id, users.name AS landlord_name").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Joins("JOIN users ON users.id = properties.landlord_id").
		Where("leases.tenant_id = ? AND leases.status = ?", tenantID, models.LeaseStatusActive).
		Order("leases.start_date DESC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &dialogue.Lease{
		ID:              row.ID,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		MonthlyRent:     row.MonthlyRent,
		SecurityDeposit: row.SecurityDeposit,
		PaymentDueDay:   row.PaymentDueDay,
		PropertyAddress: row.PropertyAddress,
		LandlordID:      row.LandlordID,
		LandlordName:    row.LandlordName,
	}, nil
}

func (r *leaseRepo) DueWithin(ctx context.Context, days int) ([]RentReminder, error) {
	type row struct {
		TenantID    uuid.UUID
		TenantName  string
		TenantEmail string
		TenantPhone string
		MonthlyRent float64
		DueDay      int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("leases").
		Select("leases.tenant_id, users.name AS tenant_name, users.email AS tenant_email, users.phone AS tenant_phone, leases.monthly_rent, leases.payment_due_day AS due_day").
		Joins("JOIN users ON users.id = leases.tenant_id").
		Where("leases.status = ?", models.LeaseStatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// Due-day distance wraps around month boundaries, so filter in Go.
	today := time.Now().Day()
	daysInMonth := daysIn(time.Now())
	var out []RentReminder
	for _, row := range rows {
		dist := row.DueDay - today
		if dist < 0 {
			dist += daysInMonth
		}
		if dist <= days {
			out = append(out, RentReminder{
				TenantID:    row.TenantID,
				TenantName:  row.TenantName,
				TenantEmail: row.TenantEmail,
				TenantPhone: row.TenantPhone,
				Amount:      row.MonthlyRent,
				DueDay:      row.DueDay,
			})
		}
	}
	return out, nil
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
