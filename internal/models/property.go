package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents a rental building or house. The free-text description
// is what the assistant scans when it infers amenities.
type Property struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LandlordID  uuid.UUID `gorm:"type:uuid;not null;index" json:"landlord_id"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	City        string    `gorm:"type:text" json:"city"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Landlord User `gorm:"foreignKey:LandlordID;references:ID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Unit represents a rentable unit within a property.
type Unit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	UnitNumber string    `gorm:"type:text;not null" json:"unit_number"`
	Bedrooms   int       `gorm:"default:1" json:"bedrooms"`
	Bathrooms  int       `gorm:"default:1" json:"bathrooms"`
	SquareFeet int       `json:"square_feet"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
