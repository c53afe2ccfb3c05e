package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

// User represents an account in the rental platform. Tenants talk to the
// assistant; landlords and admins receive escalations.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Phone     string    `gorm:"type:text" json:"phone"`
	Role      string    `gorm:"type:text;not null;default:'tenant';index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
