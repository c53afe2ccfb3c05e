package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/models"
)

// EscalationStore bundles the lookups and writes the escalation handler
// needs. It also serves the chat service when it fans out notifications.
type EscalationStore interface {
	dialogue.EscalationStore
}

type escalationStore struct {
	db            *gorm.DB
	conversations ConversationRepo
}

func NewEscalationStore(db *gorm.DB, conversations ConversationRepo) EscalationStore {
	return &escalationStore{db: db, conversations: conversations}
}

// LandlordForTenant resolves the landlord of the tenant's active lease.
// Returns nil when the tenant has no active lease or landlord on file.
func (s *escalationStore) LandlordForTenant(ctx context.Context, tenantID uuid.UUID) (*dialogue.Contact, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN properties ON properties.landlord_id = users.id").
		Joins("JOIN units ON units.property_id = properties.id").
		Joins("JOIN leases ON leases.unit_id = units.id").
		Where("leases.tenant_id = ? AND leases.status = ?", tenantID, models.LeaseStatusActive).
		Limit(1).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toContact(&user), nil
}

// FallbackAdmin returns any admin user, for tenants without a landlord.
func (s *escalationStore) FallbackAdmin(ctx context.Context) (*dialogue.Contact, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleAdmin).
		Order("created_at ASC").
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toContact(&user), nil
}

func (s *escalationStore) TenantName(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", tenantID).Take(&user).Error; err != nil {
		return "", err
	}
	return user.Name, nil
}

func (s *escalationStore) CreateCrossRoleMessage(ctx context.Context, senderID, recipientID uuid.UUID, subject, body string) error {
	msg := models.UserMessage{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
	}
	return s.db.WithContext(ctx).Create(&msg).Error
}

func (s *escalationStore) FlagConversation(ctx context.Context, conversationID uuid.UUID) error {
	return s.conversations.FlagEscalated(ctx, conversationID)
}

func toContact(user *models.User) *dialogue.Contact {
	return &dialogue.Contact{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}
}
