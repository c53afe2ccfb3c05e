// Package notification fans alerts out to the channels a recipient can be
// reached on: a dashboard notification record (always), email and WhatsApp
// (when configured). Delivery is fire-and-forget; failures are logged and
// never bubble back to the tenant conversation.
package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Notification types stored on the dashboard record.
const (
	TypeEscalation   = "chatbot_escalation"
	TypeRentReminder = "rent_reminder"
)

// Recipient is who gets notified. Empty email/phone skip those channels.
type Recipient struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

// EmailSender sends an email.
type EmailSender interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// WhatsAppSender sends a WhatsApp text.
type WhatsAppSender interface {
	SendMessage(phoneNumber, message string) error
}

// Store persists the dashboard notification record.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, notifType, title, body string) error
}

// Service handles multi-channel notifications.
type Service struct {
	store    Store
	email    EmailSender    // optional
	whatsapp WhatsAppSender // optional
}

func NewService(store Store, email EmailSender, whatsapp WhatsAppSender) *Service {
	return &Service{
		store:    store,
		email:    email,
		whatsapp: whatsapp,
	}
}

// Notify writes the dashboard record and pushes to whichever side channels
// are available for the recipient.
func (s *Service) Notify(ctx context.Context, r *Recipient, notifType, subject, body string) {
	if r == nil {
		return
	}

	if err := s.store.Create(ctx, r.ID, notifType, subject, body); err != nil {
		log.Warn().Err(err).Str("user_id", r.ID.String()).Msg("failed to store notification")
	}

	if s.email != nil && r.Email != "" {
		if err := s.email.SendEmail(r.Email, subject, body); err != nil {
			log.Warn().Err(err).Str("provider", s.email.GetProviderName()).Msg("failed to send notification email")
		}
	}

	if s.whatsapp != nil && r.Phone != "" {
		if err := s.whatsapp.SendMessage(r.Phone, subject+"\n\n"+body); err != nil {
			log.Warn().Err(err).Msg("failed to send WhatsApp notification")
		}
	}
}
