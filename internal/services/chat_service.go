// Package services glues the dialogue core to persistence and notifications.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/core/notification"
	"github.com/havenstead/tenant-assist-be/internal/models"
	"github.com/havenstead/tenant-assist-be/internal/repositories"
	"github.com/havenstead/tenant-assist-be/internal/shared/metrics"
)

var (
	// ErrConversationNotFound is returned when the referenced conversation
	// does not exist or belongs to a different tenant.
	ErrConversationNotFound = errors.New("conversation not found")
)

// TurnResponse is the DTO returned to the HTTP layer for one chat turn.
type TurnResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	MessageID      uuid.UUID `json:"message_id"`
	Message        string    `json:"message"`
	Escalated      bool      `json:"escalated"`
}

// ConversationView is the DTO for the conversation history endpoint.
type ConversationView struct {
	ConversationID      uuid.UUID            `json:"conversation_id"`
	Messages            []models.ChatMessage `json:"messages"`
	NeedsHumanAttention bool                 `json:"needs_human_attention"`
}

// ChatService runs the per-turn pipeline: persist the inbound message, load
// context, run the orchestrator, persist the response and audit trail, write
// the context back, and fan out escalation alerts.
type ChatService struct {
	conversations repositories.ConversationRepo
	contexts      repositories.ContextRepo
	actions       repositories.ActionLogRepo
	feedback      repositories.FeedbackRepo
	escalations   repositories.EscalationStore
	orchestrator  *dialogue.Orchestrator
	notifier      *notification.Service
}

func NewChatService(
	conversations repositories.ConversationRepo,
	contexts repositories.ContextRepo,
	actions repositories.ActionLogRepo,
	feedback repositories.FeedbackRepo,
	escalations repositories.EscalationStore,
	orchestrator *dialogue.Orchestrator,
	notifier *notification.Service,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		contexts:      contexts,
		actions:       actions,
		feedback:      feedback,
		escalations:   escalations,
		orchestrator:  orchestrator,
		notifier:      notifier,
	}
}

// HandleMessage processes one tenant utterance and returns the bot response.
// A nil conversationID resolves to the tenant's open conversation, creating
// one when none exists.
func (s *ChatService) HandleMessage(ctx context.Context, tenantID uuid.UUID, conversationID *uuid.UUID, text string) (*TurnResponse, error) {
	conv, err := s.resolveConversation(ctx, tenantID, conversationID)
	if err != nil {
		return nil, err
	}

	// The user message is persisted before any response generation so the
	// transcript survives a failed turn.
	userMsg, err := s.conversations.AppendMessage(ctx, conv.ID, false, text)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	record, err := s.contexts.GetOrCreate(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}

	turn := &dialogue.Turn{
		ConversationID: conv.ID,
		TenantID:       tenantID,
		Utterance:      text,
		Context:        toDialogueContext(record),
	}

	intent := s.orchestrator.Intent(text)
	res := s.orchestrator.Respond(ctx, turn)

	metrics.TurnsTotal.WithLabelValues(string(intent)).Inc()
	metrics.HandlerHits.WithLabelValues(handlerLabel(res)).Inc()
	if res.Escalated {
		metrics.EscalationsTotal.WithLabelValues(res.EscalationReason).Inc()
	}

	botMsg, err := s.conversations.AppendMessage(ctx, conv.ID, true, res.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	// Audit writes are best effort; the tenant already has their answer.
	for _, action := range res.Actions {
		if err := s.actions.Log(ctx, userMsg.ID, action.Type, action.Details, action.Success); err != nil {
			metrics.ActionLogFailures.Inc()
			log.Warn().Err(err).Str("action", action.Type).Msg("failed to write action log")
		}
	}

	s.saveContext(ctx, record, turn.Context)

	if res.Escalated {
		s.notifyEscalation(ctx, tenantID, text)
	}

	return &TurnResponse{
		ConversationID: conv.ID,
		MessageID:      botMsg.ID,
		Message:        res.Text,
		Escalated:      res.Escalated,
	}, nil
}

// GetConversation returns the transcript plus the human-attention flag.
func (s *ChatService) GetConversation(ctx context.Context, tenantID, conversationID uuid.UUID) (*ConversationView, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || conv.TenantID != tenantID {
		return nil, ErrConversationNotFound
	}

	msgs, err := s.conversations.ListMessages(ctx, conv.ID, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	record, err := s.contexts.GetOrCreate(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}

	return &ConversationView{
		ConversationID:      conv.ID,
		Messages:            msgs,
		NeedsHumanAttention: record.NeedsHumanAttention,
	}, nil
}

// ActiveConversation returns the tenant's open conversation view, creating an
// empty conversation when the tenant has none.
func (s *ChatService) ActiveConversation(ctx context.Context, tenantID uuid.UUID) (*ConversationView, error) {
	conv, err := s.conversations.ActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv, err = s.conversations.Create(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	}
	return s.GetConversation(ctx, tenantID, conv.ID)
}

// RecordFeedback stores the tenant's rating of a bot message.
func (s *ChatService) RecordFeedback(ctx context.Context, messageID uuid.UUID, helpful bool, text string) error {
	return s.feedback.Record(ctx, messageID, helpful, text)
}

func (s *ChatService) resolveConversation(ctx context.Context, tenantID uuid.UUID, conversationID *uuid.UUID) (*models.Conversation, error) {
	if conversationID != nil {
		conv, err := s.conversations.GetByID(ctx, *conversationID)
		if err != nil {
			return nil, err
		}
		if conv == nil || conv.TenantID != tenantID {
			return nil, ErrConversationNotFound
		}
		return conv, nil
	}

	conv, err := s.conversations.ActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}
	return s.conversations.Create(ctx, tenantID)
}

// saveContext writes the mutated turn context back under the optimistic
// version check, retrying once on a concurrent write. A lost second attempt
// is logged and dropped; context is advisory state, not the transcript.
func (s *ChatService) saveContext(ctx context.Context, record *models.ConversationContext, updated *dialogue.Context) {
	applyDialogueContext(record, updated)

	err := s.contexts.Save(ctx, record)
	if errors.Is(err, repositories.ErrVersionConflict) {
		fresh, rerr := s.contexts.GetOrCreate(ctx, record.ConversationID)
		if rerr != nil {
			log.Warn().Err(rerr).Msg("context re-read after version conflict failed")
			return
		}
		applyDialogueContext(fresh, updated)
		err = s.contexts.Save(ctx, fresh)
	}
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", record.ConversationID.String()).Msg("failed to save conversation context")
	}
}

// notifyEscalation alerts the responsible landlord (or an admin) on the side
// channels. The cross-role inbox message was already written by the
// escalation handler.
func (s *ChatService) notifyEscalation(ctx context.Context, tenantID uuid.UUID, utterance string) {
	recipient, err := s.escalations.LandlordForTenant(ctx, tenantID)
	if err != nil {
		log.Warn().Err(err).Msg("landlord lookup for escalation alert failed")
	}
	if recipient == nil {
		recipient, err = s.escalations.FallbackAdmin(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("admin lookup for escalation alert failed")
		}
	}
	if recipient == nil {
		log.Warn().Str("tenant_id", tenantID.String()).Msg("no recipient for escalation alert")
		return
	}

	tenantName, err := s.escalations.TenantName(ctx, tenantID)
	if err != nil || tenantName == "" {
		tenantName = "A tenant"
	}

	s.notifier.Notify(ctx, &notification.Recipient{
		ID:    recipient.ID,
		Name:  recipient.Name,
		Email: recipient.Email,
		Phone: recipient.Phone,
	}, notification.TypeEscalation,
		fmt.Sprintf("%s needs assistance", tenantName),
		fmt.Sprintf("%s asked the chat assistant to connect them with a person. Their last message was: %q\n\nPlease follow up from your dashboard.", tenantName, utterance))
}

func toDialogueContext(record *models.ConversationContext) *dialogue.Context {
	return &dialogue.Context{
		ConversationID:      record.ConversationID,
		TopicsDiscussed:     append([]string(nil), record.TopicsDiscussed...),
		LastTopic:           record.LastTopic,
		LastBotMessage:      record.LastBotMessage,
		QuestionCount:       record.QuestionCount,
		NeedsHumanAttention: record.NeedsHumanAttention,
	}
}

func applyDialogueContext(record *models.ConversationContext, c *dialogue.Context) {
	record.TopicsDiscussed = c.TopicsDiscussed
	record.LastTopic = c.LastTopic
	record.LastBotMessage = c.LastBotMessage
	record.QuestionCount = c.QuestionCount
	record.NeedsHumanAttention = c.NeedsHumanAttention
}

// handlerLabel picks the metrics label for the handler that produced the
// response, falling back to "fallback" for canned responses with no actions.
func handlerLabel(res *dialogue.Result) string {
	if res.Escalated {
		return dialogue.ActionEscalate
	}
	if len(res.Actions) > 0 {
		return res.Actions[0].Type
	}
	return "fallback"
}
