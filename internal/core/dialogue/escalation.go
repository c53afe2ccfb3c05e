package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// OfferHumanHandoff is the canned phrase in the low-confidence fallback; the
// yes/no handler looks for it in the previous bot message to know that a
// "yes" confirms the handoff.
const OfferHumanHandoff = "connect you with a human"

// LowConfidenceOffer is the exact fallback returned when no handler matched
// and the confidence score is below the threshold.
const LowConfidenceOffer = "I'm not sure I understood that. Would you like me to " +
	OfferHumanHandoff + " who can help?"

const (
	escalatedExplicitResponse = "I understand you'd like to speak with a person. I've sent your request to your landlord, and they'll follow up with you shortly."
	escalatedOfferResponse    = "Okay, I've passed your question along to your landlord. Someone will follow up with you shortly."
)

// Both an escalation word and a request phrase must appear in the same
// utterance for an explicit escalation.
var escalationWords = []string{
	"human", "agent", "person", "manager", "landlord", "representative", "staff", "someone",
}

var escalationRequestPhrases = []string{
	"speak", "talk", "connect", "transfer", "contact", "i want", "i need", "get me",
}

// EscalationHandler hands a conversation off to the tenant's landlord, or an
// admin when no landlord is on file.
type EscalationHandler struct {
	store EscalationStore
}

func NewEscalationHandler(store EscalationStore) *EscalationHandler {
	return &EscalationHandler{store: store}
}

// IsExplicitRequest reports whether the utterance explicitly asks for a
// human: an escalation word combined with a request phrase.
func (h *EscalationHandler) IsExplicitRequest(utterance string) bool {
	return containsAny(utterance, escalationWords) && containsAny(utterance, escalationRequestPhrases)
}

// Escalate creates the cross-role message, flags the conversation, marks the
// context, and returns the structured result. Every side effect is best
// effort: a failed write is logged and the tenant still gets the response.
func (h *EscalationHandler) Escalate(ctx context.Context, t *Turn, reason string) *Result {
	recipient, err := h.store.LandlordForTenant(ctx, t.TenantID)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", t.TenantID.String()).Msg("landlord lookup failed during escalation")
	}
	if recipient == nil {
		recipient, err = h.store.FallbackAdmin(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("admin fallback lookup failed during escalation")
		}
	}

	delivered := false
	if recipient != nil {
		tenantName, err := h.store.TenantName(ctx, t.TenantID)
		if err != nil || tenantName == "" {
			tenantName = "A tenant"
		}
		subject := fmt.Sprintf("%s needs assistance", tenantName)
		body := fmt.Sprintf("%s asked the assistant for help and the conversation was escalated.\n\nTheir message: %q",
			tenantName, strings.TrimSpace(t.Utterance))
		if err := h.store.CreateCrossRoleMessage(ctx, t.TenantID, recipient.ID, subject, body); err != nil {
			log.Warn().Err(err).Msg("failed to create escalation message")
		} else {
			delivered = true
		}
	}

	if err := h.store.FlagConversation(ctx, t.ConversationID); err != nil {
		log.Warn().Err(err).Str("conversation_id", t.ConversationID.String()).Msg("failed to flag conversation as escalated")
	}
	t.Context.NeedsHumanAttention = true

	text := escalatedOfferResponse
	if reason == EscalationExplicit {
		text = escalatedExplicitResponse
	}

	return &Result{
		Text:             text,
		Escalated:        true,
		EscalationReason: reason,
		Actions: []Action{{
			Type: ActionEscalate,
			Details: map[string]interface{}{
				"reason":    reason,
				"delivered": delivered,
			},
			Success: delivered,
		}},
	}
}
