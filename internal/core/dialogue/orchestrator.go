package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const genericFallback = "I can help with questions about rent payments, your lease, the property, and maintenance issues. Could you rephrase your question?"

// Orchestrator runs one dialogue turn: classify the utterance, try the
// context-dependent short-circuit handlers, then fall through the domain
// handlers in fixed priority order. It never returns an error outward; every
// path yields a user-presentable response.
type Orchestrator struct {
	payments   *PaymentHandler
	leases     *LeaseHandler
	properties *PropertyHandler
	faq        *FAQMatcher
	escalation *EscalationHandler
	requests   MaintenanceCreator
	fallback   FallbackResponder // optional
}

func NewOrchestrator(
	payments *PaymentHandler,
	leases *LeaseHandler,
	properties *PropertyHandler,
	faq *FAQMatcher,
	escalation *EscalationHandler,
	requests MaintenanceCreator,
	fallback FallbackResponder,
) *Orchestrator {
	return &Orchestrator{
		payments:   payments,
		leases:     leases,
		properties: properties,
		faq:        faq,
		escalation: escalation,
		requests:   requests,
		fallback:   fallback,
	}
}

// Intent returns the classified intent for an utterance. Exposed so callers
// can label metrics without reclassifying.
func (o *Orchestrator) Intent(utterance string) Intent {
	return ClassifyIntent(utterance)
}

// Respond produces the bot response for a turn, updating t.Context in place.
// The caller persists the context and the returned actions.
func (o *Orchestrator) Respond(ctx context.Context, t *Turn) *Result {
	res := o.dispatch(ctx, t)
	t.Context.LastBotMessage = res.Text
	return res
}

func (o *Orchestrator) dispatch(ctx context.Context, t *Turn) *Result {
	switch ClassifyIntent(t.Utterance) {
	case IntentYesNo:
		if res := o.handleYesNo(ctx, t); res != nil {
			return res
		}
	case IntentFollowUp:
		if res := o.handleFollowUp(ctx, t); res != nil {
			return res
		}
	case IntentClarification:
		if res := o.handleClarification(t); res != nil {
			return res
		}
	}

	// Record topics before dispatching so follow-ups on the next turn have
	// something to anchor to.
	topics := ExtractTopics(t.Utterance)
	for _, topic := range topics {
		if !t.Context.HasTopic(topic) {
			t.Context.TopicsDiscussed = append(t.Context.TopicsDiscussed, topic)
		}
	}
	if len(topics) > 0 {
		t.Context.LastTopic = topics[0]
	}
	t.Context.QuestionCount++

	if o.escalation.IsExplicitRequest(t.Utterance) {
		return o.escalation.Escalate(ctx, t, EscalationExplicit)
	}

	if text, ok := o.properties.Handle(ctx, t.Utterance, t.TenantID); ok {
		return &Result{Text: text, Actions: []Action{infoAction(ActionPropertyInfo, topics)}}
	}
	if text, ok := o.leases.Handle(ctx, t.Utterance, t.TenantID); ok {
		return &Result{Text: text, Actions: []Action{infoAction(ActionLeaseInfo, topics)}}
	}
	if text, ok := o.payments.Handle(ctx, t.Utterance, t.TenantID); ok {
		return &Result{Text: text, Actions: []Action{infoAction(ActionPaymentInfo, topics)}}
	}
	if diag, ok := DiagnoseMaintenance(t.Utterance); ok {
		return &Result{
			Text: RenderDiagnosis(diag),
			Actions: []Action{{
				Type: ActionMaintenanceDiagnosis,
				Details: map[string]interface{}{
					"issues":  diag.Issues,
					"urgency": diag.Urgency,
				},
				Success: true,
			}},
		}
	}
	if entry, ok := o.faq.Match(ctx, t.Utterance); ok {
		return &Result{
			Text: entry.Answer,
			Actions: []Action{{
				Type: ActionProvideInfo,
				Details: map[string]interface{}{
					"faq_id":   entry.ID.String(),
					"category": entry.Category,
				},
				Success: true,
			}},
		}
	}

	if ConfidenceScore(t.Utterance) < lowConfidenceThreshold {
		return &Result{Text: LowConfidenceOffer}
	}
	if o.fallback != nil {
		if text, err := o.fallback.Respond(ctx, t.Utterance); err == nil && text != "" {
			return &Result{Text: text, Actions: []Action{infoAction(ActionProvideInfo, topics)}}
		} else if err != nil {
			log.Warn().Err(err).Msg("fallback responder failed, using canned response")
		}
	}
	return &Result{Text: genericFallback}
}

// handleYesNo resolves what "yes" (or "no") refers to by inspecting the
// previous bot message for a pending offer, falling back to a topic-based or
// generic acknowledgment. Always short-circuits when context exists.
func (o *Orchestrator) handleYesNo(ctx context.Context, t *Turn) *Result {
	norm := normalize(t.Utterance)
	yes := isAffirmative(norm)
	last := strings.ToLower(t.Context.LastBotMessage)

	switch {
	case strings.Contains(last, OfferMaintenanceRequest):
		if !yes {
			return &Result{Text: "No problem — let me know if the issue comes back or if there's anything else I can help with."}
		}
		return o.createMaintenanceRequest(ctx, t)

	case strings.Contains(last, OfferHumanHandoff):
		if !yes {
			return &Result{Text: "Okay, we'll keep trying here. What would you like to know?"}
		}
		return o.escalation.Escalate(ctx, t, EscalationLowConfidence)

	case t.Context.LastTopic != "":
		if yes {
			return &Result{Text: fmt.Sprintf("Great! What else would you like to know about your %s?", t.Context.LastTopic)}
		}
		return &Result{Text: "Okay. Is there anything else I can help you with?"}

	default:
		return &Result{Text: "Got it. How else can I help you today?"}
	}
}

func (o *Orchestrator) createMaintenanceRequest(ctx context.Context, t *Turn) *Result {
	category := "general"
	if t.Context.HasTopic(TopicMaintenance) || t.Context.LastTopic == TopicMaintenance {
		category = TopicMaintenance
	}
	id, err := o.requests.CreateRequest(ctx, t.TenantID,
		"Issue reported via chat assistant",
		fmt.Sprintf("Tenant confirmed a maintenance issue in conversation %s. See the chat transcript for details.", t.ConversationID),
		category, "medium")
	if err != nil {
		log.Warn().Err(err).Msg("failed to create maintenance request")
		return &Result{Text: "I wasn't able to submit the request just now. Please try again in a moment or file it from the maintenance page in your portal."}
	}
	return &Result{
		Text: fmt.Sprintf("Done! I've submitted maintenance request %s for you. Your landlord will be notified and someone will follow up to schedule the repair.", id),
		Actions: []Action{{
			Type: ActionMaintenanceDiagnosis,
			Details: map[string]interface{}{
				"request_id": id.String(),
				"confirmed":  true,
			},
			Success: true,
		}},
	}
}

// handleFollowUp re-dispatches "what about X" style utterances against the
// last topic's domain handler. Returns nil when there is no prior topic or
// the handler is still not applicable, so the orchestrator falls through.
func (o *Orchestrator) handleFollowUp(ctx context.Context, t *Turn) *Result {
	if t.Context.LastTopic == "" {
		return nil
	}

	combined := strings.TrimSpace(stripConnective(t.Utterance) + " " + t.Context.LastTopic)

	switch t.Context.LastTopic {
	case TopicPayment, TopicUtility:
		if text, ok := o.payments.Handle(ctx, combined, t.TenantID); ok {
			return &Result{Text: text, Actions: []Action{infoAction(ActionPaymentInfo, nil)}}
		}
	case TopicLease, TopicMove:
		if text, ok := o.leases.Handle(ctx, combined, t.TenantID); ok {
			return &Result{Text: text, Actions: []Action{infoAction(ActionLeaseInfo, nil)}}
		}
	case TopicProperty, TopicAmenity, TopicPet, TopicParking, TopicNoise:
		if text, ok := o.properties.Handle(ctx, combined, t.TenantID); ok {
			return &Result{Text: text, Actions: []Action{infoAction(ActionPropertyInfo, nil)}}
		}
	case TopicMaintenance:
		if diag, ok := DiagnoseMaintenance(combined); ok {
			return &Result{Text: RenderDiagnosis(diag), Actions: []Action{{
				Type:    ActionMaintenanceDiagnosis,
				Details: map[string]interface{}{"issues": diag.Issues, "urgency": diag.Urgency},
				Success: true,
			}}}
		}
	}
	return nil
}

var clarificationBlurbs = map[string]string{
	TopicPayment:     "We were talking about rent payments — your monthly amount, when it's due, and how to pay through the portal.",
	TopicLease:       "We were talking about your lease — the agreement that sets your rent, start and end dates, and move-out terms.",
	TopicMaintenance: "We were talking about a maintenance issue — something in your unit that needs repair. I can submit a request to your landlord.",
	TopicProperty:    "We were talking about your property — the building, your unit, and its amenities.",
	TopicAmenity:     "We were talking about the building's amenities — shared facilities like a gym, pool, laundry or parking.",
	TopicMove:        "We were talking about moving in or out — notice periods, inspections and key handover.",
	TopicPet:         "We were talking about the pet policy — whether pets are allowed and how to register one on your lease.",
	TopicParking:     "We were talking about parking — assigned spots, permits and guest parking.",
	TopicNoise:       "We were talking about noise — quiet hours and how to report a disturbance.",
	TopicUtility:     "We were talking about utilities — which ones are included in your rent and which you pay directly.",
}

func (o *Orchestrator) handleClarification(t *Turn) *Result {
	if t.Context.LastTopic == "" {
		return nil
	}
	blurb, ok := clarificationBlurbs[t.Context.LastTopic]
	if !ok {
		blurb = fmt.Sprintf("We were talking about %s.", t.Context.LastTopic)
	}
	return &Result{Text: "Let me explain. " + blurb + " What part can I make clearer?"}
}

// stripConnective removes the leading follow-up phrase so the remainder can
// be combined with the last topic for re-dispatch.
func stripConnective(utterance string) string {
	norm := normalize(utterance)
	for _, p := range followUpPrefixes {
		if norm == p {
			return ""
		}
		if strings.HasPrefix(norm, p+" ") {
			return strings.TrimSpace(norm[len(p):])
		}
	}
	return norm
}

func infoAction(actionType string, topics []string) Action {
	details := map[string]interface{}{}
	if len(topics) > 0 {
		details["topics"] = topics
	}
	return Action{Type: actionType, Details: details, Success: true}
}
