package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	orch        *Orchestrator
	escalations *fakeEscalations
	requests    *fakeRequests
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()
	leases := &fakeLeases{lease: testLease()}
	payments := &fakePayments{}
	properties := &fakeProperties{prop: testProperty()}
	escalations := &fakeEscalations{landlord: &Contact{ID: uuid.New(), Name: "Pat Morgan"}}
	requests := &fakeRequests{id: uuid.New()}

	paymentHandler := NewPaymentHandler(leases, payments)
	paymentHandler.now = fixedNow(2026, time.March, 3)
	leaseHandler := NewLeaseHandler(leases)
	leaseHandler.now = fixedNow(2026, time.March, 3)

	return &orchestratorFixture{
		orch: NewOrchestrator(
			paymentHandler,
			leaseHandler,
			NewPropertyHandler(properties),
			NewFAQMatcher(&fakeKnowledge{}),
			NewEscalationHandler(escalations),
			requests,
			nil,
		),
		escalations: escalations,
		requests:    requests,
	}
}

func newTurn(utterance string, ctx *Context) *Turn {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Turn{
		ConversationID: uuid.New(),
		TenantID:       uuid.New(),
		Utterance:      utterance,
		Context:        ctx,
	}
}

func TestOrchestratorRentDueQuestion(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("when is my rent due", nil)

	res := f.orch.Respond(context.Background(), turn)

	assert.Equal(t, "Your rent of $1,450.00 is due on March 5, 2026.", res.Text)
	assert.False(t, res.Escalated)
	require.Len(t, res.Actions, 1)
	assert.Equal(t, ActionPaymentInfo, res.Actions[0].Type)
	assert.Equal(t, TopicPayment, turn.Context.LastTopic)
	assert.Equal(t, 1, turn.Context.QuestionCount)
	assert.Equal(t, res.Text, turn.Context.LastBotMessage)
}

func TestOrchestratorFollowUpWithoutHistoryFallsThrough(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("what about my lease", nil)

	res := f.orch.Respond(context.Background(), turn)

	// No prior topic to anchor to, so the lease handler answers directly.
	assert.Contains(t, res.Text, "12 Alder Court")
	assert.Equal(t, TopicLease, turn.Context.LastTopic)
}

func TestOrchestratorFollowUpReusesLastTopic(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("what about the balance", &Context{LastTopic: TopicPayment})

	res := f.orch.Respond(context.Background(), turn)

	assert.Contains(t, res.Text, "$1,450.00 per month")
	require.Len(t, res.Actions, 1)
	assert.Equal(t, ActionPaymentInfo, res.Actions[0].Type)
}

func TestOrchestratorMaintenanceEmergency(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("my toilet is overflowing and I smell gas", nil)

	res := f.orch.Respond(context.Background(), turn)

	assert.Contains(t, res.Text, "emergency")
	assert.NotContains(t, res.Text, "•")
	require.Len(t, res.Actions, 1)
	assert.Equal(t, ActionMaintenanceDiagnosis, res.Actions[0].Type)
	assert.Equal(t, UrgencyHigh, res.Actions[0].Details["urgency"])
}

func TestOrchestratorYesConfirmsMaintenanceRequest(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("yes", &Context{
		LastBotMessage: "If that doesn't help, would you like me to " + OfferMaintenanceRequest + "?",
		LastTopic:      TopicMaintenance,
	})

	res := f.orch.Respond(context.Background(), turn)

	assert.Equal(t, 1, f.requests.created)
	assert.Equal(t, TopicMaintenance, f.requests.category)
	assert.Contains(t, res.Text, "submitted maintenance request")
	assert.Contains(t, res.Text, f.requests.id.String())
}

func TestOrchestratorNoDeclinesMaintenanceRequest(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("no", &Context{
		LastBotMessage: "Would you like me to " + OfferMaintenanceRequest + "?",
	})

	res := f.orch.Respond(context.Background(), turn)

	assert.Equal(t, 0, f.requests.created)
	assert.Contains(t, res.Text, "No problem")
}

func TestOrchestratorYesConfirmsHandoff(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("yes", &Context{LastBotMessage: LowConfidenceOffer})

	res := f.orch.Respond(context.Background(), turn)

	assert.True(t, res.Escalated)
	assert.Equal(t, EscalationLowConfidence, res.EscalationReason)
	assert.Len(t, f.escalations.messages, 1)
	assert.True(t, turn.Context.NeedsHumanAttention)
}

func TestOrchestratorExplicitEscalation(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("I want to speak to a human", nil)

	res := f.orch.Respond(context.Background(), turn)

	assert.True(t, res.Escalated)
	assert.Equal(t, EscalationExplicit, res.EscalationReason)
	assert.Len(t, f.escalations.messages, 1)
}

func TestOrchestratorLowConfidenceOffer(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("blorp flibbertigibbet", nil)

	res := f.orch.Respond(context.Background(), turn)

	assert.Equal(t, LowConfidenceOffer, res.Text)
	assert.False(t, res.Escalated)
	assert.Empty(t, res.Actions)
}

func TestOrchestratorClarificationUsesLastTopic(t *testing.T) {
	f := newOrchestratorFixture(t)
	turn := newTurn("what do you mean", &Context{LastTopic: TopicPayment})

	res := f.orch.Respond(context.Background(), turn)

	assert.Contains(t, res.Text, "rent payments")
}

func TestOrchestratorTopicsAccumulateWithoutDuplicates(t *testing.T) {
	f := newOrchestratorFixture(t)
	ctx := &Context{}

	f.orch.Respond(context.Background(), newTurn("when is my rent due", ctx))
	f.orch.Respond(context.Background(), newTurn("how do I pay my bill", ctx))

	assert.Equal(t, []string{TopicPayment}, ctx.TopicsDiscussed)
	assert.Equal(t, 2, ctx.QuestionCount)
}

func TestOrchestratorFAQTier(t *testing.T) {
	entry := &FAQEntry{ID: uuid.New(), Answer: "Garbage pickup is every Tuesday.", Category: "building"}
	orch := NewOrchestrator(
		NewPaymentHandler(&fakeLeases{}, &fakePayments{}),
		NewLeaseHandler(&fakeLeases{}),
		NewPropertyHandler(&fakeProperties{}),
		NewFAQMatcher(&fakeKnowledge{containing: entry}),
		NewEscalationHandler(&fakeEscalations{}),
		&fakeRequests{},
		nil,
	)
	turn := newTurn("garbage pickup", nil)

	res := orch.Respond(context.Background(), turn)

	assert.Equal(t, entry.Answer, res.Text)
	require.Len(t, res.Actions, 1)
	assert.Equal(t, ActionProvideInfo, res.Actions[0].Type)
	assert.Equal(t, entry.ID.String(), res.Actions[0].Details["faq_id"])
}
