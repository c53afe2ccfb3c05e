package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenstead/tenant-assist-be/internal/core/dialogue"
	"github.com/havenstead/tenant-assist-be/internal/core/notification"
	"github.com/havenstead/tenant-assist-be/internal/models"
	"github.com/havenstead/tenant-assist-be/internal/repositories"
)

type fakeConversations struct {
	conversations map[uuid.UUID]*models.Conversation
	messages      []models.ChatMessage
	flagged       []uuid.UUID
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{conversations: map[uuid.UUID]*models.Conversation{}}
}

func (f *fakeConversations) ActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if c.TenantID == tenantID && c.EndTime == nil {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeConversations) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	return f.conversations[id], nil
}

func (f *fakeConversations) Create(ctx context.Context, tenantID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{ID: uuid.New(), TenantID: tenantID, StartTime: time.Now()}
	f.conversations[conv.ID] = conv
	return conv, nil
}

func (f *fakeConversations) AppendMessage(ctx context.Context, conversationID uuid.UUID, fromBot bool, text string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{ID: uuid.New(), ConversationID: conversationID, FromBot: fromBot, Text: text, CreatedAt: time.Now()}
	f.messages = append(f.messages, msg)
	return &msg, nil
}

func (f *fakeConversations) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeConversations) FlagEscalated(ctx context.Context, conversationID uuid.UUID) error {
	f.flagged = append(f.flagged, conversationID)
	return nil
}

type fakeContexts struct {
	records       map[uuid.UUID]*models.ConversationContext
	conflictsLeft int
	saves         int
}

func newFakeContexts() *fakeContexts {
	return &fakeContexts{records: map[uuid.UUID]*models.ConversationContext{}}
}

func (f *fakeContexts) GetOrCreate(ctx context.Context, conversationID uuid.UUID) (*models.ConversationContext, error) {
	if rec, ok := f.records[conversationID]; ok {
		cp := *rec
		return &cp, nil
	}
	rec := &models.ConversationContext{ConversationID: conversationID, LastResponseAt: time.Now()}
	f.records[conversationID] = rec
	cp := *rec
	return &cp, nil
}

func (f *fakeContexts) Save(ctx context.Context, record *models.ConversationContext) error {
	f.saves++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return repositories.ErrVersionConflict
	}
	cp := *record
	f.records[record.ConversationID] = &cp
	return nil
}

func (f *fakeContexts) PruneIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

type loggedAction struct {
	messageID  uuid.UUID
	actionType string
	success    bool
}

type fakeActions struct {
	entries []loggedAction
	err     error
}

func (f *fakeActions) Log(ctx context.Context, messageID uuid.UUID, actionType string, details map[string]interface{}, success bool) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, loggedAction{messageID, actionType, success})
	return nil
}

type fakeFeedback struct {
	recorded []uuid.UUID
}

func (f *fakeFeedback) Record(ctx context.Context, messageID uuid.UUID, helpful bool, feedbackText string) error {
	f.recorded = append(f.recorded, messageID)
	return nil
}

type fakeEscalationStore struct {
	landlord *dialogue.Contact
	messages int
	flagged  []uuid.UUID
}

func (f *fakeEscalationStore) LandlordForTenant(ctx context.Context, tenantID uuid.UUID) (*dialogue.Contact, error) {
	return f.landlord, nil
}

func (f *fakeEscalationStore) FallbackAdmin(ctx context.Context) (*dialogue.Contact, error) {
	return nil, nil
}

func (f *fakeEscalationStore) TenantName(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return "Jordan Lee", nil
}

func (f *fakeEscalationStore) CreateCrossRoleMessage(ctx context.Context, senderID, recipientID uuid.UUID, subject, body string) error {
	f.messages++
	return nil
}

func (f *fakeEscalationStore) FlagConversation(ctx context.Context, conversationID uuid.UUID) error {
	f.flagged = append(f.flagged, conversationID)
	return nil
}

type storedNotification struct {
	userID    uuid.UUID
	notifType string
}

type fakeNotificationStore struct {
	stored []storedNotification
}

func (f *fakeNotificationStore) Create(ctx context.Context, userID uuid.UUID, notifType, title, body string) error {
	f.stored = append(f.stored, storedNotification{userID, notifType})
	return nil
}

type fakeLeaseSource struct {
	lease *dialogue.Lease
}

func (f *fakeLeaseSource) ActiveLease(ctx context.Context, tenantID uuid.UUID) (*dialogue.Lease, error) {
	return f.lease, nil
}

type fakePaymentSource struct{}

func (fakePaymentSource) RecentPayments(ctx context.Context, leaseID uuid.UUID, limit int) ([]dialogue.PaymentRecord, error) {
	return nil, nil
}

type fakePropertySource struct{}

func (fakePropertySource) PropertyForTenant(ctx context.Context, tenantID uuid.UUID) (*dialogue.PropertyInfo, error) {
	return nil, nil
}

type emptyKnowledge struct{}

func (emptyKnowledge) FindExact(ctx context.Context, q string) (*dialogue.FAQEntry, error) {
	return nil, nil
}

func (emptyKnowledge) FindContaining(ctx context.Context, q string) (*dialogue.FAQEntry, error) {
	return nil, nil
}

func (emptyKnowledge) FindByKeywords(ctx context.Context, words []string) ([]dialogue.FAQEntry, error) {
	return nil, nil
}

type fakeMaintenanceCreator struct{}

func (fakeMaintenanceCreator) CreateRequest(ctx context.Context, tenantID uuid.UUID, title, description, category, priority string) (uuid.UUID, error) {
	return uuid.New(), nil
}

type chatFixture struct {
	svc           *ChatService
	conversations *fakeConversations
	contexts      *fakeContexts
	actions       *fakeActions
	escalations   *fakeEscalationStore
	notifStore    *fakeNotificationStore
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	lease := &dialogue.Lease{
		ID:            uuid.New(),
		EndDate:       time.Now().AddDate(1, 0, 0),
		MonthlyRent:   1450,
		PaymentDueDay: 5,
	}
	escalations := &fakeEscalationStore{landlord: &dialogue.Contact{ID: uuid.New(), Name: "Pat Morgan", Email: "pat@example.com"}}

	orch := dialogue.NewOrchestrator(
		dialogue.NewPaymentHandler(&fakeLeaseSource{lease: lease}, fakePaymentSource{}),
		dialogue.NewLeaseHandler(&fakeLeaseSource{lease: lease}),
		dialogue.NewPropertyHandler(fakePropertySource{}),
		dialogue.NewFAQMatcher(emptyKnowledge{}),
		dialogue.NewEscalationHandler(escalations),
		fakeMaintenanceCreator{},
		nil,
	)

	conversations := newFakeConversations()
	contexts := newFakeContexts()
	actions := &fakeActions{}
	notifStore := &fakeNotificationStore{}
	notifier := notification.NewService(notifStore, nil, nil)

	return &chatFixture{
		svc:           NewChatService(conversations, contexts, actions, &fakeFeedback{}, escalations, orch, notifier),
		conversations: conversations,
		contexts:      contexts,
		actions:       actions,
		escalations:   escalations,
		notifStore:    notifStore,
	}
}

func TestHandleMessageCreatesConversationAndPersistsBothSides(t *testing.T) {
	f := newChatFixture(t)
	tenantID := uuid.New()

	resp, err := f.svc.HandleMessage(context.Background(), tenantID, nil, "how do I pay my rent")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ConversationID)
	assert.Contains(t, resp.Message, "tenant portal")
	assert.False(t, resp.Escalated)

	require.Len(t, f.conversations.messages, 2)
	assert.False(t, f.conversations.messages[0].FromBot)
	assert.Equal(t, "how do I pay my rent", f.conversations.messages[0].Text)
	assert.True(t, f.conversations.messages[1].FromBot)
	assert.Equal(t, resp.Message, f.conversations.messages[1].Text)
	assert.Equal(t, f.conversations.messages[1].ID, resp.MessageID)
}

func TestHandleMessageReusesOpenConversation(t *testing.T) {
	f := newChatFixture(t)
	tenantID := uuid.New()

	first, err := f.svc.HandleMessage(context.Background(), tenantID, nil, "how do I pay my rent")
	require.NoError(t, err)
	second, err := f.svc.HandleMessage(context.Background(), tenantID, nil, "what about the balance")
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, f.conversations.conversations, 1)
}

func TestHandleMessageRejectsForeignConversation(t *testing.T) {
	f := newChatFixture(t)
	owner := uuid.New()
	intruder := uuid.New()

	resp, err := f.svc.HandleMessage(context.Background(), owner, nil, "how do I pay my rent")
	require.NoError(t, err)

	_, err = f.svc.HandleMessage(context.Background(), intruder, &resp.ConversationID, "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestHandleMessageLogsActionsAgainstUserMessage(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.HandleMessage(context.Background(), uuid.New(), nil, "how do I pay my rent")
	require.NoError(t, err)

	require.Len(t, f.actions.entries, 1)
	assert.Equal(t, "payment_info", f.actions.entries[0].actionType)
	assert.Equal(t, f.conversations.messages[0].ID, f.actions.entries[0].messageID)
}

func TestHandleMessagePersistsContext(t *testing.T) {
	f := newChatFixture(t)

	resp, err := f.svc.HandleMessage(context.Background(), uuid.New(), nil, "how do I pay my rent")
	require.NoError(t, err)

	rec := f.contexts.records[resp.ConversationID]
	require.NotNil(t, rec)
	assert.Equal(t, "payment", rec.LastTopic)
	assert.Equal(t, 1, rec.QuestionCount)
	assert.Equal(t, resp.Message, rec.LastBotMessage)
}

func TestHandleMessageRetriesContextSaveOnce(t *testing.T) {
	f := newChatFixture(t)
	f.contexts.conflictsLeft = 1

	_, err := f.svc.HandleMessage(context.Background(), uuid.New(), nil, "how do I pay my rent")
	require.NoError(t, err)
	assert.Equal(t, 2, f.contexts.saves)
}

func TestHandleMessageEscalationNotifiesLandlord(t *testing.T) {
	f := newChatFixture(t)

	resp, err := f.svc.HandleMessage(context.Background(), uuid.New(), nil, "I want to speak to a human")
	require.NoError(t, err)

	assert.True(t, resp.Escalated)
	assert.Equal(t, 1, f.escalations.messages)
	require.Len(t, f.notifStore.stored, 1)
	assert.Equal(t, f.escalations.landlord.ID, f.notifStore.stored[0].userID)
	assert.Equal(t, notification.TypeEscalation, f.notifStore.stored[0].notifType)

	rec := f.contexts.records[resp.ConversationID]
	require.NotNil(t, rec)
	assert.True(t, rec.NeedsHumanAttention)
}

func TestHandleMessageActionLogFailureIsNotFatal(t *testing.T) {
	f := newChatFixture(t)
	f.actions.err = assert.AnError

	resp, err := f.svc.HandleMessage(context.Background(), uuid.New(), nil, "how do I pay my rent")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
}

func TestActiveConversationCreatesWhenMissing(t *testing.T) {
	f := newChatFixture(t)

	view, err := f.svc.ActiveConversation(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, view.Messages)
	assert.False(t, view.NeedsHumanAttention)
	assert.Len(t, f.conversations.conversations, 1)
}

func TestGetConversation(t *testing.T) {
	f := newChatFixture(t)
	tenantID := uuid.New()

	resp, err := f.svc.HandleMessage(context.Background(), tenantID, nil, "how do I pay my rent")
	require.NoError(t, err)

	view, err := f.svc.GetConversation(context.Background(), tenantID, resp.ConversationID)
	require.NoError(t, err)
	assert.Len(t, view.Messages, 2)
	assert.False(t, view.NeedsHumanAttention)

	_, err = f.svc.GetConversation(context.Background(), uuid.New(), resp.ConversationID)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
