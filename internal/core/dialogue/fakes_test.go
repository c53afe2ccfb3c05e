package dialogue

import (
	"context"

	"github.com/google/uuid"
)

type fakeLeases struct {
	lease *Lease
	err   error
}

func (f *fakeLeases) ActiveLease(ctx context.Context, tenantID uuid.UUID) (*Lease, error) {
	return f.lease, f.err
}

type fakePayments struct {
	records []PaymentRecord
	err     error
}

func (f *fakePayments) RecentPayments(ctx context.Context, leaseID uuid.UUID, limit int) ([]PaymentRecord, error) {
	return f.records, f.err
}

type fakeProperties struct {
	prop *PropertyInfo
	err  error
}

func (f *fakeProperties) PropertyForTenant(ctx context.Context, tenantID uuid.UUID) (*PropertyInfo, error) {
	return f.prop, f.err
}

type fakeKnowledge struct {
	exact      *FAQEntry
	containing *FAQEntry
	byKeywords []FAQEntry
}

func (f *fakeKnowledge) FindExact(ctx context.Context, question string) (*FAQEntry, error) {
	return f.exact, nil
}

func (f *fakeKnowledge) FindContaining(ctx context.Context, question string) (*FAQEntry, error) {
	return f.containing, nil
}

func (f *fakeKnowledge) FindByKeywords(ctx context.Context, words []string) ([]FAQEntry, error) {
	return f.byKeywords, nil
}

type sentMessage struct {
	senderID    uuid.UUID
	recipientID uuid.UUID
	subject     string
	body        string
}

type fakeEscalations struct {
	landlord *Contact
	admin    *Contact
	messages []sentMessage
	flagged  []uuid.UUID
}

func (f *fakeEscalations) LandlordForTenant(ctx context.Context, tenantID uuid.UUID) (*Contact, error) {
	return f.landlord, nil
}

func (f *fakeEscalations) FallbackAdmin(ctx context.Context) (*Contact, error) {
	return f.admin, nil
}

func (f *fakeEscalations) TenantName(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return "Jordan Lee", nil
}

func (f *fakeEscalations) CreateCrossRoleMessage(ctx context.Context, senderID, recipientID uuid.UUID, subject, body string) error {
	f.messages = append(f.messages, sentMessage{senderID, recipientID, subject, body})
	return nil
}

func (f *fakeEscalations) FlagConversation(ctx context.Context, conversationID uuid.UUID) error {
	f.flagged = append(f.flagged, conversationID)
	return nil
}

type fakeRequests struct {
	id       uuid.UUID
	err      error
	category string
	priority string
	created  int
}

func (f *fakeRequests) CreateRequest(ctx context.Context, tenantID uuid.UUID, title, description, category, priority string) (uuid.UUID, error) {
	f.created++
	f.category = category
	f.priority = priority
	return f.id, f.err
}
