// Package dialogue implements the assistant's message-understanding and
// response-generation pipeline: intent classification, topic extraction,
// domain query handlers, FAQ matching, escalation and the orchestrator that
// sequences them. All classification is deliberate table-driven keyword
// matching over small fixed vocabularies.
package dialogue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action types mirrored from the audit log.
const (
	ActionProvideInfo          = "provide_info"
	ActionMaintenanceDiagnosis = "maintenance_diagnosis"
	ActionPaymentInfo          = "payment_info"
	ActionLeaseInfo            = "lease_info"
	ActionPropertyInfo         = "property_info"
	ActionEscalate             = "escalate"
)

// Escalation reasons.
const (
	EscalationExplicit      = "explicit_request"
	EscalationLowConfidence = "low_confidence"
)

// Result is what one orchestrator turn produces. Handlers communicate
// escalation through this struct instead of having the orchestrator sniff
// the response text for canned phrases.
type Result struct {
	Text             string
	Escalated        bool
	EscalationReason string
	Actions          []Action
}

// Action is a pending audit-log entry for the turn.
type Action struct {
	Type    string
	Details map[string]interface{}
	Success bool
}

// Context is the per-conversation scratch state threaded through a turn.
// The orchestrator mutates it in place; the caller persists it afterwards.
type Context struct {
	ConversationID      uuid.UUID
	TopicsDiscussed     []string
	LastTopic           string
	LastBotMessage      string
	QuestionCount       int
	NeedsHumanAttention bool
}

// HasTopic reports whether the topic was already discussed.
func (c *Context) HasTopic(topic string) bool {
	for _, t := range c.TopicsDiscussed {
		if t == topic {
			return true
		}
	}
	return false
}

// Turn is one inbound tenant message plus its conversation state.
type Turn struct {
	ConversationID uuid.UUID
	TenantID       uuid.UUID
	Utterance      string
	Context        *Context
}

// Lease is the view of an active lease the handlers need.
type Lease struct {
	ID              uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     float64
	SecurityDeposit float64
	PaymentDueDay   int
	PropertyAddress string
	LandlordID      uuid.UUID
	LandlordName    string
}

// PaymentRecord is one completed rent payment.
type PaymentRecord struct {
	Amount float64
	PaidAt time.Time
	Method string
}

// PropertyInfo is the view of a tenant's property and unit.
type PropertyInfo struct {
	Address     string
	Description string
	UnitNumber  string
	Bedrooms    int
	Bathrooms   int
}

// FAQEntry is one knowledge-base item.
type FAQEntry struct {
	ID       uuid.UUID
	Question string
	Answer   string
	Category string
	Keywords string
}

// Contact identifies an escalation recipient.
type Contact struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

// LeaseSource fetches a tenant's active lease. A nil lease with nil error
// means no active lease exists.
type LeaseSource interface {
	ActiveLease(ctx context.Context, tenantID uuid.UUID) (*Lease, error)
}

// PaymentSource fetches recent completed payments for a lease, newest first.
type PaymentSource interface {
	RecentPayments(ctx context.Context, leaseID uuid.UUID, limit int) ([]PaymentRecord, error)
}

// PropertySource fetches the property and unit a tenant occupies.
type PropertySource interface {
	PropertyForTenant(ctx context.Context, tenantID uuid.UUID) (*PropertyInfo, error)
}

// KnowledgeStore backs the three FAQ matching tiers.
type KnowledgeStore interface {
	FindExact(ctx context.Context, question string) (*FAQEntry, error)
	FindContaining(ctx context.Context, question string) (*FAQEntry, error)
	FindByKeywords(ctx context.Context, words []string) ([]FAQEntry, error)
}

// MaintenanceCreator files a maintenance request once the tenant confirms.
type MaintenanceCreator interface {
	CreateRequest(ctx context.Context, tenantID uuid.UUID, title, description, category, priority string) (uuid.UUID, error)
}

// EscalationStore covers the side effects of handing a conversation off.
type EscalationStore interface {
	LandlordForTenant(ctx context.Context, tenantID uuid.UUID) (*Contact, error)
	FallbackAdmin(ctx context.Context) (*Contact, error)
	TenantName(ctx context.Context, tenantID uuid.UUID) (string, error)
	CreateCrossRoleMessage(ctx context.Context, senderID, recipientID uuid.UUID, subject, body string) error
	FlagConversation(ctx context.Context, conversationID uuid.UUID) error
}

// FallbackResponder is an optional last-resort responder (e.g. an LLM) used
// only on the generic-fallback branch. May be nil.
type FallbackResponder interface {
	Respond(ctx context.Context, utterance string) (string, error)
}
