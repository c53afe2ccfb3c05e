package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var paymentTriggers = []string{
	"payment", "rent", "due", "pay", "paid", "balance", "owe", "bill",
}

const paymentApology = "I'm sorry, I couldn't find payment information for your account. " +
	"Please contact your landlord or property manager directly."

// PaymentHandler answers rent and payment questions from the tenant's active
// lease and recent payment history.
type PaymentHandler struct {
	leases   LeaseSource
	payments PaymentSource
	now      func() time.Time
}

func NewPaymentHandler(leases LeaseSource, payments PaymentSource) *PaymentHandler {
	return &PaymentHandler{
		leases:   leases,
		payments: payments,
		now:      time.Now,
	}
}

// Handle returns a response when the utterance contains a payment trigger
// keyword, or ok=false so the orchestrator can try the next handler. Missing
// or unreadable lease data degrades to an apologetic response, never an
// error.
func (h *PaymentHandler) Handle(ctx context.Context, utterance string, tenantID uuid.UUID) (string, bool) {
	if !containsAny(utterance, paymentTriggers) {
		return "", false
	}

	lease, err := h.leases.ActiveLease(ctx, tenantID)
	if err != nil || lease == nil {
		return paymentApology, true
	}

	norm := strings.ToLower(utterance)
	switch {
	case strings.Contains(norm, "due") || strings.Contains(norm, "when"):
		return h.dueDateResponse(lease), true
	case strings.Contains(norm, "history") || strings.Contains(norm, "recent") || strings.Contains(norm, "last"):
		return h.historyResponse(ctx, lease), true
	case strings.Contains(norm, "balance") || strings.Contains(norm, "owe"):
		// The balance reported here is the monthly rent charge, not a
		// computed outstanding amount. Matches the web app's behavior.
		return fmt.Sprintf("Your current rent charge is %s per month. For a detailed statement of your account, please check the payments page in your tenant portal.",
			formatCurrency(lease.MonthlyRent)), true
	case strings.Contains(norm, "how") && strings.Contains(norm, "pay"):
		return "You can pay your rent through the tenant portal using a bank transfer or card. Go to Payments, choose your lease and follow the checkout steps. You can also scan the payment QR code from the portal.", true
	default:
		return fmt.Sprintf("Your monthly rent is %s, due on the %s of each month. Ask me about your due date, payment history, or how to pay if you need more detail.",
			formatCurrency(lease.MonthlyRent), ordinal(lease.PaymentDueDay)), true
	}
}

// dueDateResponse computes the next due date from the lease's payment due
// day, rolling over to next month when this month's date has passed.
func (h *PaymentHandler) dueDateResponse(lease *Lease) string {
	now := h.now()
	due := time.Date(now.Year(), now.Month(), lease.PaymentDueDay, 0, 0, 0, 0, now.Location())
	if now.Day() > lease.PaymentDueDay {
		due = due.AddDate(0, 1, 0)
	}
	return fmt.Sprintf("Your rent of %s is due on %s.",
		formatCurrency(lease.MonthlyRent), due.Format(dateLayout))
}

func (h *PaymentHandler) historyResponse(ctx context.Context, lease *Lease) string {
	records, err := h.payments.RecentPayments(ctx, lease.ID, 5)
	if err != nil || len(records) == 0 {
		return "I couldn't find any payment records for your lease yet."
	}

	var b strings.Builder
	b.WriteString("Here are your most recent payments:\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "• %s on %s", formatCurrency(rec.Amount), rec.PaidAt.Format(dateLayout))
		if rec.Method != "" {
			fmt.Fprintf(&b, " (%s)", rec.Method)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
