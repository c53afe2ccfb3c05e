package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var leaseTriggers = []string{
	"lease", "contract", "agreement", "term", "renew", "renewal",
	"move out", "moving out",
}

// expiringSoonDays is the window in which the lease handler starts nudging
// the tenant about renewal.
const expiringSoonDays = 60

const leaseApology = "I'm sorry, I couldn't find an active lease for your account. " +
	"Please contact your landlord or property manager directly."

// LeaseHandler answers lease term, renewal and move-out questions.
type LeaseHandler struct {
	leases LeaseSource
	now    func() time.Time
}

func NewLeaseHandler(leases LeaseSource) *LeaseHandler {
	return &LeaseHandler{
		leases: leases,
		now:    time.Now,
	}
}

// Handle returns a response when the utterance contains a lease trigger
// keyword, or ok=false otherwise.
func (h *LeaseHandler) Handle(ctx context.Context, utterance string, tenantID uuid.UUID) (string, bool) {
	if !containsAny(utterance, leaseTriggers) {
		return "", false
	}

	lease, err := h.leases.ActiveLease(ctx, tenantID)
	if err != nil || lease == nil {
		return leaseApology, true
	}

	norm := strings.ToLower(utterance)
	switch {
	case strings.Contains(norm, "end") || strings.Contains(norm, "expir") || strings.Contains(norm, "until"):
		return h.endDateResponse(lease), true
	case strings.Contains(norm, "start") || strings.Contains(norm, "begin") || strings.Contains(norm, "began"):
		return fmt.Sprintf("Your lease started on %s.", lease.StartDate.Format(dateLayout)), true
	case strings.Contains(norm, "renew"):
		return h.renewalResponse(lease), true
	case strings.Contains(norm, "move out") || strings.Contains(norm, "moving out") || strings.Contains(norm, "notice"):
		return "To move out, you need to give at least 30 days' written notice before your intended move-out date. You can send the notice to your landlord through the messages page in your tenant portal.", true
	case strings.Contains(norm, "terminat") || strings.Contains(norm, "break") || strings.Contains(norm, "early"):
		return "Ending a lease early usually involves an early-termination fee and forfeiting part of your security deposit, depending on the terms of your agreement. Please review your lease document or discuss options with your landlord.", true
	default:
		return fmt.Sprintf("Here's a summary of your lease: %s, %s per month with a %s security deposit, running through %s.",
			lease.PropertyAddress,
			formatCurrency(lease.MonthlyRent),
			formatCurrency(lease.SecurityDeposit),
			lease.EndDate.Format(dateLayout)), true
	}
}

func (h *LeaseHandler) endDateResponse(lease *Lease) string {
	resp := fmt.Sprintf("Your lease ends on %s.", lease.EndDate.Format(dateLayout))
	if h.daysRemaining(lease) <= expiringSoonDays {
		resp += " Your lease is expiring soon — you may want to reach out to your landlord about renewal."
	}
	return resp
}

func (h *LeaseHandler) renewalResponse(lease *Lease) string {
	if h.daysRemaining(lease) <= expiringSoonDays {
		return fmt.Sprintf("Your lease ends on %s, which is coming up soon. Now is a good time to message your landlord about renewal terms — I can connect you if you'd like.",
			lease.EndDate.Format(dateLayout))
	}
	return fmt.Sprintf("Your lease runs through %s, so there's no rush yet. Landlords typically send renewal offers 60-90 days before the end date.",
		lease.EndDate.Format(dateLayout))
}

func (h *LeaseHandler) daysRemaining(lease *Lease) int {
	return int(lease.EndDate.Sub(h.now()).Hours() / 24)
}
