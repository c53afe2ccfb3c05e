package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func testLease() *Lease {
	return &Lease{
		ID:              uuid.New(),
		StartDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent:     1450,
		SecurityDeposit: 1450,
		PaymentDueDay:   5,
		PropertyAddress: "12 Alder Court",
		LandlordName:    "Pat Morgan",
	}
}

func TestPaymentHandlerSkipsUnrelated(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})
	_, ok := h.Handle(context.Background(), "is there a gym", uuid.New())
	assert.False(t, ok)
}

func TestPaymentHandlerNoLeaseApology(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{}, &fakePayments{})
	resp, ok := h.Handle(context.Background(), "when is my rent due", uuid.New())
	require.True(t, ok)
	assert.Equal(t, paymentApology, resp)
}

func TestPaymentHandlerDueDateThisMonth(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})
	h.now = fixedNow(2026, time.March, 3)

	resp, ok := h.Handle(context.Background(), "when is my rent due", uuid.New())
	require.True(t, ok)
	assert.Equal(t, "Your rent of $1,450.00 is due on March 5, 2026.", resp)
}

func TestPaymentHandlerDueDateRollsToNextMonth(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})
	h.now = fixedNow(2026, time.March, 10)

	resp, ok := h.Handle(context.Background(), "when is my rent due", uuid.New())
	require.True(t, ok)
	assert.Equal(t, "Your rent of $1,450.00 is due on April 5, 2026.", resp)
}

func TestPaymentHandlerBalanceEchoesMonthlyRent(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})

	resp, ok := h.Handle(context.Background(), "do I owe anything on my balance", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "$1,450.00 per month")
}

func TestPaymentHandlerHistory(t *testing.T) {
	payments := &fakePayments{records: []PaymentRecord{
		{Amount: 1450, PaidAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Method: "card"},
		{Amount: 1450, PaidAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}}
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, payments)

	resp, ok := h.Handle(context.Background(), "show my payment history", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "$1,450.00 on February 5, 2026 (card)")
	assert.Contains(t, resp, "$1,450.00 on January 5, 2026")
}

func TestPaymentHandlerHistoryEmpty(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})
	resp, ok := h.Handle(context.Background(), "show my payment history", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "couldn't find any payment records")
}

func TestPaymentHandlerDefaultSummary(t *testing.T) {
	h := NewPaymentHandler(&fakeLeases{lease: testLease()}, &fakePayments{})
	resp, ok := h.Handle(context.Background(), "rent", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "$1,450.00")
	assert.Contains(t, resp, "5th")
}
