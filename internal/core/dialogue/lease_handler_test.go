package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseHandlerSkipsUnrelated(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	_, ok := h.Handle(context.Background(), "when is my rent due", uuid.New())
	assert.False(t, ok)
}

func TestLeaseHandlerNoLeaseApology(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{})
	resp, ok := h.Handle(context.Background(), "when does my lease end", uuid.New())
	require.True(t, ok)
	assert.Equal(t, leaseApology, resp)
}

func TestLeaseHandlerEndDateFarOut(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	h.now = fixedNow(2026, time.March, 1)

	resp, ok := h.Handle(context.Background(), "when does my lease end", uuid.New())
	require.True(t, ok)
	assert.Equal(t, "Your lease ends on August 31, 2026.", resp)
}

func TestLeaseHandlerEndDateExpiringSoon(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	h.now = fixedNow(2026, time.July, 15)

	resp, ok := h.Handle(context.Background(), "when does my lease end", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "August 31, 2026")
	assert.Contains(t, resp, "expiring soon")
}

func TestLeaseHandlerStartDate(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	resp, ok := h.Handle(context.Background(), "when did my lease start", uuid.New())
	require.True(t, ok)
	assert.Equal(t, "Your lease started on September 1, 2025.", resp)
}

func TestLeaseHandlerRenewalFarOut(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	h.now = fixedNow(2026, time.January, 10)

	resp, ok := h.Handle(context.Background(), "can I renew my lease", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "no rush")
}

func TestLeaseHandlerRenewalSoon(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	h.now = fixedNow(2026, time.August, 1)

	resp, ok := h.Handle(context.Background(), "can I renew my lease", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "coming up soon")
}

func TestLeaseHandlerMoveOutNotice(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	resp, ok := h.Handle(context.Background(), "what do I need to do before moving out", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "30 days")
}

func TestLeaseHandlerDefaultSummary(t *testing.T) {
	h := NewLeaseHandler(&fakeLeases{lease: testLease()})
	resp, ok := h.Handle(context.Background(), "tell me about my lease", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "12 Alder Court")
	assert.Contains(t, resp, "$1,450.00")
	assert.Contains(t, resp, "August 31, 2026")
}
