package dialogue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProperty() *PropertyInfo {
	return &PropertyInfo{
		Address:     "12 Alder Court",
		Description: "Renovated building with a fitness center, covered parking and on-site laundry.",
		UnitNumber:  "3B",
		Bedrooms:    2,
		Bathrooms:   1,
	}
}

func TestPropertyHandlerSkipsUnrelated(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})
	_, ok := h.Handle(context.Background(), "when is my rent due", uuid.New())
	assert.False(t, ok)
}

func TestPropertyHandlerNoPropertyApology(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{})
	resp, ok := h.Handle(context.Background(), "is there a gym", uuid.New())
	require.True(t, ok)
	assert.Equal(t, propertyApology, resp)
}

func TestPropertyHandlerAmenityPresent(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})

	resp, ok := h.Handle(context.Background(), "is there a gym in the building", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "fitness center")
}

func TestPropertyHandlerAmenityAbsent(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})

	resp, ok := h.Handle(context.Background(), "does the building have a pool", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "don't see a pool")
}

func TestPropertyHandlerPetCaution(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})

	resp, ok := h.Handle(context.Background(), "what's the pet policy", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "check your lease")
}

func TestPropertyHandlerHouseRules(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})

	resp, ok := h.Handle(context.Background(), "what are the house rules on smoking", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "quiet hours")
}

func TestPropertyHandlerSummary(t *testing.T) {
	h := NewPropertyHandler(&fakeProperties{prop: testProperty()})

	resp, ok := h.Handle(context.Background(), "tell me about my apartment", uuid.New())
	require.True(t, ok)
	assert.Contains(t, resp, "unit 3B at 12 Alder Court")
	assert.Contains(t, resp, "gym")
	assert.Contains(t, resp, "laundry")
	assert.Contains(t, resp, "parking")
}

func TestInferAmenities(t *testing.T) {
	found := inferAmenities("Pet-friendly duplex with washer and dryer hookups")
	assert.True(t, found["pets"])
	assert.True(t, found["laundry"])
	assert.False(t, found["gym"])
	assert.False(t, found["pool"])
}
