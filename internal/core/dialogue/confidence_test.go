package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceScoreBase(t *testing.T) {
	assert.InDelta(t, 0.2, ConfidenceScore("hello there"), 1e-9)
	assert.InDelta(t, 0.2, ConfidenceScore(""), 1e-9)
}

func TestConfidenceScorePerKeyword(t *testing.T) {
	assert.InDelta(t, 0.3, ConfidenceScore("when is my rent due"), 1e-9)
	assert.InDelta(t, 0.4, ConfidenceScore("rent on my lease"), 1e-9)
	// Repeats of the same keyword don't stack.
	assert.InDelta(t, 0.3, ConfidenceScore("rent rent rent"), 1e-9)
}

func TestConfidenceScoreCeiling(t *testing.T) {
	all := "rent lease payment maintenance property repair landlord"
	assert.InDelta(t, 0.9, ConfidenceScore(all), 1e-9)
}

func TestConfidenceScoreMonotonic(t *testing.T) {
	low := ConfidenceScore("something vague")
	mid := ConfidenceScore("something about rent")
	high := ConfidenceScore("rent on the lease with repair pending")
	assert.Less(t, low, mid)
	assert.Less(t, mid, high)
}
