package dialogue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAQMatchEmptyUtterance(t *testing.T) {
	m := NewFAQMatcher(&fakeKnowledge{})
	_, ok := m.Match(context.Background(), "   ")
	assert.False(t, ok)
}

func TestFAQMatchExactWinsOverLooserTiers(t *testing.T) {
	exact := &FAQEntry{ID: uuid.New(), Question: "How do I pay rent?", Answer: "Through the portal."}
	other := &FAQEntry{ID: uuid.New(), Answer: "Wrong answer."}
	m := NewFAQMatcher(&fakeKnowledge{
		exact:      exact,
		containing: other,
		byKeywords: []FAQEntry{*other},
	})

	entry, ok := m.Match(context.Background(), "How do I pay rent?")
	require.True(t, ok)
	assert.Equal(t, exact.ID, entry.ID)
}

func TestFAQMatchSubstringTier(t *testing.T) {
	containing := &FAQEntry{ID: uuid.New(), Answer: "Substring hit."}
	m := NewFAQMatcher(&fakeKnowledge{containing: containing})

	entry, ok := m.Match(context.Background(), "pay rent")
	require.True(t, ok)
	assert.Equal(t, containing.ID, entry.ID)
}

func TestFAQMatchKeywordDensityRanking(t *testing.T) {
	weak := FAQEntry{ID: uuid.New(), Keywords: "recycling schedule bins pickup city"}
	strong := FAQEntry{ID: uuid.New(), Keywords: "trash garbage pickup"}
	m := NewFAQMatcher(&fakeKnowledge{byKeywords: []FAQEntry{weak, strong}})

	// Primary keyword is the first word longer than three characters: "trash".
	entry, ok := m.Match(context.Background(), "trash pickup day")
	require.True(t, ok)
	assert.Equal(t, strong.ID, entry.ID)
}

func TestFAQMatchMiss(t *testing.T) {
	m := NewFAQMatcher(&fakeKnowledge{})
	_, ok := m.Match(context.Background(), "something nobody asked before")
	assert.False(t, ok)
}

func TestKeywordTokens(t *testing.T) {
	words := keywordTokens("How do I pay my rent online?")
	// Words of three characters or fewer are dropped.
	assert.Equal(t, []string{"rent", "online"}, words)
}
