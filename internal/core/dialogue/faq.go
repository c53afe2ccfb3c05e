package dialogue

import (
	"context"
	"strings"
	"unicode"
)

// faqMinWordLen filters short filler words out of the keyword tier.
const faqMinWordLen = 3

// FAQMatcher looks an utterance up in the knowledge base using three
// progressively looser tiers: exact question match, substring match, then
// keyword-overlap scoring. The first tier that produces a hit wins.
type FAQMatcher struct {
	store KnowledgeStore
}

func NewFAQMatcher(store KnowledgeStore) *FAQMatcher {
	return &FAQMatcher{store: store}
}

// Match returns the best knowledge-base entry for the utterance, or ok=false
// when no tier produced one. Store errors are treated as misses.
func (m *FAQMatcher) Match(ctx context.Context, utterance string) (*FAQEntry, bool) {
	q := strings.TrimSpace(utterance)
	if q == "" {
		return nil, false
	}

	if entry, err := m.store.FindExact(ctx, q); err == nil && entry != nil {
		return entry, true
	}
	if entry, err := m.store.FindContaining(ctx, q); err == nil && entry != nil {
		return entry, true
	}

	words := keywordTokens(q)
	if len(words) == 0 {
		return nil, false
	}
	candidates, err := m.store.FindByKeywords(ctx, words)
	if err != nil || len(candidates) == 0 {
		return nil, false
	}

	// Rank by the density of the primary (first significant) keyword within
	// each entry's keyword field, descending.
	primary := words[0]
	best := 0
	bestScore := keywordDensity(candidates[0].Keywords, primary)
	for i := 1; i < len(candidates); i++ {
		if score := keywordDensity(candidates[i].Keywords, primary); score > bestScore {
			best, bestScore = i, score
		}
	}
	return &candidates[best], true
}

// keywordTokens splits the utterance into lowercase words longer than
// faqMinWordLen characters.
func keywordTokens(utterance string) []string {
	fields := strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var words []string
	for _, f := range fields {
		if len(f) > faqMinWordLen {
			words = append(words, f)
		}
	}
	return words
}

// keywordDensity is the share of fields in the free-text keyword list that
// contain the word.
func keywordDensity(keywords, word string) float64 {
	fields := strings.FieldsFunc(strings.ToLower(keywords), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return 0
	}
	hits := 0
	for _, f := range fields {
		if strings.Contains(f, word) {
			hits++
		}
	}
	return float64(hits) / float64(len(fields))
}
