package dialogue

import "strings"

const (
	confidenceBase    = 0.2
	confidenceStep    = 0.1
	confidenceCeiling = 0.9

	// lowConfidenceThreshold gates the escalation-offer fallback.
	lowConfidenceThreshold = 0.3
)

// knownTopicKeywords is the fixed vocabulary the confidence scorer counts.
var knownTopicKeywords = []string{
	"rent", "lease", "payment", "maintenance", "property", "repair", "landlord",
}

// ConfidenceScore is a deterministic, non-probabilistic score: 0.2 base plus
// 0.1 per distinct known-topic keyword present, clamped at 0.9. It is used
// only as a threshold on the final fallback tier.
func ConfidenceScore(utterance string) float64 {
	norm := strings.ToLower(utterance)
	score := confidenceBase
	for _, kw := range knownTopicKeywords {
		if strings.Contains(norm, kw) {
			score += confidenceStep
		}
	}
	if score > confidenceCeiling {
		score = confidenceCeiling
	}
	return score
}
