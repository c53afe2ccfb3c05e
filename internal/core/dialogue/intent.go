package dialogue

import "strings"

// Intent is the coarse question type of an utterance.
type Intent string

const (
	IntentYesNo         Intent = "yes_no"
	IntentFollowUp      Intent = "follow_up"
	IntentClarification Intent = "clarification"
	IntentWhQuestion    Intent = "wh_question"
	IntentCommand       Intent = "command"
	IntentGeneral       Intent = "general"
)

var affirmativeWords = []string{
	"yes", "yeah", "yep", "yup", "sure", "ok", "okay",
	"correct", "right", "definitely", "absolutely",
}

var negativeWords = []string{
	"no", "nope", "nah", "not", "never",
}

var followUpPrefixes = []string{
	"what about", "how about", "and", "also", "what if", "but", "then",
}

var clarificationPhrases = []string{
	"what do you mean", "can you explain", "i don't understand",
	"i dont understand", "clarify",
}

var whWords = []string{
	"what", "where", "when", "who", "why", "how",
}

var commandPrefixes = []string{
	"please", "can you", "could you", "would you", "tell me",
	"show me", "help me", "give me", "find", "get",
}

// ClassifyIntent buckets an utterance into one of the six intents. Rules are
// checked in a fixed order and the first match wins. Pure function.
func ClassifyIntent(utterance string) Intent {
	norm := normalize(utterance)
	if norm == "" {
		return IntentGeneral
	}

	if isAffirmative(norm) || isNegative(norm) {
		return IntentYesNo
	}
	if hasWordPrefix(norm, followUpPrefixes) {
		return IntentFollowUp
	}
	for _, phrase := range clarificationPhrases {
		if strings.Contains(norm, phrase) {
			return IntentClarification
		}
	}
	if firstWordIn(norm, whWords) {
		return IntentWhQuestion
	}
	if hasWordPrefix(norm, commandPrefixes) {
		return IntentCommand
	}
	return IntentGeneral
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isAffirmative reports whether the leading token is an affirmative word.
// The input must already be normalized.
func isAffirmative(norm string) bool {
	return firstWordIn(norm, affirmativeWords)
}

func isNegative(norm string) bool {
	return firstWordIn(norm, negativeWords)
}

func firstWordIn(norm string, words []string) bool {
	first := norm
	if i := strings.IndexAny(norm, " \t.,!?"); i >= 0 {
		first = norm[:i]
	}
	for _, w := range words {
		if first == w {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether norm starts with one of the phrases, on a
// word boundary ("and" matches "and the rent" but not "andrew").
func hasWordPrefix(norm string, phrases []string) bool {
	for _, p := range phrases {
		if norm == p || strings.HasPrefix(norm, p+" ") || strings.HasPrefix(norm, p+",") {
			return true
		}
	}
	return false
}
