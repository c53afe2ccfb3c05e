package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"yes", IntentYesNo},
		{"Yes please", IntentYesNo},
		{"yeah, go ahead", IntentYesNo},
		{"no thanks", IntentYesNo},
		{"nope", IntentYesNo},
		{"what about my lease", IntentFollowUp},
		{"and the security deposit?", IntentFollowUp},
		{"but what if it breaks again", IntentFollowUp},
		{"what do you mean by that", IntentClarification},
		{"can you explain that again", IntentClarification},
		{"i don't understand", IntentClarification},
		{"when is my rent due", IntentWhQuestion},
		{"how do I pay rent", IntentWhQuestion},
		{"where do I send the notice", IntentWhQuestion},
		{"tell me about my lease", IntentCommand},
		{"please send the documents", IntentCommand},
		{"show me my payment history", IntentCommand},
		{"my sink is broken", IntentGeneral},
		{"hello", IntentGeneral},
		{"", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.utterance))
		})
	}
}

func TestClassifyIntentOrderMatters(t *testing.T) {
	// "what about" is a follow-up even though it starts with a wh-word.
	assert.Equal(t, IntentFollowUp, ClassifyIntent("what about the parking"))
	// A leading "yes" wins over everything that follows.
	assert.Equal(t, IntentYesNo, ClassifyIntent("yes, what about the parking"))
}

func TestWordBoundaryPrefix(t *testing.T) {
	// "andrew" must not match the "and" follow-up prefix.
	assert.Equal(t, IntentGeneral, ClassifyIntent("andrew has the keys"))
}
