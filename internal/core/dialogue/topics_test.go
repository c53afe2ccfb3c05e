package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		utterance string
		want      []string
	}{
		{"when is my rent due", []string{TopicPayment}},
		{"my lease and the pool", []string{TopicLease, TopicAmenity}},
		{"the faucet is broken and leaking", []string{TopicMaintenance}},
		{"can I keep a dog in the apartment", []string{TopicProperty, TopicPet}},
		{"my neighbors are too loud at night", []string{TopicNoise}},
		{"is internet included in utilities", []string{TopicUtility}},
		{"hello there", nil},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTopics(tt.utterance))
		})
	}
}

func TestExtractTopicsDeterministic(t *testing.T) {
	utterance := "I want to pay rent and renew my lease before moving out"
	first := ExtractTopics(utterance)
	second := ExtractTopics(utterance)
	assert.Equal(t, first, second)
	// Discovery order follows the table, not the utterance.
	assert.Equal(t, []string{TopicPayment, TopicLease, TopicMove}, first)
}

func TestExtractTopicsNoDuplicates(t *testing.T) {
	topics := ExtractTopics("rent rent rent pay pay due")
	assert.Equal(t, []string{TopicPayment}, topics)
}
