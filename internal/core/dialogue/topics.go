package dialogue

import "strings"

// Topic tags.
const (
	TopicPayment     = "payment"
	TopicLease       = "lease"
	TopicMaintenance = "maintenance"
	TopicProperty    = "property"
	TopicAmenity     = "amenity"
	TopicMove        = "move"
	TopicPet         = "pet"
	TopicParking     = "parking"
	TopicNoise       = "noise"
	TopicUtility     = "utility"
)

// topicTable maps topics to their trigger vocabularies. Slice order fixes the
// discovery order of extracted topics.
var topicTable = []struct {
	topic    string
	keywords []string
}{
	{TopicPayment, []string{"payment", "rent", "due", "pay", "paid", "balance", "owe", "bill"}},
	{TopicLease, []string{"lease", "contract", "agreement", "term", "renew", "renewal"}},
	{TopicMaintenance, []string{"repair", "maintenance", "broken", "fix", "leak", "damage"}},
	{TopicProperty, []string{"property", "apartment", "house", "building", "unit"}},
	{TopicAmenity, []string{"amenity", "gym", "pool", "laundry", "facility"}},
	{TopicMove, []string{"move in", "move out", "move-in", "move-out", "moving"}},
	{TopicPet, []string{"pet", "dog", "cat", "animal"}},
	{TopicParking, []string{"parking", "garage", "vehicle", "car "}},
	{TopicNoise, []string{"noise", "loud", "neighbor", "quiet"}},
	{TopicUtility, []string{"utility", "utilities", "electric", "water bill", "internet", "trash"}},
}

// ExtractTopics returns the topics whose vocabulary appears in the utterance,
// each at most once, ordered by discovery. Pure function.
func ExtractTopics(utterance string) []string {
	norm := strings.ToLower(utterance)
	var topics []string
	for _, entry := range topicTable {
		for _, kw := range entry.keywords {
			if strings.Contains(norm, kw) {
				topics = append(topics, entry.topic)
				break
			}
		}
	}
	return topics
}
