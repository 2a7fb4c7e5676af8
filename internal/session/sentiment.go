package session

import "strings"

// Sentiment is the coarse tone classification of a single user message.
type Sentiment string

const (
	SentimentUrgent   Sentiment = "urgent"
	SentimentNegative Sentiment = "negative"
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
)

var (
	urgentWords   = []string{"urgent", "emergency", "asap", "immediately", "critical", "serious"}
	negativeWords = []string{"angry", "frustrated", "terrible", "awful", "disappointed", "upset", "bad"}
	positiveWords = []string{"thank", "good", "great", "excellent", "satisfied", "happy", "pleased"}
)

// AnalyzeSentiment classifies a message. Urgent takes precedence over
// negative and positive even when both are present.
func AnalyzeSentiment(message string) Sentiment {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, urgentWords):
		return SentimentUrgent
	case containsAny(lower, negativeWords):
		return SentimentNegative
	case containsAny(lower, positiveWords):
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
