// Package models provides data structures shared by the enrichment pipeline,
// the table loader and the dashboard handlers.
package models

// Sentiment is the coarse polarity label of a piece of free text.
type Sentiment string

// Available sentiment labels
const (
	// SentimentPositive means positive cues outnumber negative cues.
	SentimentPositive Sentiment = "positive"
	// SentimentNegative means negative cues outnumber positive cues.
	SentimentNegative Sentiment = "negative"
	// SentimentNeutral covers ties, including texts with no cues at all.
	SentimentNeutral Sentiment = "neutral"
)

// String returns the label as written in exports.
func (s Sentiment) String() string {
	return string(s)
}

// ValidateSentiment checks if the provided label is one of the known labels.
func ValidateSentiment(s Sentiment) bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}
