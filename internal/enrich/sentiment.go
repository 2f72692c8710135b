package enrich

import (
	"strings"
	"unicode"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// Default keyword sets of the sentiment estimator.
var (
	DefaultPositiveWords = []string{"good", "great", "awesome", "nice", "love", "happy"}
	DefaultNegativeWords = []string{"bad", "terrible", "hate", "angry", "sad", "worst"}
)

// SentimentClassifier labels text by comparing counts of positive and negative
// keywords. It is not a language model; it only counts whole tokens.
type SentimentClassifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewSentimentClassifier builds a classifier from two keyword lists.
// Keywords are lower-cased; a word present in both lists counts for both sides.
func NewSentimentClassifier(positive, negative []string) *SentimentClassifier {
	return &SentimentClassifier{
		positive: wordSet(positive),
		negative: wordSet(negative),
	}
}

var defaultClassifier = NewSentimentClassifier(DefaultPositiveWords, DefaultNegativeWords)

// Classify labels text with the default keyword sets.
func Classify(text string) models.Sentiment {
	return defaultClassifier.Classify(text)
}

// Classify returns positive when positive tokens outnumber negative tokens,
// negative in the opposite case and neutral on ties, including 0-0.
func (c *SentimentClassifier) Classify(text string) models.Sentiment {
	var pos, neg int
	for _, tok := range Tokenize(text) {
		if _, ok := c.positive[tok]; ok {
			pos++
		}
		if _, ok := c.negative[tok]; ok {
			neg++
		}
	}

	switch {
	case pos > neg:
		return models.SentimentPositive
	case neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Tokenize splits text into lower-cased runs of letters, digits and underscores.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
