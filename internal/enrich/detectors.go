package enrich

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// Default cue phrases of the substring detectors.
var (
	DefaultPersonalCues = []string{
		"my wife", "my kid", "my family", "personal", "home", "outside work",
		"private", "vacation", "holiday", "weekend", "after hours",
	}

	DefaultCardCues = []string{
		"credit card", "visa", "mastercard", "amex", "expense", "receipt",
		"billing", "charge", "purchase", "buy", "order",
	}
)

// moneyPattern finds amounts such as $123, €1,200, £5000 or 3000USD. Digits
// of any script count, so "$١٥٠٠" is an amount too.
var moneyPattern = regexp.MustCompile(`(?i)[$€£]\s?\p{Nd}{1,3}(?:[,.\p{Nd}]*\p{Nd})?|\p{Nd}+\s?(?:usd|eur|gbp)`)

// nonAmountChars is everything stripped from a money match before parsing.
var nonAmountChars = regexp.MustCompile(`[^\p{Nd}.]`)

// Detector is a pure boolean predicate over text.
type Detector interface {
	// Name returns the flag the detector raises.
	Name() string
	// Detect reports whether the flag applies to text.
	Detect(text string) bool
}

// PhraseDetector raises its flag when any cue phrase occurs as a
// case-insensitive substring.
type PhraseDetector struct {
	name    string
	phrases []string
}

// NewPhraseDetector creates a substring detector. Phrases are lower-cased.
func NewPhraseDetector(name string, phrases []string) *PhraseDetector {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(p); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &PhraseDetector{name: name, phrases: lowered}
}

// Name implements Detector.
func (d *PhraseDetector) Name() string { return d.name }

// Detect implements Detector.
func (d *PhraseDetector) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// WordDetector raises its flag when a vocabulary word occurs on word boundaries.
type WordDetector struct {
	name       string
	vocabulary *Vocabulary
}

// NewWordDetector creates a word-boundary detector over a vocabulary.
func NewWordDetector(name string, vocabulary *Vocabulary) *WordDetector {
	return &WordDetector{name: name, vocabulary: vocabulary}
}

// Name implements Detector.
func (d *WordDetector) Name() string { return d.name }

// Detect implements Detector.
func (d *WordDetector) Detect(text string) bool {
	return d.vocabulary.Matches(text)
}

// AmountDetector raises its flag when any monetary amount in the text is at or
// above a threshold.
type AmountDetector struct {
	name      string
	threshold decimal.Decimal
}

// NewAmountDetector creates a monetary detector.
//
// Parameters:
//   - name: The flag name
//   - threshold: The decimal amount at or above which the flag is raised
//
// Returns:
//   - The detector, or an error if threshold is not a number
func NewAmountDetector(name, threshold string) (*AmountDetector, error) {
	t, err := decimal.NewFromString(strings.TrimSpace(threshold))
	if err != nil {
		return nil, fmt.Errorf("invalid threshold %q for %s: %w", threshold, name, err)
	}
	return &AmountDetector{name: name, threshold: t}, nil
}

// Name implements Detector.
func (d *AmountDetector) Name() string { return d.name }

// Detect implements Detector. Matches that do not parse as a number (for
// example "$1.200.50") are skipped; they never stop the scan.
func (d *AmountDetector) Detect(text string) bool {
	for _, amount := range ExtractAmounts(text) {
		if amount.GreaterThanOrEqual(d.threshold) {
			return true
		}
	}
	return false
}

// ExtractAmounts returns every parseable monetary amount in text, in order of
// appearance. Currency symbols, codes, spaces and thousands separators are
// stripped before parsing.
func ExtractAmounts(text string) []decimal.Decimal {
	matches := moneyPattern.FindAllString(text, -1)
	amounts := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		num := asciiDigits(nonAmountChars.ReplaceAllString(m, ""))
		amount, err := decimal.NewFromString(num)
		if err != nil {
			log.Debug().Str("match", m).Msg("Skipping malformed amount")
			continue
		}
		amounts = append(amounts, amount)
	}
	return amounts
}

// asciiDigits rewrites decimal digits of any script as '0'-'9'.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.IsDigit(r) {
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue returns the value of a decimal digit rune. Unicode lays out every
// decimal digit set as a contiguous run of whole 0-9 sequences.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}

// NewDetector builds the detector described by a rule. Word-boundary rules use
// the shared vocabulary when one is given, so NSFW detection and masking can
// never disagree; otherwise the rule's own phrases form the vocabulary.
func NewDetector(rule models.DetectionRule, vocabulary *Vocabulary) (Detector, error) {
	switch rule.Mode {
	case models.MatchSubstring:
		return NewPhraseDetector(rule.Name, rule.Phrases), nil
	case models.MatchWordBoundary:
		if vocabulary == nil {
			v, err := NewVocabulary(rule.Phrases)
			if err != nil {
				return nil, err
			}
			vocabulary = v
		}
		return NewWordDetector(rule.Name, vocabulary), nil
	case models.MatchMonetary:
		return NewAmountDetector(rule.Name, rule.Threshold)
	default:
		return nil, fmt.Errorf("unknown match mode %q for rule %s", rule.Mode, rule.Name)
	}
}

// DefaultRules returns the built-in detection rule table.
func DefaultRules() []models.DetectionRule {
	return []models.DetectionRule{
		{Name: models.FlagPersonalUse, Mode: models.MatchSubstring, Phrases: DefaultPersonalCues},
		{Name: models.FlagCreditCard, Mode: models.MatchSubstring, Phrases: DefaultCardCues},
		{Name: models.FlagLargeSpending, Mode: models.MatchMonetary, Threshold: constants.DefaultLargeSpendingThreshold},
		{Name: models.FlagNSFW, Mode: models.MatchWordBoundary, Phrases: DefaultVocabularyWords},
	}
}

var (
	defaultPersonal = NewPhraseDetector(models.FlagPersonalUse, DefaultPersonalCues)
	defaultCard     = NewPhraseDetector(models.FlagCreditCard, DefaultCardCues)
	defaultSpending = mustAmountDetector(models.FlagLargeSpending, constants.DefaultLargeSpendingThreshold)
	defaultNSFW     = NewWordDetector(models.FlagNSFW, defaultVocabulary)
)

func mustAmountDetector(name, threshold string) *AmountDetector {
	d, err := NewAmountDetector(name, threshold)
	if err != nil {
		panic(err)
	}
	return d
}

// DetectPersonalUse reports whether text hints at personal (non-business) usage.
func DetectPersonalUse(text string) bool { return defaultPersonal.Detect(text) }

// DetectCreditCardUse reports whether credit-card or expense terminology appears.
func DetectCreditCardUse(text string) bool { return defaultCard.Detect(text) }

// DetectLargeSpending reports whether any amount in text reaches 1000.
func DetectLargeSpending(text string) bool { return defaultSpending.Detect(text) }

// DetectNSFW reports whether text contains a word of the default vocabulary.
func DetectNSFW(text string) bool { return defaultNSFW.Detect(text) }
