package enrich

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// Options configures an Enricher. Empty lists fall back to the built-in
// defaults; they never mean "detect nothing".
type Options struct {
	Vocabulary             []string
	PersonalCues           []string
	CardCues               []string
	PositiveWords          []string
	NegativeWords          []string
	LargeSpendingThreshold string
	Workers                int
}

// OptionsFromConfig creates enrichment options from the detection settings.
func OptionsFromConfig(cfg *config.DetectionSettings) Options {
	return Options{
		Vocabulary:             cfg.Vocabulary,
		PersonalCues:           cfg.PersonalCues,
		CardCues:               cfg.CardCues,
		PositiveWords:          cfg.PositiveWords,
		NegativeWords:          cfg.NegativeWords,
		LargeSpendingThreshold: cfg.LargeSpendingThreshold,
		Workers:                cfg.Workers,
	}
}

// Rules returns the declarative rule table described by the options.
// The NSFW rule always lists the vocabulary words.
func (o Options) Rules() []models.DetectionRule {
	threshold := o.LargeSpendingThreshold
	if threshold == "" {
		threshold = constants.DefaultLargeSpendingThreshold
	}
	return []models.DetectionRule{
		{Name: models.FlagPersonalUse, Mode: models.MatchSubstring, Phrases: orDefault(o.PersonalCues, DefaultPersonalCues)},
		{Name: models.FlagCreditCard, Mode: models.MatchSubstring, Phrases: orDefault(o.CardCues, DefaultCardCues)},
		{Name: models.FlagLargeSpending, Mode: models.MatchMonetary, Threshold: threshold},
		{Name: models.FlagNSFW, Mode: models.MatchWordBoundary, Phrases: orDefault(o.Vocabulary, DefaultVocabularyWords)},
	}
}

// Enricher composes the masker, the sentiment classifier and the flag detectors.
// It holds no mutable state and is safe for concurrent use.
type Enricher struct {
	vocabulary    *Vocabulary
	classifier    *SentimentClassifier
	personalUse   Detector
	creditCard    Detector
	largeSpending Detector
	nsfw          Detector
	workers       int
}

// New builds an Enricher from options.
//
// Parameters:
//   - opts: Word lists and thresholds; empty values use the defaults
//
// Returns:
//   - The Enricher
//   - An error if the vocabulary or the spending threshold is invalid
func New(opts Options) (*Enricher, error) {
	vocabulary, err := NewVocabulary(orDefault(opts.Vocabulary, DefaultVocabularyWords))
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		vocabulary: vocabulary,
		classifier: NewSentimentClassifier(
			orDefault(opts.PositiveWords, DefaultPositiveWords),
			orDefault(opts.NegativeWords, DefaultNegativeWords),
		),
		workers: opts.Workers,
	}

	for _, rule := range opts.Rules() {
		d, err := NewDetector(rule, vocabulary)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s detector: %w", rule.Name, err)
		}
		switch rule.Name {
		case models.FlagPersonalUse:
			e.personalUse = d
		case models.FlagCreditCard:
			e.creditCard = d
		case models.FlagLargeSpending:
			e.largeSpending = d
		case models.FlagNSFW:
			e.nsfw = d
		}
	}

	return e, nil
}

// Default returns an Enricher with the built-in word lists and threshold.
func Default() *Enricher {
	return &Enricher{
		vocabulary:    defaultVocabulary,
		classifier:    defaultClassifier,
		personalUse:   defaultPersonal,
		creditCard:    defaultCard,
		largeSpending: defaultSpending,
		nsfw:          defaultNSFW,
	}
}

// Vocabulary returns the vocabulary shared by masking and NSFW detection.
func (e *Enricher) Vocabulary() *Vocabulary {
	return e.vocabulary
}

// Mask masks text with the enricher's vocabulary.
func (e *Enricher) Mask(text string) string {
	return e.vocabulary.Mask(text)
}

// Enrich derives the masked text, the four flags and the sentiment of text.
// Every field is computed from the original text.
func (e *Enricher) Enrich(text string) models.Enrichment {
	return models.Enrichment{
		MaskedText:    e.vocabulary.Mask(text),
		NSFW:          e.nsfw.Detect(text),
		PersonalUse:   e.personalUse.Detect(text),
		CreditCard:    e.creditCard.Detect(text),
		LargeSpending: e.largeSpending.Detect(text),
		Sentiment:     e.classifier.Classify(text),
	}
}

// EnrichAll enriches texts on a bounded pool of goroutines. The result has
// the same length and order as texts.
func (e *Enricher) EnrichAll(texts []string) []models.Enrichment {
	out := make([]models.Enrichment, len(texts))
	if len(texts) == 0 {
		return out
	}

	workers := e.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	chunk := (len(texts) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(texts); start += chunk {
		end := start + chunk
		if end > len(texts) {
			end = len(texts)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = e.Enrich(texts[i])
			}
		}(start, end)
	}
	wg.Wait()

	return out
}

// Records enriches messages into indexed records.
func (e *Enricher) Records(messages []string) []*models.EnrichedRecord {
	enrichments := e.EnrichAll(messages)
	records := make([]*models.EnrichedRecord, len(messages))
	for i, msg := range messages {
		records[i] = &models.EnrichedRecord{
			Index:      i,
			Message:    msg,
			Enrichment: enrichments[i],
		}
	}
	return records
}

func orDefault(values, defaults []string) []string {
	if len(values) == 0 {
		return defaults
	}
	return values
}
