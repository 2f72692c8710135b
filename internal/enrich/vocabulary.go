// Package enrich derives risk signals from free text.
//
// The package implements the row enrichment pipeline of the dashboard: a
// profanity masker, a keyword sentiment estimator and four risk flag detectors,
// composed by Enricher into one deterministic transform per record. Every
// function here is pure: no state is shared between calls, so rows can be
// enriched in any order or in parallel.
package enrich

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

// DefaultVocabularyWords is the built-in list of words treated as profane.
// Masking and NSFW detection both read this list through a Vocabulary.
var DefaultVocabularyWords = []string{
	"fuck", "shit", "shitty", "cunt", "bitch",
	"ass", "damn", "crap", "piss", "dick",
}

// Vocabulary is the shared set of flagged words. It is immutable after
// construction and safe for concurrent use.
//
// A word matches only when it is not part of a longer word: the runes on
// either side of it must not be letters, numbers or '_'. This holds for
// non-ASCII text too, so "damné" contains no match for "damn".
type Vocabulary struct {
	words   []string
	pattern *regexp.Regexp
	// anchored holds one prefix pattern per word, longest first.
	anchored []*regexp.Regexp
}

// NewVocabulary compiles a vocabulary from a list of words.
//
// Parameters:
//   - words: The flagged words. Matching is case-insensitive; duplicates and
//     blank entries are dropped.
//
// Returns:
//   - A compiled Vocabulary
//   - An error if the combined pattern cannot be compiled
//
// An empty list yields a vocabulary that never matches.
func NewVocabulary(words []string) (*Vocabulary, error) {
	seen := make(map[string]struct{}, len(words))
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}

	v := &Vocabulary{words: cleaned}
	if len(cleaned) == 0 {
		return v, nil
	}

	// Longest words first so that a word and its extension ("shit", "shitty")
	// resolve to the whole word at a given position.
	alternatives := make([]string, len(cleaned))
	copy(alternatives, cleaned)
	sort.SliceStable(alternatives, func(i, j int) bool {
		return len(alternatives[i]) > len(alternatives[j])
	})
	anchored := make([]*regexp.Regexp, len(alternatives))
	for i, w := range alternatives {
		alternatives[i] = regexp.QuoteMeta(w)
		a, err := regexp.Compile(`(?i)^(?:` + alternatives[i] + `)`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile vocabulary word %q: %w", w, err)
		}
		anchored[i] = a
	}

	pattern, err := regexp.Compile(`(?i)(?:` + strings.Join(alternatives, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile vocabulary: %w", err)
	}
	v.pattern = pattern
	v.anchored = anchored
	return v, nil
}

// MustVocabulary is like NewVocabulary but panics on error.
func MustVocabulary(words []string) *Vocabulary {
	v, err := NewVocabulary(words)
	if err != nil {
		panic(err)
	}
	return v
}

// DefaultVocabulary returns a vocabulary built from DefaultVocabularyWords.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

var defaultVocabulary = MustVocabulary(DefaultVocabularyWords)

// Words returns a copy of the normalized vocabulary.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Matches reports whether text contains at least one vocabulary word on word
// boundaries.
func (v *Vocabulary) Matches(text string) bool {
	if v == nil || v.pattern == nil {
		return false
	}
	return len(v.findAll(text, 1)) > 0
}

// Mask replaces every vocabulary hit in text with a run of mask characters as
// long as the matched substring. Text outside the hits is returned unchanged.
//
// Parameters:
//   - text: The text to mask
//
// Returns:
//   - The masked copy; text itself is never modified
func (v *Vocabulary) Mask(text string) string {
	if v == nil || v.pattern == nil {
		return text
	}

	hits := v.findAll(text, -1)
	if len(hits) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, h := range hits {
		b.WriteString(text[last:h[0]])
		b.WriteString(strings.Repeat(string(constants.MaskCharacter), utf8.RuneCountInString(text[h[0]:h[1]])))
		last = h[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// findAll returns the byte spans of up to n whole-word hits, left to right.
// A negative n returns every hit.
func (v *Vocabulary) findAll(text string, n int) [][2]int {
	var hits [][2]int
	pos := 0
	for pos < len(text) && (n < 0 || len(hits) < n) {
		loc := v.pattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]

		if end, ok := v.wordAt(text, start); ok {
			hits = append(hits, [2]int{start, end})
			pos = end
			continue
		}

		// No whole word starts here; resume after the first rune.
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return hits
}

// wordAt returns the end of the longest vocabulary word that starts at start
// and stands on word boundaries.
func (v *Vocabulary) wordAt(text string, start int) (int, bool) {
	if before, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && isWordRune(before) {
		return 0, false
	}
	for _, a := range v.anchored {
		loc := a.FindStringIndex(text[start:])
		if loc == nil {
			continue
		}
		end := start + loc[1]
		if after, _ := utf8.DecodeRuneInString(text[end:]); end < len(text) && isWordRune(after) {
			continue
		}
		return end, true
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
