package models

// MatchMode defines how the phrases of a detection rule are matched against text.
type MatchMode string

// Available match modes
const (
	// MatchSubstring matches any phrase as a case-insensitive substring.
	MatchSubstring MatchMode = "substring"
	// MatchWordBoundary matches any phrase as a whole word, case-insensitively.
	MatchWordBoundary MatchMode = "word_boundary"
	// MatchMonetary matches currency amounts and compares them to a threshold.
	MatchMonetary MatchMode = "monetary"
)

// Names of the built-in risk flags.
const (
	FlagPersonalUse   = "personal_use"
	FlagCreditCard    = "credit_card"
	FlagLargeSpending = "large_spending"
	FlagNSFW          = "nsfw"
)

// DetectionRule describes one risk flag declaratively: the phrases that raise it
// and how they are matched. Monetary rules carry a threshold instead of phrases.
type DetectionRule struct {
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Mode      MatchMode `json:"mode" yaml:"mode" validate:"required,oneof=substring word_boundary monetary"`
	Phrases   []string  `json:"phrases,omitempty" yaml:"phrases" validate:"required_unless=Mode monetary,dive,required"`
	Threshold string    `json:"threshold,omitempty" yaml:"threshold" validate:"required_if=Mode monetary"`
}

// ValidateMatchMode checks if the provided match mode is valid.
func ValidateMatchMode(mode MatchMode) bool {
	return mode == MatchSubstring || mode == MatchWordBoundary || mode == MatchMonetary
}
