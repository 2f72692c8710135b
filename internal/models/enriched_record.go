package models

import (
	"strconv"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

// Enrichment holds the fields derived from one free-text record, in the fixed
// order masked text, NSFW, personal use, credit card, large spending, sentiment.
type Enrichment struct {
	// MaskedText is the source text with vocabulary words replaced by '*' runs
	MaskedText string `json:"masked_message"`

	// NSFW is set when the text contains a vocabulary word
	NSFW bool `json:"nsfw_flag"`

	// PersonalUse is set when the text hints at non-business usage
	PersonalUse bool `json:"personal_use_flag"`

	// CreditCard is set when card or expense terminology appears
	CreditCard bool `json:"credit_card_flag"`

	// LargeSpending is set when any monetary amount reaches the threshold
	LargeSpending bool `json:"large_spending_flag"`

	// Sentiment is the keyword polarity of the text
	Sentiment Sentiment `json:"sentiment"`
}

// EnrichedRecord is a demo message together with its enrichment.
type EnrichedRecord struct {
	// Index is the zero-based position of the record in its dataset
	Index int `json:"index"`

	// Message is the raw text. It is cleared from views when raw display is off.
	Message string `json:"message,omitempty"`

	Enrichment
}

// Value returns the export representation of a column.
// Unknown columns yield an empty string.
func (r *EnrichedRecord) Value(column string) string {
	switch column {
	case constants.ColMessage:
		return r.Message
	case constants.ColMaskedMessage:
		return r.MaskedText
	case constants.ColNSFWFlag:
		return formatBool(r.NSFW)
	case constants.ColPersonalUseFlag:
		return formatBool(r.PersonalUse)
	case constants.ColCreditCardFlag:
		return formatBool(r.CreditCard)
	case constants.ColLargeSpendingFlag:
		return formatBool(r.LargeSpending)
	case constants.ColSentiment:
		return r.Sentiment.String()
	}
	return ""
}

// formatBool renders flags the way the exports have always shown them.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// formatFloat renders scores without superfluous digits.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
