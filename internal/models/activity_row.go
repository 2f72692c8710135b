package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

// ActivityRow is one row of the executive activity table. Every declared column
// has a field, so a row is schema-complete by construction: columns absent from
// the source keep their zero value, which is the column default (false, 0.0,
// empty string, or a null timestamp).
type ActivityRow struct {
	ExecID            string          `json:"exec_id"`
	EmailMessage      string          `json:"email_message"`
	EmailSentiment    float64         `json:"email_sentiment"`
	RiskFlagEmail     bool            `json:"risk_flag_email"`
	Message           string          `json:"message"`
	FlagNSFW          bool            `json:"flag_nsfw"`
	FlagFin           bool            `json:"flag_fin"`
	FlagCompliance    bool            `json:"flag_compliance"`
	ChatSentiment     float64         `json:"chat_sentiment"`
	Timestamp         *time.Time      `json:"ts"`
	Category          string          `json:"category"`
	AmountUSD         decimal.Decimal `json:"amt_usd"`
	OverLimit         bool            `json:"over_limit"`
	PersonalUse       bool            `json:"personal_use"`
	FlagComplianceTxn bool            `json:"flag_compliance_txn"`
}

// BoolField returns a pointer to the boolean field backing column, or nil when
// the column is not boolean.
func (r *ActivityRow) BoolField(column string) *bool {
	switch column {
	case constants.ColRiskFlagEmail:
		return &r.RiskFlagEmail
	case constants.ColFlagNSFW:
		return &r.FlagNSFW
	case constants.ColFlagFin:
		return &r.FlagFin
	case constants.ColFlagCompliance:
		return &r.FlagCompliance
	case constants.ColOverLimit:
		return &r.OverLimit
	case constants.ColPersonalUse:
		return &r.PersonalUse
	case constants.ColFlagComplianceTxn:
		return &r.FlagComplianceTxn
	}
	return nil
}

// ScoreField returns a pointer to the sentiment score backing column, or nil.
func (r *ActivityRow) ScoreField(column string) *float64 {
	switch column {
	case constants.ColEmailSentiment:
		return &r.EmailSentiment
	case constants.ColChatSentiment:
		return &r.ChatSentiment
	}
	return nil
}

// TextField returns a pointer to the free-text or label field backing column, or nil.
func (r *ActivityRow) TextField(column string) *string {
	switch column {
	case constants.ColExecID:
		return &r.ExecID
	case constants.ColEmailMessage:
		return &r.EmailMessage
	case constants.ColMessage:
		return &r.Message
	case constants.ColCategory:
		return &r.Category
	}
	return nil
}

// Value returns the export representation of a column. Null timestamps export
// as an empty cell.
func (r *ActivityRow) Value(column string) string {
	if b := r.BoolField(column); b != nil {
		return formatBool(*b)
	}
	if f := r.ScoreField(column); f != nil {
		return formatFloat(*f)
	}
	if s := r.TextField(column); s != nil {
		return *s
	}
	switch column {
	case constants.ColTimestamp:
		if r.Timestamp == nil {
			return ""
		}
		return r.Timestamp.UTC().Format(time.RFC3339Nano)
	case constants.ColAmountUSD:
		return r.AmountUSD.String()
	}
	return ""
}
