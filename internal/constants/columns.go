package constants

// Declared table columns. A loaded table always carries every one of these,
// read from the source or filled with a default.
const (
	ColExecID            = "exec_id"
	ColEmailMessage      = "email_message"
	ColEmailSentiment    = "email_sentiment"
	ColRiskFlagEmail     = "risk_flag_email"
	ColMessage           = "message"
	ColFlagNSFW          = "flag_nsfw"
	ColFlagFin           = "flag_fin"
	ColFlagCompliance    = "flag_compliance"
	ColChatSentiment     = "chat_sentiment"
	ColTimestamp         = "ts"
	ColCategory          = "category"
	ColAmountUSD         = "amt_usd"
	ColOverLimit         = "over_limit"
	ColPersonalUse       = "personal_use"
	ColFlagComplianceTxn = "flag_compliance_txn"
)

// Enrichment columns of the demo dataset, in tuple order.
const (
	ColMaskedMessage     = "masked_message"
	ColNSFWFlag          = "nsfw_flag"
	ColPersonalUseFlag   = "personal_use_flag"
	ColCreditCardFlag    = "credit_card_flag"
	ColLargeSpendingFlag = "large_spending_flag"
	ColSentiment         = "sentiment"
)

// NeededColumns lists the declared columns in table order.
var NeededColumns = []string{
	ColExecID,
	ColEmailMessage,
	ColEmailSentiment,
	ColRiskFlagEmail,
	ColMessage,
	ColFlagNSFW,
	ColFlagFin,
	ColFlagCompliance,
	ColChatSentiment,
	ColTimestamp,
	ColCategory,
	ColAmountUSD,
	ColOverLimit,
	ColPersonalUse,
	ColFlagComplianceTxn,
}

// BoolColumns default to false.
var BoolColumns = []string{
	ColRiskFlagEmail,
	ColFlagNSFW,
	ColFlagFin,
	ColFlagCompliance,
	ColOverLimit,
	ColPersonalUse,
	ColFlagComplianceTxn,
}

// ScoreColumns hold sentiment scores and default to 0.0.
var ScoreColumns = []string{
	ColEmailSentiment,
	ColChatSentiment,
}

// TableDisplayColumns are the columns shown and exported by the table view.
var TableDisplayColumns = NeededColumns

// DemoRawColumns are the demo columns shown when raw display is on.
var DemoRawColumns = []string{
	ColMessage,
	ColNSFWFlag,
	ColPersonalUseFlag,
	ColCreditCardFlag,
	ColLargeSpendingFlag,
	ColSentiment,
}

// DemoMaskedColumns are the demo columns shown when raw display is off.
var DemoMaskedColumns = []string{
	ColMaskedMessage,
	ColNSFWFlag,
	ColPersonalUseFlag,
	ColCreditCardFlag,
	ColLargeSpendingFlag,
	ColSentiment,
}

// DemoExportColumns are every demo column, raw and masked.
var DemoExportColumns = []string{
	ColMessage,
	ColMaskedMessage,
	ColNSFWFlag,
	ColPersonalUseFlag,
	ColCreditCardFlag,
	ColLargeSpendingFlag,
	ColSentiment,
}
