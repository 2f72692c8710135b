// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines path and query parameter names used by the
// dashboard endpoints.
package constants

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamIndex is the URL parameter for a demo message position.
	ParamIndex = "index"
)

// Query Parameters define the filter controls of the dashboard.
const (
	// QueryParamExecID selects executives; may be repeated or comma separated.
	QueryParamExecID = "exec_id"

	// QueryParamCategory selects transaction categories; may be repeated or comma separated.
	QueryParamCategory = "category"

	// QueryParamRiskyEmail keeps only rows with the risky-email flag.
	QueryParamRiskyEmail = "risky_email"

	// QueryParamNSFW keeps only rows with the NSFW flag.
	QueryParamNSFW = "nsfw"

	// QueryParamOverLimit keeps only rows over the spending limit.
	QueryParamOverLimit = "over_limit"

	// QueryParamPersonalUse keeps only rows flagged as personal use.
	QueryParamPersonalUse = "personal_use"

	// QueryParamPersonal keeps only demo rows flagged as personal use.
	QueryParamPersonal = "personal"

	// QueryParamCreditCard keeps only demo rows flagged as credit-card usage.
	QueryParamCreditCard = "credit_card"

	// QueryParamLargeSpending keeps only demo rows flagged as large spending.
	QueryParamLargeSpending = "large_spending"

	// QueryParamRaw switches text columns from masked to raw display.
	QueryParamRaw = "raw"

	// QueryParamPage is the query parameter for pagination page number.
	QueryParamPage = "page"

	// QueryParamPageSize is the query parameter for pagination page size.
	QueryParamPageSize = "page_size"
)

// Default Pagination Values define the parameters used for paginated responses.
const (
	// DefaultPage is the default page number for paginated results when not specified.
	DefaultPage = 1

	// DefaultPageSize is the default number of rows per page when not specified.
	DefaultPageSize = 50

	// MaxPageSize is the maximum allowable page size.
	MaxPageSize = 1000

	// MinPageSize is the minimum allowable page size.
	MinPageSize = 1
)

// Context keys.
const (
	// RequestIDContextKey is the context key and log field for request IDs.
	RequestIDContextKey = "request_id"

	// OperatorContextKey is the context key holding the authenticated operator token ID.
	OperatorContextKey = "operator_token_id"
)
