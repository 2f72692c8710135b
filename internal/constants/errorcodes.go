// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling and messaging.
// User-facing error messages are worded for the dashboard operator and never echo
// message contents.
package constants

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgAuthRequired indicates that the operator must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgInvalidPassphrase indicates that the operator passphrase is incorrect.
	MsgInvalidPassphrase = "Invalid operator passphrase"

	// MsgRevealDisabled indicates that raw display is not configured.
	MsgRevealDisabled = "Raw message display is not enabled"

	// MsgRevealRequiresToken indicates that raw display needs an operator token.
	MsgRevealRequiresToken = "Showing raw messages requires authorization"

	// MsgAccessDenied indicates that the operator lacks permission for the requested action.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgTokenExpired indicates that the operator token has expired.
	MsgTokenExpired = "Authentication token has expired"

	// MsgInvalidToken indicates that the provided token is invalid.
	MsgInvalidToken = "Invalid token"

	// MsgRequestBodyTooLarge indicates that the request payload exceeds size limits.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates that a request body was expected but not provided.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates that the request body contains invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgMethodNotAllowed indicates that the HTTP method is not supported for the endpoint.
	MsgMethodNotAllowed = "This method is not allowed for this resource"

	// MsgSourceNotFound is reported when the data file is missing.
	MsgSourceNotFound = "The data source could not be found"

	// MsgServiceUnhealthy is reported by the health check when the source cannot be read.
	MsgServiceUnhealthy = "Service is not healthy"

	// MsgTableReloaded confirms that the cached table was evicted.
	MsgTableReloaded = "Table reloaded from source"

	// MsgTooManyAttempts is returned when passphrase attempts are throttled.
	MsgTooManyAttempts = "Too many attempts, try again later"
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryAuth is the log category for authentication-related events.
	LogCategoryAuth = "auth"

	// LogCategoryLoad is the log category for table loading.
	LogCategoryLoad = "load"

	// LogEventReveal is the log event type for raw message access.
	LogEventReveal = "reveal"

	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
