package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks the required role
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Voting error codes
const (
	// ErrCodeAlreadyVoted is used when an identity votes twice on a poll
	ErrCodeAlreadyVoted = "ERR_ALREADY_VOTED"
	// ErrCodePollClosed is used when voting on an ended poll is disallowed
	ErrCodePollClosed = "ERR_POLL_CLOSED"
	// ErrCodeOptionNotInPoll is used when the option belongs to another poll
	ErrCodeOptionNotInPoll = "ERR_OPTION_NOT_IN_POLL"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Infrastructure error codes
const (
	// ErrCodeStorageUnavailable is used when the data store cannot be reached
	ErrCodeStorageUnavailable = "ERR_STORAGE_UNAVAILABLE"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Voting errors
	ErrCodeAlreadyVoted:    http.StatusConflict,
	ErrCodePollClosed:      http.StatusUnprocessableEntity,
	ErrCodeOptionNotInPoll: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,

	// Infrastructure errors
	ErrCodeStorageUnavailable: http.StatusServiceUnavailable,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"POLL_NOT_FOUND":           ErrCodeNotFound,
	"USER_NOT_FOUND":           ErrCodeNotFound,
	"NO_ATTACHMENT":            ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"EMAIL_TAKEN":              ErrCodeAlreadyExists,
	"ALREADY_VOTED":            ErrCodeAlreadyVoted,
	"POLL_CLOSED":              ErrCodePollClosed,
	"OPTION_NOT_IN_POLL":       ErrCodeOptionNotInPoll,
	"POLL_HAS_VOTES":           ErrCodeInvalidState,
	"INVALID_STATE":            ErrCodeInvalidState,
	"ATTACHMENT_NOT_UPLOADED":  ErrCodeInvalidState,
	"STORAGE_DISABLED":         ErrCodeInvalidState,
	"UNSUPPORTED_CONTENT_TYPE": ErrCodeInvalidInput,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_EMAIL":            ErrCodeInvalidInput,
	"INVALID_PASSWORD":         ErrCodeInvalidInput,
	"INVALID_DISPLAY_NAME":     ErrCodeInvalidInput,
	"INVALID_TITLE":            ErrCodeInvalidInput,
	"INVALID_CATEGORY":         ErrCodeInvalidInput,
	"INVALID_OPTION":           ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":      ErrCodeInvalidInput,
	"INVALID_ATTACHMENT":       ErrCodeInvalidInput,
	"INVALID_IDENTITY":         ErrCodeInvalidInput,
	"UNAUTHORIZED":             ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":      ErrCodeUnauthorized,
	"TOKEN_EXPIRED":            ErrCodeTokenExpired,
	"TOKEN_INVALID":            ErrCodeTokenInvalid,
	"TOKEN_REVOKED":            ErrCodeTokenInvalid,
	"TOKEN_ERROR":              ErrCodeTokenInvalid,
	"FORBIDDEN":                ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED":      ErrCodeForbidden,
	"STORAGE_UNAVAILABLE":      ErrCodeStorageUnavailable,
	"INTERNAL_ERROR":           ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
