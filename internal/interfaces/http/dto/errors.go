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
	// ErrCodeUnavailable is used when a backing dependency is not configured or reachable
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeSyncInProgress is used when a sync cycle is already running
	ErrCodeSyncInProgress = "ERR_SYNC_IN_PROGRESS"
)

// Business rule error codes
const (
	// ErrCodeDependencyMissing is used when a referenced record does not exist yet
	ErrCodeDependencyMissing = "ERR_DEPENDENCY_MISSING"
	// ErrCodePlatformNotConfigured is used when a platform adapter has no credentials
	ErrCodePlatformNotConfigured = "ERR_PLATFORM_NOT_CONFIGURED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeConflict:       http.StatusConflict,
	ErrCodeSyncInProgress: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeDependencyMissing:     http.StatusUnprocessableEntity,
	ErrCodePlatformNotConfigured: http.StatusServiceUnavailable,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// wire format used in HTTP responses
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"DEPENDENCY_MISSING": ErrCodeDependencyMissing,
	"STORE_UNAVAILABLE":  ErrCodeUnavailable,
	"VALIDATION_ERROR":   ErrCodeValidation,
	"BAD_REQUEST":        ErrCodeBadRequest,
	"INTERNAL_ERROR":     ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
