package dto

import "net/http"

// Error codes owned by the HTTP layer
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var domainErrorHTTPStatus = map[string]int{
	// Not found
	"NOT_FOUND":            http.StatusNotFound,
	"TENANT_NOT_FOUND":     http.StatusNotFound,
	"USER_NOT_FOUND":       http.StatusNotFound,
	"PLAN_NOT_FOUND":       http.StatusNotFound,
	"FLAG_NOT_FOUND":       http.StatusNotFound,
	"PROMPT_NOT_FOUND":     http.StatusNotFound,
	"FILE_NOT_FOUND":       http.StatusNotFound,
	"SAGA_NOT_FOUND":       http.StatusNotFound,
	"VIEW_MODEL_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"CODE_EXISTS":      http.StatusConflict,
	"EMAIL_EXISTS":     http.StatusConflict,
	"PLAN_EXISTS":      http.StatusConflict,
	"FLAG_EXISTS":      http.StatusConflict,
	"TENANT_MISMATCH":  http.StatusConflict,
	"VERSION_CONFLICT": http.StatusConflict,

	// Validation
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_STEPS":    http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	// Business rules
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"TENANT_SUSPENDED": http.StatusUnprocessableEntity,
	"USER_INACTIVE":    http.StatusUnprocessableEntity,
	"SAGA_RUNNING":     http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
