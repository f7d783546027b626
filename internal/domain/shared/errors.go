package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrTenantMismatch    = NewDomainError("TENANT_MISMATCH", "Aggregate belongs to a different tenant")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrVersionConflict   = NewDomainError("VERSION_CONFLICT", "Aggregate was modified by another process")
	ErrViewModelNotFound = NewDomainError("VIEW_MODEL_NOT_FOUND", "View model not found in read store")
)

// DomainErrorOrInternal returns err unchanged when it already carries a
// domain code, so typed errors raised below the application layer (such
// as ErrTenantMismatch or ErrVersionConflict) keep their code on the way
// out. Anything else is hidden behind INTERNAL_ERROR with the given
// message.
func DomainErrorOrInternal(err error, message string) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewDomainError("INTERNAL_ERROR", message)
}
