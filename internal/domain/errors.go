package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrDescriptionLength = NewDomainError(ErrCodeValidation, "description must be between 10 and 5000 characters")
	ErrContactInfoLength = NewDomainError(ErrCodeValidation, "contact info must be at most 500 characters")
	ErrSolutionRequired  = NewDomainError(ErrCodeValidation, "solution text is required")
	ErrInvalidStatus     = NewDomainError(ErrCodeValidation, "invalid ticket status")
)

// Not found errors
var (
	ErrTicketNotFound    = NewDomainError(ErrCodeNotFound, "ticket not found")
	ErrKnowledgeNotFound = NewDomainError(ErrCodeNotFound, "knowledge item not found")
	ErrUserNotFound      = NewDomainError(ErrCodeNotFound, "user not found")
)

// Status guard violations. A lost compare-and-set race surfaces as the same
// conflict as a statically failed guard.
var (
	ErrTicketAlreadyInWork = NewDomainError(ErrCodeConflict, "ticket is already in progress")
	ErrTicketNotInWork     = NewDomainError(ErrCodeConflict, "ticket is not in progress")
	ErrTicketNotDone       = NewDomainError(ErrCodeConflict, "ticket is not yet resolved")
)

// Authorization errors
var (
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorized, "invalid email or password")
	ErrAccountDisabled    = NewDomainError(ErrCodeForbidden, "account is disabled")
	ErrMissingCapability  = NewDomainError(ErrCodeForbidden, "actor lacks the required capability")
	ErrNotTicketOwner     = NewDomainError(ErrCodeForbidden, "ticket belongs to another client")
)

// NewStorageError wraps a store-level failure (connectivity, constraint
// violation). Callers may retry the whole transactional unit once.
func NewStorageError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStorage, "storage operation failed", err)
}
