package errs

import "errors"

// Domain-specific sentinel errors for the dispatch usecase layers
var (
	// Request errors
	ErrRequestNotFound   = errors.New("service request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("actor not allowed to perform transition")
	ErrStaleRequest      = errors.New("request state changed since last read")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrTransportFailure        = errors.New("event transport failure")
)
