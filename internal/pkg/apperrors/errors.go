package apperrors

import "errors"

// Error kinds surfaced to the top level. None are recovered locally.
var (
	ErrConfiguration       = errors.New("configuration error")
	ErrConnection          = errors.New("storage unreachable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("resource not found")
	ErrAmbiguousMatch      = errors.New("more than one row matches")
	ErrQuery               = errors.New("malformed query")
	ErrValidationFailed    = errors.New("validation failed")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewAmbiguousMatchError creates a new custom error for lookups that match more than one row
func NewAmbiguousMatchError(message string) error {
	return &CustomError{
		Err:     ErrAmbiguousMatch,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
