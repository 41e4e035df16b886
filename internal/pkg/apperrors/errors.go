package apperrors

import "errors"

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserHasStudents    = errors.New("user has associated students and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrNISAlreadyExists   = errors.New("nis already exists")
	ErrPhoneAlreadyExists = errors.New("phone already exists")
)

// ValidationError carries the full set of per-field violation messages
// collected for a request. Every failing field is reported at once, not
// only the first one.
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "the given data was invalid"
}

// Unwrap makes the error match ErrValidationFailed via errors.Is
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError from field messages
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
