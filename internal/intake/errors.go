package intake

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Workflow errors. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("application not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidStatus         = fmt.Errorf("%w: invalid status", ErrInvalidInput)
	ErrDuplicateRegistration = errors.New("an application with this registration number already exists")
	ErrDuplicateSubmission   = errors.New("you have already submitted an application")
	ErrAlreadySent           = errors.New("email was already sent successfully")
	ErrRetryLimitExceeded    = errors.New("maximum retry attempts reached")
	ErrRetryInProgress       = errors.New("another email retry is in progress")
	ErrEmailDelivery         = errors.New("failed to send email")
)

// IsConflict reports whether err belongs to the conflict class of errors
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrDuplicateSubmission) ||
		errors.Is(err, ErrAlreadySent) ||
		errors.Is(err, ErrRetryLimitExceeded) ||
		errors.Is(err, ErrRetryInProgress)
}

// ValidationError carries per-field messages. It matches ErrInvalidInput.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(keys, ", "))
}

// Unwrap lets errors.Is match ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(message string, fields map[string]string) error {
	return &ValidationError{Message: message, Fields: fields}
}
