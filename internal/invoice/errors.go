package invoice

import (
	"errors"
	"fmt"
	"sort"
)

// Common invoice domain errors
var (
	// ErrNotFound is returned when no invoice exists for the requested id.
	ErrNotFound = errors.New("invoice not found")

	// ErrInvalidStatusTransition is returned when a lifecycle action is
	// applied to an invoice whose status does not allow it, e.g. marking a
	// draft or an already-paid invoice as paid.
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")
)

// ValidationFailedError carries the field violations that blocked a
// submission. Validation itself never fails; this error is produced by the
// orchestration layer when a caller tries to submit a candidate that does
// not satisfy its mode's rules.
type ValidationFailedError struct {
	Violations Violations
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	if len(e.Violations) == 1 {
		for field, msg := range e.Violations {
			return fmt.Sprintf("validation failed: %s %s", field, msg)
		}
	}
	return fmt.Sprintf("validation failed: %d fields rejected", len(e.Violations))
}

// Fields returns the violated field paths in stable order, for display.
func (e *ValidationFailedError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// AsValidationFailed unwraps err into a ValidationFailedError if possible.
func AsValidationFailed(err error) (*ValidationFailedError, bool) {
	var ve *ValidationFailedError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
