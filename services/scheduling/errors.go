package scheduling

import "fmt"

// ValidationError signals malformed schedule or slot-query input (bad HH:MM
// strings, end before start, out-of-range duration or weekday).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
