package booking

import "fmt"

// Error codes surfaced to the request-handling layer. CONFLICT covers both
// "overlaps an existing booking" and "outside business availability"; the
// message distinguishes them so callers can show the right thing.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// ServiceError carries a machine-readable code alongside the message.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newServiceError(code, format string, args ...interface{}) error {
	return &ServiceError{Code: code, Message: fmt.Sprintf(format, args...)}
}
