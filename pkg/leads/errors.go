package leads

import (
	"errors"
	"fmt"
)

// ValidationError reports a submission that cannot be built from the posted
// form.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("leads: invalid submission: field %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalCallError reports a failed relay to the intake endpoint. The site
// never fails silently on lead loss; callers surface this to the visitor and
// the logs.
type ExternalCallError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ExternalCallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("leads: relay to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("leads: relay to %s failed: status %d", e.Endpoint, e.StatusCode)
}

func (e *ExternalCallError) Unwrap() error { return e.Err }

// IsExternalCall reports whether err wraps an ExternalCallError.
func IsExternalCall(err error) bool {
	var ec *ExternalCallError
	return errors.As(err, &ec)
}
