package content

import (
	"errors"
	"fmt"
	"strings"

	"blogcore/internal/validation"
)

var (
	// ErrPostNotFound indicates the referenced post doesn't exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrUnauthorized indicates a missing or invalid credential on a
	// write operation.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries the full field-level detail of a rejected
// payload. The façade decides how much of it to expose.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(parts, "; "))
}

// IsNotFound reports whether err is a missing-post error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsUnauthorized reports whether err is a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation reports whether err is a rejected payload and, if so,
// returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
