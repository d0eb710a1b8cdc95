package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput signals that an AI context cannot be assembled because a
// mandatory input is absent. The caller must gather the data and retry.
var ErrMissingInput = errors.New("missing required input")

// ErrUpstreamUnavailable signals that the food search or LLM gateway failed
// or timed out. Callers degrade to "nutrition unknown" or surface a
// retryable error; nothing in this taxonomy is fatal.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")

// MissingRequiredFieldError rejects a daily log draft that cannot be
// submitted yet, naming every field the parent still has to supply.
type MissingRequiredFieldError struct {
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// AsMissingRequiredField unwraps err into a MissingRequiredFieldError, or
// returns nil when it is some other failure.
func AsMissingRequiredField(err error) *MissingRequiredFieldError {
	var mre *MissingRequiredFieldError
	if errors.As(err, &mre) {
		return mre
	}
	return nil
}
