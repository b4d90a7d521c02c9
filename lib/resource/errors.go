package resource

import (
	"fmt"
	"strings"

	"github.com/donutnomad/stampkit/lib/errors"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid value")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrMissingKey      = errors.New("model has no key property")
	// ErrPersistence marks every error surfaced by an Adapter's backing store.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError lists the required properties that were blank at save time.
type ValidationError struct {
	Model   string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: required properties missing: %s", ErrValidation, e.Model, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
