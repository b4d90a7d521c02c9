package timestamps

import (
	"fmt"

	"github.com/donutnomad/stampkit/lib/errors"
)

var (
	// ErrInvalidArgument is returned by Declare when called without names.
	ErrInvalidArgument = errors.New("timestamps: at least one name is required")
	// ErrInvalidTimestampName matches every *InvalidTimestampNameError.
	ErrInvalidTimestampName = errors.New("timestamps: invalid timestamp name")
)

type InvalidTimestampNameError struct {
	Name string
}

func (e *InvalidTimestampNameError) Error() string {
	return fmt.Sprintf("timestamps: invalid timestamp property name %q", e.Name)
}

func (e *InvalidTimestampNameError) Is(target error) bool {
	return target == ErrInvalidTimestampName
}
