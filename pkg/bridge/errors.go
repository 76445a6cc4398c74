package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks option translation failures: a regex
	// that does not compile or an unrecognized format name. The engine is
	// never invoked when this error is returned.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrComputation marks failures reported by the engine during diffing
	// or formatting.
	ErrComputation = errors.New("computation failed")
)

// ValidationError reports a wire record missing a field its variant requires.
type ValidationError struct {
	Tag   string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s result must have %s", e.Tag, e.Field)
}

// UnsupportedVariantError reports a wire record whose tag cannot be decoded,
// either because it is unknown or because the variant is encode-only.
type UnsupportedVariantError struct {
	Tag string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unrecognized diff result type: %s", e.Tag)
}

func invalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func computationf(op string, err error) error {
	return fmt.Errorf("%w: %s error: %v", ErrComputation, op, err)
}
