package service

import (
	"errors"
	"fmt"

	"platformapi/internal/model"
)

// Sentinel errors shared by all services. Callers match them with errors.Is;
// the wrapped message carries the detail that is safe to show to clients.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrPrecondition   = errors.New("precondition failed")
	ErrTypeMismatch   = errors.New("setting type mismatch")
	ErrObjectTooLarge = errors.New("file too large")
)

// TypeMismatchError reports a stored setting whose type differs from the one requested.
type TypeMismatchError struct {
	Key      string
	Expected model.SettingType
	Actual   model.SettingType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("setting %q has type %q, expected %q", e.Key, e.Actual, e.Expected)
}

// Is makes errors.Is(err, ErrTypeMismatch) match.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
