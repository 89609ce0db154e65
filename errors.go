// FILE: lixenwraith/settings/errors.go
package settings

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNullArgument is returned when a required argument (a key, a type) is empty or nil.
	ErrNullArgument = errors.New("argument cannot be null")

	// ErrKeyNotFound is returned by Read when no reader holds the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIncompatibleCast is returned when a stored string cannot be converted to the requested type.
	ErrIncompatibleCast = errors.New("incompatible cast")

	// ErrUnsupportedType is returned when neither the registry nor the platform can convert a type.
	// It always arrives wrapped in a CastError, so errors.Is(err, ErrIncompatibleCast) also holds.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrConfigNotFound is returned when a settings file does not exist. It is not fatal for the Builder.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrCLIParse is returned when a command-line argument is not a key/value pair.
	ErrCLIParse = errors.New("failed to parse command-line arguments")

	// ErrValueSize is returned when a source value or file exceeds the allowed size.
	ErrValueSize = errors.New("value exceeds maximum size")
)

// CastError occurs when a raw setting cannot be converted to, or formatted from, the requested type.
type CastError struct {
	Type  reflect.Type
	Value string
	Cause error
}

// Error implements the error interface.
func (e *CastError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, typeName(e.Type), e.Cause)
}

// Unwrap exposes both the cast class and the underlying cause to errors.Is and errors.As.
func (e *CastError) Unwrap() []error {
	return []error{ErrIncompatibleCast, e.Cause}
}

func castError(t reflect.Type, value string, cause error) error {
	return &CastError{Type: t, Value: value, Cause: cause}
}

func nullArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrNullArgument, name)
}

func keyNotFound(key string) error {
	return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
