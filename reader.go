// FILE: lixenwraith/settings/reader.go
package settings

import (
	"fmt"
	"reflect"
)

// KeyValue is one stored setting. A nil Value is a key that exists without a value.
type KeyValue struct {
	Key   string
	Value *string
}

// Reader exposes containment checks and raw lookups over a flat key/value store.
// Typed access goes through Read and ReadOr, since Go methods cannot be generic.
type Reader interface {
	// Name identifies the reader, usually after its source.
	Name() string

	// List returns every stored pair. Composite readers do not deduplicate.
	List() []KeyValue

	// Contains reports whether the normalized key is present. A key that is empty
	// after normalization (such as "   ") is never present.
	Contains(key string) bool

	// Lookup returns the raw value for key and whether the key was found.
	// A key that is empty after normalization is a null-argument error.
	Lookup(key string) (raw *string, found bool, err error)

	// HandleMiss is called by ReadOr when the key is absent. It receives the caller's
	// default and its formatted form, and returns the value ReadOr hands back.
	HandleMiss(key string, def any, formatted *string) (any, error)

	// Registry returns the converter registry used to convert this reader's values.
	Registry() *Registry
}

// Read returns the value stored under key converted to T.
func Read[T any](r Reader, key string) (T, error) {
	var zero T
	raw, found, err := r.Lookup(key)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, keyNotFound(key)
	}

	v, err := ConvertTo[T](r.Registry(), raw)
	if err != nil {
		return zero, fmt.Errorf("key %q: %w", key, err)
	}
	return v, nil
}

// ReadOr returns the value stored under key converted to T. When the key is absent the
// reader's miss policy decides the result, which is def unless a caching policy applies.
func ReadOr[T any](r Reader, key string, def T) (T, error) {
	raw, found, err := r.Lookup(key)
	if err != nil {
		return def, err
	}
	if found {
		v, err := ConvertTo[T](r.Registry(), raw)
		if err != nil {
			return def, fmt.Errorf("key %q: %w", key, err)
		}
		return v, nil
	}

	formatted, err := ConvertFrom(r.Registry(), def)
	if err != nil {
		return def, fmt.Errorf("key %q: default: %w", key, err)
	}

	v, err := r.HandleMiss(key, def, formatted)
	if err != nil {
		return def, err
	}
	if v == nil {
		var zero T
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return def, castError(reflect.TypeOf((*T)(nil)).Elem(), deref(formatted), fmt.Errorf("miss policy returned %T", v))
	}
	return out, nil
}

// MustRead is like Read but panics on error
func MustRead[T any](r Reader, key string) T {
	v, err := Read[T](r, key)
	if err != nil {
		panic(fmt.Sprintf("settings read failed: %v", err))
	}
	return v
}

// MissFunc decides what ReadOr returns for an absent key.
// formatted is def rendered by the reader's registry (nil when def is nil).
type MissFunc func(key string, def any, formatted *string) (any, error)

// ReturnDefault is the standard miss policy: it returns the default unchanged.
func ReturnDefault(_ string, def any, _ *string) (any, error) {
	return def, nil
}
