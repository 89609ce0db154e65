// FILE: lixenwraith/settings/registry.go
package settings

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Converter turns a raw setting string into a value of one target type and back.
type Converter interface {
	FromString(s string) (any, error)
	ToString(v any) (string, error)
}

// Registry maps target types to converters.
// All readers sharing a Registry see every registration; the last registration for a type wins.
type Registry struct {
	converters map[reflect.Type]Converter
	mutex      sync.RWMutex
}

// NewRegistry creates an empty registry. Types without an entry use the platform converter.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[reflect.Type]Converter),
	}
}

// Register adds or replaces the converter for t. A nil converter removes the entry,
// restoring the platform default for t.
func (r *Registry) Register(t reflect.Type, c Converter) error {
	if t == nil {
		return nullArgument("type")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if c == nil {
		delete(r.converters, t)
		return nil
	}
	r.converters[t] = c
	return nil
}

// Get returns the converter registered for t, or nil.
func (r *Registry) Get(t reflect.Type) Converter {
	if t == nil {
		return nil
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.converters[t]
}

// Types lists the registered types, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mutex.RLock()
	types := make([]reflect.Type, 0, len(r.converters))
	for t := range r.converters {
		types = append(types, t)
	}
	r.mutex.RUnlock()

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Register is the generic form of Registry.Register.
func Register[T any](reg *Registry, c Converter) error {
	return reg.Register(reflect.TypeOf((*T)(nil)).Elem(), c)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by readers built without WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterTypeConverter registers c for t in the process-wide registry.
func RegisterTypeConverter(t reflect.Type, c Converter) error {
	return defaultRegistry.Register(t, c)
}

// GetTypeConverter returns the converter for t from the process-wide registry.
func GetTypeConverter(t reflect.Type) Converter {
	return defaultRegistry.Get(t)
}

type funcConverter[T any] struct {
	parse  func(string) (T, error)
	format func(T) (string, error)
}

// ConverterOf builds a Converter for T from a parse function and an optional format function.
// When format is nil, values are formatted the same way the platform converter does.
func ConverterOf[T any](parse func(string) (T, error), format func(T) (string, error)) Converter {
	return funcConverter[T]{parse: parse, format: format}
}

func (c funcConverter[T]) FromString(s string) (any, error) {
	v, err := c.parse(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c funcConverter[T]) ToString(v any) (string, error) {
	tv, ok := v.(T)
	if !ok {
		return "", fmt.Errorf("expected %s, got %T", reflect.TypeOf((*T)(nil)).Elem(), v)
	}
	if c.format == nil {
		return formatValue(v)
	}
	return c.format(tv)
}

// LogicalBoolConverter accepts true/false, t/f, 1/0, yes/no and y/n in any case.
// It is not registered by default; the platform converter only knows Go's native literals.
type LogicalBoolConverter struct{}

// FromString implements Converter.
func (LogicalBoolConverter) FromString(s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	}
	return nil, fmt.Errorf("%q is not a logical boolean", s)
}

// ToString implements Converter.
func (LogicalBoolConverter) ToString(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", fmt.Errorf("expected bool, got %T", v)
	}
	if b {
		return "true", nil
	}
	return "false", nil
}

// PassthroughConverter hands the raw string back unchanged. Registering it for the
// interface type `any` lets Read[any] return stored strings.
type PassthroughConverter struct{}

// FromString implements Converter.
func (PassthroughConverter) FromString(s string) (any, error) {
	return s, nil
}

// ToString implements Converter.
func (PassthroughConverter) ToString(v any) (string, error) {
	return fmt.Sprint(v), nil
}
