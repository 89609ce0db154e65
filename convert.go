// FILE: lixenwraith/settings/convert.go
package settings

import (
	"fmt"
	"reflect"
	"strings"
)

// Delimiter separates the elements of a sequence-valued setting.
const Delimiter = ","

// shape classifies a requested type for conversion.
type shape int

const (
	shapeScalar shape = iota
	shapeSlice
	shapeArray
)

// shapeOf decides whether t is converted as one value or as a delimited sequence of its element type.
// String kinds, types with a registered converter and text-unmarshalable types (net.IP) stay scalar.
func shapeOf(reg *Registry, t reflect.Type) shape {
	if t.Kind() == reflect.String || reg.Get(t) != nil {
		return shapeScalar
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return shapeScalar
	}
	switch t.Kind() {
	case reflect.Slice:
		return shapeSlice
	case reflect.Array:
		return shapeArray
	}
	return shapeScalar
}

// nilCapable reports whether an absent raw value may be served as the zero value of t.
func nilCapable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.String:
		return true
	}
	return false
}

// Split breaks a delimited value into its non-blank segments, in order.
func Split(raw string) []string {
	parts := strings.Split(raw, Delimiter)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// Join is the inverse of Split.
func Join(parts []string) string {
	return strings.Join(parts, Delimiter)
}

// ConvertTo converts a raw setting into T using reg, falling back to the platform converter.
// A nil raw value yields the zero value for nil-capable T and an incompatible-cast error otherwise.
func ConvertTo[T any](reg *Registry, raw *string) (T, error) {
	var zero T
	v, err := convertTo(reg, reflect.TypeOf((*T)(nil)).Elem(), raw)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, castError(reflect.TypeOf((*T)(nil)).Elem(), deref(raw), fmt.Errorf("converter produced %T", v))
	}
	return out, nil
}

// ConvertFrom formats v as a raw setting. A nil v yields a nil result.
func ConvertFrom[T any](reg *Registry, v T) (*string, error) {
	return convertFrom(reg, reflect.TypeOf((*T)(nil)).Elem(), reflect.ValueOf(&v).Elem())
}

func convertTo(reg *Registry, t reflect.Type, raw *string) (any, error) {
	if raw == nil {
		if nilCapable(t) {
			return nil, nil
		}
		return nil, castError(t, "", fmt.Errorf("no value"))
	}

	switch shapeOf(reg, t) {
	case shapeSlice:
		segments := Split(*raw)
		out := reflect.MakeSlice(t, 0, len(segments))
		for _, segment := range segments {
			ev, err := convertElement(reg, t.Elem(), segment)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, ev)
		}
		return out.Interface(), nil

	case shapeArray:
		segments := Split(*raw)
		if len(segments) > t.Len() {
			return nil, castError(t, *raw, fmt.Errorf("%d elements exceed array length %d", len(segments), t.Len()))
		}
		out := reflect.New(t).Elem()
		for i, segment := range segments {
			ev, err := convertElement(reg, t.Elem(), segment)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(ev)
		}
		return out.Interface(), nil
	}

	return convertScalar(reg, t, *raw)
}

// convertScalar resolves the converter for t and parses s.
func convertScalar(reg *Registry, t reflect.Type, s string) (any, error) {
	c := reg.Get(t)
	if c == nil {
		var ok bool
		if c, ok = platformConverterFor(t); !ok {
			return nil, castError(t, s, ErrUnsupportedType)
		}
	}

	v, err := c.FromString(s)
	if err != nil {
		return nil, castError(t, s, err)
	}
	if v != nil && !reflect.TypeOf(v).AssignableTo(t) {
		return nil, castError(t, s, fmt.Errorf("converter produced %T", v))
	}
	return v, nil
}

func convertElement(reg *Registry, elem reflect.Type, segment string) (reflect.Value, error) {
	v, err := convertScalar(reg, elem, segment)
	if err != nil {
		return reflect.Value{}, err
	}
	if v == nil {
		return reflect.Zero(elem), nil
	}
	return reflect.ValueOf(v), nil
}

func convertFrom(reg *Registry, t reflect.Type, rv reflect.Value) (*string, error) {
	if isNil(rv) {
		return nil, nil
	}
	if t.Kind() == reflect.Interface {
		rv = rv.Elem()
		t = rv.Type()
	}

	switch shapeOf(reg, t) {
	case shapeSlice, shapeArray:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := formatScalar(reg, t.Elem(), rv.Index(i))
			if err != nil {
				return nil, err
			}
			parts = append(parts, s)
		}
		joined := Join(parts)
		return &joined, nil
	}

	s, err := formatScalar(reg, t, rv)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func formatScalar(reg *Registry, t reflect.Type, rv reflect.Value) (string, error) {
	if isNil(rv) {
		return "", nil
	}
	if t.Kind() == reflect.Interface {
		rv = rv.Elem()
		t = rv.Type()
	}

	c := reg.Get(t)
	if c == nil {
		var ok bool
		if c, ok = platformConverterFor(t); !ok {
			return "", castError(t, fmt.Sprint(rv.Interface()), ErrUnsupportedType)
		}
	}

	s, err := c.ToString(rv.Interface())
	if err != nil {
		return "", castError(t, fmt.Sprint(rv.Interface()), err)
	}
	return s, nil
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
