package settings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag Scan reads field keys from.
const TagName = "settings"

// Scan fills the exported fields of the struct pointed to by target from r.
// A field's key is its `settings:"key"` tag, or the field name; `settings:"-"` skips it.
// Absent keys leave the field untouched, so pre-populated fields act as defaults.
// Nested structs are not descended into; they convert only through a registered converter.
func Scan(r Reader, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}
	v := rv.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target of Scan must point to a struct, got %T", target)
	}

	t := v.Type()
	var errs []error

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		key := field.Name
		if tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" {
				key = name
			}
		}

		raw, found, err := r.Lookup(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", field.Name, err))
			continue
		}
		if !found {
			continue
		}

		value, err := convertTo(r.Registry(), field.Type, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s (key %s): %w", field.Name, key, err))
			continue
		}
		if value == nil {
			v.Field(i).Set(reflect.Zero(field.Type))
			continue
		}
		v.Field(i).Set(reflect.ValueOf(value))
	}

	return errors.Join(errs...)
}
