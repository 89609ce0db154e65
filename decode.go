// FILE: lixenwraith/settings/decode.go
package settings

import (
	"encoding"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf((*time.Duration)(nil)).Elem()
	urlType             = reflect.TypeOf((*url.URL)(nil)).Elem()
	ipNetType           = reflect.TypeOf((*net.IPNet)(nil)).Elem()
)

// platformConverter is the fallback used when a Registry holds no entry for a type.
type platformConverter struct {
	t reflect.Type
}

// platformConverterFor returns the platform converter for t, or false if the platform cannot convert t.
func platformConverterFor(t reflect.Type) (Converter, bool) {
	if !platformSupports(t) {
		return nil, false
	}
	return platformConverter{t: t}, true
}

func platformSupports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t {
	case durationType, urlType, ipNetType:
		return true
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Ptr:
		return platformSupports(t.Elem())
	}
	return false
}

// FromString decodes s into a fresh value of the converter's type through mapstructure.
func (p platformConverter) FromString(s string) (any, error) {
	if p.t.Kind() != reflect.String {
		s = strings.TrimSpace(s)
	}

	out := reflect.New(p.t)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(s); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}

// ToString implements Converter.
func (p platformConverter) ToString(v any) (string, error) {
	return formatValue(v)
}

// decodeHook returns the composite decode hook for string conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		mapstructure.StringToIPNetHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),

		// Must run last so the hooks above see the raw string first
		stringToBasicHookFunc(),
	)
}

// stringToBasicHookFunc parses bool and numeric kinds strictly, ahead of mapstructure's weak
// conversion: base 10 only ("010" is 10) and an empty string is an error, not zero.
func stringToBasicHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		str := reflect.ValueOf(data).String()

		var parsed any
		var err error
		switch t.Kind() {
		case reflect.Bool:
			parsed, err = strconv.ParseBool(str)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			parsed, err = strconv.ParseInt(str, 10, t.Bits())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			parsed, err = strconv.ParseUint(str, 10, t.Bits())
		case reflect.Float32, reflect.Float64:
			parsed, err = strconv.ParseFloat(str, t.Bits())
		default:
			return data, nil
		}
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(parsed).Convert(t).Interface(), nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != urlType {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// formatValue renders a scalar as a setting string.
func formatValue(val any) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case time.Duration:
		return v.String(), nil
	case url.URL:
		return v.String(), nil
	case net.IPNet:
		return v.String(), nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return "", nil
		}
		return formatValue(rv.Elem().Interface())
	}

	return "", fmt.Errorf("%w: cannot format %T", ErrUnsupportedType, val)
}
