// FILE: lixenwraith/settings/convert_test.go
package settings

import (
	"errors"
	"net"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertScalars tests platform conversion of primitive and well-known types
func TestConvertScalars(t *testing.T) {
	reg := NewRegistry()

	t.Run("Primitives", func(t *testing.T) {
		i, err := ConvertTo[int](reg, Ptr("42"))
		require.NoError(t, err)
		assert.Equal(t, 42, i)

		i16, err := ConvertTo[int16](reg, Ptr("-7"))
		require.NoError(t, err)
		assert.Equal(t, int16(-7), i16)

		u, err := ConvertTo[uint](reg, Ptr("8"))
		require.NoError(t, err)
		assert.Equal(t, uint(8), u)

		f, err := ConvertTo[float32](reg, Ptr("2.5"))
		require.NoError(t, err)
		assert.Equal(t, float32(2.5), f)

		b, err := ConvertTo[bool](reg, Ptr("true"))
		require.NoError(t, err)
		assert.True(t, b)

		s, err := ConvertTo[string](reg, Ptr("  padded  "))
		require.NoError(t, err)
		assert.Equal(t, "  padded  ", s, "strings are never trimmed")
	})

	t.Run("SurroundingWhitespace", func(t *testing.T) {
		i, err := ConvertTo[int](reg, Ptr(" 5 "))
		require.NoError(t, err)
		assert.Equal(t, 5, i)
	})

	t.Run("WellKnownTypes", func(t *testing.T) {
		d, err := ConvertTo[time.Duration](reg, Ptr("1m30s"))
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, d)

		ts, err := ConvertTo[time.Time](reg, Ptr("2024-01-02T03:04:05Z"))
		require.NoError(t, err)
		assert.True(t, ts.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

		ip, err := ConvertTo[net.IP](reg, Ptr("10.0.0.1"))
		require.NoError(t, err)
		assert.True(t, ip.Equal(net.ParseIP("10.0.0.1")))

		u, err := ConvertTo[url.URL](reg, Ptr("https://example.com/path"))
		require.NoError(t, err)
		assert.Equal(t, "example.com", u.Host)

		p, err := ConvertTo[*int](reg, Ptr("3"))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 3, *p)
	})

	t.Run("IncompatibleValue", func(t *testing.T) {
		_, err := ConvertTo[int](reg, Ptr("forty-two"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompatibleCast)

		var castErr *CastError
		require.True(t, errors.As(err, &castErr))
		assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), castErr.Type)
		assert.Equal(t, "forty-two", castErr.Value)

		_, err = ConvertTo[bool](reg, Ptr("yes"))
		assert.ErrorIs(t, err, ErrIncompatibleCast)
	})

	t.Run("BlankValue", func(t *testing.T) {
		for _, raw := range []string{"", "   "} {
			_, err := ConvertTo[int](reg, Ptr(raw))
			assert.ErrorIs(t, err, ErrIncompatibleCast, "int from %q", raw)

			_, err = ConvertTo[uint8](reg, Ptr(raw))
			assert.ErrorIs(t, err, ErrIncompatibleCast, "uint8 from %q", raw)

			_, err = ConvertTo[float64](reg, Ptr(raw))
			assert.ErrorIs(t, err, ErrIncompatibleCast, "float64 from %q", raw)

			_, err = ConvertTo[bool](reg, Ptr(raw))
			assert.ErrorIs(t, err, ErrIncompatibleCast, "bool from %q", raw)

			_, err = ConvertTo[*int](reg, Ptr(raw))
			assert.ErrorIs(t, err, ErrIncompatibleCast, "*int from %q", raw)
		}

		s, err := ConvertTo[string](reg, Ptr(""))
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("DecimalOnly", func(t *testing.T) {
		i, err := ConvertTo[int](reg, Ptr("010"))
		require.NoError(t, err)
		assert.Equal(t, 10, i)

		perm, err := ConvertTo[uint32](reg, Ptr("0755"))
		require.NoError(t, err)
		assert.Equal(t, uint32(755), perm)

		f, err := ConvertTo[float64](reg, Ptr("010"))
		require.NoError(t, err)
		assert.Equal(t, 10.0, f)

		_, err = ConvertTo[int](reg, Ptr("0x10"))
		assert.ErrorIs(t, err, ErrIncompatibleCast)

		_, err = ConvertTo[int8](reg, Ptr("300"))
		assert.ErrorIs(t, err, ErrIncompatibleCast)

		b, err := ConvertTo[bool](reg, Ptr("1"))
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("NamedKinds", func(t *testing.T) {
		type port uint16
		p, err := ConvertTo[port](reg, Ptr("08080"))
		require.NoError(t, err)
		assert.Equal(t, port(8080), p)

		d, err := ConvertTo[time.Duration](reg, Ptr("010s"))
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, d)
	})
}

// TestRoundTrip tests that formatting then parsing returns the original value
func TestRoundTrip(t *testing.T) {
	reg := NewRegistry()

	roundTrip := func(t *testing.T, in any, convert func(*string) (any, error)) {
		t.Helper()
		raw, err := convertFrom(reg, reflect.TypeOf(in), reflect.ValueOf(in))
		require.NoError(t, err)
		require.NotNil(t, raw)
		out, err := convert(raw)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}

	t.Run("Int", func(t *testing.T) {
		roundTrip(t, -12345, func(s *string) (any, error) { return ConvertTo[int](reg, s) })
	})
	t.Run("Float", func(t *testing.T) {
		roundTrip(t, 0.1, func(s *string) (any, error) { return ConvertTo[float64](reg, s) })
	})
	t.Run("Bool", func(t *testing.T) {
		roundTrip(t, false, func(s *string) (any, error) { return ConvertTo[bool](reg, s) })
	})
	t.Run("String", func(t *testing.T) {
		roundTrip(t, "hello world", func(s *string) (any, error) { return ConvertTo[string](reg, s) })
	})
	t.Run("Duration", func(t *testing.T) {
		roundTrip(t, 1500*time.Millisecond, func(s *string) (any, error) { return ConvertTo[time.Duration](reg, s) })
	})
	t.Run("IntSlice", func(t *testing.T) {
		roundTrip(t, []int{3, 1, 2}, func(s *string) (any, error) { return ConvertTo[[]int](reg, s) })
	})
}

// TestConvertSequences tests delimited slice and array conversion
func TestConvertSequences(t *testing.T) {
	reg := NewRegistry()

	t.Run("OrderPreserved", func(t *testing.T) {
		v, err := ConvertTo[[]int](reg, Ptr("1, 2, 3, 4, 5"))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, v)
	})

	t.Run("BlankSegmentsDropped", func(t *testing.T) {
		v, err := ConvertTo[[]int](reg, Ptr("1,, ,2,"))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, v)

		empty, err := ConvertTo[[]int](reg, Ptr(""))
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("StringSegmentsNotTrimmed", func(t *testing.T) {
		v, err := ConvertTo[[]string](reg, Ptr("a, b"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", " b"}, v)
	})

	t.Run("ElementFailure", func(t *testing.T) {
		_, err := ConvertTo[[]int](reg, Ptr("1,two,3"))
		assert.ErrorIs(t, err, ErrIncompatibleCast)
	})

	t.Run("Array", func(t *testing.T) {
		v, err := ConvertTo[[3]int](reg, Ptr("7,8"))
		require.NoError(t, err)
		assert.Equal(t, [3]int{7, 8, 0}, v)

		_, err = ConvertTo[[2]int](reg, Ptr("1,2,3"))
		assert.ErrorIs(t, err, ErrIncompatibleCast)
	})

	t.Run("RegisteredElementConverter", func(t *testing.T) {
		logical := NewRegistry()
		require.NoError(t, Register[bool](logical, LogicalBoolConverter{}))

		v, err := ConvertTo[[]bool](logical, Ptr("yes,no,Y,N"))
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true, false}, v)
	})

	t.Run("RegisteredSequenceConverter", func(t *testing.T) {
		fields := NewRegistry()
		require.NoError(t, Register[[]string](fields, ConverterOf(func(s string) ([]string, error) {
			return strings.Fields(s), nil
		}, func(v []string) (string, error) {
			return strings.Join(v, " "), nil
		})))

		v, err := ConvertTo[[]string](fields, Ptr("a b,c"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b,c"}, v)

		raw, err := ConvertFrom(fields, []string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, "x y", *raw)
	})
}

// TestConvertNil tests conversion of absent values
func TestConvertNil(t *testing.T) {
	reg := NewRegistry()

	p, err := ConvertTo[*int](reg, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := ConvertTo[string](reg, nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	sl, err := ConvertTo[[]int](reg, nil)
	require.NoError(t, err)
	assert.Nil(t, sl)

	_, err = ConvertTo[int](reg, nil)
	assert.ErrorIs(t, err, ErrIncompatibleCast)

	_, err = ConvertTo[bool](reg, nil)
	assert.ErrorIs(t, err, ErrIncompatibleCast)
}

// TestConvertFrom tests formatting values as raw settings
func TestConvertFrom(t *testing.T) {
	reg := NewRegistry()

	t.Run("Nil", func(t *testing.T) {
		raw, err := ConvertFrom[*int](reg, nil)
		require.NoError(t, err)
		assert.Nil(t, raw)

		raw, err = ConvertFrom[[]string](reg, nil)
		require.NoError(t, err)
		assert.Nil(t, raw)

		raw, err = ConvertFrom[any](reg, nil)
		require.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("Scalars", func(t *testing.T) {
		raw, err := ConvertFrom(reg, 42)
		require.NoError(t, err)
		assert.Equal(t, "42", *raw)

		raw, err = ConvertFrom(reg, 3.5)
		require.NoError(t, err)
		assert.Equal(t, "3.5", *raw)

		raw, err = ConvertFrom(reg, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "1s", *raw)

		raw, err = ConvertFrom[any](reg, "dynamic")
		require.NoError(t, err)
		assert.Equal(t, "dynamic", *raw)
	})

	t.Run("Sequences", func(t *testing.T) {
		raw, err := ConvertFrom(reg, []int{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, "1,2,3", *raw)

		raw, err = ConvertFrom(reg, [2]bool{true, false})
		require.NoError(t, err)
		assert.Equal(t, "true,false", *raw)

		raw, err = ConvertFrom(reg, []int{})
		require.NoError(t, err)
		assert.Equal(t, "", *raw)
	})

	t.Run("RegisteredConverter", func(t *testing.T) {
		yesNo := NewRegistry()
		require.NoError(t, Register[bool](yesNo, ConverterOf(strconvYesNo, func(b bool) (string, error) {
			if b {
				return "yes", nil
			}
			return "no", nil
		})))

		raw, err := ConvertFrom(yesNo, []bool{true, false})
		require.NoError(t, err)
		assert.Equal(t, "yes,no", *raw)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := ConvertFrom(reg, make(chan int))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func strconvYesNo(s string) (bool, error) {
	v, err := LogicalBoolConverter{}.FromString(s)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// TestUnsupportedType tests that interface targets need a registered converter
func TestUnsupportedType(t *testing.T) {
	reg := NewRegistry()

	_, err := ConvertTo[any](reg, Ptr("value"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.ErrorIs(t, err, ErrIncompatibleCast)

	require.NoError(t, Register[any](reg, PassthroughConverter{}))
	v, err := ConvertTo[any](reg, Ptr("value"))
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	require.NoError(t, Register[any](reg, nil))
	_, err = ConvertTo[any](reg, Ptr("value"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// TestConverterTypeMismatch tests converters returning the wrong type
func TestConverterTypeMismatch(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register[int](reg, PassthroughConverter{}))

	_, err := ConvertTo[int](reg, Ptr("5"))
	assert.ErrorIs(t, err, ErrIncompatibleCast)
}

// TestSplitJoin tests the sequence delimiter helpers
func TestSplitJoin(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Split("a,b"))
	assert.Equal(t, []string{"a", " b "}, Split(",a,, b ,"))
	assert.Empty(t, Split(""))
	assert.Equal(t, "a,b", Join([]string{"a", "b"}))
	assert.Equal(t, "", Join(nil))
}
