// FILE: lixenwraith/settings/registry_test.go
package settings

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperString string

// TestRegistry tests converter registration and removal
func TestRegistry(t *testing.T) {
	t.Run("RegisterAndGet", func(t *testing.T) {
		reg := NewRegistry()
		assert.Nil(t, reg.Get(reflect.TypeOf((*bool)(nil)).Elem()))

		require.NoError(t, Register[bool](reg, LogicalBoolConverter{}))
		assert.IsType(t, LogicalBoolConverter{}, reg.Get(reflect.TypeOf((*bool)(nil)).Elem()))
		assert.Equal(t, []reflect.Type{reflect.TypeOf((*bool)(nil)).Elem()}, reg.Types())
	})

	t.Run("NilTypeRejected", func(t *testing.T) {
		reg := NewRegistry()
		err := reg.Register(nil, LogicalBoolConverter{})
		assert.ErrorIs(t, err, ErrNullArgument)
		assert.Nil(t, reg.Get(nil))
	})

	t.Run("NilConverterUnregisters", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, Register[bool](reg, LogicalBoolConverter{}))
		require.NoError(t, Register[bool](reg, nil))
		assert.Nil(t, reg.Get(reflect.TypeOf((*bool)(nil)).Elem()))
		assert.Empty(t, reg.Types())

		// Unregistering an absent type is a no-op
		assert.NoError(t, Register[int](reg, nil))
	})

	t.Run("LastRegistrationWins", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, Register[upperString](reg, PassthroughConverter{}))
		upper := ConverterOf(func(s string) (upperString, error) {
			return upperString(strings.ToUpper(s)), nil
		}, nil)
		require.NoError(t, Register[upperString](reg, upper))

		v, err := ConvertTo[upperString](reg, Ptr("abc"))
		require.NoError(t, err)
		assert.Equal(t, upperString("ABC"), v)
	})

	t.Run("TypesSorted", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, Register[string](reg, PassthroughConverter{}))
		require.NoError(t, Register[bool](reg, LogicalBoolConverter{}))
		types := reg.Types()
		require.Len(t, types, 2)
		assert.Equal(t, "bool", types[0].String())
		assert.Equal(t, "string", types[1].String())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		reg := NewRegistry()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				if i%2 == 0 {
					_ = Register[bool](reg, LogicalBoolConverter{})
				} else {
					_ = Register[bool](reg, nil)
				}
			}(i)
			go func() {
				defer wg.Done()
				_, _ = ConvertTo[bool](reg, Ptr("true"))
				_ = reg.Types()
			}()
		}
		wg.Wait()
	})
}

// TestDefaultRegistry tests the process-wide registry helpers
func TestDefaultRegistry(t *testing.T) {
	typ := reflect.TypeOf((*upperString)(nil)).Elem()
	t.Cleanup(func() {
		_ = RegisterTypeConverter(typ, nil)
	})

	assert.Nil(t, GetTypeConverter(typ))
	require.NoError(t, RegisterTypeConverter(typ, PassthroughConverter{}))
	assert.NotNil(t, GetTypeConverter(typ))
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
	assert.NotNil(t, DefaultRegistry().Get(typ))
}

// TestLogicalBoolConverter tests the extended boolean literals
func TestLogicalBoolConverter(t *testing.T) {
	c := LogicalBoolConverter{}

	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true}, {"T", true}, {"1", true}, {"Yes", true}, {"y", true}, {" Y ", true},
		{"false", false}, {"F", false}, {"0", false}, {"NO", false}, {"n", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := c.FromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	_, err := c.FromString("maybe")
	assert.Error(t, err)

	s, err := c.ToString(true)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, err = c.ToString("true")
	assert.Error(t, err)
}

// TestConverterOf tests function-backed converters
func TestConverterOf(t *testing.T) {
	c := ConverterOf(func(s string) (int, error) {
		var n int
		_, err := fmt.Sscanf(s, "#%d", &n)
		return n, err
	}, func(n int) (string, error) {
		return fmt.Sprintf("#%d", n), nil
	})

	v, err := c.FromString("#42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	s, err := c.ToString(7)
	require.NoError(t, err)
	assert.Equal(t, "#7", s)

	_, err = c.ToString("7")
	assert.Error(t, err)

	_, err = c.FromString("42")
	assert.Error(t, err)
}
