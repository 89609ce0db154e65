// File: lixenwraith/settings/type.go
package settings

import "time"

// String retrieves a string setting.
func String(r Reader, key string) (string, error) {
	return Read[string](r, key)
}

// Int64 retrieves an int64 setting.
func Int64(r Reader, key string) (int64, error) {
	return Read[int64](r, key)
}

// Bool retrieves a boolean setting. Accepted literals depend on the converter registered for bool.
func Bool(r Reader, key string) (bool, error) {
	return Read[bool](r, key)
}

// Float64 retrieves a float64 setting.
func Float64(r Reader, key string) (float64, error) {
	return Read[float64](r, key)
}

// Duration retrieves a time.Duration setting ("1m30s").
func Duration(r Reader, key string) (time.Duration, error) {
	return Read[time.Duration](r, key)
}

// Strings retrieves a comma-delimited setting as a slice.
func Strings(r Reader, key string) ([]string, error) {
	return Read[[]string](r, key)
}
