// File: lixenwraith/settings/helper.go
package settings

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// flattenMap converts a nested map[string]any into dot-notation keys with raw string values.
// Arrays become delimited values; nil leaves become nil values.
func flattenMap(nested map[string]any, prefix string) map[string]*string {
	flat := make(map[string]*string)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		switch v := value.(type) {
		case map[string]any:
			for subPath, subValue := range flattenMap(v, newPath) {
				flat[subPath] = subValue
			}
		case map[any]any:
			converted := make(map[string]any, len(v))
			for k, sub := range v {
				converted[fmt.Sprint(k)] = sub
			}
			for subPath, subValue := range flattenMap(converted, newPath) {
				flat[subPath] = subValue
			}
		case nil:
			flat[newPath] = nil
		default:
			flat[newPath] = Ptr(stringifyValue(v))
		}
	}

	return flat
}

// stringifyValue renders a parsed file value as a raw setting.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			parts = append(parts, stringifyValue(elem))
		}
		return Join(parts)
	case []string:
		return Join(v)
	case []map[string]any:
		// Arrays of tables have no flat form; keep a stable textual rendering.
		return fmt.Sprint(v)
	}

	if s, err := formatValue(value); err == nil {
		return s
	}

	// Typed slices ([]int, []float64, ...) from viper or YAML
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, stringifyValue(rv.Index(i).Interface()))
		}
		return Join(parts)
	}
	return fmt.Sprintf("%v", value)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isValidKeySegment checks if a single dotted key segment is a valid bare key part.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	if strings.ContainsRune(s, '.') {
		return false // Segments themselves cannot contain dots
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}
