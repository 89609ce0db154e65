// FILE: lixenwraith/settings/key.go
package settings

import (
	"strings"
	"sync"
)

// KeyNormalizer maps a raw key to the form used for storage and lookup.
// Implementations must be idempotent and must not panic on any input, including "".
type KeyNormalizer interface {
	NormalizeKey(raw string) string
}

// KeyNormalizerFunc adapts a plain function to the KeyNormalizer interface.
type KeyNormalizerFunc func(raw string) string

// NormalizeKey implements KeyNormalizer.
func (f KeyNormalizerFunc) NormalizeKey(raw string) string {
	return f(raw)
}

// TrimLower trims surrounding whitespace and lowercases the key.
// It is the default normalizer, so " NUMBER " and "number" are the same key.
var TrimLower KeyNormalizer = KeyNormalizerFunc(func(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
})

var (
	normalizerMu      sync.RWMutex
	defaultNormalizer = TrimLower
)

// DefaultKeyNormalizer returns the process-wide normalizer picked up by readers built without WithKeyNormalizer.
func DefaultKeyNormalizer() KeyNormalizer {
	normalizerMu.RLock()
	defer normalizerMu.RUnlock()
	return defaultNormalizer
}

// SetDefaultKeyNormalizer replaces the process-wide normalizer. Passing nil restores TrimLower.
// Readers capture the normalizer when they are constructed; existing readers are not affected.
func SetDefaultKeyNormalizer(n KeyNormalizer) {
	if n == nil {
		n = TrimLower
	}
	normalizerMu.Lock()
	defer normalizerMu.Unlock()
	defaultNormalizer = n
}
