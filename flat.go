// FILE: lixenwraith/settings/flat.go
package settings

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// FlatReader serves one normalized key/value mapping taken from a single source snapshot.
type FlatReader struct {
	name   string
	items  map[string]*string // Normalized key -> raw value
	mutex  sync.RWMutex       // Protects items against cache write-back
	opts   options
	onMiss MissFunc
}

// NewFlatReader snapshots src once and serves the result. A nil src gives an empty reader.
func NewFlatReader(src Source, opts ...Option) (*FlatReader, error) {
	r := newFlatReader("FlatReader", opts)

	if src == nil {
		return r, nil
	}
	if r.opts.name == "" {
		r.name = src.Name()
	}

	snapshot, err := src.Settings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings from %s: %w", src.Name(), err)
	}

	// Apply raw keys in sorted order so keys colliding after normalization resolve deterministically.
	for _, key := range sortedKeys(snapshot) {
		if !r.set(key, snapshot[key]) {
			r.opts.logger.Debug("blank key dropped",
				zap.String("reader", r.name),
				zap.String("key", key))
		}
	}

	r.opts.logger.Debug("settings snapshot loaded",
		zap.String("reader", r.name),
		zap.Int("source_keys", len(snapshot)),
		zap.Int("stored_keys", len(r.items)))
	return r, nil
}

// NewCachedReader creates an empty reader that stores every default supplied to ReadOr,
// so the next lookup of that key is served from its own store. Found values are never cached.
func NewCachedReader(opts ...Option) *FlatReader {
	r := newFlatReader("CachedReader", opts)
	r.onMiss = r.cacheMiss
	return r
}

func newFlatReader(defaultName string, opts []Option) *FlatReader {
	o := newOptions(opts)
	name := o.name
	if name == "" {
		name = defaultName
	}
	return &FlatReader{
		name:   name,
		items:  make(map[string]*string),
		opts:   o,
		onMiss: o.onMiss,
	}
}

// Name implements Reader.
func (r *FlatReader) Name() string {
	return r.name
}

// List implements Reader. Pairs are sorted by key.
func (r *FlatReader) List() []KeyValue {
	r.mutex.RLock()
	list := make([]KeyValue, 0, len(r.items))
	for key, value := range r.items {
		list = append(list, KeyValue{Key: key, Value: value})
	}
	r.mutex.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})
	return list
}

// Contains implements Reader.
func (r *FlatReader) Contains(key string) bool {
	normalized, ok := r.normalize(key)
	if !ok {
		return false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.items[normalized]
	return exists
}

// Lookup implements Reader.
func (r *FlatReader) Lookup(key string) (*string, bool, error) {
	normalized, ok := r.normalize(key)
	if !ok {
		return nil, false, nullArgument("key")
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	value, exists := r.items[normalized]
	return value, exists, nil
}

// HandleMiss implements Reader by delegating to the reader's miss policy.
func (r *FlatReader) HandleMiss(key string, def any, formatted *string) (any, error) {
	if _, ok := r.normalize(key); !ok {
		return nil, nullArgument("key")
	}
	return r.onMiss(key, def, formatted)
}

// Registry implements Reader.
func (r *FlatReader) Registry() *Registry {
	return r.opts.registry
}

// cacheMiss stores the formatted default under the normalized key and returns the default.
func (r *FlatReader) cacheMiss(key string, def any, formatted *string) (any, error) {
	r.set(key, formatted)
	r.opts.logger.Debug("cached default",
		zap.String("reader", r.name),
		zap.String("key", key))
	return def, nil
}

// set stores value under the normalized key. Keys normalizing to "" are dropped.
func (r *FlatReader) set(key string, value *string) bool {
	normalized, ok := r.normalize(key)
	if !ok {
		return false
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.items[normalized] = value
	return true
}

// normalize returns the normalized key and false when it is empty.
func (r *FlatReader) normalize(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	normalized := r.opts.normalizer.NormalizeKey(key)
	return normalized, normalized != ""
}
