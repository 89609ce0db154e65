// File: lixenwraith/settings/source.go
package settings

// Source produces a flat snapshot of raw settings. Settings is called once, when a reader is built.
// A nil value marks a key that is present without a value.
type Source interface {
	Name() string
	Settings() (map[string]*string, error)
}

// MapSource serves a fixed in-memory snapshot.
type MapSource struct {
	name   string
	values map[string]*string
}

// NewMapSource creates a source over plain string values.
func NewMapSource(name string, values map[string]string) *MapSource {
	m := make(map[string]*string, len(values))
	for k, v := range values {
		m[k] = Ptr(v)
	}
	return &MapSource{name: name, values: m}
}

// NewNullableMapSource creates a source whose values may be nil.
func NewNullableMapSource(name string, values map[string]*string) *MapSource {
	m := make(map[string]*string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &MapSource{name: name, values: m}
}

// Name implements Source.
func (s *MapSource) Name() string {
	return s.name
}

// Settings implements Source. The returned map is a copy.
func (s *MapSource) Settings() (map[string]*string, error) {
	out := make(map[string]*string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
