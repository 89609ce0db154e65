package settings

import (
	"github.com/spf13/viper"
)

// ViperName is the default name of a ViperSource.
const ViperName = "ViperSettings"

// ViperSource adapts an already configured *viper.Viper into a flat snapshot.
// Viper's own precedence (flags, env, files, defaults) is resolved before the snapshot is taken.
type ViperSource struct {
	v          *viper.Viper
	sourceName string
}

// NewViperSource wraps v. A nil v uses viper's global instance.
func NewViperSource(v *viper.Viper) *ViperSource {
	if v == nil {
		v = viper.GetViper()
	}
	return &ViperSource{v: v}
}

// WithSourceName overrides the default name.
func (s *ViperSource) WithSourceName(name string) *ViperSource {
	s.sourceName = name
	return s
}

// Name implements Source.
func (s *ViperSource) Name() string {
	if s.sourceName != "" {
		return s.sourceName
	}
	return ViperName
}

// Settings implements Source. Keys are viper's dotted keys.
func (s *ViperSource) Settings() (map[string]*string, error) {
	result := make(map[string]*string)
	for _, key := range s.v.AllKeys() {
		value := s.v.Get(key)
		if value == nil {
			result[key] = nil
			continue
		}
		result[key] = Ptr(stringifyValue(value))
	}
	return result, nil
}
