// File: lixenwraith/settings/builder.go
package settings

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Layer names a standard settings source, used to define reader priority.
type Layer string

const (
	// LayerCLI reads command-line arguments
	LayerCLI Layer = "cli"
	// LayerFile reads the application settings file
	LayerFile Layer = "file"
	// LayerEnv reads environment variables
	LayerEnv Layer = "env"
)

// DefaultLayers is the standard priority: command line, then settings file, then environment.
func DefaultLayers() []Layer {
	return []Layer{LayerCLI, LayerFile, LayerEnv}
}

// ValidatorFunc checks a built reader. It runs at the end of Build.
type ValidatorFunc func(r Reader) error

// Builder provides a fluent interface for assembling a layered reader
type Builder struct {
	layers     []Layer
	extra      []Source
	file       string
	format     string
	args       []string
	envPrefix  string
	cache      bool
	opts       []Option
	logger     *zap.Logger
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a builder with the default layers and os.Args[1:] as arguments
func NewBuilder() *Builder {
	return &Builder{
		layers:     DefaultLayers(),
		args:       os.Args[1:],
		logger:     zap.NewNop(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithLayers sets the standard layers and their priority (first = highest)
func (b *Builder) WithLayers(layers ...Layer) *Builder {
	for _, l := range layers {
		switch l {
		case LayerCLI, LayerFile, LayerEnv:
		default:
			b.err = fmt.Errorf("unknown layer %q", l)
			return b
		}
	}
	b.layers = layers
	return b
}

// WithFile sets the settings file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileFormat forces the settings file format ("toml", "json", "yaml")
func (b *Builder) WithFileFormat(format string) *Builder {
	b.format = format
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnvPrefix limits the environment layer to variables with this prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithSource appends a custom source after the standard layers
func (b *Builder) WithSource(src Source) *Builder {
	if src != nil {
		b.extra = append(b.extra, src)
	}
	return b
}

// WithCache appends a caching layer with the lowest priority, which records defaults passed to ReadOr
func (b *Builder) WithCache() *Builder {
	b.cache = true
	return b
}

// WithRegistry sets the converter registry for every layer
func (b *Builder) WithRegistry(reg *Registry) *Builder {
	b.opts = append(b.opts, WithRegistry(reg))
	return b
}

// WithKeyNormalizer sets the key normalizer for every layer
func (b *Builder) WithKeyNormalizer(n KeyNormalizer) *Builder {
	b.opts = append(b.opts, WithKeyNormalizer(n))
	return b
}

// WithLogger sets the logger for the builder and every layer
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	if logger != nil {
		b.logger = logger
		b.opts = append(b.opts, WithLogger(logger))
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the layered reader.
// A missing settings file is not fatal: the file layer is skipped and ErrConfigNotFound
// is returned together with a usable reader.
func (b *Builder) Build() (*CompositeReader, error) {
	if b.err != nil {
		return nil, b.err
	}

	var readers []Reader
	var loadErr error

	for _, layer := range b.layers {
		src := b.sourceFor(layer)
		if src == nil {
			continue
		}

		r, err := NewFlatReader(src, b.opts...)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				b.logger.Info("settings file not found, layer skipped",
					zap.String("layer", string(layer)),
					zap.String("path", b.file))
				loadErr = err
				continue
			}
			return nil, fmt.Errorf("failed to build %s layer: %w", layer, err)
		}
		readers = append(readers, r)
	}

	for _, src := range b.extra {
		r, err := NewFlatReader(src, b.opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build reader for %s: %w", src.Name(), err)
		}
		readers = append(readers, r)
	}

	if b.cache || len(readers) == 0 {
		readers = append(readers, NewCachedReader(b.opts...))
	}

	reader, err := NewCompositeReader(readers, b.opts...)
	if err != nil {
		return nil, err
	}

	// Run validators
	for _, validator := range b.validators {
		if err := validator(reader); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return reader, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *CompositeReader {
	r, err := b.Build()
	if err != nil {
		// Ignore ErrConfigNotFound as it is not a fatal error for MustBuild.
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("settings build failed: %v", err))
		}
	}
	return r
}

func (b *Builder) sourceFor(layer Layer) Source {
	switch layer {
	case LayerCLI:
		return NewArgsSource(b.args)
	case LayerFile:
		if b.file == "" {
			return nil
		}
		return &FileSource{Path: b.file, Format: b.format}
	case LayerEnv:
		return NewEnvSource(b.envPrefix)
	}
	return nil
}

// Required returns a validator failing when any of keys is absent.
func Required(keys ...string) ValidatorFunc {
	return func(r Reader) error {
		var missing []error
		for _, key := range keys {
			if !r.Contains(key) {
				missing = append(missing, keyNotFound(key))
			}
		}
		return errors.Join(missing...)
	}
}
