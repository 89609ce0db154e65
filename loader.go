// FILE: lixenwraith/settings/loader.go
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default source names.
const (
	AppSettingsName = "ApplicationSettings"
	CommandLineName = "CommandLineSettings"
	EnvironmentName = "EnvironmentSettings"
)

// FileSource reads an application settings file (TOML, JSON or YAML) and flattens it
// into dot-notation keys.
type FileSource struct {
	// Path of the settings file.
	Path string

	// Format is "toml", "json", "yaml", or "" / "auto" to detect from extension, then content.
	Format string

	// MaxFileSize rejects larger files when positive.
	MaxFileSize int64

	// SourceName overrides the default name "ApplicationSettings".
	SourceName string
}

// NewFileSource creates a file source with format detection.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name implements Source.
func (f *FileSource) Name() string {
	if f.SourceName != "" {
		return f.SourceName
	}
	return AppSettingsName
}

// Settings implements Source. A missing file yields ErrConfigNotFound.
func (f *FileSource) Settings() (map[string]*string, error) {
	fileInfo, err := os.Stat(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, f.Path)
		}
		return nil, fmt.Errorf("failed to stat settings file '%s': %w", f.Path, err)
	}

	if f.MaxFileSize > 0 && fileInfo.Size() > f.MaxFileSize {
		return nil, fmt.Errorf("%w: settings file '%s' exceeds %d bytes", ErrValueSize, f.Path, f.MaxFileSize)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file '%s': %w", f.Path, err)
	}
	defer file.Close()

	// Use LimitedReader for additional safety
	var reader io.Reader = file
	if f.MaxFileSize > 0 {
		reader = io.LimitReader(file, f.MaxFileSize)
	}

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", f.Path, err)
	}

	nested, err := parseSettingsData(f.Path, f.Format, fileData)
	if err != nil {
		return nil, err
	}
	return flattenMap(nested, ""), nil
}

// parseSettingsData decodes file content into a nested map according to format.
func parseSettingsData(path, format string, data []byte) (map[string]any, error) {
	if format == "" || format == "auto" {
		// Try extension first
		format = detectFileFormat(path)
		if format == "" {
			// Fall back to content detection
			format = detectFormatFromContent(data)
		}
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse TOML settings file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine settings format for file '%s'", path)
	}

	return fileConfig, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		// .conf, .config and unknown extensions are detected from content
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// TOML before YAML: a flat "key = value" document is valid YAML only as a plain scalar.
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}

// MaxValueSize bounds a single environment or command-line value.
const MaxValueSize = 1 << 20

// EnvSource snapshots the process environment.
type EnvSource struct {
	// Prefix keeps only variables starting with it and strips it from the key.
	Prefix string

	// Transform rewrites the (prefix-stripped) variable name into a setting key.
	Transform func(name string) string

	// SourceName overrides the default name "EnvironmentSettings".
	SourceName string
}

// NewEnvSource creates an environment source limited to prefix ("" keeps everything).
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{Prefix: prefix}
}

// Name implements Source.
func (e *EnvSource) Name() string {
	if e.SourceName != "" {
		return e.SourceName
	}
	return EnvironmentName
}

// Settings implements Source.
func (e *EnvSource) Settings() (map[string]*string, error) {
	result := make(map[string]*string)

	for _, entry := range os.Environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			continue
		}
		if e.Prefix != "" {
			if !strings.HasPrefix(name, e.Prefix) {
				continue
			}
			name = strings.TrimPrefix(name, e.Prefix)
			if name == "" {
				continue
			}
		}
		if len(value) > MaxValueSize {
			return nil, fmt.Errorf("%w: environment variable %s", ErrValueSize, name)
		}
		if e.Transform != nil {
			name = e.Transform(name)
		}
		result[name] = Ptr(value)
	}

	return result, nil
}

// EnvToDotted maps SERVER_PORT to server.port; use it as EnvSource.Transform.
func EnvToDotted(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

// ArgsSource snapshots command-line arguments.
//
// Accepted forms: "key=value" (Separator configurable), "--key=value", "--key value"
// and a bare "--flag", which is stored as "true".
type ArgsSource struct {
	Args       []string
	Separator  rune
	SourceName string
}

// NewArgsSource creates a source over args (typically os.Args[1:]) with '=' as separator.
func NewArgsSource(args []string) *ArgsSource {
	return &ArgsSource{Args: args, Separator: '='}
}

// Name implements Source.
func (a *ArgsSource) Name() string {
	if a.SourceName != "" {
		return a.SourceName
	}
	return CommandLineName
}

// Settings implements Source.
func (a *ArgsSource) Settings() (map[string]*string, error) {
	sep := a.Separator
	if sep == 0 {
		sep = '='
	}
	parsed, err := parseArgs(a.Args, sep)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}
	return parsed, nil
}

// parseArgs processes command-line arguments into a flat key/value map.
func parseArgs(args []string, sep rune) (map[string]*string, error) {
	result := make(map[string]*string)
	i := 0
	for i < len(args) {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			// Plain "key=value" argument
			key, value, found := strings.Cut(arg, string(sep))
			if !found {
				return nil, fmt.Errorf("argument %q is not a key value pair", arg)
			}
			if err := validateArgKey(key, arg); err != nil {
				return nil, err
			}
			if len(value) > MaxValueSize {
				return nil, ErrValueSize
			}
			result[key] = Ptr(value)
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// Skip "--" argument if used as a separator
			i++
			continue
		}

		var keyPath string
		var valueStr string

		// Check for "--key=value" format
		if k, v, found := strings.Cut(argContent, string(sep)); found {
			keyPath = k
			valueStr = v
			i++ // Consume only this argument
		} else {
			// Handle "--key value" or "--booleanflag"
			keyPath = argContent
			// Check if it's a boolean flag (next arg is another flag or end of args)
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++ // Consume only the flag argument
			} else {
				// It's a key-value pair with a space
				valueStr = args[i+1]
				i += 2 // Consume both flag and value arguments
			}
		}

		if err := validateArgKey(keyPath, arg); err != nil {
			return nil, err
		}
		if len(valueStr) > MaxValueSize {
			return nil, ErrValueSize
		}

		result[keyPath] = Ptr(valueStr)
	}

	return result, nil
}

// validateArgKey checks every dotted segment of a command-line key.
func validateArgKey(keyPath, arg string) error {
	if keyPath == "" {
		return fmt.Errorf("argument %q has an empty key", arg)
	}
	for _, segment := range strings.Split(keyPath, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("invalid command-line key segment %q in path %q", segment, keyPath)
		}
	}
	return nil
}
