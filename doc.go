// File: lixenwraith/settings/doc.go

// Package settings provides typed access to flat string settings for Go applications,
// read from pluggable sources: an application settings file (TOML, JSON, YAML),
// command-line arguments, environment variables, viper, or any custom Source.
//
// Features:
//   - Keys normalized before storage and lookup (trim + lowercase by default)
//   - Conversion on read into any scalar, slice or array type via Read[T] / ReadOr[T]
//   - Converter registry keyed by element type, shared by all readers using it
//   - Comma-delimited sequences ("1, 2, 3" reads as []int{1, 2, 3})
//   - Composite readers with first-reader-wins priority
//   - Cache layers that record the defaults passed to ReadOr
//   - Builder for the standard CLI > file > environment layering
//
// Quick Start:
//
//	r, err := settings.NewBuilder().
//	    WithFile("app.toml").
//	    WithEnvPrefix("MYAPP_").
//	    WithCache().
//	    Build()
//	if err != nil && !errors.Is(err, settings.ErrConfigNotFound) {
//	    log.Fatal(err)
//	}
//
//	port, err := settings.ReadOr(r, "server.port", 8080)
//	hosts, err := settings.Read[[]string](r, "server.hosts")
//
// Converters:
//
//	settings.RegisterTypeConverter(reflect.TypeFor[bool](), settings.LogicalBoolConverter{})
//	flags, _ := settings.Read[[]bool](r, "flags") // "yes,no,Y,N" now parses
//
// Registering a nil converter removes the entry and restores the platform default.
//
// Thread Safety:
// Registries and reader stores are guarded by read-write mutexes. The only goroutines
// the package starts are the per-child miss handlers of a composite ReadOr, which are
// waited for before ReadOr returns.
package settings
