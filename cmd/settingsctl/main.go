// FILE: cmd/settingsctl/main.go

// settingsctl inspects layered settings the way an application built on the settings package sees them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/settings"
)

type rootFlags struct {
	file      string
	envPrefix string
	noEnv     bool
	logical   bool
	verbose   bool
	sets      []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "settingsctl",
		Short:         "Inspect layered application settings",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.file, "file", "", "application settings file (toml, json, yaml)")
	root.PersistentFlags().StringVar(&flags.envPrefix, "env-prefix", "", "only read environment variables with this prefix")
	root.PersistentFlags().BoolVar(&flags.noEnv, "no-env", false, "skip the environment layer")
	root.PersistentFlags().BoolVar(&flags.logical, "logical-bool", false, "accept yes/no, y/n, t/f, 1/0 as booleans")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log reader activity to stderr")
	root.PersistentFlags().StringArrayVar(&flags.sets, "set", nil, "command-line setting key=value (repeatable, highest priority)")

	root.AddCommand(
		newListCmd(flags),
		newGetCmd(flags),
		newContainsCmd(flags),
	)
	return root
}

func buildReader(flags *rootFlags) (settings.Reader, error) {
	logger := zap.NewNop()
	if flags.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	reg := settings.DefaultRegistry()
	if flags.logical {
		reg = settings.NewRegistry()
		if err := settings.Register[bool](reg, settings.LogicalBoolConverter{}); err != nil {
			return nil, err
		}
	}

	layers := []settings.Layer{settings.LayerCLI, settings.LayerFile}
	if !flags.noEnv {
		layers = append(layers, settings.LayerEnv)
	}

	r, err := settings.NewBuilder().
		WithLayers(layers...).
		WithArgs(flags.sets).
		WithFile(flags.file).
		WithEnvPrefix(flags.envPrefix).
		WithRegistry(reg).
		WithLogger(logger).
		Build()
	if err != nil && !errors.Is(err, settings.ErrConfigNotFound) {
		return nil, err
	}
	if err != nil {
		logger.Warn("settings file not found", zap.String("path", flags.file))
	}
	return r, nil
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every key/value pair of every layer, in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReader(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", r.Name())
			for _, kv := range r.List() {
				if kv.Value == nil {
					fmt.Fprintf(out, "%s\n", kv.Key)
					continue
				}
				fmt.Fprintf(out, "%s=%s\n", kv.Key, *kv.Value)
			}
			return nil
		},
	}
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	var typeName string
	var def string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Read one setting as a typed value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReader(flags)
			if err != nil {
				return err
			}
			hasDefault := cmd.Flags().Changed("default")
			return printTyped(cmd.OutOrStdout(), r, args[0], typeName, def, hasDefault)
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "string", "string, int, float, bool, duration, strings, ints")
	cmd.Flags().StringVar(&def, "default", "", "value returned when the key is absent")
	return cmd
}

func newContainsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "contains KEY",
		Short: "Report whether any layer holds KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReader(flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Contains(args[0]))
			return nil
		},
	}
}

// printTyped reads key as typeName. The default is given as a raw string and converted
// with the reader's registry before being passed to ReadOr.
func printTyped(out io.Writer, r settings.Reader, key, typeName, def string, hasDefault bool) error {
	var value any
	var err error

	switch strings.ToLower(typeName) {
	case "string":
		value, err = readTyped[string](r, key, def, hasDefault)
	case "int":
		value, err = readTyped[int64](r, key, def, hasDefault)
	case "float":
		value, err = readTyped[float64](r, key, def, hasDefault)
	case "bool":
		value, err = readTyped[bool](r, key, def, hasDefault)
	case "duration":
		value, err = readTyped[time.Duration](r, key, def, hasDefault)
	case "strings":
		value, err = readTyped[[]string](r, key, def, hasDefault)
	case "ints":
		value, err = readTyped[[]int64](r, key, def, hasDefault)
	default:
		return fmt.Errorf("unknown type %q", typeName)
	}
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		_, err = fmt.Fprintf(out, "[%s]\n", strings.Join(parts, " "))
		return err
	}
	_, err = fmt.Fprintln(out, value)
	return err
}

func readTyped[T any](r settings.Reader, key, def string, hasDefault bool) (T, error) {
	if !hasDefault {
		return settings.Read[T](r, key)
	}
	d, err := settings.ConvertTo[T](r.Registry(), &def)
	if err != nil {
		return d, fmt.Errorf("invalid default: %w", err)
	}
	return settings.ReadOr(r, key, d)
}
