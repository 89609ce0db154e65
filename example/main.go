// FILE: lixenwraith/settings/example/main.go
package main

import (
	"errors"
	"log"
	"os"
	"reflect"
	"time"

	"github.com/lixenwraith/settings"
)

const settingsFilePath = "app.toml"

// ServerSettings is filled by settings.Scan.
type ServerSettings struct {
	Host    string        `settings:"server.host"`
	Port    int           `settings:"server.port"`
	Timeout time.Duration `settings:"server.timeout"`
	Tags    []string      `settings:"server.tags"`
}

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a settings file and an environment override.
	// =========================================================================
	log.Println("---")
	log.Println("PART 1: Creating settings file...")

	defer func() {
		os.Remove(settingsFilePath)
		os.Unsetenv("APP_SERVER.PORT")
		log.Printf("Removed %s and unset APP_SERVER.PORT.", settingsFilePath)
	}()

	content := `
[server]
host = "localhost"
port = 8080
timeout = "30s"
tags = ["primary", "eu-west"]

[features]
flags = "yes,no,Y"
`
	if err := os.WriteFile(settingsFilePath, []byte(content), 0644); err != nil {
		log.Fatalf("Failed to write settings file: %v", err)
	}
	os.Setenv("APP_SERVER.PORT", "9090")

	// =========================================================================
	// PART 2: LAYERED READER
	// Command line > file > environment, plus a cache layer for defaults.
	// =========================================================================
	log.Println("---")
	log.Println("PART 2: Building layered reader...")

	reg := settings.NewRegistry()
	if err := settings.Register[bool](reg, settings.LogicalBoolConverter{}); err != nil {
		log.Fatal(err)
	}

	r, err := settings.NewBuilder().
		WithArgs([]string{"--server.host=example.com"}).
		WithFile(settingsFilePath).
		WithEnvPrefix("APP_").
		WithRegistry(reg).
		WithCache().
		WithValidator(settings.Required("server.host", "server.port")).
		Build()
	if err != nil && !errors.Is(err, settings.ErrConfigNotFound) {
		log.Fatalf("Failed to build reader: %v", err)
	}
	log.Printf("Reader: %s", r.Name())

	host, _ := settings.String(r, "server.host")
	port, _ := settings.Read[int](r, "SERVER.PORT")
	flags, _ := settings.Read[[]bool](r, "features.flags")
	log.Printf("host=%s (command line wins), port=%d (file wins over env), flags=%v", host, port, flags)

	// =========================================================================
	// PART 3: DEFAULTS AND CACHING
	// =========================================================================
	log.Println("---")
	log.Println("PART 3: Defaults...")

	log.Printf("contains retries before: %v", r.Contains("retries"))
	retries, _ := settings.ReadOr(r, "retries", 3)
	log.Printf("retries=%d, contains retries after: %v", retries, r.Contains("retries"))

	// =========================================================================
	// PART 4: STRUCT SCAN AND ERRORS
	// =========================================================================
	log.Println("---")
	log.Println("PART 4: Scan and errors...")

	var server ServerSettings
	if err := settings.Scan(r, &server); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	log.Printf("Scanned: %+v", server)

	if _, err := settings.Read[int](r, "server.tags"); errors.Is(err, settings.ErrIncompatibleCast) {
		log.Printf("Expected cast error: %v", err)
	}
	if _, err := settings.Read[any](r, "server.host"); errors.Is(err, settings.ErrUnsupportedType) {
		log.Printf("Expected unsupported type: %v", err)
	}
	_ = reg.Register(reflect.TypeOf((*any)(nil)).Elem(), settings.PassthroughConverter{})
	raw, _ := settings.Read[any](r, "server.host")
	log.Printf("With passthrough converter: %v", raw)
}
