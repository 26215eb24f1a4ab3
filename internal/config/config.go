package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

// Config holds defaults of the dinky-sql command. Every value can be
// overridden by a command line flag.
type Config struct {
	Connection ConnectionConfig
	Print      PrintConfig
	Page       PageConfig
	Log        LogConfig

	// how long to wait for the first row, zero waits indefinitely
	AwaitTimeout time.Duration
	// where results of calls are archived
	ArchiveDir string
}

type ConnectionConfig struct {
	Type string
	URL  string
}

type PrintConfig struct {
	// tableau or raw
	Style          string
	MaxColumnWidth int
	NullColumn     string
	DeriveWidth    bool
	PrintRowKind   bool
}

type PageConfig struct {
	// table, csv or json; empty prints the result directly
	Format string
	From   int
	To     int
	// file to write the page to, stdout if empty
	Output string
}

type LogConfig struct {
	Level    string
	Encoding string
}

func defaults() Config {
	return Config{
		Print: PrintConfig{
			Style:          "tableau",
			MaxColumnWidth: 30,
			NullColumn:     "(NULL)",
		},
		Page: PageConfig{
			From: 0,
			To:   -1,
		},
		Log: LogConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

func LoadFromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load reads DINKY_* variables on top of the defaults.
func Load(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	cfg := defaults()

	if err := applyString(lookup, "DINKY_TYPE", &cfg.Connection.Type); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_URL", &cfg.Connection.URL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_PRINT_STYLE", &cfg.Print.Style); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "DINKY_MAX_COLUMN_WIDTH", &cfg.Print.MaxColumnWidth); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_NULL_COLUMN", &cfg.Print.NullColumn); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "DINKY_DERIVE_COLUMN_WIDTH", &cfg.Print.DeriveWidth); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "DINKY_PRINT_ROW_KIND", &cfg.Print.PrintRowKind); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_FORMAT", &cfg.Page.Format); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_OUTPUT", &cfg.Page.Output); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "DINKY_AWAIT_TIMEOUT", &cfg.AwaitTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_ARCHIVE_DIR", &cfg.ArchiveDir); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_LOG_LEVEL", &cfg.Log.Level); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DINKY_LOG_ENCODING", &cfg.Log.Encoding); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that can't be checked by their type.
func (c Config) Validate() error {
	switch c.Print.Style {
	case "tableau", "raw":
	default:
		return fmt.Errorf("invalid print style %q, expected tableau or raw", c.Print.Style)
	}
	switch c.Page.Format {
	case "", "table", "csv", "json":
	default:
		return fmt.Errorf("invalid format %q, expected table, csv or json", c.Page.Format)
	}
	if c.Print.MaxColumnWidth <= 0 {
		return fmt.Errorf("max column width should be greater than 0, got %d", c.Print.MaxColumnWidth)
	}
	if c.AwaitTimeout < 0 {
		return fmt.Errorf("await timeout should not be negative, got %s", c.AwaitTimeout)
	}
	return nil
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}
