package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	r := require.New(t)

	cfg, err := Load(mapLookup(nil))
	r.NoError(err)

	r.Equal("tableau", cfg.Print.Style)
	r.Equal(30, cfg.Print.MaxColumnWidth)
	r.Equal("(NULL)", cfg.Print.NullColumn)
	r.Equal(-1, cfg.Page.To)
	r.Equal("warn", cfg.Log.Level)
	r.Zero(cfg.AwaitTimeout)
}

func TestLoadOverrides(t *testing.T) {
	r := require.New(t)

	cfg, err := Load(mapLookup(map[string]string{
		"DINKY_TYPE":                "sqlite",
		"DINKY_URL":                 " /tmp/test.db ",
		"DINKY_PRINT_STYLE":         "raw",
		"DINKY_MAX_COLUMN_WIDTH":    "12",
		"DINKY_DERIVE_COLUMN_WIDTH": "true",
		"DINKY_PRINT_ROW_KIND":      "1",
		"DINKY_FORMAT":              "csv",
		"DINKY_AWAIT_TIMEOUT":       "1500ms",
		"DINKY_LOG_LEVEL":           "debug",
	}))
	r.NoError(err)

	r.Equal(ConnectionConfig{Type: "sqlite", URL: "/tmp/test.db"}, cfg.Connection)
	r.Equal("raw", cfg.Print.Style)
	r.Equal(12, cfg.Print.MaxColumnWidth)
	r.True(cfg.Print.DeriveWidth)
	r.True(cfg.Print.PrintRowKind)
	r.Equal("csv", cfg.Page.Format)
	r.Equal(1500*time.Millisecond, cfg.AwaitTimeout)
	r.Equal("debug", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]string
	}{
		{name: "bad int", values: map[string]string{"DINKY_MAX_COLUMN_WIDTH": "wide"}},
		{name: "bad bool", values: map[string]string{"DINKY_PRINT_ROW_KIND": "maybe"}},
		{name: "bad duration", values: map[string]string{"DINKY_AWAIT_TIMEOUT": "soon"}},
		{name: "unknown style", values: map[string]string{"DINKY_PRINT_STYLE": "fancy"}},
		{name: "unknown format", values: map[string]string{"DINKY_FORMAT": "xml"}},
		{name: "zero width", values: map[string]string{"DINKY_MAX_COLUMN_WIDTH": "0"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(mapLookup(tc.values))
			require.Error(t, err)
		})
	}

	_, err := Load(nil)
	require.Error(t, err)
}
