package dinkysql_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zhengtingxue/dinky/adapters"
	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/mock"
	"github.com/zhengtingxue/dinky/internal/cli/dinkysql"
	"github.com/zhengtingxue/dinky/internal/config"
)

func init() {
	mux := new(adapters.Mux)
	_ = mux.AddAdapter("cli-mock", mock.NewAdapter(mock.NewRows(0, 3),
		mock.AdapterWithJobClient(&mock.JobClient{ID: "cli-job"}),
		mock.AdapterWithRowIteratorOpts(mock.RowIteratorWithFirstRowDelay(50*time.Millisecond)),
	))
	_ = mux.AddAdapter("cli-mock-failing", mock.NewAdapter(nil,
		mock.AdapterWithQuerySideEffect("boom", func(context.Context) error {
			return core.ErrInvalidResult
		}),
	))
}

func defaults(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.Load(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	cfg.ArchiveDir = t.TempDir()
	return cfg
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := dinkysql.Run(context.Background(), args, dinkysql.Options{
		Defaults: defaults(t),
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	return code, stdout.String(), stderr.String()
}

func TestRun_Tableau(t *testing.T) {
	r := require.New(t)

	code, stdout, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-row-kind")
	r.Equal(0, code, stderr)
	r.Contains(stdout, "row_2")
	r.Contains(stdout, "+I")
	r.Contains(stdout, "3 rows in set")
}

func TestRun_Raw(t *testing.T) {
	r := require.New(t)

	code, stdout, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-style", "raw")
	r.Equal(0, code, stderr)
	r.Equal("0,row_0\n1,row_1\n2,row_2\n", stdout)
}

func TestRun_PageCSV(t *testing.T) {
	r := require.New(t)

	code, stdout, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-format", "csv", "-from", "1")
	r.Equal(0, code, stderr)
	r.Equal("id,name\n1,row_1\n2,row_2\n", stdout)
}

func TestRun_PageRowKind(t *testing.T) {
	r := require.New(t)

	code, stdout, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-format", "csv", "-to", "2", "-row-kind")
	r.Equal(0, code, stderr)
	r.Equal("op,id,name\n+I,0,row_0\n+I,1,row_1\n", stdout)
}

func TestRun_PageToFile(t *testing.T) {
	r := require.New(t)

	out := filepath.Join(t.TempDir(), "page.json")
	code, stdout, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-format", "json", "-out", out)
	r.Equal(0, code, stderr)
	r.Empty(stdout)
	r.FileExists(out)
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "unknown flag", args: []string{"-nope"}, code: 2},
		{name: "missing type", args: []string{"-statement", "SELECT 1"}, code: 2},
		{name: "invalid style", args: []string{"-type", "cli-mock", "-statement", "SELECT 1", "-style", "fancy"}, code: 2},
		{name: "invalid width", args: []string{"-type", "cli-mock", "-statement", "SELECT 1", "-max-width", "0"}, code: 2},
		{name: "unknown type", args: []string{"-type", "nope", "-statement", "SELECT 1"}, code: 1},
		{name: "failing statement", args: []string{"-type", "cli-mock-failing", "-statement", "boom"}, code: 1},
		{name: "failing call", args: []string{"-type", "cli-mock-failing", "-statement", "boom", "-format", "csv"}, code: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _ := run(t, tc.args...)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestRun_MetricsFile(t *testing.T) {
	r := require.New(t)

	metrics := filepath.Join(t.TempDir(), "dinky.prom")
	code, _, stderr := run(t, "-type", "cli-mock", "-statement", "SELECT * FROM t", "-format", "csv", "-metrics-file", metrics)
	r.Equal(0, code, stderr)

	b, err := os.ReadFile(metrics)
	r.NoError(err)
	r.Contains(string(b), `dinky_call_states_total{state="archived"}`)
}
