package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveCallState(t *testing.T) {
	r := require.New(t)

	before := testutil.ToFloat64(callStatesTotal.WithLabelValues("archived"))
	ObserveCallState("archived")
	ObserveCallState("archived")
	r.Equal(before+2, testutil.ToFloat64(callStatesTotal.WithLabelValues("archived")))
}

func TestWriteTextfile(t *testing.T) {
	r := require.New(t)

	ObserveAwait(120*time.Millisecond, "ready")

	path := filepath.Join(t.TempDir(), "dinky.prom")
	r.NoError(WriteTextfile(path))

	b, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(b), "dinky_await_duration_seconds_count{outcome=\"ready\"}")
}
