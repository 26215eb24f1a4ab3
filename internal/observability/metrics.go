package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	callStatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinky_call_states_total",
			Help: "Total number of call state transitions by state.",
		},
		[]string{"state"},
	)

	awaitDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinky_await_duration_seconds",
			Help:    "Time spent waiting for the first row of a result.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(callStatesTotal, awaitDurationSeconds)
}

func ObserveCallState(state string) {
	callStatesTotal.WithLabelValues(state).Inc()
}

// ObserveAwait records a wait for the first row. Outcome is one of
// "ready", "timeout" or "interrupted".
func ObserveAwait(d time.Duration, outcome string) {
	awaitDurationSeconds.WithLabelValues(outcome).Observe(d.Seconds())
}

// WriteTextfile writes all registered metrics to path in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
