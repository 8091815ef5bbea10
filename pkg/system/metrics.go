package system

import (
	"time"

	"azcli/pkg/runner"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ExecutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "azcli",
		Subsystem: "runner",
		Name:      "executions_total",
		Help:      "Total number of command executions by runner and result.",
	}, []string{"runner", "result"})

	ExecutionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "azcli",
		Subsystem: "runner",
		Name:      "execution_duration_seconds",
		Help:      "Duration of command executions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"runner"})
)

func init() {
	prometheus.MustRegister(
		ExecutionsTotal,
		ExecutionDuration,
	)
}

// Values of the result label.
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultSpawnError = "spawn_error"
	ResultCanceled   = "canceled"
)

// ResultLabel classifies an execution result for the executions_total metric.
// Cancellation cannot be told apart from the result alone; callers that know the
// context ended pass ResultCanceled to ObserveExecution instead.
func ResultLabel(res runner.ExecResult) string {
	switch {
	case res.Code == 0:
		return ResultSuccess
	case res.Code < 0:
		return ResultSpawnError
	default:
		return ResultFailure
	}
}

// ObserveExecution records one finished execution under the given result label.
func ObserveExecution(runnerName, result string, elapsed time.Duration) {
	ExecutionsTotal.WithLabelValues(runnerName, result).Inc()
	ExecutionDuration.WithLabelValues(runnerName).Observe(elapsed.Seconds())
}
