// Package metrics counts session actions, waits and scenario steps on a
// private prometheus registry that can be dumped to a node_exporter textfile.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"websmith/pkg/websmith"
)

const (
	namespace = "websmith"

	ResultOK       = "ok"
	ResultTimeout  = "timeout"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Recorder struct {
	registry *prometheus.Registry

	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	waits          *prometheus.CounterVec
	waitDuration   *prometheus.HistogramVec
	steps          *prometheus.CounterVec
	scenarios      *prometheus.CounterVec
}

var _ websmith.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "actions_total",
			Help:      "Session actions performed, by action and result.",
		}, []string{"action", "result"}),
		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "action_duration_seconds",
			Help:      "Time spent in session actions, including waits.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"action"}),
		waits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wait",
			Name:      "total",
			Help:      "Wait primitive outcomes, by condition and result.",
		}, []string{"condition", "result"}),
		waitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "wait",
			Name:      "duration_seconds",
			Help:      "Time spent polling for a wait condition.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"condition"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scenario",
			Name:      "steps_total",
			Help:      "Scenario steps executed, by step action and result.",
		}, []string{"action", "result"}),
		scenarios: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scenario",
			Name:      "runs_total",
			Help:      "Scenario runs, by result.",
		}, []string{"result"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveAction(action string, elapsed time.Duration, err error) {
	r.actions.WithLabelValues(action, Result(err)).Inc()
	r.actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveWait(condition string, elapsed time.Duration, err error) {
	r.waits.WithLabelValues(condition, Result(err)).Inc()
	r.waitDuration.WithLabelValues(condition).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveStep(action string, err error) {
	r.steps.WithLabelValues(action, Result(err)).Inc()
}

func (r *Recorder) ObserveScenario(err error) {
	r.scenarios.WithLabelValues(Result(err)).Inc()
}

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Result maps an action error to a metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, websmith.ErrWaitTimeout):
		return ResultTimeout
	case errors.Is(err, websmith.ErrElementNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
