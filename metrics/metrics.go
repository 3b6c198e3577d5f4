// Package metrics provides optional Prometheus collection for tree operations.
//
// Passing a nil registerer to New yields a no-op implementation, so the tree
// runs the same with or without metrics:
//
//	reg := prometheus.NewRegistry()
//	t := tree.New(cfg, tree.WithMetrics(metrics.New(reg)))
package metrics

import (
	"time"

	"github.com/brettbedarf/foldertree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foldertree"

// Recorder receives operation and lock events from a tree.
type Recorder interface {
	// OperationStarted marks an operation as in flight. Every call is
	// followed by exactly one RecordOperation for the same operation.
	OperationStarted(operation string)

	// RecordOperation records a finished operation with its duration and
	// outcome. The outcome label is the error code, "0" for success.
	RecordOperation(operation string, duration time.Duration, err error)

	// RecordLockWait counts an acquisition of role that had to block.
	RecordLockWait(role string)
}

type promRecorder struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	inFlight          *prometheus.GaugeVec
	lockWaits         *prometheus.CounterVec
}

// New registers the tree collectors on reg. A nil reg returns a no-op Recorder.
func New(reg prometheus.Registerer) Recorder {
	if reg == nil {
		return noopRecorder{}
	}

	return &promRecorder{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of tree operations by operation and result code",
			},
			[]string{"operation", "code"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of tree operations in seconds",
				Buckets: []float64{
					0.000001, // 1µs
					0.00001,  // 10µs
					0.0001,   // 100µs
					0.001,    // 1ms
					0.01,     // 10ms
					0.1,      // 100ms
					1.0,      // 1s
				},
			},
			[]string{"operation"},
		),
		inFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "operations_in_flight",
				Help:      "Current number of tree operations in progress",
			},
			[]string{"operation"},
		),
		lockWaits: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lock_waits_total",
				Help:      "Total number of node lock acquisitions that blocked, by role",
			},
			[]string{"role"},
		),
	}
}

func (m *promRecorder) OperationStarted(operation string) {
	m.inFlight.WithLabelValues(operation).Inc()
}

func (m *promRecorder) RecordOperation(operation string, duration time.Duration, err error) {
	m.inFlight.WithLabelValues(operation).Dec()
	m.operationsTotal.WithLabelValues(operation, foldertree.CodeOf(err).String()).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *promRecorder) RecordLockWait(role string) {
	m.lockWaits.WithLabelValues(role).Inc()
}

type noopRecorder struct{}

func (noopRecorder) OperationStarted(string)                      {}
func (noopRecorder) RecordOperation(string, time.Duration, error) {}
func (noopRecorder) RecordLockWait(string)                        {}
