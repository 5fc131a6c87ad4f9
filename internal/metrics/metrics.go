// Package metrics exposes Prometheus counters for hub operations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operations *prometheus.CounterVec
	initOnce   sync.Once
)

// Init registers the operation counter. Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		operations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkhub_operations_total",
				Help: "Total hub operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		)
		prometheus.MustRegister(operations)
	})
}

// Record counts one operation attempt. The outcome label is "ok" on success
// and "error" otherwise.
func Record(operation string, err error) {
	if operations == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operations.WithLabelValues(operation, outcome).Inc()
}
