// Package metrics exposes the enclave's Prometheus instrumentation:
// command throughput/outcome, per-wallet lock wait time, and KM signing
// failures.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enclave_commands_total",
			Help: "Total number of dispatched commands by outcome",
		},
		[]string{"command", "outcome"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enclave_command_duration_seconds",
			Help:    "Time to execute a dispatched command end to end",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"command"},
	)

	lockWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enclave_lock_wait_seconds",
			Help:    "Time spent waiting to acquire a per-wallet lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	kmsFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enclave_kms_failures_total",
			Help: "Total number of key-manager signing/decryption failures",
		},
		[]string{"operation"},
	)

	walletsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enclave_wallets_active",
			Help: "Number of wallets currently known to the registry",
		},
	)
)

// ObserveCommand records one dispatched command's outcome and latency.
func ObserveCommand(command string, success bool, d time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	commandsTotal.WithLabelValues(command, outcome).Inc()
	commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// ObserveLockWait records time spent waiting for a per-wallet lock.
func ObserveLockWait(d time.Duration) {
	lockWaitSeconds.Observe(d.Seconds())
}

// IncKmsFailure records a key-manager failure for the named operation.
func IncKmsFailure(operation string) {
	kmsFailuresTotal.WithLabelValues(operation).Inc()
}

// SetWalletsActive reports the current wallet count.
func SetWalletsActive(n int) {
	walletsActive.Set(float64(n))
}
