package secrets

import (
	"log/slog"
	"sort"
	"time"
)

// OpCallMetric records one secret-manager read.
type OpCallMetric struct {
	SecretRef string
	Duration  time.Duration
	Success   bool
}

// ResolutionMetrics accumulates timing data across a resolution run.
type ResolutionMetrics struct {
	TotalSecrets          int
	SuccessfulResolutions int
	FailedResolutions     int
	OpCalls               []OpCallMetric
	TotalDuration         time.Duration
}

// AddOpCall records the outcome of a single secret-manager read.
func (m *ResolutionMetrics) AddOpCall(ref string, duration time.Duration, success bool) {
	m.OpCalls = append(m.OpCalls, OpCallMetric{SecretRef: ref, Duration: duration, Success: success})
	if success {
		m.SuccessfulResolutions++
	} else {
		m.FailedResolutions++
	}
}

// LogSummary reports totals and the slowest secret-manager calls.
func (m *ResolutionMetrics) LogSummary(logger *slog.Logger) {
	logger.Info("=== Secret Resolution Performance Summary ===")
	logger.Info("resolution totals",
		"total_secrets", m.TotalSecrets,
		"successful", m.SuccessfulResolutions,
		"failed", m.FailedResolutions,
		"total_duration", m.TotalDuration,
	)

	if len(m.OpCalls) == 0 {
		return
	}

	avg := m.TotalDuration / time.Duration(len(m.OpCalls))
	logger.Info("average time per op call", "duration", avg)

	sorted := make([]OpCallMetric, len(m.OpCalls))
	copy(sorted, m.OpCalls)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Duration > sorted[j].Duration
	})

	logger.Info("slowest op calls")
	for i, call := range sorted {
		if i == 5 {
			break
		}
		status := "success"
		if !call.Success {
			status = "failed"
		}
		logger.Info("op call",
			"rank", i+1,
			"ref", call.SecretRef,
			"duration", call.Duration,
			"status", status,
		)
	}
}
