package application

import (
	"time"

	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// LowYieldThreshold is the question count below which a run is flagged as
// low-yield. The signal is advisory; it never blocks the response.
const LowYieldThreshold = 15

// RunMetrics captures one generation run end to end, fallback included.
type RunMetrics struct {
	Topic         string
	QuestionCount int
	Success       bool
	Duration      time.Duration
}

// LowYield reports whether the run produced fewer questions than the
// advisory threshold.
func (m RunMetrics) LowYield() bool {
	return m.QuestionCount < LowYieldThreshold
}

// RunRecorder receives per-run metrics. Implementations must be safe for
// concurrent use.
type RunRecorder interface {
	RecordRun(m RunMetrics)
}

type logRecorder struct {
	log *logger.Logger
}

// NewLogRecorder returns a RunRecorder that emits structured log events.
func NewLogRecorder(log *logger.Logger) RunRecorder {
	return &logRecorder{log: log}
}

func (r *logRecorder) RecordRun(m RunMetrics) {
	r.log.Info("generation run completed",
		"topic", m.Topic,
		"questionCount", m.QuestionCount,
		"success", m.Success,
		"durationMs", m.Duration.Milliseconds(),
	)
	if m.LowYield() {
		r.log.Warn("low question yield",
			"topic", m.Topic,
			"questionCount", m.QuestionCount,
			"threshold", LowYieldThreshold,
		)
	}
}
