package domain

import "time"

// ExecutionResult is the value object a single chain run produces. It is
// created once per run and never mutated after return.
type ExecutionResult struct {
	ConfigID   string     `json:"configId"`
	ConfigName string     `json:"configName"`
	Input      string     `json:"input"`
	Questions  []Question `json:"questions"`
	RawOutput  string     `json:"rawOutput"`
	LatencyMs  int64      `json:"latencyMs"`
	Valid      bool       `json:"valid"`
	Errors     []string   `json:"errors"`
	ExecutedAt time.Time  `json:"executedAt"`
}

// Successful reports whether the run produced a usable, fully conformant
// question set.
func (r ExecutionResult) Successful() bool {
	return r.Valid && len(r.Errors) == 0 && len(r.Questions) > 0
}
