package models

// TrialOutcome records the result of a single trial. Optional numerics are
// pointers: nil means the value was never observed, which is distinct from
// a measured zero.
type TrialOutcome struct {
	Target      string   `json:"target" yaml:"target"`
	Model       string   `json:"model" yaml:"model"`
	PromptID    int      `json:"prompt_id" yaml:"prompt_id"`
	Iteration   int      `json:"iteration" yaml:"iteration"`
	Success     bool     `json:"success" yaml:"success"`
	StatusCode  *int     `json:"status_code" yaml:"status_code"`
	TTFTMs      *float64 `json:"ttft_ms" yaml:"ttft_ms"`
	TotalMs     *float64 `json:"total_ms" yaml:"total_ms"`
	OutputChars int      `json:"output_chars" yaml:"output_chars"`
	OutputBytes int      `json:"output_bytes" yaml:"output_bytes"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummaryRecord is the per (target, model) reduction of a run. Timing
// statistics cover successful trials with the respective field defined;
// output sizes cover all successful trials. A nil statistic means the
// qualifying sub-population was empty.
type SummaryRecord struct {
	Target         string   `json:"target" yaml:"target"`
	Model          string   `json:"model" yaml:"model"`
	Runs           int      `json:"runs" yaml:"runs"`
	SuccessRate    float64  `json:"success_rate" yaml:"success_rate"`
	TTFTAvgMs      *float64 `json:"ttft_ms_avg" yaml:"ttft_ms_avg"`
	TTFTP50Ms      *float64 `json:"ttft_ms_p50" yaml:"ttft_ms_p50"`
	TTFTP95Ms      *float64 `json:"ttft_ms_p95" yaml:"ttft_ms_p95"`
	TotalAvgMs     *float64 `json:"total_ms_avg" yaml:"total_ms_avg"`
	TotalP50Ms     *float64 `json:"total_ms_p50" yaml:"total_ms_p50"`
	TotalP95Ms     *float64 `json:"total_ms_p95" yaml:"total_ms_p95"`
	OutputCharsAvg *float64 `json:"output_chars_avg" yaml:"output_chars_avg"`
	OutputBytesAvg *float64 `json:"output_bytes_avg" yaml:"output_bytes_avg"`
	CharsPerSec    *float64 `json:"chars_per_sec_avg" yaml:"chars_per_sec_avg"`
	BytesPerSec    *float64 `json:"bytes_per_sec_avg" yaml:"bytes_per_sec_avg"`
}

// Key returns the 'target|model' string used to key summary exports
func (s SummaryRecord) Key() string {
	return s.Target + "|" + s.Model
}
