package output

import (
	"encoding/csv"
	"os"
	"strconv"

	"llmperf/internal/models"
)

// resultsHeader is the column layout of the per-trial CSV export
var resultsHeader = []string{
	"target", "model", "prompt_id", "iteration", "success",
	"status_code", "ttft_ms", "total_ms", "output_chars", "output_bytes",
	"error",
}

// WriteResultsCSV writes one row per trial outcome to path, overwriting any
// existing file. Undefined optional values become empty cells.
func WriteResultsCSV(path string, outcomes []models.TrialOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(resultsHeader); err != nil {
		f.Close()
		return err
	}

	for _, outcome := range outcomes {
		record := []string{
			outcome.Target,
			outcome.Model,
			strconv.Itoa(outcome.PromptID),
			strconv.Itoa(outcome.Iteration),
			strconv.FormatBool(outcome.Success),
			formatOptionalInt(outcome.StatusCode),
			formatOptionalFloat(outcome.TTFTMs),
			formatOptionalFloat(outcome.TotalMs),
			strconv.Itoa(outcome.OutputChars),
			strconv.Itoa(outcome.OutputBytes),
			outcome.Error,
		}
		if err := writer.Write(record); err != nil {
			f.Close()
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
