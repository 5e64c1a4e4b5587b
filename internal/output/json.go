package output

import (
	"encoding/json"
	"os"

	"llmperf/internal/models"
)

// WriteResultsJSON writes the full outcome list to path as an indented
// JSON array
func WriteResultsJSON(path string, outcomes []models.TrialOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSummaryJSON writes the summary table to path as an indented JSON
// object keyed 'target|model'
func WriteSummaryJSON(path string, summaries []models.SummaryRecord) error {
	table := make(map[string]models.SummaryRecord, len(summaries))
	for _, summary := range summaries {
		table[summary.Key()] = summary
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
