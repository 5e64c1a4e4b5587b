package output

import "fmt"

// Export format names accepted by the benchmark configuration
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// ValidateFormats checks that every name refers to a known exporter
func ValidateFormats(formats []string) error {
	for _, format := range formats {
		switch format {
		case FormatJSON, FormatCSV, FormatYAML:
		default:
			return fmt.Errorf("unknown export format %q (valid: json, csv, yaml)", format)
		}
	}
	return nil
}
