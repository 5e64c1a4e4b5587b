package charts

import (
	"fmt"
	"sort"
	"strings"

	"llmperf/internal/models"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// ChartGenerator handles the generation of charts for benchmark results
type ChartGenerator struct {
	width  int
	height int
}

// NewChartGenerator creates a new chart generator with specified dimensions
func NewChartGenerator(width, height int) *ChartGenerator {
	return &ChartGenerator{
		width:  width,
		height: height,
	}
}

// LegendEntry represents a single entry in the chart legend
type LegendEntry struct {
	Label string
	Value float64
	Unit  string
	Color string
}

// generateLegend creates a formatted legend showing the numerical values
func (cg *ChartGenerator) generateLegend(entries []LegendEntry, title string) string {
	if len(entries) == 0 {
		return ""
	}

	// Sort entries by value (descending) for better readability
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	var legend strings.Builder
	legend.WriteString(fmt.Sprintf("\n📋 %s Legend:\n", title))
	legend.WriteString(strings.Repeat("─", cg.width) + "\n")

	// Find the longest label for alignment
	maxLabelLen := 0
	for _, entry := range entries {
		if len(entry.Label) > maxLabelLen {
			maxLabelLen = len(entry.Label)
		}
	}

	// Generate legend entries with proper alignment
	for i, entry := range entries {
		// Create colored indicator
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color))
		indicator := colorStyle.Render("■")

		// Format the value with appropriate precision
		var valueStr string
		if entry.Value < 1 {
			valueStr = fmt.Sprintf("%.3f", entry.Value)
		} else if entry.Value < 10 {
			valueStr = fmt.Sprintf("%.2f", entry.Value)
		} else {
			valueStr = fmt.Sprintf("%.1f", entry.Value)
		}

		// Pad label for alignment
		paddedLabel := fmt.Sprintf("%-*s", maxLabelLen, entry.Label)

		legend.WriteString(fmt.Sprintf("  %s %s: %s %s\n",
			indicator, paddedLabel, valueStr, entry.Unit))

		// Add separator line between entries (except for the last one)
		if i < len(entries)-1 {
			legend.WriteString("    " + strings.Repeat("·", maxLabelLen+10) + "\n")
		}
	}

	return legend.String()
}

// GenerateTTFTChart creates a bar chart of average time to first token per target
func (cg *ChartGenerator) GenerateTTFTChart(summaries []models.SummaryRecord) string {
	if len(summaries) == 0 {
		return "No data available for TTFT chart"
	}

	// Skip targets whose TTFT is undefined (no successful runs)
	var valid []models.SummaryRecord
	for _, summary := range summaries {
		if summary.TTFTAvgMs != nil && *summary.TTFTAvgMs > 0 {
			valid = append(valid, summary)
		}
	}

	if len(valid) == 0 {
		return "No TTFT data available (no successful runs)"
	}

	var barData []barchart.BarData
	var legendEntries []LegendEntry
	colors := []string{"10", "9", "11", "12", "13", "14", "15", "6"} // Green, Red, Yellow, Blue, Magenta, Cyan, White, Cyan

	for i, summary := range valid {
		ttftMs := *summary.TTFTAvgMs
		color := colors[i%len(colors)]

		barData = append(barData, barchart.BarData{
			Label: summary.Key(),
			Values: []barchart.BarValue{
				{Name: "TTFT", Value: ttftMs, Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color))},
			},
		})

		// Add to legend
		legendEntries = append(legendEntries, LegendEntry{
			Label: summary.Key(),
			Value: ttftMs,
			Unit:  "ms",
			Color: color,
		})
	}

	bc := barchart.New(cg.width, cg.height)
	bc.PushAll(barData)
	bc.Draw()

	// Generate chart with legend
	result := fmt.Sprintf("📊 Time to First Token (ms)\n%s\n%s",
		strings.Repeat("─", cg.width), bc.View())

	// Add legend
	legend := cg.generateLegend(legendEntries, "TTFT Values")
	result += legend

	return result
}

// GenerateThroughputChart creates a bar chart of character throughput per target
func (cg *ChartGenerator) GenerateThroughputChart(summaries []models.SummaryRecord) string {
	if len(summaries) == 0 {
		return "No data available for throughput chart"
	}

	// Skip targets whose throughput is undefined
	var valid []models.SummaryRecord
	for _, summary := range summaries {
		if summary.CharsPerSec != nil && *summary.CharsPerSec > 0 {
			valid = append(valid, summary)
		}
	}

	if len(valid) == 0 {
		return "No throughput data available (no successful runs)"
	}

	var barData []barchart.BarData
	var legendEntries []LegendEntry
	colors := []string{"10", "9", "11", "12", "13", "14", "15", "6"} // Green, Red, Yellow, Blue, Magenta, Cyan, White, Cyan

	for i, summary := range valid {
		charsPerSec := *summary.CharsPerSec
		color := colors[i%len(colors)]

		barData = append(barData, barchart.BarData{
			Label: summary.Key(),
			Values: []barchart.BarValue{
				{Name: "Throughput", Value: charsPerSec, Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color))},
			},
		})

		// Add to legend
		legendEntries = append(legendEntries, LegendEntry{
			Label: summary.Key(),
			Value: charsPerSec,
			Unit:  "chars/sec",
			Color: color,
		})
	}

	bc := barchart.New(cg.width, cg.height)
	bc.PushAll(barData)
	bc.Draw()

	// Generate chart with legend
	result := fmt.Sprintf("📊 Output Throughput (chars/sec)\n%s\n%s",
		strings.Repeat("─", cg.width), bc.View())

	// Add legend
	legend := cg.generateLegend(legendEntries, "Throughput Values")
	result += legend

	return result
}

// GenerateLatencyChart creates a bar chart of average total latency per target
func (cg *ChartGenerator) GenerateLatencyChart(summaries []models.SummaryRecord) string {
	if len(summaries) == 0 {
		return "No data available for latency chart"
	}

	// Skip targets whose total latency is undefined
	var valid []models.SummaryRecord
	for _, summary := range summaries {
		if summary.TotalAvgMs != nil && *summary.TotalAvgMs > 0 {
			valid = append(valid, summary)
		}
	}

	if len(valid) == 0 {
		return "No latency data available (no successful runs)"
	}

	var barData []barchart.BarData
	var legendEntries []LegendEntry
	colors := []string{"10", "9", "11", "12", "13", "14", "15", "6"} // Green, Red, Yellow, Blue, Magenta, Cyan, White, Cyan

	for i, summary := range valid {
		totalMs := *summary.TotalAvgMs
		color := colors[i%len(colors)]

		barData = append(barData, barchart.BarData{
			Label: summary.Key(),
			Values: []barchart.BarValue{
				{Name: "Latency", Value: totalMs, Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color))},
			},
		})

		// Add to legend
		legendEntries = append(legendEntries, LegendEntry{
			Label: summary.Key(),
			Value: totalMs,
			Unit:  "ms",
			Color: color,
		})
	}

	bc := barchart.New(cg.width, cg.height)
	bc.PushAll(barData)
	bc.Draw()

	// Generate chart with legend
	result := fmt.Sprintf("📊 Average Total Latency (ms)\n%s\n%s",
		strings.Repeat("─", cg.width), bc.View())

	// Add legend
	legend := cg.generateLegend(legendEntries, "Latency Values")
	result += legend

	return result
}

// GenerateAllCharts generates all available charts for the given summaries
func (cg *ChartGenerator) GenerateAllCharts(summaries []models.SummaryRecord) string {
	var result string

	// Check whether any target produced first-token timings
	hasTTFTData := false
	for _, summary := range summaries {
		if summary.TTFTAvgMs != nil {
			hasTTFTData = true
			break
		}
	}

	// Generate latency chart (always available)
	result += cg.GenerateLatencyChart(summaries) + "\n\n"

	// Generate first-token and throughput charts when timings exist
	if hasTTFTData {
		result += cg.GenerateTTFTChart(summaries) + "\n\n"
		result += cg.GenerateThroughputChart(summaries) + "\n\n"
	}

	return result
}
