package service

import (
	"math"
	"slices"

	"llmperf/internal/models"
)

type groupKey struct {
	target string
	model  string
}

// GenerateSummary reduces the flat outcome list to one record per
// (target, model) pair, in first-seen order so downstream output stays
// deterministic for a given outcome collection.
func (bs *BenchmarkService) GenerateSummary(outcomes []models.TrialOutcome) []models.SummaryRecord {
	var order []groupKey
	groups := make(map[groupKey][]models.TrialOutcome)

	for _, outcome := range outcomes {
		key := groupKey{target: outcome.Target, model: outcome.Model}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], outcome)
	}

	summaries := make([]models.SummaryRecord, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, summarizeGroup(key, groups[key]))
	}
	return summaries
}

func summarizeGroup(key groupKey, items []models.TrialOutcome) models.SummaryRecord {
	var latencies, ttfts, chars, sizes []float64
	successes := 0

	for _, item := range items {
		if !item.Success {
			continue
		}
		successes++
		if item.TotalMs != nil {
			latencies = append(latencies, *item.TotalMs)
		}
		if item.TTFTMs != nil {
			ttfts = append(ttfts, *item.TTFTMs)
		}
		chars = append(chars, float64(item.OutputChars))
		sizes = append(sizes, float64(item.OutputBytes))
	}

	record := models.SummaryRecord{
		Target:         key.target,
		Model:          key.model,
		Runs:           len(items),
		SuccessRate:    float64(successes) / float64(max(1, len(items))),
		TTFTAvgMs:      mean(ttfts),
		TTFTP50Ms:      percentile(ttfts, 0.5),
		TTFTP95Ms:      percentile(ttfts, 0.95),
		TotalAvgMs:     mean(latencies),
		TotalP50Ms:     percentile(latencies, 0.5),
		TotalP95Ms:     percentile(latencies, 0.95),
		OutputCharsAvg: mean(chars),
		OutputBytesAvg: mean(sizes),
	}

	// Coarse throughput estimate: average size over average latency, not
	// the average of per-trial rates. Undefined when the average latency
	// is undefined or zero.
	if record.TotalAvgMs != nil && *record.TotalAvgMs > 0 {
		seconds := *record.TotalAvgMs / 1000.0
		charsPerSec := *record.OutputCharsAvg / seconds
		bytesPerSec := *record.OutputBytesAvg / seconds
		record.CharsPerSec = &charsPerSec
		record.BytesPerSec = &bytesPerSec
	}

	return record
}

// percentile returns the linearly interpolated value at rank (n-1)*p of the
// sample, with p a fraction in [0,1]. The input is not mutated; an empty
// sample has no percentile and yields nil.
func percentile(values []float64, p float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	rank := float64(len(sorted)-1) * p
	lower := int(math.Floor(rank))
	upper := min(lower+1, len(sorted)-1)
	if lower == upper {
		return &sorted[lower]
	}

	weight := rank - float64(lower)
	value := sorted[lower]*(1-weight) + sorted[upper]*weight
	return &value
}

// mean returns the arithmetic mean of the sample, or nil when it is empty
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	value := sum / float64(len(values))
	return &value
}
