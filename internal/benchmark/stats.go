package benchmark

import "sort"

// Avg returns the average of the given millisecond samples.
// Returns 0 for an empty slice.
func Avg(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}

	return sum / float64(len(samples))
}

// Min returns the smallest sample. Returns 0 for an empty slice.
func Min(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	result := samples[0]
	for _, s := range samples[1:] {
		if s < result {
			result = s
		}
	}

	return result
}

// Max returns the largest sample. Returns 0 for an empty slice.
func Max(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	result := samples[0]
	for _, s := range samples[1:] {
		if s > result {
			result = s
		}
	}

	return result
}

// Percentile returns the p-th percentile (0.0–1.0) of the given samples.
// Returns 0 for an empty slice.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)

	sort.Float64s(sorted)

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}

// Summary aggregates the records of one vendor/operation pair.
type Summary struct {
	Vendor        string  `json:"vendor"`
	Operation     string  `json:"operation"`
	Count         int     `json:"count"`
	Errors        int     `json:"errors"`
	AvgMS         float64 `json:"avg_ms"`
	MinMS         float64 `json:"min_ms"`
	MaxMS         float64 `json:"max_ms"`
	P50MS         float64 `json:"p50_ms"`
	P95MS         float64 `json:"p95_ms"`
	P99MS         float64 `json:"p99_ms"`
	TotalAffected int64   `json:"total_affected"`
}

// Summarize groups records by vendor and operation and computes duration
// statistics over the successful invocations of each group. The returned
// slice is sorted by vendor, then operation.
func Summarize(results []Result) []Summary {
	type key struct{ vendor, operation string }

	groups := make(map[key][]Result)

	for _, r := range results {
		k := key{r.Vendor, r.Operation}
		groups[k] = append(groups[k], r)
	}

	summaries := make([]Summary, 0, len(groups))

	for k, records := range groups {
		s := Summary{Vendor: k.vendor, Operation: k.operation, Count: len(records)}

		var durations []float64

		for _, r := range records {
			if !r.Success {
				s.Errors++
				continue
			}

			durations = append(durations, r.DurationMS)
			s.TotalAffected += r.RecordsAffected
		}

		s.AvgMS = Avg(durations)
		s.MinMS = Min(durations)
		s.MaxMS = Max(durations)
		s.P50MS = Percentile(durations, 0.50)
		s.P95MS = Percentile(durations, 0.95)
		s.P99MS = Percentile(durations, 0.99)

		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Vendor != summaries[j].Vendor {
			return summaries[i].Vendor < summaries[j].Vendor
		}

		return summaries[i].Operation < summaries[j].Operation
	})

	return summaries
}
