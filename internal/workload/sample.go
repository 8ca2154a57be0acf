package workload

import (
	"math/rand"
	"strconv"

	"github.com/skoredin/crossdb-bench/internal/engine"
)

// Sample sizes for the preliminary reads that discover existing entities.
// Bounding them keeps setup cost flat while the uniform draw still gives
// representative access patterns.
const (
	sampleLimit     = 1000
	joinSampleLimit = 100
)

// intColumn extracts an integer column from sampled rows, skipping rows
// where the column is absent or not count-like.
func intColumn(rows []engine.Row, column string) []int64 {
	out := make([]int64, 0, len(rows))

	for _, row := range rows {
		if v, ok := asInt64(row[column]); ok {
			out = append(out, v)
		}
	}

	return out
}

// stringColumn extracts a string column from sampled rows.
func stringColumn(rows []engine.Row, column string) []string {
	out := make([]string, 0, len(rows))

	for _, row := range rows {
		if v, ok := asString(row[column]); ok {
			out = append(out, v)
		}
	}

	return out
}

// asInt64 coerces the value types the drivers hand back for integer
// columns: int64 from most drivers, raw bytes from MySQL, float64 from
// document stores.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case float64:
		return int64(t), true
	case []byte:
		n, err := strconv.ParseInt(string(t), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}

// draw returns a uniformly random element of the sample.
func draw[T any](rng *rand.Rand, sample []T) T {
	return sample[rng.Intn(len(sample))]
}

// consume removes and returns a uniformly random element, for operations
// that must not target the same entity twice within one run.
func consume[T any](rng *rand.Rand, sample []T) (T, []T) {
	i := rng.Intn(len(sample))
	picked := sample[i]
	sample[i] = sample[len(sample)-1]

	return picked, sample[:len(sample)-1]
}

func clamp(requested, available int) int {
	if requested > available {
		return available
	}

	return requested
}
