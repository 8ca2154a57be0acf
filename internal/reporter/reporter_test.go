package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/skoredin/crossdb-bench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []benchmark.Result {
	return []benchmark.Result{
		{Operation: benchmark.OpInsertSingle, Vendor: "postgresql", DurationMS: 1.5, Success: true, RecordsAffected: 1, Timestamp: time.Now()},
		{Operation: benchmark.OpInsertSingle, Vendor: "postgresql", DurationMS: 2.5, Success: true, RecordsAffected: 1, Timestamp: time.Now()},
		{Operation: benchmark.OpSelectByID, Vendor: "sqlite", DurationMS: 0.2, Success: false, Error: "no such table: users", Timestamp: time.Now()},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	rep := New("table", &buf)
	rep.PrintHeader()
	rep.PrintResults(sampleResults())

	out := buf.String()

	assert.Contains(t, out, "BENCHMARK SUMMARY")
	assert.Contains(t, out, "postgresql")
	assert.Contains(t, out, benchmark.OpInsertSingle)
	assert.Contains(t, out, "sqlite")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	rep := New("json", &buf)
	rep.PrintResults(sampleResults())

	var summaries []benchmark.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summaries))
	require.Len(t, summaries, 2)

	assert.Equal(t, "postgresql", summaries[0].Vendor)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, 1, summaries[1].Errors)
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer

	rep := New("markdown", &buf)
	rep.PrintResults(sampleResults())

	out := buf.String()

	assert.Contains(t, out, "## Benchmark Summary")
	assert.Contains(t, out, "|")
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ExportCSV(&buf, sampleResults()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 rows

	assert.Equal(t, "operation", records[0][0])
	assert.Equal(t, benchmark.OpInsertSingle, records[1][0])
	assert.Equal(t, "postgresql", records[1][1])
	assert.Equal(t, "true", records[1][3])

	// Failed record keeps its error text verbatim.
	assert.Equal(t, "false", records[3][3])
	assert.Equal(t, "no such table: users", records[3][5])
}

func TestExportSummaryJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ExportSummaryJSON(&buf, sampleResults()))

	var summaries []benchmark.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}
