package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/skoredin/crossdb-bench/internal/benchmark"
)

type Reporter struct {
	format string
	w      io.Writer
}

func New(format string, w io.Writer) *Reporter {
	return &Reporter{format: format, w: w}
}

func (r *Reporter) printLine(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

func (r *Reporter) PrintHeader() {
	r.printLine()
	r.printLine("  Cross-Engine Database Benchmark")
	r.printLine()
}

// PrintResults renders the summarized record stream in the configured
// format: table (default), markdown, or json.
func (r *Reporter) PrintResults(results []benchmark.Result) {
	summaries := benchmark.Summarize(results)

	switch r.format {
	case "json":
		r.printJSON(summaries)
	case "markdown":
		r.printMarkdown(summaries)
	default:
		r.printTable(summaries)
	}
}

func (r *Reporter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)

	t.Style().Title.Align = text.AlignCenter
	t.Style().Format.Header = text.FormatDefault

	return t
}

func summaryHeader() table.Row {
	return table.Row{"Vendor", "Operation", "Count", "Errors", "Avg ms", "Min ms", "Max ms", "P50 ms", "P95 ms", "P99 ms", "Affected"}
}

func summaryRow(s benchmark.Summary) table.Row {
	return table.Row{
		s.Vendor,
		s.Operation,
		s.Count,
		s.Errors,
		fmt.Sprintf("%.3f", s.AvgMS),
		fmt.Sprintf("%.3f", s.MinMS),
		fmt.Sprintf("%.3f", s.MaxMS),
		fmt.Sprintf("%.3f", s.P50MS),
		fmt.Sprintf("%.3f", s.P95MS),
		fmt.Sprintf("%.3f", s.P99MS),
		s.TotalAffected,
	}
}

func (r *Reporter) printTable(summaries []benchmark.Summary) {
	t := r.newTable("BENCHMARK SUMMARY")
	t.AppendHeader(summaryHeader())

	for _, s := range summaries {
		t.AppendRow(summaryRow(s))
	}

	t.Render()
	r.printLine()
}

func (r *Reporter) printMarkdown(summaries []benchmark.Summary) {
	r.printLine("## Benchmark Summary")

	t := r.newTable("")
	t.SetStyle(table.StyleDefault)

	t.Style().Options.SeparateColumns = true

	t.AppendHeader(summaryHeader())

	for _, s := range summaries {
		t.AppendRow(summaryRow(s))
	}

	t.RenderMarkdown()
	r.printLine()
}

func (r *Reporter) printJSON(summaries []benchmark.Summary) {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(summaries); err != nil {
		log.Println(err)
	}
}

// ExportCSV writes the raw record stream, one row per operation
// invocation, preserving execution order.
func ExportCSV(w io.Writer, results []benchmark.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"operation", "vendor", "duration_ms", "success", "records_affected", "error", "timestamp"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Operation,
			r.Vendor,
			strconv.FormatFloat(r.DurationMS, 'f', 6, 64),
			strconv.FormatBool(r.Success),
			strconv.FormatInt(r.RecordsAffected, 10),
			r.Error,
			r.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// ExportSummaryJSON writes the aggregated per-vendor/operation statistics.
func ExportSummaryJSON(w io.Writer, results []benchmark.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(benchmark.Summarize(results))
}
