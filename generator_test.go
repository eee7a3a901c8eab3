package loadreport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func perfInput() *PerformanceInput {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &PerformanceInput{
		Title: "Checkout Flow",
		Date:  start,
		Config: TestConfig{
			TargetURL:   "https://api.example.com/checkout",
			Method:      "POST",
			Concurrency: 50,
			Duration:    2 * time.Minute,
			RampUp:      10 * time.Second,
		},
		Stats:     validStats(),
		Executive: Summary{Analysis: "Throughput held steady.", Suggestion: "No action needed."},
		Observations: []string{
			"Latency stayed below the 200 ms threshold.",
			"No connection errors were recorded.",
		},
		Recommendations: []string{"Re-run with doubled concurrency before the release."},
	}
	for i := 0; i < 40; i++ {
		in.Samples = append(in.Samples, Sample{
			At:         start.Add(time.Duration(i) * 3 * time.Second),
			Latency:    100 + float64(i%7)*12,
			Throughput: 50,
		})
	}
	return in
}

func trendInput() *TrendInput {
	runs := make([]Run, 4)
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := range runs {
		s := validStats()
		s.AvgLatency = 120 + float64(i)*20 // 120 -> 180 over the series
		s.Throughput = 50 - float64(i)*10/3
		runs[i] = Run{
			ID:      fmt.Sprintf("run-%d", i+1),
			Label:   fmt.Sprintf("Nightly %d", i+1),
			Started: base.AddDate(0, 0, i*7),
			Stats:   s,
		}
	}
	runs[len(runs)-1].Stats.Throughput = 40
	return &TrendInput{
		Title:          "Nightly API",
		Date:           base.AddDate(0, 1, 0),
		Runs:           runs,
		Grade:          "B",
		GradeRationale: "Latency crept up while throughput dropped a fifth.",
		Summary:        Summary{Analysis: "Slow but steady degradation across four weeks."},
		RootCause:      Summary{Analysis: "Connection pool exhaustion under the new session store."},
	}
}

// buildRaw runs a template build against an uncompressed document and
// returns the serialized bytes, so content streams can be searched for
// literal text.
func buildRaw(t *testing.T, kind Kind, title string, build func(*Generator, *document) error) ([]byte, *document) {
	t.Helper()
	g := NewGenerator(WithRasterizer(nil))
	d := g.newDocument(kind, title, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	d.pdf.SetCompression(false)
	if err := build(g, d); err != nil {
		t.Fatalf("build: %v", err)
	}
	var buf bytes.Buffer
	if err := g.finish(d, &buf); err != nil {
		t.Fatalf("finish: %v", err)
	}
	return buf.Bytes(), d
}

func TestPerformanceReport(t *testing.T) {
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	if err := g.Performance(context.Background(), &buf, perfInput()); err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
	t.Logf("performance report: %d bytes", buf.Len())
}

func TestPerformanceWithCharts(t *testing.T) {
	if testing.Short() {
		t.Skip("chart rasterization in -short mode")
	}
	g := NewGenerator()
	var buf bytes.Buffer
	if err := g.Performance(context.Background(), &buf, perfInput()); err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

// Zero recorded errors must drop the whole error-breakdown section, not
// render it with empty content.
func TestZeroErrorsOmitErrorSection(t *testing.T) {
	in := perfInput()
	in.Stats.Errors = 0
	raw, _ := buildRaw(t, KindPerformance, in.Title, func(g *Generator, d *document) error {
		return g.buildPerformance(context.Background(), d, in)
	})
	if bytes.Contains(raw, []byte("Error Breakdown")) {
		t.Fatal("error section rendered for a run without errors")
	}

	in.Stats.Errors = 25
	in.Stats.Successes = in.Stats.Requests - in.Stats.Errors
	in.Stats.ErrorReasons = map[string]int64{"timeout": 20, "connection reset": 5}
	raw, _ = buildRaw(t, KindPerformance, in.Title, func(g *Generator, d *document) error {
		return g.buildPerformance(context.Background(), d, in)
	})
	if !bytes.Contains(raw, []byte("Error Breakdown")) {
		t.Fatal("error section missing for a run with errors")
	}
	if !bytes.Contains(raw, []byte("timeout")) {
		t.Fatal("error reason table missing")
	}
}

func TestPageNumberingCoversEveryPage(t *testing.T) {
	in := perfInput()
	// Enough prose to force several pages.
	for i := 0; i < 60; i++ {
		in.Observations = append(in.Observations,
			fmt.Sprintf("Observation %d: latency remained within budget for the whole interval.", i+1))
	}
	raw, d := buildRaw(t, KindPerformance, in.Title, func(g *Generator, d *document) error {
		return g.buildPerformance(context.Background(), d, in)
	})

	total := d.pdf.PageCount()
	if total < 3 {
		t.Fatalf("expected a multi-page document, got %d pages", total)
	}
	for i := 1; i <= total; i++ {
		marker := fmt.Sprintf("Page %d of %d", i, total)
		if !bytes.Contains(raw, []byte(marker)) {
			t.Fatalf("missing footer %q", marker)
		}
	}
	if bytes.Contains(raw, []byte(fmt.Sprintf("Page %d of", total+1))) {
		t.Fatal("stale page number beyond the final page")
	}

	// The running header appears on every page but the cover; the cover
	// banner contributes one more occurrence of the same text.
	if got := bytes.Count(raw, []byte("PERFORMANCE REPORT")); got != total {
		t.Fatalf("found %d header occurrences, want %d", got, total)
	}
}

func TestTrendReportDeltas(t *testing.T) {
	in := trendInput()
	raw, _ := buildRaw(t, KindTrend, in.Title, func(g *Generator, d *document) error {
		return g.buildTrend(context.Background(), d, in)
	})
	// 120 ms -> 180 ms and 50 req/s -> 40 req/s between first and last run.
	if !bytes.Contains(raw, []byte("+50.0%")) {
		t.Fatal("latency delta +50.0% missing from degradation table")
	}
	if !bytes.Contains(raw, []byte("-20.0%")) {
		t.Fatal("throughput delta -20.0% missing from degradation table")
	}
}

func TestTrendRequiresTwoRuns(t *testing.T) {
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	in := trendInput()
	in.Runs = in.Runs[:1]
	err := g.Trend(context.Background(), &buf, in)
	if !errors.Is(err, ErrNotEnoughRuns) {
		t.Fatalf("expected ErrNotEnoughRuns, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("bytes were written despite the failed export")
	}
}

func TestComparisonReport(t *testing.T) {
	base := validStats()
	cand := validStats()
	cand.AvgLatency = 150
	cand.Throughput = 45
	in := &ComparisonInput{
		Title:     "v1.4 vs v1.5",
		Base:      Run{Label: "v1.4", Stats: base},
		Candidate: Run{Label: "v1.5", Stats: cand},
		KeyChanges: []string{
			"Average latency rose 25% after the ORM upgrade.",
		},
		RootCause: Summary{Analysis: "N+1 queries introduced by the new serializer."},
	}
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	if err := g.Comparison(context.Background(), &buf, in); err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

// Malformed core statistics are the fatal class: the export aborts and the
// writer receives nothing.
func TestMalformedStatsAbortExport(t *testing.T) {
	in := perfInput()
	in.Stats.Requests = 0
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	err := g.Performance(context.Background(), &buf, in)
	if !errors.Is(err, ErrMalformedStats) {
		t.Fatalf("expected ErrMalformedStats, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("%d bytes written despite the failed export", buf.Len())
	}

	var re *ReportError
	if !errors.As(err, &re) || re.Op != "Performance" {
		t.Fatalf("expected ReportError with op Performance, got %#v", err)
	}
	if !strings.Contains(err.Error(), "loadreport.Performance") {
		t.Fatalf("error string lacks operation context: %v", err)
	}
}

func TestNilInput(t *testing.T) {
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	if err := g.Performance(context.Background(), &buf, nil); !errors.Is(err, ErrNilInput) {
		t.Fatalf("Performance(nil): %v", err)
	}
	if err := g.Trend(context.Background(), &buf, nil); !errors.Is(err, ErrNilInput) {
		t.Fatalf("Trend(nil): %v", err)
	}
	if err := g.Comparison(context.Background(), &buf, nil); !errors.Is(err, ErrNilInput) {
		t.Fatalf("Comparison(nil): %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("bytes were written for nil input")
	}
}

func TestCancelledContextAbandonsExport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(WithRasterizer(nil))
	var buf bytes.Buffer
	err := g.Performance(ctx, &buf, perfInput())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("bytes were written after cancellation")
	}
}

func TestGeneratorReuse(t *testing.T) {
	g := NewGenerator(WithRasterizer(nil))
	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		if err := g.Performance(context.Background(), &buf, perfInput()); err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("export %d produced no bytes", i)
		}
	}
}
