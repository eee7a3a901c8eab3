package loadreport

import (
	"context"
	"fmt"
	"io"

	"github.com/lvillar/loadreport/chartimg"
	"github.com/lvillar/loadreport/layout"
)

// Comparison generates the run-comparison report for a base and candidate
// run and writes the finished PDF to w.
func (g *Generator) Comparison(ctx context.Context, w io.Writer, in *ComparisonInput) error {
	const op = "Comparison"
	if in == nil {
		return newReportError(op, ErrNilInput)
	}
	if err := in.Base.Stats.Validate(); err != nil {
		return newReportError(op, fmt.Errorf("base run: %w", err))
	}
	if err := in.Candidate.Stats.Validate(); err != nil {
		return newReportError(op, fmt.Errorf("candidate run: %w", err))
	}

	d := g.newDocument(KindComparison, in.Title, in.Date)
	if err := g.buildComparison(ctx, d, in); err != nil {
		return newReportError(op, err)
	}
	if err := g.finish(d, w); err != nil {
		return newReportError(op, err)
	}
	return nil
}

func (g *Generator) buildComparison(ctx context.Context, d *document, in *ComparisonInput) error {
	c := d.lay

	d.cover(c, []string{
		runLabel(&in.Base, "Base") + "  vs  " + runLabel(&in.Candidate, "Candidate"),
	})
	c.NewPage()

	sections := []*layout.Section{
		deltaTableSection(in),
		g.comparisonChartSection(ctx, in),
		keyChangesSection(in.KeyChanges),
		rootCauseSection(in),
	}
	for _, sec := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		sec.Draw(c)
	}
	return nil
}

func runLabel(r *Run, fallback string) string {
	if r.Label != "" {
		return r.Label
	}
	return fallback
}

// deltaTableSection contrasts both runs with percentage delta columns.
func deltaTableSection(in *ComparisonInput) *layout.Section {
	a, b := &in.Base.Stats, &in.Candidate.Stats
	rows := [][]string{
		{"Throughput", formatRate(a.Throughput), formatRate(b.Throughput),
			deltaPercent(a.Throughput, b.Throughput)},
		{"Avg Latency", formatMillis(a.AvgLatency), formatMillis(b.AvgLatency),
			deltaPercent(a.AvgLatency, b.AvgLatency)},
		{"Max Latency", formatMillis(a.MaxLatency), formatMillis(b.MaxLatency),
			deltaPercent(a.MaxLatency, b.MaxLatency)},
		{"Error Rate", formatPercent(a.ErrorRate()), formatPercent(b.ErrorRate()),
			deltaPercent(a.ErrorRate(), b.ErrorRate())},
		{"Apdex", fmt.Sprintf("%.3f", a.Apdex.Score), fmt.Sprintf("%.3f", b.Apdex.Score),
			deltaPercent(a.Apdex.Score, b.Apdex.Score)},
		{"Consistency (CoV)", fmt.Sprintf("%.2f", a.CoV), fmt.Sprintf("%.2f", b.CoV),
			deltaPercent(a.CoV, b.CoV)},
	}

	sec := &layout.Section{Title: "Metrics Comparison"}
	sec.Add(&layout.Table{
		Columns: []layout.TableColumn{
			{Header: "Metric"},
			{Header: runLabel(&in.Base, "Base"), Width: 35, Align: "R"},
			{Header: runLabel(&in.Candidate, "Candidate"), Width: 35, Align: "R"},
			{Header: "Delta", Width: 25, Align: "R"},
		},
		Rows:  rows,
		Zebra: true,
	})
	return sec
}

// comparisonChartSection embeds up to two charts contrasting the runs.
func (g *Generator) comparisonChartSection(ctx context.Context, in *ComparisonInput) *layout.Section {
	a, b := &in.Base.Stats, &in.Candidate.Stats
	baseLabel := runLabel(&in.Base, "Base")
	candLabel := runLabel(&in.Candidate, "Candidate")

	sec := &layout.Section{Title: "Side by Side"}
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-cmp-latency", chartimg.Spec{
		Title:  "Latency (ms)",
		YLabel: "ms",
		Kind:   chartimg.KindBars,
		Bars: []chartimg.Bar{
			{Label: baseLabel + " avg", Value: a.AvgLatency},
			{Label: candLabel + " avg", Value: b.AvgLatency},
			{Label: baseLabel + " max", Value: a.MaxLatency},
			{Label: candLabel + " max", Value: b.MaxLatency},
		},
	}))
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-cmp-throughput", chartimg.Spec{
		Title:  "Throughput (req/s)",
		YLabel: "req/s",
		Kind:   chartimg.KindBars,
		Bars: []chartimg.Bar{
			{Label: baseLabel, Value: a.Throughput},
			{Label: candLabel, Value: b.Throughput},
		},
	}))
	return sec
}

func keyChangesSection(changes []string) *layout.Section {
	sec := &layout.Section{Title: "Key Metric Changes"}
	for _, change := range changes {
		sec.Add(&layout.TextBlock{Text: "• " + change, SpaceAfter: 1})
	}
	return sec
}

func rootCauseSection(in *ComparisonInput) *layout.Section {
	sec := &layout.Section{Title: "Assessment"}
	sec.Add(
		summaryBlock("Root Cause", in.RootCause),
		summaryBlock("Recommendations", in.Recommendations),
	)
	return sec
}
