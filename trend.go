package loadreport

import (
	"context"
	"fmt"
	"io"

	"github.com/lvillar/loadreport/chartimg"
	"github.com/lvillar/loadreport/layout"
)

// Trend generates the trend-analysis report over a chronological series of
// runs and writes the finished PDF to w. At least two runs are required;
// the degradation table contrasts the first and last.
func (g *Generator) Trend(ctx context.Context, w io.Writer, in *TrendInput) error {
	const op = "Trend"
	if in == nil {
		return newReportError(op, ErrNilInput)
	}
	if len(in.Runs) < 2 {
		return newReportError(op, ErrNotEnoughRuns)
	}
	for i := range in.Runs {
		if err := in.Runs[i].Stats.Validate(); err != nil {
			return newReportError(op, fmt.Errorf("run %d (%s): %w", i+1, in.Runs[i].Label, err))
		}
	}

	d := g.newDocument(KindTrend, in.Title, in.Date)
	if err := g.buildTrend(ctx, d, in); err != nil {
		return newReportError(op, err)
	}
	if err := g.finish(d, w); err != nil {
		return newReportError(op, err)
	}
	return nil
}

func (g *Generator) buildTrend(ctx context.Context, d *document, in *TrendInput) error {
	c := d.lay
	first, last := &in.Runs[0].Stats, &in.Runs[len(in.Runs)-1].Stats

	d.cover(c, []string{
		fmt.Sprintf("%d runs analyzed", len(in.Runs)),
		fmt.Sprintf("%s through %s",
			in.Runs[0].Started.Format("Jan 2, 2006"),
			in.Runs[len(in.Runs)-1].Started.Format("Jan 2, 2006")),
	})
	c.NewPage()

	sections := []*layout.Section{
		gradeSection(in),
		g.trendChartSection(ctx, in),
		degradationSection(first, last),
		trendAnalysisSection(in),
		runGridSection(in.Runs),
		runTableSection(in.Runs),
	}
	for _, sec := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		sec.Draw(c)
	}
	return nil
}

func gradeSection(in *TrendInput) *layout.Section {
	sec := &layout.Section{Title: "Performance Grade"}
	sec.Add(&layout.ScoreCard{
		Grade:     in.Grade,
		Rationale: in.GradeRationale,
	})
	return sec
}

func (g *Generator) trendChartSection(ctx context.Context, in *TrendInput) *layout.Section {
	latency := chartimg.Series{Name: "Avg latency (ms)"}
	throughput := chartimg.Series{Name: "Throughput (req/s)"}
	for i, run := range in.Runs {
		x := float64(i + 1)
		latency.X = append(latency.X, x)
		latency.Y = append(latency.Y, run.Stats.AvgLatency)
		throughput.X = append(throughput.X, x)
		throughput.Y = append(throughput.Y, run.Stats.Throughput)
	}

	sec := &layout.Section{Title: "Performance Trend"}
	sec.Add(&layout.TextBlock{
		Text: "Average latency and throughput across the analyzed runs, in " +
			"chronological order. Diverging lines are the earliest reliable " +
			"signal of creeping degradation.",
	})
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-trend", chartimg.Spec{
		Title:  "Latency and throughput by run",
		Kind:   chartimg.KindTrend,
		Series: []chartimg.Series{latency, throughput},
	}))
	return sec
}

// degradationSection contrasts the first and last analyzed runs metric by
// metric, with a signed relative delta column.
func degradationSection(first, last *Stats) *layout.Section {
	rows := [][]string{
		{"Avg Latency", formatMillis(first.AvgLatency), formatMillis(last.AvgLatency),
			deltaPercent(first.AvgLatency, last.AvgLatency)},
		{"Throughput", formatRate(first.Throughput), formatRate(last.Throughput),
			deltaPercent(first.Throughput, last.Throughput)},
		{"Error Rate", formatPercent(first.ErrorRate()), formatPercent(last.ErrorRate()),
			deltaPercent(first.ErrorRate(), last.ErrorRate())},
		{"Apdex", fmt.Sprintf("%.3f", first.Apdex.Score), fmt.Sprintf("%.3f", last.Apdex.Score),
			deltaPercent(first.Apdex.Score, last.Apdex.Score)},
		{"Consistency (CoV)", fmt.Sprintf("%.2f", first.CoV), fmt.Sprintf("%.2f", last.CoV),
			deltaPercent(first.CoV, last.CoV)},
	}

	sec := &layout.Section{Title: "Degradation at a Glance"}
	sec.Add(&layout.Table{
		Columns: []layout.TableColumn{
			{Header: "Metric"},
			{Header: "First Run", Width: 35, Align: "R"},
			{Header: "Last Run", Width: 35, Align: "R"},
			{Header: "Delta", Width: 25, Align: "R"},
		},
		Rows:  rows,
		Zebra: true,
	})
	return sec
}

func trendAnalysisSection(in *TrendInput) *layout.Section {
	sec := &layout.Section{Title: "Analysis"}
	sec.Add(
		summaryBlock("Trend Summary", in.Summary),
		summaryBlock("Threshold Breaches", in.Threshold),
		summaryBlock("Observations", in.Observations),
		summaryBlock("Root Cause", in.RootCause),
		summaryBlock("Recommendations", in.Recommendations),
	)
	return sec
}

// runGridSection is the visual per-run overview: one stat card per run.
func runGridSection(runs []Run) *layout.Section {
	cards := make([]layout.StatCard, len(runs))
	for i, run := range runs {
		title := run.Label
		if title == "" {
			title = fmt.Sprintf("RUN %d", i+1)
		}
		cards[i] = layout.StatCard{
			Title: title,
			Value: formatMillis(run.Stats.AvgLatency),
			Sub:   formatRate(run.Stats.Throughput),
			State: apdexState(run.Stats.Apdex.Score),
		}
	}

	sec := &layout.Section{Title: "Run Overview"}
	sec.Add(&layout.CardGrid{Cards: cards, Columns: 4})
	return sec
}

// runTableSection is the full data table of all analyzed runs.
func runTableSection(runs []Run) *layout.Section {
	rows := make([][]string, len(runs))
	for i, run := range runs {
		label := run.Label
		if label == "" {
			label = fmt.Sprintf("Run %d", i+1)
		}
		rows[i] = []string{
			label,
			run.Started.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", run.Stats.Requests),
			formatRate(run.Stats.Throughput),
			formatMillis(run.Stats.AvgLatency),
			formatPercent(run.Stats.ErrorRate()),
			fmt.Sprintf("%.3f", run.Stats.Apdex.Score),
		}
	}

	sec := &layout.Section{Title: "All Analyzed Runs"}
	sec.Add(&layout.Table{
		Columns: []layout.TableColumn{
			{Header: "Run"},
			{Header: "Date", Width: 30},
			{Header: "Requests", Width: 22, Align: "R"},
			{Header: "Throughput", Width: 26, Align: "R"},
			{Header: "Avg Latency", Width: 26, Align: "R"},
			{Header: "Errors", Width: 18, Align: "R"},
			{Header: "Apdex", Width: 16, Align: "R"},
		},
		Rows:  rows,
		Zebra: true,
	})
	return sec
}
