package loadreport

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/lvillar/loadreport/chartimg"
	"github.com/lvillar/loadreport/layout"
)

// Performance generates the single-run performance report and writes the
// finished PDF to w. The only suspension points are the chart captures,
// which are awaited one at a time; cancelling ctx abandons the in-flight
// document without writing anything.
func (g *Generator) Performance(ctx context.Context, w io.Writer, in *PerformanceInput) error {
	const op = "Performance"
	if in == nil {
		return newReportError(op, ErrNilInput)
	}
	if err := in.Stats.Validate(); err != nil {
		return newReportError(op, err)
	}

	d := g.newDocument(KindPerformance, in.Title, in.Date)
	if err := g.buildPerformance(ctx, d, in); err != nil {
		return newReportError(op, err)
	}
	if err := g.finish(d, w); err != nil {
		return newReportError(op, err)
	}
	return nil
}

func (g *Generator) buildPerformance(ctx context.Context, d *document, in *PerformanceInput) error {
	c := d.lay
	s := &in.Stats

	d.cover(c, []string{
		in.Config.Method + "  " + in.Config.TargetURL,
		fmt.Sprintf("%d concurrent clients over %s", in.Config.Concurrency, in.Config.Duration),
		fmt.Sprintf("%d requests, %s error rate", s.Requests, formatPercent(s.ErrorRate())),
	})
	c.NewPage()

	sections := []*layout.Section{
		configSection(in.Config),
		kpiSection(s),
		executiveSection(in),
	}
	for _, sec := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		sec.Draw(c)
	}

	// Deep-dive sections: each pairs an explanatory text block, an optional
	// structured summary and an embedded chart. Captures are sequential and
	// fail-soft.
	deepDives := []*layout.Section{
		g.timelineSection(ctx, in),
	}
	if s.Network != nil {
		deepDives = append(deepDives, g.networkSection(ctx, in))
	}
	deepDives = append(deepDives, g.latencySection(ctx, in))
	if s.Errors > 0 {
		deepDives = append(deepDives, g.errorSection(ctx, in))
	}

	for _, sec := range deepDives {
		if err := ctx.Err(); err != nil {
			return err
		}
		sec.Draw(c)
	}
	return nil
}

func configSection(cfg TestConfig) *layout.Section {
	sec := &layout.Section{Title: "Test Configuration"}
	sec.Add(&layout.Table{
		Columns: []layout.TableColumn{
			{Header: "Setting", Width: 50},
			{Header: "Value"},
		},
		Rows: [][]string{
			{"Target", cfg.Method + " " + cfg.TargetURL},
			{"Concurrency", fmt.Sprintf("%d clients", cfg.Concurrency)},
			{"Duration", cfg.Duration.String()},
			{"Ramp-up", cfg.RampUp.String()},
		},
	})
	if cfg.Notes != "" {
		sec.Add(&layout.TextBlock{Text: cfg.Notes, Accent: true})
	}
	return sec
}

func kpiSection(s *Stats) *layout.Section {
	apdexSub := fmt.Sprintf("%d sat / %d tol / %d fru",
		s.Apdex.Satisfied, s.Apdex.Tolerating, s.Apdex.Frustrated)

	sec := &layout.Section{Title: "Key Performance Indicators"}
	sec.Add(&layout.CardGrid{
		Columns: 3,
		Cards: []layout.StatCard{
			{Title: "THROUGHPUT", Value: formatRate(s.Throughput),
				Sub: fmt.Sprintf("%d requests total", s.Requests)},
			{Title: "AVG LATENCY", Value: formatMillis(s.AvgLatency),
				Sub: fmt.Sprintf("min %s / max %s", formatMillis(s.MinLatency), formatMillis(s.MaxLatency))},
			{Title: "ERROR RATE", Value: formatPercent(s.ErrorRate()),
				Sub:   fmt.Sprintf("%d of %d failed", s.Errors, s.Requests),
				State: errorRateState(s.ErrorRate())},
			{Title: "APDEX", Value: fmt.Sprintf("%.3f", s.Apdex.Score),
				Sub:   apdexSub,
				State: apdexState(s.Apdex.Score)},
			{Title: "CONSISTENCY", Value: fmt.Sprintf("CoV %.2f", s.CoV),
				Sub:   fmt.Sprintf("stddev %s", formatMillis(s.StdDev)),
				State: covState(s.CoV)},
		},
	})
	return sec
}

func executiveSection(in *PerformanceInput) *layout.Section {
	sec := &layout.Section{Title: "Executive Summary"}
	sec.Add(&layout.StructuredSummary{
		Title:      "Executive Summary",
		Analysis:   in.Executive.Analysis,
		Suggestion: in.Executive.Suggestion,
	})
	if len(in.Observations) > 0 {
		sec.Add(&layout.TextBlock{Text: "**Key Observations**", SpaceAfter: 1})
		for _, obs := range in.Observations {
			sec.Add(&layout.TextBlock{Text: "• " + obs, SpaceAfter: 1})
		}
	}
	if len(in.Recommendations) > 0 {
		sec.Add(&layout.Spacer{Height: 2})
		sec.Add(&layout.TextBlock{Text: "**Recommendations**", SpaceAfter: 1})
		for i, rec := range in.Recommendations {
			sec.Add(&layout.TextBlock{Text: fmt.Sprintf("%d. %s", i+1, rec), SpaceAfter: 1})
		}
	}
	return sec
}

func (g *Generator) timelineSection(ctx context.Context, in *PerformanceInput) *layout.Section {
	sec := &layout.Section{Title: "Response Time Timeline"}
	sec.Add(&layout.TextBlock{
		Text: "Response latency over the duration of the run. Sustained climbs " +
			"indicate saturation; short spikes usually map to garbage collection " +
			"or connection churn on the target.",
	})
	sec.Add(summaryBlock("Timeline Analysis", in.TimelineSummary))

	times := make([]chartimg.Series, 1)
	times[0].Name = "Latency"
	for _, smp := range in.Samples {
		times[0].Times = append(times[0].Times, smp.At)
		times[0].Y = append(times[0].Y, smp.Latency)
	}
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-timeline", chartimg.Spec{
		Title:  "Latency over time",
		YLabel: "ms",
		Kind:   chartimg.KindTimeline,
		Series: times,
	}))
	return sec
}

func (g *Generator) networkSection(ctx context.Context, in *PerformanceInput) *layout.Section {
	n := in.Stats.Network
	sec := &layout.Section{Title: "Network Timing"}
	sec.Add(&layout.TextBlock{
		Text: "Average time spent in each network phase. A dominant DNS or TLS " +
			"share points at infrastructure rather than application latency.",
	})
	sec.Add(summaryBlock("Network Analysis", in.NetworkSummary))
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-network", chartimg.Spec{
		Title:  "Network phases (avg)",
		YLabel: "ms",
		Kind:   chartimg.KindBars,
		Bars: []chartimg.Bar{
			{Label: "DNS", Value: n.DNS},
			{Label: "Connect", Value: n.Connect},
			{Label: "TLS", Value: n.TLS},
			{Label: "TTFB", Value: n.TTFB},
			{Label: "Download", Value: n.Download},
		},
	}))
	return sec
}

func (g *Generator) latencySection(ctx context.Context, in *PerformanceInput) *layout.Section {
	sec := &layout.Section{Title: "Latency Distribution"}
	sec.Add(&layout.TextBlock{
		Text: "Distribution of response times across the run. A long right tail " +
			"with a healthy average is the classic sign of an unstable dependency.",
	})
	sec.Add(summaryBlock("Distribution Analysis", in.LatencySummary))
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-latency", chartimg.Spec{
		Title:  "Latency distribution",
		YLabel: "samples",
		Kind:   chartimg.KindBars,
		Bars:   latencyBuckets(in.Samples, 8),
	}))
	return sec
}

func (g *Generator) errorSection(ctx context.Context, in *PerformanceInput) *layout.Section {
	s := &in.Stats
	sec := &layout.Section{Title: "Error Breakdown"}
	sec.Add(&layout.TextBlock{
		Text: fmt.Sprintf("%d of %d requests failed (%s).",
			s.Errors, s.Requests, formatPercent(s.ErrorRate())),
	})
	sec.Add(summaryBlock("Error Analysis", in.ErrorSummary))

	reasons := sortedReasons(s.ErrorReasons)
	var bars []chartimg.Bar
	var rows [][]string
	for _, r := range reasons {
		bars = append(bars, chartimg.Bar{Label: r.reason, Value: float64(r.count)})
		rows = append(rows, []string{
			r.reason,
			fmt.Sprintf("%d", r.count),
			formatPercent(float64(r.count) / float64(s.Errors)),
		})
	}
	sec.Add(chartimg.CaptureImage(ctx, g.cfg.raster, "chart-errors", chartimg.Spec{
		Title:  "Errors by reason",
		YLabel: "count",
		Kind:   chartimg.KindBars,
		Bars:   bars,
	}))
	if len(rows) > 0 {
		sec.Add(&layout.Table{
			Columns: []layout.TableColumn{
				{Header: "Reason"},
				{Header: "Count", Width: 30, Align: "R"},
				{Header: "Share", Width: 30, Align: "R"},
			},
			Rows:  rows,
			Zebra: true,
		})
	}
	return sec
}

// summaryBlock adapts a Summary union value into its block; an empty
// summary yields a block measuring zero.
func summaryBlock(title string, s Summary) *layout.StructuredSummary {
	return &layout.StructuredSummary{
		Title:      title,
		Analysis:   s.Analysis,
		Suggestion: s.Suggestion,
	}
}

// latencyBuckets bins sample latencies into count evenly sized buckets.
func latencyBuckets(samples []Sample, count int) []chartimg.Bar {
	if len(samples) == 0 || count <= 0 {
		return nil
	}
	min, max := samples[0].Latency, samples[0].Latency
	for _, s := range samples {
		if s.Latency < min {
			min = s.Latency
		}
		if s.Latency > max {
			max = s.Latency
		}
	}
	width := (max - min) / float64(count)
	if width <= 0 {
		return []chartimg.Bar{{Label: formatMillis(min), Value: float64(len(samples))}}
	}

	counts := make([]int, count)
	for _, s := range samples {
		i := int((s.Latency - min) / width)
		if i >= count {
			i = count - 1
		}
		counts[i]++
	}
	bars := make([]chartimg.Bar, count)
	for i, n := range counts {
		lo := min + float64(i)*width
		bars[i] = chartimg.Bar{
			Label: fmt.Sprintf("%.0f-%.0f", lo, lo+width),
			Value: float64(n),
		}
	}
	return bars
}

type reasonCount struct {
	reason string
	count  int64
}

// sortedReasons orders the error-reason map by descending count for stable
// chart and table output.
func sortedReasons(m map[string]int64) []reasonCount {
	out := make([]reasonCount, 0, len(m))
	for reason, count := range m {
		out = append(out, reasonCount{reason, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].reason < out[j].reason
	})
	return out
}
