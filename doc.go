// Package loadreport generates print-ready PDF reports from load-test
// analytics: a performance report for a single run, a trend-analysis report
// across runs, and a run-comparison report.
//
// The package is a library; it exposes no network surface. A Generator is
// configured once with functional options and builds one document per call:
//
//	gen := loadreport.NewGenerator(
//	    loadreport.WithAuthor("perf-ci"),
//	)
//	var buf bytes.Buffer
//	err := gen.Performance(ctx, &buf, input)
//
// Document construction is sequential: sections are measured and placed one
// block at a time through the layout engine in package layout, and chart
// snapshots are captured one at a time through package chartimg. A failed
// capture or an absent prose field omits its block; only malformed core
// statistics abort a build.
package loadreport
