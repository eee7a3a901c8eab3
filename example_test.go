package loadreport_test

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/lvillar/loadreport"
)

func ExampleFilename() {
	date := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	fmt.Println(loadreport.Filename(loadreport.KindPerformance, "Checkout Flow", date))
	fmt.Println(loadreport.Filename(loadreport.KindTrend, "Nightly API", date))
	// Output:
	// Performance_Checkout_Flow_2026-03-01.pdf
	// TrendAnalysis_Nightly_API_2026-03-01.pdf
}

func ExampleGenerator_Performance() {
	gen := loadreport.NewGenerator(
		loadreport.WithAuthor("QA Team"),
		loadreport.WithRasterizer(nil), // text-only report, no chart captures
	)

	in := &loadreport.PerformanceInput{
		Title: "Checkout Flow",
		Date:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Config: loadreport.TestConfig{
			TargetURL:   "https://api.example.com/checkout",
			Method:      "POST",
			Concurrency: 50,
			Duration:    2 * time.Minute,
		},
		Stats: loadreport.Stats{
			Throughput: 50,
			AvgLatency: 120,
			MinLatency: 40,
			MaxLatency: 900,
			Apdex:      loadreport.Apdex{Score: 0.95},
			Requests:   1000,
			Successes:  1000,
		},
		Executive: loadreport.Summary{Analysis: "Throughput held steady."},
	}

	var buf bytes.Buffer
	err := gen.Performance(context.Background(), &buf, in)
	fmt.Println(err == nil, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Output: true true
}

func ExampleGradeForApdex() {
	fmt.Println(loadreport.GradeForApdex(0.97))
	fmt.Println(loadreport.GradeForApdex(0.72))
	fmt.Println(loadreport.GradeForApdex(0.31))
	// Output:
	// A
	// C
	// F
}
