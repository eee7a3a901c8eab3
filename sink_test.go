package loadreport

import (
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	date := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		kind  Kind
		title string
		want  string
	}{
		{KindPerformance, "Checkout Flow", "Performance_Checkout_Flow_2026-03-01.pdf"},
		{KindTrend, "Nightly API", "TrendAnalysis_Nightly_API_2026-03-01.pdf"},
		{KindComparison, "v1.4 vs v1.5", "Comparison_v1.4_vs_v1.5_2026-03-01.pdf"},
		{KindPerformance, "  spaced  out  ", "Performance_spaced__out_2026-03-01.pdf"},
		{KindPerformance, "p/a\\t?h*", "Performance_path_2026-03-01.pdf"},
		{KindPerformance, "///", "Performance_Report_2026-03-01.pdf"},
		{KindPerformance, "", "Performance_Report_2026-03-01.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.kind, tt.title, date); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.kind, tt.title, got, tt.want)
		}
	}
}

func TestKindLabels(t *testing.T) {
	if KindPerformance.label() != "Performance Report" {
		t.Error("performance label")
	}
	if KindTrend.label() != "Trend Analysis Report" {
		t.Error("trend label")
	}
	if KindComparison.label() != "Run Comparison Report" {
		t.Error("comparison label")
	}
}
