package loadreport

import "testing"

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0 ms"},
		{123.45, "123.5 ms"},
		{999.94, "999.9 ms"},
		{1000, "1.00 s"},
		{2345, "2.35 s"},
	}
	for _, tt := range tests {
		if got := formatMillis(tt.in); got != tt.want {
			t.Errorf("formatMillis(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0.05); got != "5.0%" {
		t.Errorf("formatPercent(0.05) = %q", got)
	}
	if got := formatRate(50); got != "50.0 req/s" {
		t.Errorf("formatRate(50) = %q", got)
	}
}

func TestDeltaPercent(t *testing.T) {
	tests := []struct {
		first, last float64
		want        string
	}{
		{120, 180, "+50.0%"},
		{50, 40, "-20.0%"},
		{100, 100, "+0.0%"},
		{0, 10, "n/a"},
	}
	for _, tt := range tests {
		if got := deltaPercent(tt.first, tt.last); got != tt.want {
			t.Errorf("deltaPercent(%v, %v) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestGradeForApdex(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.97, "A"}, {0.94, "A"},
		{0.90, "B"}, {0.85, "B"},
		{0.75, "C"}, {0.70, "C"},
		{0.60, "D"}, {0.50, "D"},
		{0.30, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeForApdex(tt.score); got != tt.want {
			t.Errorf("GradeForApdex(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
