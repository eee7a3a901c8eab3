package loadreport

import "fmt"

// formatMillis renders a millisecond duration for display.
func formatMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	}
	return fmt.Sprintf("%.1f ms", ms)
}

// formatRate renders a throughput value.
func formatRate(rps float64) string {
	return fmt.Sprintf("%.1f req/s", rps)
}

// formatPercent renders a 0..1 fraction as a percentage.
func formatPercent(frac float64) string {
	return fmt.Sprintf("%.1f%%", frac*100)
}

// deltaPercent renders the signed relative change from first to last, e.g.
// "+50.0%" or "-20.0%". A zero baseline has no defined relative change.
func deltaPercent(first, last float64) string {
	if first == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", (last-first)/first*100)
}
