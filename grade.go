package loadreport

import "github.com/lvillar/loadreport/layout"

// GradeForApdex maps an Apdex score to the letter grade used by the trend
// report's score card. The thresholds match the grading rubric shown in the
// card's legend.
func GradeForApdex(score float64) string {
	switch {
	case score >= 0.94:
		return "A"
	case score >= 0.85:
		return "B"
	case score >= 0.70:
		return "C"
	case score >= 0.50:
		return "D"
	default:
		return "F"
	}
}

// errorRateState classifies a 0..1 error-rate fraction for stat card
// coloring.
func errorRateState(frac float64) layout.State {
	switch {
	case frac > 0.05:
		return layout.StateCritical
	case frac > 0.01:
		return layout.StateWarning
	default:
		return layout.StatePositive
	}
}

// apdexState classifies an Apdex score for stat card coloring.
func apdexState(score float64) layout.State {
	switch GradeForApdex(score) {
	case "A", "B":
		return layout.StatePositive
	case "C":
		return layout.StateWarning
	default:
		return layout.StateCritical
	}
}

// covState classifies a coefficient of variation: lower is steadier.
func covState(cov float64) layout.State {
	switch {
	case cov < 0.3:
		return layout.StatePositive
	case cov < 0.6:
		return layout.StateWarning
	default:
		return layout.StateCritical
	}
}
