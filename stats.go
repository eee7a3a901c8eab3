package loadreport

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Stats is the value object produced by the statistics collaborator for one
// load-test run. Latencies and network phases are in milliseconds.
type Stats struct {
	Throughput float64 `json:"throughput"` // requests per second
	AvgLatency float64 `json:"avgLatency"`
	MinLatency float64 `json:"minLatency"`
	MaxLatency float64 `json:"maxLatency"`
	StdDev     float64 `json:"stdDev"`
	CoV        float64 `json:"cov"` // coefficient of variation

	Apdex Apdex `json:"apdex"`

	Requests  int64 `json:"requests"`
	Successes int64 `json:"successes"`
	Errors    int64 `json:"errors"`

	ErrorReasons map[string]int64 `json:"errorReasons,omitempty"`

	// Network holds average per-phase timings when the execution engine
	// recorded them; nil otherwise.
	Network *NetworkTimings `json:"network,omitempty"`
}

// Apdex is the application performance index score with its three-way split.
type Apdex struct {
	Score      float64 `json:"score"` // 0..1
	Satisfied  int64   `json:"satisfied"`
	Tolerating int64   `json:"tolerating"`
	Frustrated int64   `json:"frustrated"`
}

// NetworkTimings are average network-phase durations in milliseconds.
type NetworkTimings struct {
	DNS      float64 `json:"dns"`
	Connect  float64 `json:"connect"`
	TLS      float64 `json:"tls"`
	TTFB     float64 `json:"ttfb"`
	Download float64 `json:"download"`
}

// ErrorRate returns the fraction of failed requests, 0..1.
func (s *Stats) ErrorRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Requests)
}

// Validate checks the required numeric fields. A failure here is the fatal
// class: the whole export aborts, since a report built on invalid core
// statistics is worse than no report.
func (s *Stats) Validate() error {
	if s == nil {
		return ErrNoStats
	}
	switch {
	case s.Requests <= 0:
		return fmt.Errorf("%w: request count %d", ErrMalformedStats, s.Requests)
	case s.Errors < 0 || s.Errors > s.Requests:
		return fmt.Errorf("%w: error count %d of %d requests", ErrMalformedStats, s.Errors, s.Requests)
	case !isFiniteNonNegative(s.Throughput):
		return fmt.Errorf("%w: throughput %v", ErrMalformedStats, s.Throughput)
	case !isFiniteNonNegative(s.AvgLatency),
		!isFiniteNonNegative(s.MinLatency),
		!isFiniteNonNegative(s.MaxLatency),
		!isFiniteNonNegative(s.StdDev):
		return fmt.Errorf("%w: latency statistics", ErrMalformedStats)
	case s.MinLatency > s.MaxLatency:
		return fmt.Errorf("%w: min latency %v exceeds max %v", ErrMalformedStats, s.MinLatency, s.MaxLatency)
	case math.IsNaN(s.Apdex.Score) || s.Apdex.Score < 0 || s.Apdex.Score > 1:
		return fmt.Errorf("%w: apdex score %v", ErrMalformedStats, s.Apdex.Score)
	}
	return nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Summary is a prose field from the summarization collaborator. On the wire
// it is either absent, a plain string, or an {analysis, suggestion} pair;
// all three shapes decode into the same value. An empty analysis means the
// summary is absent and its block is omitted.
type Summary struct {
	Analysis   string `json:"analysis"`
	Suggestion string `json:"suggestion,omitempty"`
}

// UnmarshalJSON accepts null, a JSON string, or an object with analysis and
// optional suggestion fields.
func (s *Summary) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = Summary{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*s = Summary{Analysis: plain}
		return nil
	}
	type summaryAlias Summary
	var a summaryAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Summary(a)
	return nil
}

// Empty reports whether the summary carries no analysis.
func (s Summary) Empty() bool {
	return strings.TrimSpace(s.Analysis) == ""
}

// Sample is one point of the per-run timeline recorded during execution.
type Sample struct {
	At         time.Time `json:"at"`
	Latency    float64   `json:"latency"` // milliseconds
	Throughput float64   `json:"throughput"`
}

// TestConfig describes how the run was executed.
type TestConfig struct {
	TargetURL   string        `json:"targetUrl"`
	Method      string        `json:"method"`
	Concurrency int           `json:"concurrency"`
	Duration    time.Duration `json:"duration"`
	RampUp      time.Duration `json:"rampUp"`
	Notes       string        `json:"notes,omitempty"`
}

// Run is one analyzed load-test run.
type Run struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Started time.Time `json:"started"`
	Stats   Stats     `json:"stats"`
}

// PerformanceInput drives the performance report template.
type PerformanceInput struct {
	Title   string     `json:"title"`
	Date    time.Time  `json:"date"`
	Config  TestConfig `json:"config"`
	Stats   Stats      `json:"stats"`
	Samples []Sample   `json:"samples,omitempty"`

	// Prose from the summarization collaborator; each field is optional.
	Executive       Summary  `json:"executive,omitempty"`
	Observations    []string `json:"observations,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	TimelineSummary Summary  `json:"timelineSummary,omitempty"`
	NetworkSummary  Summary  `json:"networkSummary,omitempty"`
	LatencySummary  Summary  `json:"latencySummary,omitempty"`
	ErrorSummary    Summary  `json:"errorSummary,omitempty"`
}

// TrendInput drives the trend-analysis report template. Runs are expected
// in chronological order; the degradation table contrasts the first and
// last entries.
type TrendInput struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Runs  []Run     `json:"runs"`

	Grade          string `json:"grade,omitempty"` // "A".."F"; empty omits the score card
	GradeRationale string `json:"gradeRationale,omitempty"`

	Summary         Summary `json:"summary,omitempty"`
	Threshold       Summary `json:"threshold,omitempty"`
	Observations    Summary `json:"observations,omitempty"`
	RootCause       Summary `json:"rootCause,omitempty"`
	Recommendations Summary `json:"recommendations,omitempty"`
}

// ComparisonInput drives the run-comparison report template.
type ComparisonInput struct {
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Base      Run       `json:"base"`
	Candidate Run       `json:"candidate"`

	KeyChanges      []string `json:"keyChanges,omitempty"`
	RootCause       Summary  `json:"rootCause,omitempty"`
	Recommendations Summary  `json:"recommendations,omitempty"`
}
