// Package chartimg turns chart descriptions into raster assets ready for
// embedding in a report. The Rasterizer interface is the seam to the
// chart-rendering collaborator; the in-process implementation in this
// package renders with go-chart.
//
// Captures are fail-soft: a capture that errors produces no image, never a
// document-build failure, and is not retried. A stale or partial snapshot
// is worse than no snapshot.
package chartimg

import (
	"context"
	"time"

	"github.com/lvillar/loadreport/layout"
)

// Kind selects the chart shape.
type Kind int

const (
	// KindTimeline plots one or more time series.
	KindTimeline Kind = iota
	// KindTrend plots series over a numeric x axis (run index).
	KindTrend
	// KindBars plots labeled value bars (histograms, breakdowns).
	KindBars
)

// Series is one plotted line.
type Series struct {
	Name  string
	Times []time.Time // timeline x values
	X     []float64   // trend x values
	Y     []float64
}

// Bar is one labeled bar.
type Bar struct {
	Label string
	Value float64
}

// Spec describes a chart to capture.
type Spec struct {
	Title  string
	YLabel string
	Kind   Kind
	Series []Series
	Bars   []Bar
}

// RasterAsset is a pixel-buffer snapshot with its intrinsic dimensions,
// used to preserve aspect ratio when the asset is scaled to content width.
type RasterAsset struct {
	PNG    []byte
	Width  int
	Height int
}

// Rasterizer captures chart snapshots. Capture may suspend (it performs
// off-screen rendering work); callers await each capture in place and run
// captures for one document sequentially.
type Rasterizer interface {
	Capture(ctx context.Context, spec Spec) (*RasterAsset, error)
}

// CaptureImage requests a snapshot and converts it into a width-constrained,
// height-preserving image block. On any failure it returns an empty block
// that measures zero, so the surrounding section simply omits it.
func CaptureImage(ctx context.Context, r Rasterizer, name string, spec Spec) *layout.Image {
	if r == nil {
		return &layout.Image{Name: name}
	}
	asset, err := r.Capture(ctx, spec)
	if err != nil || asset == nil || len(asset.PNG) == 0 {
		return &layout.Image{Name: name}
	}
	return &layout.Image{
		Name:      name,
		PNG:       asset.PNG,
		SrcW:      asset.Width,
		SrcH:      asset.Height,
		MaxHeight: 110,
	}
}
