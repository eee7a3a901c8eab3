package chartimg

import (
	"bytes"
	"context"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Renderer is the in-process Rasterizer built on go-chart.
type Renderer struct {
	Width  int // raster width in pixels
	Height int // raster height in pixels
}

// NewRenderer creates a Renderer with the default raster size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 1200, Height: 480}
}

var seriesColors = []drawing.Color{
	{R: 52, G: 152, B: 219, A: 255},
	{R: 46, G: 204, B: 113, A: 255},
	{R: 231, G: 76, B: 60, A: 255},
	{R: 241, G: 196, B: 15, A: 255},
}

// Capture renders the chart described by spec to a PNG raster asset. Charts
// with too little data to plot return an error, which callers treat as "no
// image". A panic inside the chart library is converted to an error for the
// same reason.
func (r *Renderer) Capture(ctx context.Context, spec Spec) (asset *RasterAsset, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			asset, err = nil, fmt.Errorf("chartimg: render %q: %v", spec.Title, rec)
		}
	}()

	var buf bytes.Buffer
	switch spec.Kind {
	case KindBars:
		err = r.renderBars(spec, &buf)
	default:
		err = r.renderLines(spec, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("chartimg: render %q: %w", spec.Title, err)
	}

	asset = &RasterAsset{PNG: buf.Bytes(), Width: r.Width, Height: r.Height}
	return downscale(asset, maxRasterWidth)
}

func (r *Renderer) renderLines(spec Spec, buf *bytes.Buffer) error {
	var series []chart.Series
	for i, s := range spec.Series {
		style := chart.Style{
			StrokeColor: seriesColors[i%len(seriesColors)],
			StrokeWidth: 2.0,
		}
		if spec.Kind == KindTimeline {
			if len(s.Times) < 2 {
				continue
			}
			series = append(series, chart.TimeSeries{
				Name:    s.Name,
				XValues: s.Times,
				YValues: s.Y,
				Style:   style,
			})
		} else {
			if len(s.X) < 2 {
				continue
			}
			series = append(series, chart.ContinuousSeries{
				Name:    s.Name,
				XValues: s.X,
				YValues: s.Y,
				Style:   style,
			})
		}
	}
	if len(series) == 0 {
		return fmt.Errorf("no plottable series")
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 12},
		},
		YAxis:  chart.YAxis{Name: spec.YLabel},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, buf)
}

func (r *Renderer) renderBars(spec Spec, buf *bytes.Buffer) error {
	if len(spec.Bars) == 0 {
		return fmt.Errorf("no bars")
	}
	values := make([]chart.Value, len(spec.Bars))
	for i, b := range spec.Bars {
		values[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: seriesColors[i%len(seriesColors)]},
		}
	}
	graph := chart.BarChart{
		Title:    spec.Title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: barWidth(r.Width, len(values)),
		Background: chart.Style{
			Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 12},
		},
		YAxis: chart.YAxis{Name: spec.YLabel},
		Bars:  values,
	}
	return graph.Render(chart.PNG, buf)
}

func barWidth(rasterWidth, bars int) int {
	w := rasterWidth / (2 * bars)
	if w > 80 {
		w = 80
	}
	if w < 10 {
		w = 10
	}
	return w
}
