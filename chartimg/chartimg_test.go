package chartimg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"
)

func timelineSpec(points int) Spec {
	s := Series{Name: "latency"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < points; i++ {
		s.Times = append(s.Times, base.Add(time.Duration(i)*time.Second))
		s.Y = append(s.Y, 100+float64(i))
	}
	return Spec{Title: "Latency over time", YLabel: "ms", Kind: KindTimeline, Series: []Series{s}}
}

func TestRendererCaptureTimeline(t *testing.T) {
	r := NewRenderer()
	asset, err := r.Capture(context.Background(), timelineSpec(10))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(asset.PNG) == 0 {
		t.Fatal("empty PNG")
	}
	if asset.Width <= 0 || asset.Height <= 0 {
		t.Fatalf("bad intrinsic size %dx%d", asset.Width, asset.Height)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(asset.PNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != asset.Width || cfg.Height != asset.Height {
		t.Fatalf("reported size %dx%d, decoded %dx%d", asset.Width, asset.Height, cfg.Width, cfg.Height)
	}
}

func TestRendererCaptureBars(t *testing.T) {
	r := NewRenderer()
	asset, err := r.Capture(context.Background(), Spec{
		Title: "Errors by reason",
		Kind:  KindBars,
		Bars: []Bar{
			{Label: "timeout", Value: 12},
			{Label: "reset", Value: 5},
			{Label: "5xx", Value: 3},
		},
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(asset.PNG) == 0 {
		t.Fatal("empty PNG")
	}
}

func TestCaptureTooFewPoints(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Capture(context.Background(), timelineSpec(1)); err == nil {
		t.Fatal("expected error for a single-point series")
	}
	if _, err := r.Capture(context.Background(), Spec{Kind: KindBars}); err == nil {
		t.Fatal("expected error for a bar chart without bars")
	}
}

func TestCaptureCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRenderer().Capture(ctx, timelineSpec(10)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type failingRasterizer struct{}

func (failingRasterizer) Capture(context.Context, Spec) (*RasterAsset, error) {
	return nil, errors.New("renderer down")
}

type nilAssetRasterizer struct{}

func (nilAssetRasterizer) Capture(context.Context, Spec) (*RasterAsset, error) {
	return nil, nil
}

// Failed captures degrade to an image block that measures zero; they never
// propagate as document errors.
func TestCaptureImageFailSoft(t *testing.T) {
	ctx := context.Background()
	for name, r := range map[string]Rasterizer{
		"nil rasterizer": nil,
		"capture error":  failingRasterizer{},
		"nil asset":      nilAssetRasterizer{},
	} {
		im := CaptureImage(ctx, r, "chart", Spec{})
		if im == nil {
			t.Fatalf("%s: CaptureImage returned nil", name)
		}
		if len(im.PNG) != 0 {
			t.Fatalf("%s: expected empty asset", name)
		}
	}
}

func TestCaptureImageSuccess(t *testing.T) {
	im := CaptureImage(context.Background(), NewRenderer(), "chart-tl", timelineSpec(5))
	if len(im.PNG) == 0 {
		t.Fatal("expected a rendered asset")
	}
	if im.SrcW <= 0 || im.SrcH <= 0 {
		t.Fatalf("missing intrinsic size %dx%d", im.SrcW, im.SrcH)
	}
	if im.MaxHeight <= 0 {
		t.Fatal("embedded charts carry a height cap")
	}
}

func TestDownscale(t *testing.T) {
	wide := encodePNG(t, 2000, 500)
	out, err := downscale(&RasterAsset{PNG: wide, Width: 2000, Height: 500}, maxRasterWidth)
	if err != nil {
		t.Fatalf("downscale: %v", err)
	}
	if out.Width != maxRasterWidth {
		t.Fatalf("width = %d, want %d", out.Width, maxRasterWidth)
	}
	if out.Height != 500*maxRasterWidth/2000 {
		t.Fatalf("height = %d, aspect ratio not preserved", out.Height)
	}

	small := &RasterAsset{PNG: []byte("untouched"), Width: 800, Height: 300}
	out, err = downscale(small, maxRasterWidth)
	if err != nil {
		t.Fatalf("downscale passthrough: %v", err)
	}
	if out != small {
		t.Fatal("assets within the cap must pass through unchanged")
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}
