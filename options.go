package loadreport

import (
	"github.com/lvillar/loadreport/chartimg"
	"github.com/lvillar/loadreport/layout"
)

// Option is a functional option for configuring a Generator.
type Option func(*generatorConfig)

type generatorConfig struct {
	pageSize    string
	orientation string
	margin      layout.Margin
	font        layout.FontSpec
	palette     layout.Palette
	author      string
	raster      chartimg.Rasterizer
	appendix    string
}

func defaultConfig() generatorConfig {
	return generatorConfig{
		pageSize:    "A4",
		orientation: "P",
		margin:      layout.Margin{Top: 20, Right: 15, Bottom: 20, Left: 15},
		font:        layout.FontSpec{Family: "Helvetica", Size: 10.5},
		palette:     layout.DefaultPalette(),
		raster:      chartimg.NewRenderer(),
	}
}

// WithPageSize sets the page size by name ("A4", "Letter", "Legal").
func WithPageSize(size string) Option {
	return func(c *generatorConfig) {
		c.pageSize = size
	}
}

// WithOrientation sets the page orientation: "P" (portrait) or "L"
// (landscape).
func WithOrientation(orientation string) Option {
	return func(c *generatorConfig) {
		c.orientation = orientation
	}
}

// WithMargins sets the page margins in millimeters.
func WithMargins(top, right, bottom, left float64) Option {
	return func(c *generatorConfig) {
		c.margin = layout.Margin{Top: top, Right: right, Bottom: bottom, Left: left}
	}
}

// WithFont sets the body font family and size.
func WithFont(family string, size float64) Option {
	return func(c *generatorConfig) {
		c.font = layout.FontSpec{Family: family, Size: size}
	}
}

// WithBrandColor overrides the accent color used for the cover, section
// rules and table headers.
func WithBrandColor(r, g, b int) Option {
	return func(c *generatorConfig) {
		c.palette.Brand = layout.RGBColor{R: r, G: g, B: b}
	}
}

// WithAuthor sets the document author recorded in the PDF metadata.
func WithAuthor(author string) Option {
	return func(c *generatorConfig) {
		c.author = author
	}
}

// WithRasterizer replaces the chart-rasterization collaborator. Passing nil
// disables chart embedding; every chart block is then omitted.
func WithRasterizer(r chartimg.Rasterizer) Option {
	return func(c *generatorConfig) {
		c.raster = r
	}
}

// WithAppendix attaches the pages of an existing PDF file (a test plan, an
// SLA document) after the generated report body.
func WithAppendix(path string) Option {
	return func(c *generatorConfig) {
		c.appendix = path
	}
}

// NewGenerator creates a report generator using functional options. If no
// options are specified, defaults to portrait A4 with the in-process chart
// renderer.
func NewGenerator(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{cfg: cfg}
}
