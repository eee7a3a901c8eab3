// Package layout implements the paginated layout engine used by the report
// templates. It owns the write cursor, the page-break decision, and one
// measure/draw pair per block kind.
//
// All drawing state (page geometry, margins, fonts, palette) is carried
// explicitly by a Context threaded through every renderer call; no renderer
// relies on ambient PDF state beyond the cursor position the Context manages.
package layout

import (
	"github.com/go-pdf/fpdf"
)

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Margin defines the page margins enclosing the content rectangle.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Palette holds the colors shared by all block renderers.
type Palette struct {
	Brand    RGBColor // accents, section rules, header text
	Text     RGBColor // primary text
	Muted    RGBColor // secondary text
	Rule     RGBColor // divider lines, card borders
	Panel    RGBColor // filled panel backgrounds
	Positive RGBColor
	Warning  RGBColor
	Critical RGBColor
}

// DefaultPalette is the palette used when none is supplied.
func DefaultPalette() Palette {
	return Palette{
		Brand:    RGBColor{30, 58, 95},
		Text:     RGBColor{44, 62, 80},
		Muted:    RGBColor{127, 140, 141},
		Rule:     RGBColor{220, 220, 220},
		Panel:    RGBColor{248, 249, 250},
		Positive: RGBColor{46, 204, 113},
		Warning:  RGBColor{241, 196, 15},
		Critical: RGBColor{231, 76, 60},
	}
}

// Block is the smallest independently measured and drawn unit of report
// content. Measure is pure: it computes the vertical extent Draw will consume
// for the current content width without touching the cursor. A Measure of
// zero means the block is omitted entirely and Draw must not be called.
type Block interface {
	Measure(c *Context) float64
	Draw(c *Context)
}

// keepTogether is implemented by blocks that break internally (tables): the
// section placement logic keeps only KeepHeight with the section header
// instead of the full measured height.
type keepTogether interface {
	KeepHeight(c *Context) float64
}

// Context is the render context threaded through every measurement and
// drawing call. It wraps the PDF document and owns the cursor: the current
// page and the monotonically increasing y position within it.
type Context struct {
	pdf    *fpdf.Fpdf
	pageW  float64
	pageH  float64
	margin Margin
	body   FontSpec
	pal    Palette
}

// NewContext creates a render context for a prepared document. The document
// must already have auto page breaks disabled; the Context is the only
// page-break decision point.
func NewContext(pdf *fpdf.Fpdf, margin Margin, body FontSpec, pal Palette) *Context {
	w, h := pdf.GetPageSize()
	return &Context{
		pdf:    pdf,
		pageW:  w,
		pageH:  h,
		margin: margin,
		body:   body,
		pal:    pal,
	}
}

// PDF exposes the underlying document for the output sink's final pass.
func (c *Context) PDF() *fpdf.Fpdf { return c.pdf }

// BodyFont returns the default body font.
func (c *Context) BodyFont() FontSpec { return c.body }

// Palette returns the shared palette.
func (c *Context) Palette() Palette { return c.pal }

// ContentWidth returns the width of the content rectangle.
func (c *Context) ContentWidth() float64 {
	return c.pageW - c.margin.Left - c.margin.Right
}

// ContentHeight returns the height of the content rectangle.
func (c *Context) ContentHeight() float64 {
	return c.pageH - c.margin.Top - c.margin.Bottom
}

// ContentLeft returns the x coordinate of the content rectangle's left edge.
func (c *Context) ContentLeft() float64 { return c.margin.Left }

// ContentTop returns the y coordinate of the content rectangle's top edge.
func (c *Context) ContentTop() float64 { return c.margin.Top }

// ContentBottom returns the y coordinate of the content rectangle's bottom
// edge. No block may draw below it except the documented oversized-block
// overflow case.
func (c *Context) ContentBottom() float64 { return c.pageH - c.margin.Bottom }

// Y returns the cursor's current vertical position.
func (c *Context) Y() float64 { return c.pdf.GetY() }

// Remaining returns the vertical space left on the current page.
func (c *Context) Remaining() float64 {
	return c.ContentBottom() - c.pdf.GetY()
}

// NewPage advances the cursor to the top of a fresh page.
func (c *Context) NewPage() {
	c.pdf.AddPage()
	c.pdf.SetXY(c.margin.Left, c.margin.Top)
}

// EnsureSpace guarantees at least h units of vertical space before the
// bottom margin, advancing to a new page if the current one cannot provide
// it. It is a no-op when the space is already available.
//
// A block taller than one full content page is not split: it is placed at
// the top of a fresh page and allowed to overflow past the bottom margin.
func (c *Context) EnsureSpace(h float64) {
	if h > c.ContentHeight() {
		// Oversized block: start it on a fresh page unless the cursor is
		// already at the top of one.
		if c.pdf.GetY() > c.margin.Top {
			c.NewPage()
		}
		return
	}
	if c.Remaining() < h {
		c.NewPage()
	}
}

// SetFont applies f to the underlying document.
func (c *Context) SetFont(f FontSpec) {
	if f.Family == "" {
		f.Family = c.body.Family
	}
	if f.Size <= 0 {
		f.Size = c.body.Size
	}
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

// LineHeight returns the line advance for a font, in page units.
func (c *Context) LineHeight(f FontSpec) float64 {
	size := f.Size
	if size <= 0 {
		size = c.body.Size
	}
	return size * 0.5
}

func (c *Context) setTextColor(col RGBColor) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

func (c *Context) setFillColor(col RGBColor) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
}

func (c *Context) setDrawColor(col RGBColor) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
}
