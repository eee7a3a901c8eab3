package layout

import "strings"

// TextBlock renders wrapped prose. Text may contain **emphasis** runs; see
// richtext.go for the wrapping contract. An empty (or whitespace-only) text
// measures zero and is omitted.
type TextBlock struct {
	Text   string
	Font   FontSpec  // zero value: context body font
	Color  *RGBColor // nil: palette text color
	Accent bool      // left accent bar, quote style
	Panel  bool      // filled background panel

	// SpaceAfter is the gap below the block. Zero means the default;
	// negative suppresses the gap.
	SpaceAfter float64
}

const (
	textPanelPad   = 3.0
	textAccentBar  = 1.2
	textAccentGap  = 3.0
	defaultSpacing = 2.0
)

func (t *TextBlock) font(c *Context) FontSpec {
	f := t.Font
	if f.Family == "" {
		f.Family = c.body.Family
	}
	if f.Size <= 0 {
		f.Size = c.body.Size
	}
	return f
}

func (t *TextBlock) spaceAfter() float64 {
	if t.SpaceAfter < 0 {
		return 0
	}
	if t.SpaceAfter == 0 {
		return defaultSpacing
	}
	return t.SpaceAfter
}

func (t *TextBlock) textWidth(c *Context) float64 {
	w := c.ContentWidth()
	if t.Panel {
		w -= 2 * textPanelPad
	}
	if t.Accent {
		w -= textAccentBar + textAccentGap
	}
	return w
}

// Measure returns the height Draw will consume for the current content
// width, without moving the cursor.
func (t *TextBlock) Measure(c *Context) float64 {
	if strings.TrimSpace(t.Text) == "" {
		return 0
	}
	h := c.measureStyled(t.font(c), parseEmphasis(t.Text), t.textWidth(c))
	if t.Panel {
		h += 2 * textPanelPad
	}
	return h + t.spaceAfter()
}

// Draw renders the block at the cursor position.
func (t *TextBlock) Draw(c *Context) {
	h := t.Measure(c)
	if h == 0 {
		return
	}
	c.EnsureSpace(h)

	f := t.font(c)
	rs := parseEmphasis(t.Text)
	lines := c.wrapStyled(f, rs, t.textWidth(c))
	lineH := c.LineHeight(f)

	x := c.ContentLeft()
	y := c.pdf.GetY()
	textH := float64(len(lines)) * lineH
	boxH := textH
	if t.Panel {
		boxH += 2 * textPanelPad
		c.setFillColor(c.pal.Panel)
		c.pdf.Rect(x, y, c.ContentWidth(), boxH, "F")
	}
	if t.Accent {
		c.setFillColor(c.pal.Brand)
		c.pdf.Rect(x, y, textAccentBar, boxH, "F")
		x += textAccentBar + textAccentGap
	}

	textY := y
	if t.Panel {
		x += textPanelPad
		textY += textPanelPad
	}

	if t.Color != nil {
		c.setTextColor(*t.Color)
	} else {
		c.setTextColor(c.pal.Text)
	}
	for i, line := range lines {
		c.drawStyledLine(f, line, x, textY+float64(i)*lineH)
	}

	c.setTextColor(c.pal.Text)
	c.pdf.SetXY(c.ContentLeft(), y+boxH+t.spaceAfter())
}
