package layout

import "strings"

// StructuredSummary renders a two-part prose panel produced by the
// summarization collaborator: a bold title, an "Analysis:" paragraph and,
// only when present, a divider rule followed by a "Suggestion:" paragraph.
//
// An absent analysis omits the whole block: Measure returns zero and no
// blank space is contributed.
type StructuredSummary struct {
	Title      string // panel title, defaults to "AI Analysis"
	Analysis   string
	Suggestion string
}

const (
	summaryPad        = 3.5
	summaryTitleSize  = 10.5
	summaryDividerGap = 2.5
)

func (s *StructuredSummary) title() string {
	if s.Title == "" {
		return "AI Analysis"
	}
	return s.Title
}

func (s *StructuredSummary) bodyFont(c *Context) FontSpec {
	f := c.body
	f.Size = 9.5
	return f
}

func (s *StructuredSummary) textWidth(c *Context) float64 {
	return c.ContentWidth() - 2*summaryPad
}

// Measure returns the panel height: title line plus both wrapped paragraphs
// plus fixed padding. Empty fields contribute zero height.
func (s *StructuredSummary) Measure(c *Context) float64 {
	if strings.TrimSpace(s.Analysis) == "" {
		return 0
	}
	f := s.bodyFont(c)
	w := s.textWidth(c)
	titleF := FontSpec{Family: f.Family, Style: "B", Size: summaryTitleSize}

	h := 2*summaryPad + c.LineHeight(titleF) + 1.5
	h += c.measureStyled(f, parseEmphasis("**Analysis:** "+s.Analysis), w)
	if strings.TrimSpace(s.Suggestion) != "" {
		h += 2*summaryDividerGap + c.measureStyled(f, parseEmphasis("**Suggestion:** "+s.Suggestion), w)
	}
	return h + defaultSpacing
}

// Draw renders the panel at the cursor position.
func (s *StructuredSummary) Draw(c *Context) {
	h := s.Measure(c)
	if h == 0 {
		return
	}
	c.EnsureSpace(h)

	f := s.bodyFont(c)
	w := s.textWidth(c)
	titleF := FontSpec{Family: f.Family, Style: "B", Size: summaryTitleSize}

	x := c.ContentLeft()
	y := c.pdf.GetY()
	panelH := h - defaultSpacing

	c.setFillColor(c.pal.Panel)
	c.setDrawColor(c.pal.Rule)
	c.pdf.SetLineWidth(0.2)
	c.pdf.Rect(x, y, c.ContentWidth(), panelH, "FD")

	tx := x + summaryPad
	ty := y + summaryPad

	c.setTextColor(c.pal.Brand)
	c.SetFont(titleF)
	c.pdf.Text(tx, ty+c.LineHeight(titleF)*0.78, s.title())
	ty += c.LineHeight(titleF) + 1.5

	c.setTextColor(c.pal.Text)
	ty = s.drawParagraph(c, f, "**Analysis:** "+s.Analysis, tx, ty, w)

	if strings.TrimSpace(s.Suggestion) != "" {
		ty += summaryDividerGap
		c.setDrawColor(c.pal.Rule)
		c.pdf.Line(tx, ty, x+c.ContentWidth()-summaryPad, ty)
		ty += summaryDividerGap
		s.drawParagraph(c, f, "**Suggestion:** "+s.Suggestion, tx, ty, w)
	}

	c.pdf.SetXY(c.ContentLeft(), y+panelH+defaultSpacing)
}

func (s *StructuredSummary) drawParagraph(c *Context, f FontSpec, text string, x, y, w float64) float64 {
	lines := c.wrapStyled(f, parseEmphasis(text), w)
	lineH := c.LineHeight(f)
	for i, line := range lines {
		c.drawStyledLine(f, line, x, y+float64(i)*lineH)
	}
	return y + float64(len(lines))*lineH
}
