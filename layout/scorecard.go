package layout

import "strings"

// ScoreCard is the grade block: a single grade glyph inside a ringed circle,
// colored by a fixed grade-to-color mapping, a rationale panel beside it and
// a five-cell legend row describing the rubric. The card is measured as one
// fixed-height unit; the rationale is defensively wrapped and clipped to the
// panel rather than growing the card.
type ScoreCard struct {
	Grade     string // "A".."F", optionally with a +/- suffix
	Rationale string
}

const (
	scoreCardHeight    = 58.0
	scoreRingRadius    = 14.0
	scoreLegendHeight  = 10.0
	scoreRationalePadX = 4.0
)

// legendCell is one cell of the fixed grading rubric legend.
type legendCell struct {
	grade string
	label string
}

// scoreLegend is the fixed five-cell rubric row. It does not vary with the
// graded content.
var scoreLegend = [5]legendCell{
	{"A", "Excellent"},
	{"B", "Good"},
	{"C", "Acceptable"},
	{"D", "Degraded"},
	{"F", "Failing"},
}

// GradeColor maps a letter grade to its fixed color. Unknown grades render
// in the muted color.
func GradeColor(grade string, pal Palette) RGBColor {
	switch strings.TrimRight(strings.ToUpper(grade), "+-") {
	case "A":
		return pal.Positive
	case "B":
		return RGBColor{121, 188, 75}
	case "C":
		return pal.Warning
	case "D":
		return RGBColor{230, 126, 34}
	case "F":
		return pal.Critical
	default:
		return pal.Muted
	}
}

// Measure returns the fixed card height; an empty grade omits the card.
func (s *ScoreCard) Measure(c *Context) float64 {
	if strings.TrimSpace(s.Grade) == "" {
		return 0
	}
	return scoreCardHeight + defaultSpacing
}

// Draw renders the card at the cursor position.
func (s *ScoreCard) Draw(c *Context) {
	if s.Measure(c) == 0 {
		return
	}
	c.EnsureSpace(scoreCardHeight + defaultSpacing)

	x := c.ContentLeft()
	y := c.pdf.GetY()
	w := c.ContentWidth()
	gradeCol := GradeColor(s.Grade, c.pal)

	c.setFillColor(c.pal.Panel)
	c.setDrawColor(c.pal.Rule)
	c.pdf.SetLineWidth(0.2)
	c.pdf.RoundedRect(x, y, w, scoreCardHeight, 2, "1234", "FD")

	// Grade ring with the glyph centered inside.
	ringCX := x + scoreRingRadius + 8
	ringCY := y + (scoreCardHeight-scoreLegendHeight)/2
	c.setDrawColor(gradeCol)
	c.pdf.SetLineWidth(1.6)
	c.pdf.Circle(ringCX, ringCY, scoreRingRadius, "D")
	c.pdf.SetLineWidth(0.2)

	c.SetFont(FontSpec{Family: c.body.Family, Style: "B", Size: 30})
	c.setTextColor(gradeCol)
	glyphW := c.pdf.GetStringWidth(s.Grade)
	c.pdf.Text(ringCX-glyphW/2, ringCY+4.2, s.Grade)

	// Rationale panel to the right of the ring.
	panelX := ringCX + scoreRingRadius + 8
	panelW := x + w - scoreRationalePadX - panelX
	f := c.body
	f.Size = 9
	lineH := c.LineHeight(f)
	maxLines := int((scoreCardHeight - scoreLegendHeight - 10) / lineH)

	c.setTextColor(c.pal.Text)
	lines := c.wrapStyled(f, parseEmphasis(s.Rationale), panelW)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		lines[maxLines-1] = append(append([]styledRune{}, last...),
			styledRune{r: '…'})
	}
	ty := y + 6
	for i, line := range lines {
		c.drawStyledLine(f, line, panelX, ty+float64(i)*lineH)
	}

	// Fixed rubric legend along the bottom edge.
	legendY := y + scoreCardHeight - scoreLegendHeight - 2
	cellW := (w - 2*scoreRationalePadX) / float64(len(scoreLegend))
	for i, cell := range scoreLegend {
		cx := x + scoreRationalePadX + float64(i)*cellW
		col := GradeColor(cell.grade, c.pal)
		c.setFillColor(col)
		c.pdf.Circle(cx+3, legendY+scoreLegendHeight/2, 1.6, "F")

		c.SetFont(FontSpec{Family: c.body.Family, Style: "B", Size: 7})
		c.setTextColor(c.pal.Text)
		c.pdf.SetXY(cx+6, legendY+scoreLegendHeight/2-2)
		c.pdf.CellFormat(cellW-6, 4, cell.grade+"  "+cell.label, "", 0, "L", false, 0, "")
	}

	c.setTextColor(c.pal.Text)
	c.pdf.SetXY(c.ContentLeft(), y+scoreCardHeight+defaultSpacing)
}
