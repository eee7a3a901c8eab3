package layout

// State classifies a stat card's value. It drives the value's color only,
// never the card layout.
type State int

const (
	StateNeutral State = iota
	StatePositive
	StateWarning
	StateCritical
)

func (s State) color(pal Palette) RGBColor {
	switch s {
	case StatePositive:
		return pal.Positive
	case StateWarning:
		return pal.Warning
	case StateCritical:
		return pal.Critical
	default:
		return pal.Text
	}
}

// StatCard is a fixed-size tile with a title, a large value and an optional
// sub-value line.
type StatCard struct {
	Title string
	Value string
	Sub   string
	State State
}

const (
	statCardHeight = 22.0
	statCardGap    = 3.0
)

// CardGrid lays StatCards out in rows of Columns tiles. The grid is the
// placed block; individual cards are not independently paginated, but a row
// of cards is never split across pages.
type CardGrid struct {
	Cards   []StatCard
	Columns int
}

func (g *CardGrid) columns() int {
	if g.Columns <= 0 {
		return 3
	}
	return g.Columns
}

func (g *CardGrid) rows() int {
	cols := g.columns()
	return (len(g.Cards) + cols - 1) / cols
}

// Measure returns the grid height: full rows of fixed-height tiles.
func (g *CardGrid) Measure(c *Context) float64 {
	if len(g.Cards) == 0 {
		return 0
	}
	rows := g.rows()
	return float64(rows)*statCardHeight + float64(rows-1)*statCardGap + defaultSpacing
}

// KeepHeight keeps one row of cards with the section header.
func (g *CardGrid) KeepHeight(c *Context) float64 {
	if len(g.Cards) == 0 {
		return 0
	}
	return statCardHeight + defaultSpacing
}

// Draw renders the grid row by row, breaking pages between rows only.
func (g *CardGrid) Draw(c *Context) {
	if len(g.Cards) == 0 {
		return
	}
	c.EnsureSpace(g.KeepHeight(c))

	cols := g.columns()
	cardW := (c.ContentWidth() - float64(cols-1)*statCardGap) / float64(cols)

	for i := 0; i < len(g.Cards); i += cols {
		if i > 0 {
			c.EnsureSpace(statCardHeight + statCardGap)
		}
		y := c.pdf.GetY()
		for j := 0; j < cols && i+j < len(g.Cards); j++ {
			x := c.ContentLeft() + float64(j)*(cardW+statCardGap)
			g.Cards[i+j].draw(c, x, y, cardW)
		}
		c.pdf.SetXY(c.ContentLeft(), y+statCardHeight+statCardGap)
	}
	c.pdf.SetXY(c.ContentLeft(), c.pdf.GetY()-statCardGap+defaultSpacing)
}

func (s *StatCard) draw(c *Context, x, y, w float64) {
	c.setFillColor(c.pal.Panel)
	c.setDrawColor(c.pal.Rule)
	c.pdf.SetLineWidth(0.2)
	c.pdf.RoundedRect(x, y, w, statCardHeight, 1.5, "1234", "FD")

	f := c.body

	c.SetFont(FontSpec{Family: f.Family, Style: "B", Size: 7.5})
	c.setTextColor(c.pal.Muted)
	c.pdf.SetXY(x, y+2.5)
	c.pdf.CellFormat(w, 4, s.Title, "", 0, "C", false, 0, "")

	c.SetFont(FontSpec{Family: f.Family, Style: "B", Size: 15})
	c.setTextColor(s.State.color(c.pal))
	c.pdf.SetXY(x, y+8)
	c.pdf.CellFormat(w, 7, s.Value, "", 0, "C", false, 0, "")

	if s.Sub != "" {
		c.SetFont(FontSpec{Family: f.Family, Style: "", Size: 7})
		c.setTextColor(c.pal.Muted)
		c.pdf.SetXY(x, y+16)
		c.pdf.CellFormat(w, 4, s.Sub, "", 0, "C", false, 0, "")
	}
	c.setTextColor(c.pal.Text)
}
