package layout

// SectionHeader renders a section title with a rule beneath it.
type SectionHeader struct {
	Title string
}

const (
	sectionTitleSize = 14.0
	sectionHeaderH   = 13.0
)

// Measure returns the fixed header height.
func (h *SectionHeader) Measure(c *Context) float64 {
	if h.Title == "" {
		return 0
	}
	return sectionHeaderH
}

// Draw renders the header at the cursor position.
func (h *SectionHeader) Draw(c *Context) {
	if h.Measure(c) == 0 {
		return
	}
	c.EnsureSpace(sectionHeaderH)

	x := c.ContentLeft()
	y := c.pdf.GetY()

	f := FontSpec{Family: c.body.Family, Style: "B", Size: sectionTitleSize}
	c.SetFont(f)
	c.setTextColor(c.pal.Brand)
	c.pdf.Text(x, y+6, h.Title)

	c.setDrawColor(c.pal.Brand)
	c.pdf.SetLineWidth(0.4)
	c.pdf.Line(x, y+8.5, x+c.ContentWidth(), y+8.5)
	c.pdf.SetLineWidth(0.2)

	c.setTextColor(c.pal.Text)
	c.pdf.SetXY(x, y+sectionHeaderH)
}

// Section is a header plus the blocks that must stay associated with it for
// page-break purposes: the header is placed only together with the first
// non-empty block, so it is never stranded alone at the bottom of a page.
type Section struct {
	Title  string
	Blocks []Block
}

// Add appends blocks and returns the section for chaining.
func (s *Section) Add(blocks ...Block) *Section {
	s.Blocks = append(s.Blocks, blocks...)
	return s
}

// Empty reports whether every block of the section measures zero.
func (s *Section) Empty(c *Context) bool {
	for _, b := range s.Blocks {
		if b.Measure(c) > 0 {
			return false
		}
	}
	return true
}

// Draw places the section: the combined height of the header and the first
// non-empty block is ensured up front, then blocks are drawn in order, each
// skipping itself when it measures zero. A section whose blocks are all
// empty contributes nothing, not even its header.
func (s *Section) Draw(c *Context) {
	first := -1
	firstH := 0.0
	for i, b := range s.Blocks {
		if h := b.Measure(c); h > 0 {
			first = i
			firstH = h
			if kt, ok := b.(keepTogether); ok {
				firstH = kt.KeepHeight(c)
			}
			break
		}
	}
	if first < 0 {
		return
	}

	hdr := SectionHeader{Title: s.Title}
	c.EnsureSpace(hdr.Measure(c) + firstH)
	hdr.Draw(c)

	for _, b := range s.Blocks {
		if b.Measure(c) == 0 {
			continue
		}
		b.Draw(c)
	}
}

// Spacer contributes fixed vertical whitespace.
type Spacer struct {
	Height float64
}

// Measure returns the spacer height.
func (s *Spacer) Measure(c *Context) float64 { return s.Height }

// Draw advances the cursor without drawing.
func (s *Spacer) Draw(c *Context) {
	c.EnsureSpace(s.Height)
	c.pdf.SetXY(c.ContentLeft(), c.pdf.GetY()+s.Height)
}
