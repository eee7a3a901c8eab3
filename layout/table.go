package layout

import "strings"

// TableColumn defines one column of a Table block.
type TableColumn struct {
	Header string
	Width  float64 // fixed width; 0 means auto-fill remaining space
	Align  string  // "L", "C", "R" (default "L")
}

// Table renders column headers plus rows of pre-formatted string cells.
// Row height grows with the tallest wrapped cell in the row. Before any row
// is drawn the engine checks that the entire row fits on the current page;
// a row is never split across pages, and header rows are re-drawn after
// every break.
type Table struct {
	Columns []TableColumn
	Rows    [][]string

	FontSize   float64 // cell font size in points; 0 means 8.5
	HeaderFill *RGBColor
	Zebra      bool // alternating row fill
}

const (
	tableCellPad   = 1.6
	tableMinRowH   = 6.0
	tableHeaderPad = 0.4
)

func (t *Table) fontSize() float64 {
	if t.FontSize <= 0 {
		return 8.5
	}
	return t.FontSize
}

func (t *Table) cellFont(c *Context) FontSpec {
	return FontSpec{Family: c.body.Family, Size: t.fontSize()}
}

func (t *Table) headerFont(c *Context) FontSpec {
	return FontSpec{Family: c.body.Family, Style: "B", Size: t.fontSize()}
}

// widths computes final column widths: fixed columns keep their width, the
// remaining space is distributed evenly over auto columns.
func (t *Table) widths(c *Context) []float64 {
	total := c.ContentWidth()
	widths := make([]float64, len(t.Columns))
	fixed := 0.0
	auto := 0
	for i, col := range t.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto > 0 {
		remaining := total - fixed
		if remaining < 0 {
			remaining = 0
		}
		for i, col := range t.Columns {
			if col.Width == 0 {
				widths[i] = remaining / float64(auto)
			}
		}
	}
	return widths
}

// rowHeight returns the height of one row: the tallest wrapped cell plus
// padding, at least tableMinRowH.
func (t *Table) rowHeight(c *Context, row []string, widths []float64, f FontSpec) float64 {
	h := tableMinRowH
	lineH := c.LineHeight(f)
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		w := widths[i] - 2*tableCellPad
		if w < 1 {
			w = 1
		}
		cellH := float64(len(c.wrapStyled(f, parseEmphasis(cell), w)))*lineH + 2*tableCellPad
		if cellH > h {
			h = cellH
		}
	}
	return h
}

func (t *Table) headerHeight(c *Context) float64 {
	if len(t.Columns) == 0 {
		return 0
	}
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Header
	}
	return t.rowHeight(c, header, t.widths(c), t.headerFont(c)) + tableHeaderPad
}

// Measure returns the total table height as if drawn without page breaks.
func (t *Table) Measure(c *Context) float64 {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return 0
	}
	widths := t.widths(c)
	f := t.cellFont(c)
	h := t.headerHeight(c)
	for _, row := range t.Rows {
		h += t.rowHeight(c, row, widths, f)
	}
	return h + defaultSpacing
}

// KeepHeight keeps the header row plus the first data row with the section
// header; the rest of the table breaks per row.
func (t *Table) KeepHeight(c *Context) float64 {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return 0
	}
	return t.headerHeight(c) + t.rowHeight(c, t.Rows[0], t.widths(c), t.cellFont(c)) + defaultSpacing
}

// Draw renders the table row by row, checking that each entire row fits
// before drawing it and re-rendering the header after every page break.
func (t *Table) Draw(c *Context) {
	if t.Measure(c) == 0 {
		return
	}
	widths := t.widths(c)
	f := t.cellFont(c)

	c.EnsureSpace(t.KeepHeight(c))
	t.drawHeader(c, widths)

	for idx, row := range t.Rows {
		rowH := t.rowHeight(c, row, widths, f)
		if c.Remaining() < rowH {
			c.NewPage()
			t.drawHeader(c, widths)
		}
		t.drawRow(c, row, widths, rowH, idx)
	}
	c.pdf.SetXY(c.ContentLeft(), c.pdf.GetY()+defaultSpacing)
}

func (t *Table) drawHeader(c *Context, widths []float64) {
	fill := c.pal.Brand
	if t.HeaderFill != nil {
		fill = *t.HeaderFill
	}
	f := t.headerFont(c)
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Header
	}
	rowH := t.rowHeight(c, header, widths, f) // excludes tableHeaderPad

	x := c.ContentLeft()
	y := c.pdf.GetY()
	c.setFillColor(fill)
	c.pdf.Rect(x, y, c.ContentWidth(), rowH, "F")

	c.SetFont(f)
	c.setTextColor(RGBColor{255, 255, 255})
	cx := x
	for i, col := range t.Columns {
		align := col.Align
		if align == "" {
			align = "L"
		}
		c.pdf.SetXY(cx+tableCellPad, y+tableCellPad)
		c.pdf.CellFormat(widths[i]-2*tableCellPad, rowH-2*tableCellPad, col.Header, "", 0, align, false, 0, "")
		cx += widths[i]
	}
	c.setTextColor(c.pal.Text)
	c.pdf.SetXY(x, y+rowH+tableHeaderPad)
}

func (t *Table) drawRow(c *Context, row []string, widths []float64, rowH float64, idx int) {
	f := t.cellFont(c)
	lineH := c.LineHeight(f)
	x := c.ContentLeft()
	y := c.pdf.GetY()

	if t.Zebra && idx%2 == 1 {
		c.setFillColor(RGBColor{241, 245, 249})
		c.pdf.Rect(x, y, c.ContentWidth(), rowH, "F")
	}
	c.setDrawColor(c.pal.Rule)
	c.pdf.SetLineWidth(0.15)
	c.pdf.Line(x, y+rowH, x+c.ContentWidth(), y+rowH)

	c.SetFont(f)
	c.setTextColor(c.pal.Text)
	cx := x
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		w := widths[i] - 2*tableCellPad
		if w < 1 {
			w = 1
		}
		align := "L"
		if i < len(t.Columns) && t.Columns[i].Align != "" {
			align = t.Columns[i].Align
		}
		lines := c.wrapStyled(f, parseEmphasis(cell), w)
		for j, line := range lines {
			ly := y + tableCellPad + float64(j)*lineH
			lx := cx + tableCellPad
			switch align {
			case "R":
				lx = cx + widths[i] - tableCellPad - c.lineWidthOf(f, line)
			case "C":
				lx = cx + (widths[i]-c.lineWidthOf(f, line))/2
			}
			c.drawStyledLine(f, line, lx, ly)
		}
		cx += widths[i]
	}
	c.pdf.SetXY(x, y+rowH)
}

// lineWidthOf measures a wrapped line in the regular face of f, matching
// the width used for wrapping.
func (c *Context) lineWidthOf(f FontSpec, line []styledRune) float64 {
	f.Style = strings.ReplaceAll(f.Style, "B", "")
	c.SetFont(f)
	return c.pdf.GetStringWidth(plainString(line))
}
