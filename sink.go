package loadreport

import (
	"fmt"
	"strings"
	"time"
)

// finalize is the output sink's last pass over the finished document: every
// page gets a "Page i of N" footer, and every page after the cover gets the
// running title header with a rule beneath it. Page numbers are computed
// here, once, so omitted optional sections can never leave stale numbering
// behind.
func finalize(d *document) {
	pdf := d.pdf
	pal := d.lay.Palette()
	body := d.lay.BodyFont()

	pdf.SetAutoPageBreak(false, 0)
	total := pdf.PageCount()
	_, pageH := pdf.GetPageSize()
	left := d.lay.ContentLeft()

	for i := 1; i <= total; i++ {
		pdf.SetPage(i)

		pdf.SetFont(body.Family, "", 8)
		pdf.SetTextColor(pal.Muted.R, pal.Muted.G, pal.Muted.B)
		pdf.SetXY(left, pageH-13)
		pdf.CellFormat(d.lay.ContentWidth(), 5, fmt.Sprintf("Page %d of %d", i, total), "", 0, "C", false, 0, "")

		if i == 1 {
			continue
		}

		pdf.SetFont(body.Family, "B", 8)
		pdf.SetTextColor(pal.Brand.R, pal.Brand.G, pal.Brand.B)
		pdf.SetXY(left, 7)
		pdf.CellFormat(d.lay.ContentWidth()/2, 5, upper(d.kind.label()), "", 0, "L", false, 0, "")

		pdf.SetFont(body.Family, "", 8)
		pdf.SetTextColor(pal.Muted.R, pal.Muted.G, pal.Muted.B)
		pdf.CellFormat(d.lay.ContentWidth()/2, 5, d.title, "", 0, "R", false, 0, "")

		pdf.SetDrawColor(pal.Rule.R, pal.Rule.G, pal.Rule.B)
		pdf.SetLineWidth(0.3)
		pdf.Line(left, 13.5, left+d.lay.ContentWidth(), 13.5)
	}

	pdf.SetTextColor(pal.Text.R, pal.Text.G, pal.Text.B)
}

// Filename builds the deterministic artifact filename
// <Kind>_<Title>_<ISODate>.pdf. Spaces in the title become underscores and
// characters unsafe for filenames are dropped.
func Filename(kind Kind, title string, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", kind, sanitizeTitle(title), date.Format("2006-01-02"))
}

func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Report"
	}
	return b.String()
}
