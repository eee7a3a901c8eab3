package loadreport

import (
	"fmt"
	"io"
	"time"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/barcode"
	"github.com/google/uuid"

	"github.com/lvillar/loadreport/layout"
)

// Kind identifies a report template. Its value is the first component of
// the artifact filename.
type Kind string

const (
	KindPerformance Kind = "Performance"
	KindTrend       Kind = "TrendAnalysis"
	KindComparison  Kind = "Comparison"
)

// label returns the human-readable template name used on covers and in
// running headers.
func (k Kind) label() string {
	switch k {
	case KindTrend:
		return "Trend Analysis Report"
	case KindComparison:
		return "Run Comparison Report"
	default:
		return "Performance Report"
	}
}

// Generator builds report documents. A Generator is safe to reuse across
// exports: each call constructs its own document and layout context, and no
// state is shared between concurrent exports.
type Generator struct {
	cfg generatorConfig
}

// document bundles the per-export state. It lives for one export only and
// is handed to the output sink exactly once.
type document struct {
	pdf   *fpdf.Fpdf
	lay   *layout.Context
	id    string
	kind  Kind
	title string
	date  time.Time
}

func (g *Generator) newDocument(kind Kind, title string, date time.Time) *document {
	if date.IsZero() {
		date = time.Now()
	}
	pdf := fpdf.New(g.cfg.orientation, "mm", g.cfg.pageSize, "")
	pdf.SetMargins(g.cfg.margin.Left, g.cfg.margin.Top, g.cfg.margin.Right)
	// The layout context is the only page-break decision point.
	pdf.SetAutoPageBreak(false, g.cfg.margin.Bottom)

	pdf.SetTitle(title, true)
	pdf.SetSubject(kind.label(), true)
	pdf.SetCreator("loadreport", true)
	if g.cfg.author != "" {
		pdf.SetAuthor(g.cfg.author, true)
	}

	return &document{
		pdf:   pdf,
		lay:   layout.NewContext(pdf, g.cfg.margin, g.cfg.font, g.cfg.palette),
		id:    uuid.NewString(),
		kind:  kind,
		title: title,
		date:  date,
	}
}

// cover draws the title page: accent bars, template name, report title, the
// supplied info lines and a QR code carrying the report ID so a printed
// report links back to its run.
func (d *document) cover(c *layout.Context, infoLines []string) {
	pal := c.Palette()
	body := c.BodyFont()
	pageW, pageH := d.pdf.GetPageSize()

	d.pdf.AddPage()

	d.pdf.SetFillColor(pal.Brand.R, pal.Brand.G, pal.Brand.B)
	d.pdf.Rect(0, 0, pageW, 8, "F")
	d.pdf.Rect(0, pageH-8, pageW, 8, "F")

	d.pdf.SetY(60)
	d.pdf.SetFont(body.Family, "B", 13)
	d.pdf.SetTextColor(pal.Muted.R, pal.Muted.G, pal.Muted.B)
	d.pdf.CellFormat(0, 8, "LOAD TEST "+upper(d.kind.label()), "", 1, "C", false, 0, "")

	d.pdf.SetY(78)
	d.pdf.SetFont(body.Family, "B", 26)
	d.pdf.SetTextColor(pal.Brand.R, pal.Brand.G, pal.Brand.B)
	d.pdf.MultiCell(0, 12, d.title, "", "C", false)

	d.pdf.SetY(120)
	d.pdf.SetFont(body.Family, "", 11)
	d.pdf.SetTextColor(pal.Text.R, pal.Text.G, pal.Text.B)
	for _, line := range infoLines {
		d.pdf.CellFormat(0, 7, line, "", 1, "C", false, 0, "")
	}

	d.pdf.SetY(pageH - 70)
	d.pdf.SetFont(body.Family, "", 9)
	d.pdf.SetTextColor(pal.Muted.R, pal.Muted.G, pal.Muted.B)
	d.pdf.CellFormat(0, 6, "Generated "+d.date.Format("January 2, 2006 15:04"), "", 1, "C", false, 0, "")
	d.pdf.CellFormat(0, 6, "Report ID "+d.id, "", 1, "C", false, 0, "")

	key := barcode.RegisterQR(d.pdf, d.id, qr.M, qr.Unicode)
	qrSize := 16.0
	barcode.Barcode(d.pdf, key, (pageW-qrSize)/2, pageH-52, qrSize, qrSize, false)

	d.pdf.SetTextColor(pal.Text.R, pal.Text.G, pal.Text.B)
}

// finish runs the output sink: appendix pages, the page-numbering and
// running-header pass, then the single write to w. Nothing is written on a
// failed build, so the caller never receives a partial document.
func (g *Generator) finish(d *document, w io.Writer) error {
	if g.cfg.appendix != "" {
		if err := appendAppendix(d.pdf, g.cfg.appendix); err != nil {
			return fmt.Errorf("appendix %s: %w", g.cfg.appendix, err)
		}
	}
	finalize(d)
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return d.pdf.Output(w)
}

// Filename builds the artifact filename for the export:
// <Kind>_<Title>_<ISODate>.pdf, with spaces replaced by underscores and
// characters unsafe for filenames removed.
func (d *document) Filename() string {
	return Filename(d.kind, d.title, d.date)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
