package loadreport

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// ptToMM converts PDF points to millimeters.
const ptToMM = 25.4 / 72.0

// appendAppendix imports every page of an existing PDF after the report
// body, each on a page matching its own media box. Used for attaching test
// plans or SLA documents configured via WithAppendix.
func appendAppendix(pdf *fpdf.Fpdf, path string) error {
	imp := gofpdi.NewImporter()

	// Importing the first page populates the importer's page-size table for
	// the whole file, which also yields the page count.
	tpl := imp.ImportPage(pdf, path, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	if len(sizes) == 0 {
		return fmt.Errorf("no pages found")
	}

	for page := 1; page <= len(sizes); page++ {
		if page > 1 {
			tpl = imp.ImportPage(pdf, path, page, "/MediaBox")
		}
		box, ok := sizes[page]["/MediaBox"]
		if !ok {
			return fmt.Errorf("page %d has no media box", page)
		}
		w := box["w"] * ptToMM
		h := box["h"] * ptToMM

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	}
	return nil
}
