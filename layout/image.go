package layout

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Image embeds a raster asset scaled to the content width with its aspect
// ratio preserved: height = srcH * contentWidth / srcW.
//
// A missing asset (failed chart capture) measures zero and is skipped;
// document generation never fails because one snapshot could not be taken.
type Image struct {
	Name string // registration key, unique per document
	PNG  []byte
	SrcW int // intrinsic pixel width
	SrcH int // intrinsic pixel height

	// MaxHeight, when positive, caps the rendered height; the image is then
	// scaled down further and centered horizontally.
	MaxHeight float64
}

// size returns the placed width and height for the current content width.
func (im *Image) size(c *Context) (w, h float64) {
	w = c.ContentWidth()
	h = float64(im.SrcH) * w / float64(im.SrcW)
	if im.MaxHeight > 0 && h > im.MaxHeight {
		w = w * im.MaxHeight / h
		h = im.MaxHeight
	}
	return w, h
}

// Measure returns the aspect-locked height, or zero for a missing asset.
func (im *Image) Measure(c *Context) float64 {
	if im == nil || len(im.PNG) == 0 || im.SrcW <= 0 || im.SrcH <= 0 {
		return 0
	}
	_, h := im.size(c)
	return h + defaultSpacing
}

// Draw places the image at the cursor position.
func (im *Image) Draw(c *Context) {
	if im.Measure(c) == 0 {
		return
	}
	w, h := im.size(c)
	c.EnsureSpace(h + defaultSpacing)

	// Registering twice under the same name returns the existing info, so a
	// re-draw of the same asset is safe.
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(im.Name, opts, bytes.NewReader(im.PNG))

	x := c.ContentLeft() + (c.ContentWidth()-w)/2
	y := c.pdf.GetY()
	c.pdf.ImageOptions(im.Name, x, y, w, h, false, opts, 0, "")
	c.pdf.SetXY(c.ContentLeft(), y+h+defaultSpacing)
}
