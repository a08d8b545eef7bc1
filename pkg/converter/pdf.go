package converter

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mbrett/platen/pkg/layout"
)

// ErrNoPages is returned when a document is finalized without a single
// successfully placed image.
var ErrNoPages = errors.New("document has no pages")

// DocumentInfo carries the metadata stamped into the output PDF.
type DocumentInfo struct {
	Title   string
	Author  string
	Creator string
}

// DocumentBuilder accumulates image pages into one PDF document. Each page
// takes its own physical size from a resolved layout, so a single document
// can mix formats and orientations freely.
type DocumentBuilder struct {
	pdf   *fpdf.Fpdf
	pages int
}

// NewDocumentBuilder creates an empty document carrying the given metadata.
func NewDocumentBuilder(info DocumentInfo) *DocumentBuilder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Creator != "" {
		pdf.SetCreator(info.Creator, true)
	}

	return &DocumentBuilder{pdf: pdf}
}

// AddImagePage appends one page sized to the layout's format and draws the
// image at its resolved placement. The page size is passed as-is; the layout
// already carries final width and height, so the page is never rotated here.
func (b *DocumentBuilder) AddImagePage(img pageImage, l layout.Layout) error {
	b.pages++
	alias := fmt.Sprintf("page_%d", b.pages)

	b.pdf.AddPageFormat("P", fpdf.SizeType{Wd: l.Format.WidthMM, Ht: l.Format.HeightMM})

	opts := fpdf.ImageOptions{ImageType: img.imageType}
	b.pdf.RegisterImageOptionsReader(alias, opts, bytes.NewReader(img.data))
	b.pdf.ImageOptions(alias, l.Placement.XMM, l.Placement.YMM, l.Placement.WidthMM, l.Placement.HeightMM, false, opts, 0, "")

	if b.pdf.Err() {
		return fmt.Errorf("building page %d: %w", b.pages, b.pdf.Error())
	}
	return nil
}

// PageCount returns the number of pages added so far.
func (b *DocumentBuilder) PageCount() int {
	return b.pages
}

// Output writes the finished document to w.
func (b *DocumentBuilder) Output(w io.Writer) error {
	if b.pages == 0 {
		return ErrNoPages
	}
	return b.pdf.Output(w)
}

// WriteFile writes the finished document to path and releases the builder.
func (b *DocumentBuilder) WriteFile(path string) error {
	if b.pages == 0 {
		return ErrNoPages
	}
	return b.pdf.OutputFileAndClose(path)
}
