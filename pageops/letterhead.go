package pageops

import (
	"errors"
	"fmt"
	"os"

	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
)

// Letterhead is the first page of a stationery PDF imported as a template
// into one document.
type Letterhead struct {
	imp  *gofpdi.Importer
	tpl  int
	w, h float64
}

// LoadLetterhead imports page 1 of the PDF at path into pdf.
func LoadLetterhead(pdf *gofpdf.Fpdf, path string) (*Letterhead, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("pageops: letterhead: %w", err)
	}
	l := &Letterhead{imp: gofpdi.NewImporter()}
	err := guard(pdf, "letterhead", func() {
		l.tpl, l.w, l.h = importPage(pdf, l.imp, path, 1)
	})
	if err != nil {
		return nil, err
	}
	if l.w == 0 || l.h == 0 {
		return nil, errors.New("pageops: letterhead: page 1 has no media box")
	}
	return l, nil
}

// importPage imports a single page from a source file into the target PDF.
// Returns the template ID and page dimensions.
func importPage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, sourceFile string, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, sourceFile, pageNum, "/MediaBox")
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return
}

// Size returns the media box of the imported page.
func (l *Letterhead) Size() (w, h float64) { return l.w, l.h }

// Draw paints the letterhead stretched over the current page.
func (l *Letterhead) Draw(pdf *gofpdf.Fpdf, pageW, pageH float64) error {
	return guard(pdf, "letterhead", func() {
		l.imp.UseImportedTemplate(pdf, l.tpl, 0, 0, pageW, pageH)
	})
}
