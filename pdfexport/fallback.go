package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/unicode/norm"
)

// Fallback document geometry, in points.
const (
	fallbackX          = 48.0
	fallbackTop        = 48.0
	fallbackWidth      = 500.0
	fallbackLineHeight = 16.0
	fallbackBreakY     = 790.0
)

// fallback writes lines as plain Helvetica 11 text, one paragraph per line.
func (r *Renderer) fallback(title string, lines []string) (data []byte, pages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(r.cfg.compress)
	pdf.SetCreationDate(r.cfg.clock())
	pdf.SetTitle(title, true)
	pdf.SetAuthor(r.cfg.author, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)
	y := fallbackTop
	for _, line := range lines {
		wrapped := pdf.SplitLines([]byte(tr(norm.NFC.String(line))), fallbackWidth)
		if y > fallbackBreakY {
			pdf.AddPage()
			y = fallbackTop
		}
		for i, l := range wrapped {
			pdf.Text(fallbackX, y+float64(i)*fallbackLineHeight, string(l))
		}
		n := len(wrapped)
		if n == 0 {
			n = 1
		}
		y += float64(n) * fallbackLineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pdf.PageCount(), nil
}
