package pageops

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/boombuler/barcode/qr"
	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/barcode"
)

// CodeKind selects the symbology of a reference code.
type CodeKind string

const (
	QRCode CodeKind = "qr"
	PDF417 CodeKind = "pdf417"
)

// ParseCodeKind maps a configuration value to a CodeKind.
func ParseCodeKind(s string) (CodeKind, error) {
	switch k := CodeKind(strings.ToLower(strings.TrimSpace(s))); k {
	case QRCode, PDF417:
		return k, nil
	}
	return "", fmt.Errorf("pageops: unknown reference code kind %q", s)
}

// barcodeMu serializes access to the registry of the barcode contrib
// package, which is a package-level map.
var barcodeMu sync.Mutex

// ReferenceCode is a machine-readable code identifying a document, such as
// the public URL of a quote.
type ReferenceCode struct {
	Kind    CodeKind
	Payload string
	Width   float64 // drawn width in points (default: 56)
}

// Height returns the drawn height. QR codes are square and PDF417 symbols
// are drawn at a third of their width.
func (c ReferenceCode) Height() float64 {
	if c.Kind == PDF417 {
		return c.width() / 3
	}
	return c.width()
}

func (c ReferenceCode) width() float64 {
	if c.Width <= 0 {
		return 56
	}
	return c.Width
}

// DrawReferenceCode registers c with pdf and draws it with its top-left
// corner at x, y.
func DrawReferenceCode(pdf *gofpdf.Fpdf, c ReferenceCode, x, y float64) error {
	if strings.TrimSpace(c.Payload) == "" {
		return errors.New("pageops: reference code: empty payload")
	}
	barcodeMu.Lock()
	defer barcodeMu.Unlock()
	return guard(pdf, "reference code", func() {
		var key string
		switch c.Kind {
		case PDF417:
			key = barcode.RegisterPdf417(pdf, c.Payload, 6, 2)
		default:
			key = barcode.RegisterQR(pdf, c.Payload, qr.M, qr.Unicode)
		}
		if pdf.Err() {
			return
		}
		barcode.Barcode(pdf, key, x, y, c.width(), c.Height(), false)
	})
}
