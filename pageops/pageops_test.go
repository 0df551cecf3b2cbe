package pageops_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/phpdave11/gofpdf"

	"github.com/apogeu/crmdocs/pageops"
)

func newDoc() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 11)
	return pdf
}

func output(t *testing.T, pdf *gofpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	return buf.Bytes()
}

// createStationery writes a one page PDF to use as letterhead.
func createStationery(t *testing.T, filename string) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.AddPage()
	pdf.Text(48, 40, "ACME Comercial")
	pdf.Line(48, 50, 547, 50)
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating stationery: %v", err)
	}
}

func TestDrawTextWatermark(t *testing.T) {
	pdf := newDoc()
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if err := pageops.DrawTextWatermark(pdf, pageops.TextWatermark{Text: tr("ORÇAMENTO")}, 595.28, 841.89); err != nil {
		t.Fatalf("watermark: %v", err)
	}
	out := output(t, pdf)
	if !bytes.Contains(out, []byte("/ExtGState")) {
		t.Error("expected an alpha graphics state in the output")
	}
}

func TestDrawTextWatermarkRecovers(t *testing.T) {
	pdf := newDoc()
	pdf.AddPage()
	err := pageops.DrawTextWatermark(pdf, pageops.TextWatermark{Text: "X", FontFamily: "nosuchfont"}, 595.28, 841.89)
	if err == nil {
		t.Fatal("expected an error for an unknown font")
	}
	if pdf.Err() {
		t.Fatalf("engine error left set: %v", pdf.Error())
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(48, 100, "still writable")
	output(t, pdf)
}

func TestStampPageNumbers(t *testing.T) {
	pdf := newDoc()
	for i := 0; i < 3; i++ {
		pdf.AddPage()
		pdf.Text(48, 100, "content")
	}
	style := pageops.PageNumberStyle{
		Position: pageops.BottomRight,
		Color:    pageops.RGBColor{R: 148, G: 163, B: 184},
		MarginX:  48,
		MarginY:  14,
	}
	if err := pageops.StampPageNumbers(pdf, style, pdf.UnicodeTranslatorFromDescriptor("")); err != nil {
		t.Fatalf("page numbers: %v", err)
	}
	if pdf.PageNo() != 3 {
		t.Errorf("current page = %d, want 3", pdf.PageNo())
	}
	out := output(t, pdf)
	for _, want := range []string{"gina 1 de 3", "gina 2 de 3", "gina 3 de 3"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestLetterhead(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stationery.pdf")
	createStationery(t, file)

	pdf := newDoc()
	lh, err := pageops.LoadLetterhead(pdf, file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w, h := lh.Size(); w < 595 || h < 841 {
		t.Errorf("size = %vx%v", w, h)
	}
	for i := 0; i < 2; i++ {
		pdf.AddPage()
		if err := lh.Draw(pdf, 595.28, 841.89); err != nil {
			t.Fatalf("draw: %v", err)
		}
	}
	if len(output(t, pdf)) == 0 {
		t.Error("expected output")
	}
}

func TestLetterheadInvalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := pageops.LoadLetterhead(newDoc(), filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for a missing file")
	}

	bogus := filepath.Join(dir, "bogus.pdf")
	if err := os.WriteFile(bogus, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	pdf := newDoc()
	if _, err := pageops.LoadLetterhead(pdf, bogus); err == nil {
		t.Error("expected error for an invalid PDF")
	}
	if pdf.Err() {
		t.Errorf("engine error left set: %v", pdf.Error())
	}
}

func TestDrawReferenceCode(t *testing.T) {
	for _, kind := range []pageops.CodeKind{pageops.QRCode, pageops.PDF417} {
		t.Run(string(kind), func(t *testing.T) {
			pdf := newDoc()
			pdf.AddPage()
			code := pageops.ReferenceCode{Kind: kind, Payload: "https://crm.example.com/q/8c1f"}
			if err := pageops.DrawReferenceCode(pdf, code, 491, 700); err != nil {
				t.Fatalf("draw: %v", err)
			}
			if !bytes.Contains(output(t, pdf), []byte("/Subtype /Image")) {
				t.Error("expected an embedded barcode image")
			}
		})
	}

	if err := pageops.DrawReferenceCode(newDoc(), pageops.ReferenceCode{Payload: " "}, 0, 0); err == nil {
		t.Error("expected error for an empty payload")
	}
}

func TestParseCodeKind(t *testing.T) {
	if k, err := pageops.ParseCodeKind(" QR "); err != nil || k != pageops.QRCode {
		t.Errorf("got %q, %v", k, err)
	}
	if _, err := pageops.ParseCodeKind("ean13"); err == nil {
		t.Error("expected error")
	}
	if h := (pageops.ReferenceCode{Kind: pageops.PDF417, Width: 90}).Height(); h != 30 {
		t.Errorf("pdf417 height = %v", h)
	}
}
