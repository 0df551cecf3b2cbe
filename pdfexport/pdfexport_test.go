package pdfexport_test

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/pageops"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
)

var fixedClock = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }

func newRenderer(opts ...pdfexport.Option) *pdfexport.Renderer {
	base := []pdfexport.Option{pdfexport.WithClock(fixedClock), pdfexport.WithCompression(false)}
	return pdfexport.New(append(base, opts...)...)
}

func sampleQuote() quote.View {
	total := 1500.0
	return quote.Build(quote.Input{
		Quote: quote.Record{
			ID:         "7b0e2f44-65a4-4c8e-9d0a-1f7f4b1c2d3e",
			Title:      "Proposta Site",
			Status:     quote.StatusSent,
			TotalValue: &total,
			CreatedAt:  time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
			Parameters: map[string]any{
				"payment_terms": "30/60 dias",
				"garantia":      "12 meses",
				"quote_items": []any{
					map[string]any{"description": "Landing page", "quantity": 2.0, "unit_price": 500.0},
					map[string]any{"description": "Hospedagem", "quantity": 1.0, "unit_price": 500.0},
				},
			},
		},
		Contact: &quote.Contact{Name: "Ana Lima", Company: "Lima & Cia"},
		Product: &quote.Product{Name: "Site institucional"},
		Model: &quote.Model{
			TemplateContent: "# Proposta para {{cliente}}\n\n{{just}}Valor de {{valor}} ({{valor_extenso}}).{{/just}}\n- Garantia: {{garantia}}",
			Parameters: map[string]any{
				"layout": map[string]any{"show_watermark": true, "show_signature": true, "signature_name": "João"},
			},
		},
		Location: time.UTC,
	})
}

func samplePresentation(paragraphs int) presentation.View {
	var b strings.Builder
	b.WriteString("# Quem somos\n## Desde 2010\n")
	for i := 0; i < paragraphs; i++ {
		b.WriteString("{{just}}Atendemos empresas de todos os portes com soluções sob medida, suporte dedicado e implantação acompanhada.{{/just}}\n- Atendimento em português\n\n")
	}
	return presentation.Build(presentation.Record{
		ID:      "p-1",
		Kind:    presentation.Company,
		Title:   "Apresentação ACME",
		Content: b.String(),
	}, "")
}

func pngLogo(t *testing.T) *logo.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 300, 100))
	for x := 0; x < 300; x++ {
		img.Set(x, 50, color.RGBA{R: 249, G: 115, B: 22, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	im, err := logo.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return im
}

func TestQuote(t *testing.T) {
	out := newRenderer().Quote(sampleQuote(), pngLogo(t))

	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
	if !bytes.HasPrefix(out.Data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if out.Filename != "orcamento-proposta-site.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
	if out.Pages < 1 {
		t.Fatalf("pages = %d", out.Pages)
	}
	if !bytes.Contains(out.Data, []byte(fmt.Sprintf("gina 1 de %d", out.Pages))) {
		t.Error("page number not stamped")
	}
	if !bytes.Contains(out.Data, []byte("/Subtype /Image")) {
		t.Error("logo not embedded")
	}
}

func TestQuoteWithoutModel(t *testing.T) {
	content := "Conteúdo gerado"
	v := quote.Build(quote.Input{Quote: quote.Record{GeneratedContent: &content}})
	out := newRenderer().Quote(v, nil)
	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
	if out.Filename != "orcamento-or-amento.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
}

func TestPresentationPaginates(t *testing.T) {
	out := newRenderer().Presentation(samplePresentation(40), nil)
	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
	if out.Pages < 2 {
		t.Fatalf("pages = %d, want more than one", out.Pages)
	}
	if out.Filename != "apresentacao-apresenta-o-acme.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
	if !bytes.Contains(out.Data, []byte("gina 2 de ")) {
		t.Error("second page not numbered")
	}
}

func TestFallback(t *testing.T) {
	v := sampleQuote()
	v.Layout.FontFamily = "nosuchfont"

	out := newRenderer().Quote(v, nil)
	if !out.Fallback {
		t.Fatal("expected the fallback document")
	}
	if !errors.Is(out.Cause, crmdocs.ErrRender) {
		t.Errorf("cause = %v, want ErrRender", out.Cause)
	}
	if out.Filename != "orcamento-proposta-site-fallback.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
	if !bytes.HasPrefix(out.Data, []byte("%PDF")) || out.Pages != 1 {
		t.Errorf("fallback pdf: %d pages", out.Pages)
	}
	if !bytes.Contains(out.Data, []byte("Proposta Site")) {
		t.Error("fallback misses the title")
	}
}

func TestFallbackPaginates(t *testing.T) {
	v := samplePresentation(60)
	v.Layout.FontFamily = "nosuchfont"

	out := newRenderer().Presentation(v, nil)
	if !out.Fallback {
		t.Fatal("expected the fallback document")
	}
	if out.Pages < 2 {
		t.Errorf("pages = %d", out.Pages)
	}
	if out.Filename != "apresentacao-apresenta-o-acme-fallback.pdf" {
		t.Errorf("filename = %q", out.Filename)
	}
}

func TestReferenceCode(t *testing.T) {
	r := newRenderer(pdfexport.WithReferenceCode(pageops.QRCode, "https://crm.example.com/q/{{id}}"))
	out := r.Quote(sampleQuote(), nil)
	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
	if !bytes.Contains(out.Data, []byte("/Subtype /Image")) {
		t.Error("reference code not drawn")
	}
}

func TestLetterhead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papel.pdf")
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.AddPage()
	pdf.Text(48, 40, "ACME Comercial")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}

	out := newRenderer(pdfexport.WithLetterhead(path)).Presentation(samplePresentation(1), nil)
	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
	if !bytes.Contains(out.Data, []byte("/Subtype /Form")) {
		t.Error("letterhead template not embedded")
	}
}

func TestMissingLetterheadIsSkipped(t *testing.T) {
	out := newRenderer(pdfexport.WithLetterhead("/nonexistent/papel.pdf")).Quote(sampleQuote(), nil)
	if out.Fallback {
		t.Fatalf("unexpected fallback: %v", out.Cause)
	}
}

func TestOutputSave(t *testing.T) {
	out := newRenderer().Quote(sampleQuote(), nil)
	path, err := out.Save(t.TempDir())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out.Data) || filepath.Base(path) != out.Filename {
		t.Errorf("saved %s with %d bytes", path, len(data))
	}

	var buf bytes.Buffer
	n, err := out.WriteTo(&buf)
	if err != nil || n != int64(len(out.Data)) {
		t.Errorf("WriteTo = %d, %v", n, err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		prefix, title string
		fallback      bool
		want          string
	}{
		{pdfexport.QuotePrefix, "Proposta Site 2026", false, "orcamento-proposta-site-2026.pdf"},
		{pdfexport.QuotePrefix, "  --Olá!!  ", false, "orcamento-ol.pdf"},
		{pdfexport.QuotePrefix, "???", true, "orcamento-documento-fallback.pdf"},
		{pdfexport.PresentationPrefix, "", false, "apresentacao-documento.pdf"},
	}
	for _, tt := range tests {
		if got := pdfexport.Filename(tt.prefix, tt.title, tt.fallback); got != tt.want {
			t.Errorf("Filename(%q, %q, %v) = %q, want %q", tt.prefix, tt.title, tt.fallback, got, tt.want)
		}
	}
}
