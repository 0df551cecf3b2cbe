package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
)

func sampleQuote() quote.View {
	total := 1500.0
	return quote.Build(quote.Input{
		Quote: quote.Record{
			Title:      "Proposta <Site>",
			Status:     quote.StatusDraft,
			TotalValue: &total,
			CreatedAt:  time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
			Parameters: map[string]any{
				"payment_terms": "À vista",
				"prazo_dias":    30.0,
				"quote_items": []any{
					map[string]any{"description": "Landing page", "quantity": 2.0, "unit_price": 750.0},
				},
			},
		},
		Contact: &quote.Contact{Name: "Ana Lima"},
		Model: &quote.Model{
			TemplateContent: "# Escopo\n{{just}}Entrega em {{prazo_dias}} dias.{{/just}}",
			Parameters: map[string]any{
				"layout": map[string]any{
					"logo_url":       "https://cdn.example.com/logo.png",
					"date_position":  "footer-left",
					"show_watermark": true,
					"title_color":    "#123456",
				},
			},
		},
		Location: time.UTC,
	})
}

func TestQuote(t *testing.T) {
	var b strings.Builder
	if err := Quote(&b, sampleQuote()); err != nil {
		t.Fatalf("Quote: %v", err)
	}
	html := b.String()

	for _, want := range []string{
		"Proposta &lt;Site&gt;",
		`src="https://cdn.example.com/logo.png"`,
		"color: #123456",
		"ORÇAMENTO",
		"Resumo",
		"Destinatário",
		"Entrega em 30 dias.",
		"text-align: justify",
		"Itens do orçamento",
		"R$ 1.500,00",
		"mil e quinhentos reais",
		"Prazo: 30 dias",
		"Pagamento: À vista",
		"Data: 09/03/2026",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("preview misses %q", want)
		}
	}
	if strings.Contains(html, "ZgotmplZ") {
		t.Error("template escaper rejected a value")
	}

	footer := html[strings.Index(html, "<footer"):]
	if !strings.Contains(footer, "Data: 09/03/2026") {
		t.Error("date badge not in the footer")
	}
}

func TestQuoteWithoutLogo(t *testing.T) {
	var b strings.Builder
	if err := Quote(&b, quote.Build(quote.Input{})); err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !strings.Contains(b.String(), "Sem logo") {
		t.Error("missing logo placeholder")
	}
	if strings.Contains(b.String(), "Itens do orçamento") {
		t.Error("items section rendered without items")
	}
}

func TestPresentation(t *testing.T) {
	v := presentation.Build(presentation.Record{
		Kind:    presentation.Product,
		Content: "# Linha Pro\n## Destaques\n- Leve\nTexto livre",
		Parameters: map[string]any{
			"layout": map[string]any{"font_family": "courier", "footer_text": "ACME"},
		},
	}, "Mesa X")

	var b strings.Builder
	if err := Presentation(&b, v); err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	html := b.String()
	for _, want := range []string{
		"Apresentação de produto",
		"Produto: Mesa X",
		"<h2",
		"Linha Pro",
		"<h3",
		"• Leve",
		"Texto livre",
		"Courier New",
		"ACME",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("preview misses %q", want)
		}
	}
}
