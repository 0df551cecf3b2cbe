package quote

import (
	"strings"
	"time"

	"github.com/apogeu/crmdocs/tmpl"
)

// Draft is the state of the quote form before it is saved.
type Draft struct {
	Contact    *Contact       `json:"contact,omitempty"`
	Product    *Product       `json:"product,omitempty"`
	Model      *Model         `json:"model,omitempty"`
	TotalValue *float64       `json:"total_value"`
	Parameters map[string]any `json:"parameters"`
}

// GenerateContent renders the model template for a draft, producing the
// text stored as the quote's generated content. It returns nil when the
// draft has no model.
func GenerateContent(d Draft) *string {
	if d.Model == nil {
		return nil
	}
	data := tmpl.Data{
		"cliente": tmpl.String(""),
		"empresa": tmpl.String(""),
		"produto": tmpl.String(""),
		"valor":   tmpl.Null(),
	}
	if d.Contact != nil {
		data["cliente"] = tmpl.String(d.Contact.Name)
		data["empresa"] = tmpl.String(d.Contact.Company)
	}
	if d.Product != nil {
		data["produto"] = tmpl.String(d.Product.Name)
	}
	if d.TotalValue != nil {
		data["valor"] = tmpl.Number(*d.TotalValue)
	}
	out := tmpl.RenderKeeping(d.Model.TemplateContent, data.Merge(tmpl.DataFromMap(d.Parameters)), justKey)
	return &out
}

// Sample values used by the model editor preview.
const (
	previewTotal        = 2500.0
	previewPaymentTerms = "50% na assinatura e 50% em 30 dias"
)

// PreviewInput builds the synthetic quote the model editor previews: a
// sample contact and product, a fixed total, and the model defaults as
// parameters, completed with sample payment terms and a sample item when the
// defaults carry none.
func PreviewInput(m Model, defaults map[string]any, now time.Time) Input {
	if strings.TrimSpace(m.TemplateContent) == "" {
		m.TemplateContent = "# Modelo sem conteudo"
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = "Modelo de Orcamento"
	}

	params := make(map[string]any, len(defaults)+2)
	for k, v := range defaults {
		params[k] = v
	}
	if _, ok := defaults[KeyPaymentTerms].(string); !ok {
		params[KeyPaymentTerms] = previewPaymentTerms
	}
	if items, ok := defaults[KeyItems].([]any); !ok || len(items) == 0 {
		params[KeyItems] = []any{
			map[string]any{"description": "Item exemplo", "quantity": 1.0, "unit_price": previewTotal},
		}
	}

	total := previewTotal
	price := previewTotal
	return Input{
		Quote: Record{
			ID:         "preview-quote",
			ContactID:  "preview-contact",
			ProductID:  "preview-product",
			ModelID:    m.ID,
			Title:      "Previa - " + name,
			Status:     StatusDraft,
			TotalValue: &total,
			Parameters: params,
			CreatedAt:  now,
		},
		Contact: &Contact{
			ID:       "preview-contact",
			Name:     "Cliente Exemplo",
			Company:  "Empresa Exemplo LTDA",
			Phone:    "(11) 3333-4444",
			Email:    "cliente@exemplo.com",
			WhatsApp: "(11) 99999-8888",
			Role:     "Comprador",
		},
		Product: &Product{
			ID:        "preview-product",
			Name:      "Servico Exemplo",
			Category:  "Servico",
			UnitPrice: &price,
		},
		Model: &m,
	}
}
