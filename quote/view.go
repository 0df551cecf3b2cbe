package quote

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/tmpl"
	"github.com/apogeu/crmdocs/words"
)

// DefaultTitle is used when a quote has a blank title.
const DefaultTitle = "Orçamento"

// justKey is the placeholder-shaped justify marker; it must survive template
// rendering so the block parser can see it.
const justKey = "just"

// View is the fully resolved content of one quote document. It is computed
// per render and never stored.
type View struct {
	ID       string
	Title    string
	Date     string
	Status   Status
	Layout   layout.Quote
	Warnings layout.Warnings

	Data      tmpl.Data
	BodyRaw   string
	Blocks    []blocks.Block
	Summary   []Field
	Recipient []string

	Items        []LineItem
	ItemsTotal   decimal.Decimal
	PaymentTerms string
	Terms        []string
	Additional   []Field
}

// FormatDate prints t as dd/mm/yyyy in loc (time.Local when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("02/01/2006")
}

// TemplateData assembles the placeholder context of a quote. Dynamic
// parameters are layered last and may replace any built-in key.
func TemplateData(in Input, date string, dynamic map[string]any, paymentTerms string) tmpl.Data {
	var c Contact
	if in.Contact != nil {
		c = *in.Contact
	}
	product := ""
	if in.Product != nil {
		product = in.Product.Name
	}
	valor := ""
	if in.Quote.TotalValue != nil {
		valor = words.FormatBRL(*in.Quote.TotalValue)
	}
	base := tmpl.Data{
		string(layout.FieldCliente):        tmpl.String(c.Name),
		string(layout.FieldEmpresa):        tmpl.String(c.Company),
		string(layout.FieldTelefone):       tmpl.String(c.Phone),
		string(layout.FieldEmail):          tmpl.String(c.Email),
		string(layout.FieldWhatsApp):       tmpl.String(c.WhatsApp),
		string(layout.FieldProduto):        tmpl.String(product),
		string(layout.FieldValor):          tmpl.String(valor),
		string(layout.FieldValorExtenso):   tmpl.String(words.ToWordsPtr(in.Quote.TotalValue)),
		string(layout.FieldFormaPagamento): tmpl.String(paymentTerms),
		string(layout.FieldData):           tmpl.String(date),
		string(layout.FieldStatus):         tmpl.String(string(in.Quote.Status)),
	}
	return base.Merge(tmpl.DataFromMap(dynamic))
}

// Build resolves a quote snapshot into its View.
func Build(in Input) View {
	params := in.Quote.Parameters
	dynamic := DynamicParams(params)
	paymentTerms := PaymentTerms(params)
	items := Items(params)
	lay, ws := ResolveLayout(in.Model, params)

	date := FormatDate(in.Quote.CreatedAt, in.Location)
	data := TemplateData(in, date, dynamic, paymentTerms)

	var body string
	switch {
	case in.Model != nil:
		body = tmpl.RenderKeeping(in.Model.TemplateContent, data, justKey)
	case in.Quote.GeneratedContent != nil:
		body = *in.Quote.GeneratedContent
	}

	title := strings.TrimSpace(in.Quote.Title)
	if title == "" {
		title = DefaultTitle
	}

	v := View{
		ID:           in.Quote.ID,
		Title:        title,
		Date:         date,
		Status:       in.Quote.Status,
		Layout:       lay,
		Warnings:     ws,
		Data:         data,
		BodyRaw:      body,
		Blocks:       blocks.Parse(body, lay.JustifyAll),
		Items:        items,
		ItemsTotal:   ItemsTotal(items),
		PaymentTerms: paymentTerms,
		Terms:        CommercialTerms(dynamic, paymentTerms),
		Additional:   AdditionalInfo(dynamic),
	}
	v.Summary = v.summary(in.Quote.TotalValue)
	v.Recipient = recipientLines(lay.RecipientTemplate, data)
	return v
}

func (v View) summary(total *float64) []Field {
	out := make([]Field, 0, len(v.Layout.VisibleFields))
	for _, key := range v.Layout.VisibleFields {
		var value string
		switch key {
		case layout.FieldValor:
			value = words.FormatBRLPtr(total)
		case layout.FieldData:
			value = v.Date
		case layout.FieldStatus:
			value = string(v.Status)
		default:
			value = v.Data.Get(string(key))
		}
		if value == "" {
			value = "-"
		}
		out = append(out, Field{Label: key.Label(), Value: value})
	}
	return out
}

func recipientLines(template string, data tmpl.Data) []string {
	var out []string
	rendered := strings.ReplaceAll(tmpl.Render(template, data), "\r\n", "\n")
	for _, line := range strings.Split(rendered, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ItemsTotalText is the "Total dos itens" amount in currency form.
func (v View) ItemsTotalText() string {
	return words.FormatDecimal(v.ItemsTotal)
}

// ItemsTotalWords is the items total spelled out.
func (v View) ItemsTotalWords() string {
	return words.ToWordsDecimal(v.ItemsTotal)
}

// FallbackLines is the plain text content of the degraded document: title,
// date, key fields and the raw body.
func (v View) FallbackLines() []string {
	field := func(key layout.FieldKey) string {
		val := v.Data[string(key)]
		if val.IsNull() {
			return "-"
		}
		return val.String()
	}
	lines := []string{
		"Orçamento: " + v.Title,
		"Data: " + v.Date,
		"",
		"Cliente: " + field(layout.FieldCliente),
		"Produto: " + field(layout.FieldProduto),
		"Valor: " + field(layout.FieldValor),
		"Valor por extenso: " + field(layout.FieldValorExtenso),
		"Forma de pagamento: " + field(layout.FieldFormaPagamento),
		"",
		"Descrição:",
	}
	body := v.BodyRaw
	if body == "" {
		body = "Sem conteudo de modelo."
	}
	body = strings.NewReplacer(blocks.JustifyOpen, "", blocks.JustifyClose, "", "\r\n", "\n").Replace(body)
	return append(lines, strings.Split(body, "\n")...)
}
