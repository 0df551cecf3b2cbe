package quote

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/tmpl"
)

// Keys with a fixed meaning inside a quote's parameters blob.
const (
	KeyLayoutOverrides = "layout_overrides"
	KeyPaymentTerms    = "payment_terms"
	KeyItems           = "quote_items"
	KeyDeadlineDays    = "prazo_dias"
	KeyValidity        = "validade_proposta"
)

// parametersSchema constrains the keys the renderer reads. Any other key is
// free-form and shows up as additional information.
const parametersSchema = `{
  "type": "object",
  "properties": {
    "quote_items": {
      "type": "array",
      "items": {"type": "object"}
    },
    "payment_terms": {"type": "string"},
    "layout_overrides": {"type": "object"}
  }
}`

var parametersLoader = gojsonschema.NewStringLoader(parametersSchema)

// DecodeParameters parses the JSON typed by a user in the quote parameters
// field. Blank input yields nil. Invalid JSON, a non-object document or a
// reserved key of the wrong type fail with ErrInvalidParameters and a
// message meant for the user.
func DecodeParameters(text string) (map[string]any, error) {
	m, err := decodeObject(text, "Parametros JSON invalidos.")
	if err != nil {
		return nil, crmdocs.Wrap("DecodeParameters", err)
	}
	return m, nil
}

// DecodeDefaults parses the default parameters JSON of a quote model.
func DecodeDefaults(text string) (map[string]any, error) {
	m, err := decodeObject(text, "JSON de parametros padrao invalido.")
	if err != nil {
		return nil, crmdocs.Wrap("DecodeDefaults", err)
	}
	return m, nil
}

func decodeObject(text, message string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", crmdocs.ErrInvalidParameters, message, err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s (expected a JSON object)", crmdocs.ErrInvalidParameters, message)
	}
	result, err := gojsonschema.Validate(parametersLoader, gojsonschema.NewGoLoader(m))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", crmdocs.ErrInvalidParameters, message, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s (%s)", crmdocs.ErrInvalidParameters, message, strings.Join(msgs, "; "))
	}
	return m, nil
}

// PaymentTerms returns the "payment_terms" string, or "".
func PaymentTerms(params map[string]any) string {
	s, _ := params[KeyPaymentTerms].(string)
	return s
}

// DynamicParams returns every parameter except the layout overrides. The
// result is a new map.
func DynamicParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if k == KeyLayoutOverrides {
			continue
		}
		out[k] = v
	}
	return out
}

// ModelDefaults returns the "defaults" object of a model's parameters.
func ModelDefaults(m *Model) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	d, ok := m.Parameters["defaults"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return d
}

// ModelLayout resolves the base layout stored on a model; a nil model yields
// the defaults.
func ModelLayout(m *Model) (layout.Quote, layout.Warnings) {
	if m == nil {
		return layout.DefaultQuote(), nil
	}
	return layout.QuoteFromParameters(m.Parameters)
}

// ResolveLayout merges the quote's own overrides over its model layout.
func ResolveLayout(m *Model, params map[string]any) (layout.Quote, layout.Warnings) {
	base, ws := ModelLayout(m)
	o, ows := layout.OverrideFromParameters(params)
	return layout.Merge(base, o), append(ws, ows...)
}

// LineItem is one row of the items table.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Total is Quantity times UnitPrice in exact decimal arithmetic.
func (li LineItem) Total() decimal.Decimal {
	return decimal.NewFromFloat(li.Quantity).Mul(decimal.NewFromFloat(li.UnitPrice))
}

// Items extracts the "quote_items" array. Entries that are not objects or
// whose description is blank are dropped; quantities and prices that do not
// convert to a finite number become 0.
func Items(params map[string]any) []LineItem {
	raw, ok := params[KeyItems].([]any)
	if !ok {
		return nil
	}
	var out []LineItem
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		desc, _ := obj["description"].(string)
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		out = append(out, LineItem{
			Description: desc,
			Quantity:    toNumber(obj["quantity"]),
			UnitPrice:   toNumber(obj["unit_price"]),
		})
	}
	return out
}

// ItemsTotal sums the line totals.
func ItemsTotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// toNumber converts like a lenient numeric cast: numbers pass through,
// numeric strings are parsed, booleans map to 0 or 1, null and blank strings
// are 0, and anything non-finite or unparsable is 0.
func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, _ = t.Float64()
	case bool:
		if t {
			f = 1
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// reservedKeys never appear under "Informações adicionais".
var reservedKeys = map[string]bool{
	KeyPaymentTerms: true,
	KeyItems:        true,
}

func init() {
	for _, k := range layout.AllFields {
		reservedKeys[string(k)] = true
	}
}

// Field is a label and its display value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AdditionalInfo lists the free-form dynamic parameters sorted by key.
// Strings are shown as is and any other value in its JSON form.
func AdditionalInfo(dynamic map[string]any) []Field {
	keys := make([]string, 0, len(dynamic))
	for k := range dynamic {
		if !reservedKeys[k] && k != KeyLayoutOverrides {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Label: k, Value: tmpl.FromAny(dynamic[k]).Literal()})
	}
	return out
}

// CommercialTerms builds the "Condições comerciais" lines: the delivery
// deadline when "prazo_dias" is a number, the proposal validity when
// "validade_proposta" is a string, and the payment terms when set.
func CommercialTerms(dynamic map[string]any, paymentTerms string) []string {
	var out []string
	if days, ok := dynamic[KeyDeadlineDays].(float64); ok {
		out = append(out, "Prazo: "+tmpl.Number(days).String()+" dias")
	}
	if v, ok := dynamic[KeyValidity].(string); ok {
		out = append(out, "Validade da proposta: "+v)
	}
	if paymentTerms != "" {
		out = append(out, "Pagamento: "+paymentTerms)
	}
	return out
}
