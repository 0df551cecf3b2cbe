package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Warning describes one stored field that could not be used as is.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Reason
}

// Warnings is the list of field-level defects found while resolving.
type Warnings []Warning

// Has reports whether a warning was recorded for field.
func (ws Warnings) Has(field string) bool {
	for _, w := range ws {
		if w.Field == field {
			return true
		}
	}
	return false
}

// Strings returns the warnings in "field: reason" form.
func (ws Warnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// fieldReader reads typed values out of a decoded JSON object and records a
// warning for every value present with the wrong shape.
type fieldReader struct {
	raw      map[string]any
	prefix   string
	warnings Warnings
}

func newFieldReader(raw map[string]any, prefix string) *fieldReader {
	return &fieldReader{raw: raw, prefix: prefix}
}

func (r *fieldReader) warn(key, format string, args ...any) {
	name := key
	if r.prefix != "" {
		name = r.prefix + "." + key
	}
	r.warnings = append(r.warnings, Warning{Field: name, Reason: fmt.Sprintf(format, args...)})
}

// lookup returns the value stored under key. JSON null counts as absent.
func (r *fieldReader) lookup(key string) (any, bool) {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) optString(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.warn(key, "expected string, got %T", v)
		return nil
	}
	return &s
}

func (r *fieldReader) optBool(key string) *bool {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		r.warn(key, "expected boolean, got %T", v)
		return nil
	}
	return &b
}

func (r *fieldReader) optNumber(key string, rg Range) *float64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		r.warn(key, "expected number, got %T", v)
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.warn(key, "not a finite number")
		return nil
	}
	if !rg.Contains(f) {
		r.warn(key, "%g outside [%g, %g]", f, rg.Min, rg.Max)
		return nil
	}
	return &f
}

// optEnum accepts only the exact literals in allowed.
func (r *fieldReader) optEnum(key string, allowed ...string) *string {
	s := r.optString(key)
	if s == nil {
		return nil
	}
	for _, a := range allowed {
		if *s == a {
			return s
		}
	}
	r.warn(key, "unknown value %q", *s)
	return nil
}

// visibleFields filters the stored list against AllFields. A non-array value
// yields nil; so does a list with no valid entry.
func (r *fieldReader) visibleFields(key string) []FieldKey {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if ss, isStrings := v.([]string); isStrings {
			items = make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
		} else {
			r.warn(key, "expected array, got %T", v)
			return nil
		}
	}
	var out []FieldKey
	for i, item := range items {
		s, isString := item.(string)
		if !isString || !FieldKey(s).Valid() {
			r.warn(fmt.Sprintf("%s[%d]", key, i), "unknown field %v", item)
			continue
		}
		out = append(out, FieldKey(s))
	}
	if len(out) == 0 && len(items) > 0 {
		r.warn(key, "no valid field left after filtering")
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func nested(params map[string]any, key string) map[string]any {
	if params == nil {
		return nil
	}
	m, _ := params[key].(map[string]any)
	return m
}

// ResolveQuote reads a stored quote layout object. Absent fields take their
// default silently; malformed ones take their default and are reported.
func ResolveQuote(raw map[string]any) (Quote, Warnings) {
	o, ws := readOverride(raw, "layout")
	return Merge(DefaultQuote(), o), ws
}

// QuoteFromParameters resolves the layout nested under the "layout" key of a
// quote model's parameters.
func QuoteFromParameters(params map[string]any) (Quote, Warnings) {
	return ResolveQuote(nested(params, "layout"))
}

// ResolveOverride reads a per-quote override object. Malformed fields are
// reported and left absent so they never replace the base value.
func ResolveOverride(raw map[string]any) (Override, Warnings) {
	return readOverride(raw, "layout_overrides")
}

// OverrideFromParameters resolves the "layout_overrides" key of a quote's
// own parameters.
func OverrideFromParameters(params map[string]any) (Override, Warnings) {
	return ResolveOverride(nested(params, "layout_overrides"))
}

func readOverride(raw map[string]any, prefix string) (Override, Warnings) {
	r := newFieldReader(raw, prefix)
	o := Override{
		LogoURL:             r.optString("logo_url"),
		LogoPosition:        (*LogoPosition)(r.optEnum("logo_position", "left", "center", "right")),
		LogoWidth:           r.optNumber("logo_width", LogoWidthRange),
		FooterText:          r.optString("footer_text"),
		WatermarkText:       r.optString("watermark_text"),
		ShowWatermark:       r.optBool("show_watermark"),
		ShowSignature:       r.optBool("show_signature"),
		SignatureName:       r.optString("signature_name"),
		SignatureRole:       r.optString("signature_role"),
		FontFamily:          (*FontFamily)(r.optEnum("font_family", "helvetica", "times", "courier")),
		BodyFontSize:        r.optNumber("body_font_size", QuoteBodySizeRange),
		TitleFontSize:       r.optNumber("title_font_size", TitleSizeRange),
		SubtitleFontSize:    r.optNumber("subtitle_font_size", QuoteSubtitleSizeRange),
		DatePosition:        (*DatePosition)(r.optEnum("date_position", "header-left", "header-right", "footer-left", "footer-right")),
		PrimaryColor:        r.optString("primary_color"),
		TitleColor:          r.optString("title_color"),
		SubtitleColor:       r.optString("subtitle_color"),
		BodyColor:           r.optString("body_color"),
		HeaderLineColor:     r.optString("header_line_color"),
		FooterLineColor:     r.optString("footer_line_color"),
		TableLineColor:      r.optString("table_line_color"),
		HeaderLineWidth:     r.optNumber("header_line_width", LineWidthRange),
		FooterLineWidth:     r.optNumber("footer_line_width", LineWidthRange),
		TableLineWidth:      r.optNumber("table_line_width", LineWidthRange),
		ShowSummary:         r.optBool("show_summary"),
		ShowAdditionalInfo:  r.optBool("show_additional_info"),
		ShowRecipient:       r.optBool("show_recipient"),
		RecipientTemplate:   r.optString("recipient_template"),
		JustifyAll:          r.optBool("justify_all"),
		ShowCommercialTerms: r.optBool("show_commercial_terms"),
		VisibleFields:       r.visibleFields("visible_fields"),
	}
	return o, r.warnings
}

// ResolvePresentation reads a stored presentation layout object.
func ResolvePresentation(raw map[string]any) (Presentation, Warnings) {
	d := DefaultPresentation()
	r := newFieldReader(raw, "layout")
	p := Presentation{
		LogoURL:          orString(r.optString("logo_url"), d.LogoURL),
		LogoPosition:     LogoPosition(orString(r.optEnum("logo_position", "left", "center", "right"), string(d.LogoPosition))),
		LogoWidth:        orNumber(r.optNumber("logo_width", LogoWidthRange), d.LogoWidth),
		FontFamily:       FontFamily(orString(r.optEnum("font_family", "helvetica", "times", "courier"), string(d.FontFamily))),
		BodyFontSize:     orNumber(r.optNumber("body_font_size", PresentationBodySizeRange), d.BodyFontSize),
		TitleFontSize:    orNumber(r.optNumber("title_font_size", TitleSizeRange), d.TitleFontSize),
		SubtitleFontSize: orNumber(r.optNumber("subtitle_font_size", PresentationSubtitleSizeRange), d.SubtitleFontSize),
		TitleColor:       orString(r.optString("title_color"), d.TitleColor),
		SubtitleColor:    orString(r.optString("subtitle_color"), d.SubtitleColor),
		BodyColor:        orString(r.optString("body_color"), d.BodyColor),
		JustifyAll:       orBool(r.optBool("justify_all"), d.JustifyAll),
		HeaderLineColor:  orString(r.optString("header_line_color"), d.HeaderLineColor),
		HeaderLineWidth:  orNumber(r.optNumber("header_line_width", LineWidthRange), d.HeaderLineWidth),
		FooterLineColor:  orString(r.optString("footer_line_color"), d.FooterLineColor),
		FooterLineWidth:  orNumber(r.optNumber("footer_line_width", LineWidthRange), d.FooterLineWidth),
		FooterText:       orString(r.optString("footer_text"), d.FooterText),
	}
	return p, r.warnings
}

// PresentationFromParameters resolves the "layout" key of a presentation's
// parameters.
func PresentationFromParameters(params map[string]any) (Presentation, Warnings) {
	return ResolvePresentation(nested(params, "layout"))
}

func orString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func orNumber(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func orBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Map returns q in its storage shape, as decoded from JSON.
func (q Quote) Map() map[string]any {
	return toMap(q)
}

// Map returns p in its storage shape, as decoded from JSON.
func (p Presentation) Map() map[string]any {
	return toMap(p)
}

// Parameters wraps p the way presentations persist their layout.
func (p Presentation) Parameters() map[string]any {
	return map[string]any{"layout": p.Map()}
}

func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// NormalizeFont maps loosely named font families onto the three core fonts.
func NormalizeFont(name string) FontFamily {
	raw := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(raw, "times"), strings.Contains(raw, "serif"), strings.Contains(raw, "georgia"):
		return Times
	case strings.Contains(raw, "mono"), strings.Contains(raw, "courier"), strings.Contains(raw, "consol"):
		return Courier
	}
	return Helvetica
}
