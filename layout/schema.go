// Package layout resolves the visual configuration of quotes and
// presentations from their stored JSON blobs.
//
// Stored layouts are read field by field: every field that is absent or
// malformed falls back to its documented default, and every malformed field
// is reported as a Warning so callers can log or count it. Resolution is a
// pure function of its input; nothing here is cached or mutated in place.
package layout

// LogoPosition is the horizontal placement of the header logo.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// FontFamily is one of the three core PDF font families.
type FontFamily string

const (
	Helvetica FontFamily = "helvetica"
	Times     FontFamily = "times"
	Courier   FontFamily = "courier"
)

// DatePosition selects where the "Data: dd/mm/yyyy" badge is drawn.
type DatePosition string

const (
	DateHeaderLeft  DatePosition = "header-left"
	DateHeaderRight DatePosition = "header-right"
	DateFooterLeft  DatePosition = "footer-left"
	DateFooterRight DatePosition = "footer-right"
)

// InHeader reports whether the date is drawn in the page header.
func (p DatePosition) InHeader() bool {
	return p == DateHeaderLeft || p == DateHeaderRight
}

// Left reports whether the date is aligned to the left margin.
func (p DatePosition) Left() bool {
	return p == DateHeaderLeft || p == DateFooterLeft
}

// FieldKey identifies one entry of the quote summary. The same keys are the
// placeholder vocabulary of quote templates.
type FieldKey string

const (
	FieldCliente        FieldKey = "cliente"
	FieldEmpresa        FieldKey = "empresa"
	FieldTelefone       FieldKey = "telefone"
	FieldEmail          FieldKey = "email"
	FieldWhatsApp       FieldKey = "whatsapp"
	FieldProduto        FieldKey = "produto"
	FieldValor          FieldKey = "valor"
	FieldValorExtenso   FieldKey = "valor_extenso"
	FieldFormaPagamento FieldKey = "forma_pagamento"
	FieldData           FieldKey = "data"
	FieldStatus         FieldKey = "status"
)

// AllFields lists every summary field in display order.
var AllFields = []FieldKey{
	FieldCliente, FieldEmpresa, FieldTelefone, FieldEmail, FieldWhatsApp,
	FieldProduto, FieldValor, FieldValorExtenso, FieldFormaPagamento,
	FieldData, FieldStatus,
}

var fieldLabels = map[FieldKey]string{
	FieldCliente:        "Cliente",
	FieldEmpresa:        "Empresa",
	FieldTelefone:       "Telefone",
	FieldEmail:          "E-mail",
	FieldWhatsApp:       "WhatsApp",
	FieldProduto:        "Produto",
	FieldValor:          "Valor",
	FieldValorExtenso:   "Valor por extenso",
	FieldFormaPagamento: "Forma de pagamento",
	FieldData:           "Data",
	FieldStatus:         "Status",
}

// Label returns the Portuguese label shown next to the field value.
func (k FieldKey) Label() string {
	return fieldLabels[k]
}

// Valid reports whether k is one of AllFields.
func (k FieldKey) Valid() bool {
	_, ok := fieldLabels[k]
	return ok
}

// Range is an inclusive numeric interval accepted for a layout field.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies within r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Documented ranges of the numeric layout fields, in points.
var (
	LogoWidthRange                = Range{60, 240}
	LineWidthRange                = Range{0.2, 4}
	TitleSizeRange                = Range{14, 40}
	QuoteBodySizeRange            = Range{9, 16}
	QuoteSubtitleSizeRange        = Range{11, 30}
	PresentationBodySizeRange     = Range{9, 18}
	PresentationSubtitleSizeRange = Range{10, 24}
)

// Quote is the resolved layout of a quote document.
type Quote struct {
	LogoURL      string       `json:"logo_url"`
	LogoPosition LogoPosition `json:"logo_position"`
	LogoWidth    float64      `json:"logo_width"`

	FooterText    string `json:"footer_text"`
	WatermarkText string `json:"watermark_text"`
	ShowWatermark bool   `json:"show_watermark"`
	ShowSignature bool   `json:"show_signature"`
	SignatureName string `json:"signature_name"`
	SignatureRole string `json:"signature_role"`

	FontFamily       FontFamily   `json:"font_family"`
	BodyFontSize     float64      `json:"body_font_size"`
	TitleFontSize    float64      `json:"title_font_size"`
	SubtitleFontSize float64      `json:"subtitle_font_size"`
	DatePosition     DatePosition `json:"date_position"`

	PrimaryColor    string `json:"primary_color"`
	TitleColor      string `json:"title_color"`
	SubtitleColor   string `json:"subtitle_color"`
	BodyColor       string `json:"body_color"`
	HeaderLineColor string `json:"header_line_color"`
	FooterLineColor string `json:"footer_line_color"`
	TableLineColor  string `json:"table_line_color"`

	HeaderLineWidth float64 `json:"header_line_width"`
	FooterLineWidth float64 `json:"footer_line_width"`
	TableLineWidth  float64 `json:"table_line_width"`

	ShowSummary         bool   `json:"show_summary"`
	ShowAdditionalInfo  bool   `json:"show_additional_info"`
	ShowRecipient       bool   `json:"show_recipient"`
	RecipientTemplate   string `json:"recipient_template"`
	JustifyAll          bool   `json:"justify_all"`
	ShowCommercialTerms bool   `json:"show_commercial_terms"`

	VisibleFields []FieldKey `json:"visible_fields"`
}

// DefaultQuote returns the layout used when a model stores no layout at all.
func DefaultQuote() Quote {
	return Quote{
		LogoURL:             "",
		LogoPosition:        LogoLeft,
		LogoWidth:           120,
		FooterText:          "Documento gerado pelo Comercial OS.",
		WatermarkText:       "ORÇAMENTO",
		ShowWatermark:       false,
		ShowSignature:       false,
		FontFamily:          Helvetica,
		BodyFontSize:        11,
		TitleFontSize:       22,
		SubtitleFontSize:    14,
		DatePosition:        DateHeaderRight,
		PrimaryColor:        "#f97316",
		TitleColor:          "#f97316",
		SubtitleColor:       "#334155",
		BodyColor:           "#000000",
		HeaderLineColor:     "#334155",
		FooterLineColor:     "#334155",
		TableLineColor:      "#94a3b8",
		HeaderLineWidth:     1.2,
		FooterLineWidth:     1,
		TableLineWidth:      0.8,
		ShowSummary:         true,
		ShowAdditionalInfo:  true,
		ShowRecipient:       true,
		RecipientTemplate:   "Contato: {{cliente}}\nEmpresa: {{empresa}}",
		JustifyAll:          false,
		ShowCommercialTerms: true,
		VisibleFields:       DefaultVisibleFields(),
	}
}

// DefaultVisibleFields returns a fresh copy of the default summary fields.
func DefaultVisibleFields() []FieldKey {
	return []FieldKey{
		FieldCliente, FieldEmpresa, FieldProduto, FieldValor,
		FieldValorExtenso, FieldFormaPagamento, FieldData, FieldStatus,
	}
}

// Presentation is the resolved layout of a company or product presentation.
type Presentation struct {
	LogoURL      string       `json:"logo_url"`
	LogoPosition LogoPosition `json:"logo_position"`
	LogoWidth    float64      `json:"logo_width"`

	FontFamily       FontFamily `json:"font_family"`
	BodyFontSize     float64    `json:"body_font_size"`
	TitleFontSize    float64    `json:"title_font_size"`
	SubtitleFontSize float64    `json:"subtitle_font_size"`

	TitleColor    string `json:"title_color"`
	SubtitleColor string `json:"subtitle_color"`
	BodyColor     string `json:"body_color"`
	JustifyAll    bool   `json:"justify_all"`

	HeaderLineColor string  `json:"header_line_color"`
	HeaderLineWidth float64 `json:"header_line_width"`
	FooterLineColor string  `json:"footer_line_color"`
	FooterLineWidth float64 `json:"footer_line_width"`
	FooterText      string  `json:"footer_text"`
}

// DefaultPresentation returns the presentation layout defaults.
func DefaultPresentation() Presentation {
	return Presentation{
		LogoURL:          "",
		LogoPosition:     LogoLeft,
		LogoWidth:        120,
		FontFamily:       Helvetica,
		BodyFontSize:     11,
		TitleFontSize:    22,
		SubtitleFontSize: 12,
		TitleColor:       "#0f172a",
		SubtitleColor:    "#64748b",
		BodyColor:        "#000000",
		JustifyAll:       false,
		HeaderLineColor:  "#334155",
		HeaderLineWidth:  1.2,
		FooterLineColor:  "#334155",
		FooterLineWidth:  1,
		FooterText:       "Apresentação comercial",
	}
}
