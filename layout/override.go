package layout

// Override is a partial quote layout stored on a single quote. A nil field
// is absent and leaves the base value in place.
type Override struct {
	LogoURL      *string
	LogoPosition *LogoPosition
	LogoWidth    *float64

	FooterText    *string
	WatermarkText *string
	ShowWatermark *bool
	ShowSignature *bool
	SignatureName *string
	SignatureRole *string

	FontFamily       *FontFamily
	BodyFontSize     *float64
	TitleFontSize    *float64
	SubtitleFontSize *float64
	DatePosition     *DatePosition

	PrimaryColor    *string
	TitleColor      *string
	SubtitleColor   *string
	BodyColor       *string
	HeaderLineColor *string
	FooterLineColor *string
	TableLineColor  *string

	HeaderLineWidth *float64
	FooterLineWidth *float64
	TableLineWidth  *float64

	ShowSummary         *bool
	ShowAdditionalInfo  *bool
	ShowRecipient       *bool
	RecipientTemplate   *string
	JustifyAll          *bool
	ShowCommercialTerms *bool

	// VisibleFields replaces the base list only when non-empty.
	VisibleFields []FieldKey
}

// Merge applies o on top of base. Only fields present in o replace the base
// value; the visible field list is replaced wholesale when o carries one.
func Merge(base Quote, o Override) Quote {
	out := base
	setString(&out.LogoURL, o.LogoURL)
	if o.LogoPosition != nil {
		out.LogoPosition = *o.LogoPosition
	}
	setNumber(&out.LogoWidth, o.LogoWidth)

	setString(&out.FooterText, o.FooterText)
	setString(&out.WatermarkText, o.WatermarkText)
	setBool(&out.ShowWatermark, o.ShowWatermark)
	setBool(&out.ShowSignature, o.ShowSignature)
	setString(&out.SignatureName, o.SignatureName)
	setString(&out.SignatureRole, o.SignatureRole)

	if o.FontFamily != nil {
		out.FontFamily = *o.FontFamily
	}
	setNumber(&out.BodyFontSize, o.BodyFontSize)
	setNumber(&out.TitleFontSize, o.TitleFontSize)
	setNumber(&out.SubtitleFontSize, o.SubtitleFontSize)
	if o.DatePosition != nil {
		out.DatePosition = *o.DatePosition
	}

	setString(&out.PrimaryColor, o.PrimaryColor)
	setString(&out.TitleColor, o.TitleColor)
	setString(&out.SubtitleColor, o.SubtitleColor)
	setString(&out.BodyColor, o.BodyColor)
	setString(&out.HeaderLineColor, o.HeaderLineColor)
	setString(&out.FooterLineColor, o.FooterLineColor)
	setString(&out.TableLineColor, o.TableLineColor)

	setNumber(&out.HeaderLineWidth, o.HeaderLineWidth)
	setNumber(&out.FooterLineWidth, o.FooterLineWidth)
	setNumber(&out.TableLineWidth, o.TableLineWidth)

	setBool(&out.ShowSummary, o.ShowSummary)
	setBool(&out.ShowAdditionalInfo, o.ShowAdditionalInfo)
	setBool(&out.ShowRecipient, o.ShowRecipient)
	setString(&out.RecipientTemplate, o.RecipientTemplate)
	setBool(&out.JustifyAll, o.JustifyAll)
	setBool(&out.ShowCommercialTerms, o.ShowCommercialTerms)

	if len(o.VisibleFields) > 0 {
		out.VisibleFields = append([]FieldKey(nil), o.VisibleFields...)
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setNumber(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
