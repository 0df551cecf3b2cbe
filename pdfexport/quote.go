package pdfexport

import (
	"math"
	"strconv"
	"strings"

	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/quote"
	"github.com/apogeu/crmdocs/table"
	"github.com/apogeu/crmdocs/words"
)

// Quote page geometry, in points.
const (
	quoteHeaderLineY = 82.0
	quoteDateY       = quoteHeaderLineY - 10
	quoteLogoY       = 22.0
	quoteContentTop  = 132.0
	quoteBottomGap   = 76.0

	signatureWidth = 220.0
)

var signatureLineColor = layout.RGB{R: 148, G: 163, B: 184}

// quoteStyle holds the colours and sizes derived from a quote layout.
type quoteStyle struct {
	title      layout.RGB
	subtitle   layout.RGB
	body       layout.RGB
	headerLine layout.RGB
	footerLine layout.RGB
	tableLine  layout.RGB

	titleSize    float64
	subtitleSize float64
	bodySize     float64
	lineHeight   float64

	headerW float64
	footerW float64
	tableW  float64
}

func newQuoteStyle(l layout.Quote) quoteStyle {
	primary := layout.ParseHex(l.PrimaryColor, layout.RGB{R: 249, G: 115, B: 22})
	slate := layout.RGB{R: 51, G: 65, B: 85}
	return quoteStyle{
		title:        layout.ParseHex(l.TitleColor, primary),
		subtitle:     layout.ParseHex(l.SubtitleColor, slate),
		body:         layout.ParseHex(l.BodyColor, layout.RGB{}),
		headerLine:   layout.ParseHex(l.HeaderLineColor, slate),
		footerLine:   layout.ParseHex(l.FooterLineColor, slate),
		tableLine:    layout.ParseHex(l.TableLineColor, layout.RGB{R: 148, G: 163, B: 184}),
		titleSize:    l.TitleFontSize,
		subtitleSize: l.SubtitleFontSize,
		bodySize:     l.BodyFontSize,
		lineHeight:   math.Max(16, l.BodyFontSize+5),
		headerW:      l.HeaderLineWidth,
		footerW:      l.FooterLineWidth,
		tableW:       l.TableLineWidth,
	}
}

// quoteDoc lays out one quote view.
type quoteDoc struct {
	*document
	view quote.View
	st   quoteStyle
}

func (r *Renderer) layoutQuote(v quote.View, img *logo.Image) (*document, error) {
	q := &quoteDoc{
		document: r.newDocument(v.Title, v.Layout.FontFamily),
		view:     v,
		st:       newQuoteStyle(v.Layout),
	}
	q.top, q.bottom = quoteContentTop, pageHeight-quoteBottomGap
	q.useLogo(img)
	q.header = q.drawHeaderFooter

	q.addPage()
	q.applyBody()
	y := q.top

	y = q.summary(y)
	y = q.recipient(y)
	y = q.proposal(y)
	y, err := q.items(y)
	if err != nil {
		return nil, err
	}
	y = q.commercialTerms(y)
	y = q.additionalInfo(y)
	y = q.signature(y)
	q.referenceCode(r.cfg, v.ID, y)

	if q.pdf.Err() {
		return nil, q.pdf.Error()
	}
	return q.document, nil
}

func (q *quoteDoc) applyBody() {
	q.setFont("", q.st.bodySize)
	q.setText(q.st.body)
}

func (q *quoteDoc) drawHeaderFooter() {
	l := q.view.Layout
	if l.ShowWatermark {
		text := l.WatermarkText
		if strings.TrimSpace(text) == "" {
			text = "ORÇAMENTO"
		}
		q.watermark(text)
	}

	q.drawLogo(l.LogoPosition, l.LogoWidth, quoteLogoY)
	q.rule(marginX, pageWidth-marginX, quoteHeaderLineY, q.st.headerW, q.st.headerLine)

	q.setText(q.st.title)
	q.setFont("B", q.st.titleSize)
	q.centeredLines(q.view.Title, titleY, q.st.titleSize*1.15)

	dateText := "Data: " + q.view.Date
	q.setText(dateColor)
	q.setFont("B", 10)
	if l.DatePosition.InHeader() {
		q.aligned(dateText, l.DatePosition.Left(), quoteDateY)
	}

	q.rule(marginX, pageWidth-marginX, footerLineY, q.st.footerW, q.st.footerLine)

	q.setFont("", 9)
	q.setText(footerTextColor)
	if l.FooterText != "" {
		q.centeredLines(l.FooterText, footerTextY, 11)
	}
	if !l.DatePosition.InHeader() {
		q.aligned(dateText, l.DatePosition.Left(), footerTextY)
	}

	q.applyBody()
}

func (q *quoteDoc) heading(text string, y float64) {
	q.setFont("B", q.st.subtitleSize)
	q.setText(q.st.subtitle)
	q.pdf.Text(marginX, y, q.enc(text))
}

// paragraph draws text wrapped to the content width in the body style.
func (q *quoteDoc) paragraph(text string, y float64) float64 {
	q.applyBody()
	lines := q.split(text, contentWidth)
	n := float64(len(lines))
	y = q.ensureSpace(y, n*q.st.lineHeight+2)
	q.drawLines(lines, marginX, y, q.st.lineHeight)
	return y + n*q.st.lineHeight
}

func (q *quoteDoc) summary(y float64) float64 {
	if !q.view.Layout.ShowSummary {
		return y
	}
	y = q.ensureSpace(y, 26)
	q.heading("Resumo do orçamento", y)
	y += 18
	for _, f := range q.view.Summary {
		y = q.paragraph(f.Label+": "+f.Value, y)
	}
	return y
}

func (q *quoteDoc) recipient(y float64) float64 {
	if !q.view.Layout.ShowRecipient || len(q.view.Recipient) == 0 {
		return y
	}
	y += 8
	y = q.ensureSpace(y, 26)
	q.heading("Destinatário", y)
	y += 18
	for _, line := range q.view.Recipient {
		y = q.paragraph(line, y)
	}
	return y
}

func (q *quoteDoc) proposal(y float64) float64 {
	y += 8
	y = q.ensureSpace(y, 26)
	q.heading("Descrição da proposta", y)
	y += 18

	st := q.st
	for _, b := range q.view.Blocks {
		switch b.Kind {
		case blocks.Spacer:
			y = q.ensureSpace(y, 10)
			y += 8

		case blocks.Title:
			y = q.ensureSpace(y, st.titleSize+8)
			q.setFont("B", math.Max(st.subtitleSize+1, st.titleSize-4))
			q.setText(st.title)
			lines := q.split(b.Text, contentWidth)
			q.drawLines(lines, marginX, y, st.titleSize-1)
			y += float64(len(lines)) * (st.titleSize - 1)

		case blocks.Subtitle:
			y = q.ensureSpace(y, st.subtitleSize+6)
			q.setFont("B", st.subtitleSize)
			q.setText(st.subtitle)
			lines := q.split(b.Text, contentWidth)
			q.drawLines(lines, marginX, y, st.subtitleSize+2)
			y += float64(len(lines)) * (st.subtitleSize + 2)

		default:
			text := b.Text
			if b.Kind == blocks.Bullet {
				text = "• " + text
			}
			if !b.Justified {
				y = q.paragraph(text, y)
				continue
			}
			q.applyBody()
			n := float64(len(q.split(text, contentWidth)))
			y = q.ensureSpace(y, n*st.lineHeight+2)
			q.justified(text, y, st.lineHeight, st.bodySize)
			y += n * st.lineHeight
		}
	}
	return y
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (q *quoteDoc) items(y float64) (float64, error) {
	v := q.view
	if len(v.Items) == 0 {
		return y, nil
	}
	st := q.st
	right := marginX + contentWidth

	y += 6
	y = q.ensureSpace(y, 28)
	q.heading("Itens do orçamento", y)
	y += 16

	q.applyBody()
	tb := table.New(q.pdf, q.ensureSpace).SetTranslator(q.enc).SetColumns(
		table.Column{Anchor: marginX, Width: contentWidth - 220},
		table.Column{Anchor: right - 190, Align: "R"},
		table.Column{Anchor: right - 95, Align: "R"},
		table.Column{Anchor: right, Align: "R"},
	)
	tb.SetStyle(table.TableStyle{
		HeaderStyle: &table.CellStyle{Font: &table.FontSpec{Family: q.font, Style: "B", Size: st.bodySize}},
		CellFont:    &table.FontSpec{Family: q.font, Size: st.bodySize},
		TextColor:   &table.RGBColor{R: st.body.R, G: st.body.G, B: st.body.B},
	})
	tb.SetHeader("Descrição", "Qtd", "Unitário", "Total")
	for _, it := range v.Items {
		tb.AddRow(it.Description, formatQuantity(it.Quantity), words.FormatBRL(it.UnitPrice), words.FormatDecimal(it.Total()))
	}
	y, err := tb.Render(y, st.lineHeight, 6)
	if err != nil {
		return y, err
	}

	y = q.ensureSpace(y, st.lineHeight*2+20)
	q.rule(marginX, right, y, st.tableW, st.tableLine)
	y += 14
	q.applyBody()
	q.setFont("B", st.bodySize)
	q.textRight(q.enc("Total dos itens: "+v.ItemsTotalText()), right, y)
	y += st.lineHeight
	q.setFont("", st.bodySize)
	q.textRight(q.enc("("+v.ItemsTotalWords()+")"), right, y)
	y += 8
	q.rule(marginX, right, y, st.tableW, st.tableLine)
	return y, nil
}

func (q *quoteDoc) commercialTerms(y float64) float64 {
	if !q.view.Layout.ShowCommercialTerms || len(q.view.Terms) == 0 {
		return y
	}
	y += 18
	y = q.ensureSpace(y, 24)
	q.heading("Condições comerciais", y)
	y += 16
	for _, t := range q.view.Terms {
		y = q.paragraph("• "+t, y)
	}
	return y
}

func (q *quoteDoc) additionalInfo(y float64) float64 {
	if !q.view.Layout.ShowAdditionalInfo || len(q.view.Additional) == 0 {
		return y
	}
	y += 10
	y = q.ensureSpace(y, 24)
	q.heading("Informações adicionais", y)
	y += 16
	for _, f := range q.view.Additional {
		y = q.paragraph(f.Label+": "+f.Value, y)
	}
	return y
}

func (q *quoteDoc) signature(y float64) float64 {
	l := q.view.Layout
	if !l.ShowSignature {
		return y
	}
	y += 24
	y = q.ensureSpace(y, 40)
	signX := pageWidth - marginX - signatureWidth
	center := signX + signatureWidth/2
	q.rule(signX, signX+signatureWidth, y, q.st.tableW, signatureLineColor)
	y += 14

	name := l.SignatureName
	if name == "" {
		name = "Assinatura"
	}
	q.applyBody()
	q.setFont("B", q.st.bodySize)
	q.textCenter(q.enc(name), center, y)
	y += 12
	q.setFont("", 10)
	q.textCenter(q.enc(l.SignatureRole), center, y)
	return y
}
