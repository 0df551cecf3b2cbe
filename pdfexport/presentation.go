package pdfexport

import (
	"math"

	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/presentation"
)

// Presentation page geometry, in points.
const (
	presentationHeaderLineY = 86.0
	presentationLogoY       = 24.0
	presentationContentTop  = 166.0
	presentationBottomGap   = 72.0
)

type presentationDoc struct {
	*document
	view presentation.View

	title, subtitle, body   layout.RGB
	headerLine, footerLine  layout.RGB
	titleSize, subtitleSize float64
	bodySize, lineHeight    float64
	headerW, footerW        float64
}

func (r *Renderer) layoutPresentation(v presentation.View, img *logo.Image) (*document, error) {
	l := v.Layout
	slate := layout.RGB{R: 30, G: 41, B: 59}
	p := &presentationDoc{
		document:     r.newDocument(v.Title, l.FontFamily),
		view:         v,
		title:        layout.ParseHex(l.TitleColor, layout.RGB{R: 15, G: 23, B: 42}),
		subtitle:     layout.ParseHex(l.SubtitleColor, layout.RGB{R: 100, G: 116, B: 139}),
		body:         layout.ParseHex(l.BodyColor, layout.RGB{}),
		headerLine:   layout.ParseHex(l.HeaderLineColor, slate),
		footerLine:   layout.ParseHex(l.FooterLineColor, slate),
		titleSize:    l.TitleFontSize,
		subtitleSize: l.SubtitleFontSize,
		bodySize:     l.BodyFontSize,
		lineHeight:   math.Max(16, l.BodyFontSize+5),
		headerW:      l.HeaderLineWidth,
		footerW:      l.FooterLineWidth,
	}
	p.top, p.bottom = presentationContentTop, pageHeight-presentationBottomGap
	p.useLogo(img)
	p.header = p.drawHeaderFooter

	p.addPage()
	y := p.content(p.top)
	p.referenceCode(r.cfg, v.ID, y)

	if p.pdf.Err() {
		return nil, p.pdf.Error()
	}
	return p.document, nil
}

func (p *presentationDoc) applyBody() {
	p.setFont("", p.bodySize)
	p.setText(p.body)
}

func (p *presentationDoc) drawHeaderFooter() {
	l := p.view.Layout
	p.drawLogo(l.LogoPosition, l.LogoWidth, presentationLogoY)
	p.rule(marginX, pageWidth-marginX, presentationHeaderLineY, p.headerW, p.headerLine)

	if p.view.Subtitle != "" {
		p.setFont("", p.subtitleSize)
		p.setText(p.subtitle)
		lines := p.split(p.view.Subtitle, contentWidth*0.7)
		lh := math.Max(p.subtitleSize+2, 14)
		bottom := presentationHeaderLineY - 16
		start := bottom - float64(len(lines)-1)*lh
		for i, line := range lines {
			p.textRight(line, pageWidth-marginX, start+float64(i)*lh)
		}
	}

	p.setFont("B", p.titleSize)
	p.setText(p.title)
	p.centeredLines(p.view.Title, titleY, p.titleSize*1.15)

	p.rule(marginX, pageWidth-marginX, footerLineY, p.footerW, p.footerLine)
	p.setFont("", 9)
	p.setText(footerTextColor)
	footer := l.FooterText
	if footer == "" {
		footer = "Apresentação comercial"
	}
	p.centeredLines(footer, footerTextY, 11)

	p.applyBody()
}

func (p *presentationDoc) content(y float64) float64 {
	p.applyBody()
	for _, b := range p.view.Blocks {
		switch b.Kind {
		case blocks.Spacer:
			y = p.ensureSpace(y, 8)
			y += 6

		case blocks.Title:
			y = p.ensureSpace(y, 26)
			p.setFont("B", math.Max(p.titleSize-4, 14))
			p.setText(p.title)
			p.drawLines(p.split(b.Text, contentWidth), marginX, y, p.lineHeight)
			y += math.Max(p.lineHeight+3, 18)

		case blocks.Subtitle:
			y = p.ensureSpace(y, 22)
			p.setFont("B", p.subtitleSize)
			p.setText(p.subtitle)
			p.drawLines(p.split(b.Text, contentWidth), marginX, y, p.lineHeight)
			y += math.Max(p.lineHeight+2, 16)

		default:
			p.applyBody()
			text := b.Text
			if b.Kind == blocks.Bullet {
				text = "• " + text
			}
			lines := p.split(text, contentWidth)
			n := float64(len(lines))
			y = p.ensureSpace(y, n*p.lineHeight+2)
			if b.Justified {
				p.justified(text, y, p.lineHeight, p.bodySize)
			} else {
				p.drawLines(lines, marginX, y, p.lineHeight)
			}
			y += n * p.lineHeight
		}
	}
	return y
}
