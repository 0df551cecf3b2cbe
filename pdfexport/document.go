// Package pdfexport renders quote and presentation views into paginated A4
// PDF documents with the core PDF fonts.
//
// Every page gets the same header and footer routine, content flows with a
// greedy page break check before each element, and page numbers are stamped
// once all pages exist. A render that fails for any reason is replaced by a
// minimal plain text document, so each call produces exactly one Output.
package pdfexport

import (
	"bytes"
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/pageops"
	"github.com/apogeu/crmdocs/tmpl"
)

// A4 portrait geometry shared by all documents, in points.
const (
	pageWidth    = 595.28
	pageHeight   = 841.89
	marginX      = 48.0
	contentWidth = pageWidth - 2*marginX
	titleY       = 112.0

	footerLineY   = pageHeight - 48
	footerTextY   = pageHeight - 30
	pageNumberGap = 14.0
)

var (
	dateColor       = layout.RGB{R: 71, G: 85, B: 105}
	footerTextColor = layout.RGB{R: 100, G: 116, B: 139}
	pageNumberColor = layout.RGB{R: 148, G: 163, B: 184}
)

const logoKey = "header-logo"

// document is the per-render state around one gofpdf instance.
type document struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	font   string
	top    float64
	bottom float64
	header func()
	logger *zap.Logger

	letterhead *pageops.Letterhead
	logo       *logo.Image
}

func (r *Renderer) newDocument(title string, font layout.FontFamily) *document {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginX, 0, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(r.cfg.compress)
	pdf.SetCreationDate(r.cfg.clock())
	pdf.SetTitle(title, true)
	pdf.SetAuthor(r.cfg.author, true)
	pdf.SetCreator("crmdocs", true)

	d := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		font:   string(font),
		header: func() {},
		logger: r.cfg.logger,
	}
	if r.cfg.letterhead != "" {
		lh, err := pageops.LoadLetterhead(pdf, r.cfg.letterhead)
		if err != nil {
			d.logger.Warn("letterhead unavailable, rendering without it",
				zap.String("path", r.cfg.letterhead), zap.Error(err))
		} else {
			d.letterhead = lh
		}
	}
	return d
}

// enc normalises s to NFC and encodes it for the core fonts.
func (d *document) enc(s string) string {
	return d.tr(norm.NFC.String(s))
}

func (d *document) setFont(style string, size float64) {
	d.pdf.SetFont(d.font, style, size)
}

func (d *document) setText(c layout.RGB) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

// split encodes s and wraps it to w with the current font.
func (d *document) split(s string, w float64) []string {
	raw := d.pdf.SplitLines([]byte(d.enc(s)), w)
	if len(raw) == 0 {
		return []string{""}
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

// drawLines draws encoded lines with their first baseline at y.
func (d *document) drawLines(lines []string, x, y, lh float64) {
	for i, l := range lines {
		d.pdf.Text(x, y+float64(i)*lh, l)
	}
}

func (d *document) textRight(encoded string, right, y float64) {
	d.pdf.Text(right-d.pdf.GetStringWidth(encoded), y, encoded)
}

func (d *document) textCenter(encoded string, center, y float64) {
	d.pdf.Text(center-d.pdf.GetStringWidth(encoded)/2, y, encoded)
}

// aligned draws a single line at the left margin or flush with the right
// margin.
func (d *document) aligned(s string, left bool, y float64) {
	if left {
		d.pdf.Text(marginX, y, d.enc(s))
		return
	}
	d.textRight(d.enc(s), pageWidth-marginX, y)
}

// centeredLines wraps s to the content width and centers every line on the
// page, the first baseline at y.
func (d *document) centeredLines(s string, y, lh float64) {
	for i, l := range d.split(s, contentWidth) {
		d.textCenter(l, pageWidth/2, y+float64(i)*lh)
	}
}

func (d *document) rule(x1, x2, y, width float64, c layout.RGB) {
	d.pdf.SetLineWidth(width)
	d.pdf.SetDrawColor(c.R, c.G, c.B)
	d.pdf.Line(x1, y, x2, y)
}

// justified draws text as a justified paragraph whose first baseline is at
// y, matching the baselines of drawLines.
func (d *document) justified(text string, y, lh, size float64) {
	d.pdf.SetXY(marginX, y-lh/2-0.3*size)
	d.pdf.MultiCell(contentWidth, lh, d.enc(text), "", "J", false)
}

// addPage starts a page and draws the letterhead and the header routine.
func (d *document) addPage() {
	d.pdf.AddPage()
	if d.letterhead != nil {
		if err := d.letterhead.Draw(d.pdf, pageWidth, pageHeight); err != nil {
			d.logger.Warn("letterhead failed, continuing without it", zap.Error(err))
			d.letterhead = nil
		}
	}
	d.header()
}

// ensureSpace returns y when needed points still fit above the content
// bottom, otherwise it starts a new page and returns the content top.
func (d *document) ensureSpace(y, needed float64) float64 {
	if y+needed <= d.bottom {
		return y
	}
	d.addPage()
	return d.top
}

// useLogo registers img with the engine. A logo the engine rejects is
// dropped with a warning.
func (d *document) useLogo(img *logo.Image) {
	if img == nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: img.EngineType()}
	info := d.pdf.RegisterImageOptionsReader(logoKey, opts, bytes.NewReader(img.Data))
	if d.pdf.Err() || info == nil {
		d.logger.Warn("logo rejected by the PDF engine, rendering without logo", zap.Error(d.pdf.Error()))
		d.pdf.ClearError()
		return
	}
	d.logo = img
}

func (d *document) drawLogo(pos layout.LogoPosition, maxW, y float64) {
	if d.logo == nil {
		return
	}
	w, h := logo.Fit(d.logo.Width, d.logo.Height, maxW, logo.MaxHeight)
	x := logo.Place(pos, pageWidth, marginX, w)
	if !logo.Drawable(x, w, h) {
		return
	}
	d.pdf.ImageOptions(logoKey, x, y, w, h, false, gofpdf.ImageOptions{ImageType: d.logo.EngineType()}, 0, "")
}

func (d *document) watermark(text string) {
	wm := pageops.TextWatermark{Text: d.enc(text), FontFamily: d.font}
	if err := pageops.DrawTextWatermark(d.pdf, wm, pageWidth, pageHeight); err != nil {
		d.logger.Warn("watermark failed, page rendered without it", zap.Error(err))
	}
}

// referenceCode draws the configured code flush right below y and returns
// the baseline after it. Documents without an id get no code.
func (d *document) referenceCode(cfg config, id string, y float64) float64 {
	if cfg.refPattern == "" || strings.TrimSpace(id) == "" {
		return y
	}
	code := pageops.ReferenceCode{
		Kind:    cfg.refKind,
		Width:   56,
		Payload: tmpl.Render(cfg.refPattern, tmpl.Data{"id": tmpl.String(id)}),
	}
	y = d.ensureSpace(y+12, code.Height()+4)
	if err := pageops.DrawReferenceCode(d.pdf, code, pageWidth-marginX-code.Width, y); err != nil {
		d.logger.Warn("reference code failed", zap.String("id", id), zap.Error(err))
		return y
	}
	return y + code.Height()
}

// finish stamps page numbers and serializes the document.
func (d *document) finish() ([]byte, int, error) {
	style := pageops.PageNumberStyle{
		Format:     "Página %d de %d",
		Position:   pageops.BottomRight,
		FontFamily: d.font,
		FontSize:   9,
		Color:      pageops.RGBColor{R: pageNumberColor.R, G: pageNumberColor.G, B: pageNumberColor.B},
		MarginX:    marginX,
		MarginY:    pageNumberGap,
	}
	if err := pageops.StampPageNumbers(d.pdf, style, d.enc); err != nil {
		return nil, 0, err
	}
	pages := d.pdf.PageCount()
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}
