package pageops

import (
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// TextWatermark defines a text-based watermark. Text must already be
// encoded for the core fonts.
type TextWatermark struct {
	Text       string   // watermark text
	FontFamily string   // core font family (default: Helvetica)
	FontSize   float64  // font size in points (default: 78)
	Color      RGBColor // text color (default: zinc 200)
	Opacity    float64  // 0.0 to 1.0 (default: 0.35)
	Angle      float64  // rotation angle in degrees (default: 45)
}

func (wm *TextWatermark) applyDefaults() {
	if wm.FontFamily == "" {
		wm.FontFamily = "Helvetica"
	}
	if wm.FontSize == 0 {
		wm.FontSize = 78
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.35
	}
	if wm.Angle == 0 {
		wm.Angle = 45
	}
	if wm.Color == (RGBColor{}) {
		wm.Color = RGBColor{228, 228, 231}
	}
}

// DrawTextWatermark renders the watermark text centered on the current
// page. On failure the page is left without watermark and the error is
// returned.
func DrawTextWatermark(pdf *gofpdf.Fpdf, wm TextWatermark, pageW, pageH float64) error {
	wm.applyDefaults()
	return guard(pdf, "watermark", func() {
		pdf.SetFont(wm.FontFamily, "B", wm.FontSize)
		pdf.SetTextColor(wm.Color.R, wm.Color.G, wm.Color.B)
		pdf.SetAlpha(wm.Opacity, "Normal")

		textW := pdf.GetStringWidth(wm.Text)
		cx := pageW / 2
		cy := pageH / 2

		pdf.TransformBegin()
		pdf.TransformRotate(wm.Angle, cx, cy)
		pdf.Text(cx-textW/2, cy+wm.FontSize/3, wm.Text)
		pdf.TransformEnd()

		pdf.SetAlpha(1.0, "Normal")
	})
}

// PageNumberStyle defines the appearance and position of page numbers.
type PageNumberStyle struct {
	Format     string   // fmt format string receiving pageNum and totalPages
	Position   Position // where to place the number (default: BottomCenter)
	FontFamily string   // core font family (default: Helvetica)
	FontSize   float64  // font size in points (default: 9)
	Color      RGBColor // text color (default: black)
	MarginX    float64  // horizontal distance from the page edge
	MarginY    float64  // vertical distance from the page edge
}

// StampPageNumbers draws Format on every page of pdf, after the content of
// all pages exists. translate encodes the text for the core fonts and may
// be nil. The current page is left on the last page.
func StampPageNumbers(pdf *gofpdf.Fpdf, style PageNumberStyle, translate func(string) string) error {
	if style.Format == "" {
		style.Format = "Página %d de %d"
	}
	if style.FontFamily == "" {
		style.FontFamily = "Helvetica"
	}
	if style.FontSize == 0 {
		style.FontSize = 9
	}
	if translate == nil {
		translate = func(s string) string { return s }
	}

	total := pdf.PageCount()
	pageW, pageH := pdf.GetPageSize()
	for i := 1; i <= total; i++ {
		pdf.SetPage(i)
		pdf.SetFont(style.FontFamily, "", style.FontSize)
		pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)

		text := translate(fmt.Sprintf(style.Format, i, total))
		textW := pdf.GetStringWidth(text)
		x, y := calculatePosition(style.Position, pageW, pageH, textW, style.FontSize, style.MarginX, style.MarginY)
		pdf.Text(x, y, text)
	}

	if pdf.Err() {
		return fmt.Errorf("pageops: page numbers: %w", pdf.Error())
	}
	return nil
}
