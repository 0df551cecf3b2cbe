// Package preview renders quote and presentation views as self-contained
// HTML pages, styled inline from the resolved layout.
package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
	"github.com/apogeu/crmdocs/words"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("preview").Funcs(template.FuncMap{
	"brl":   words.FormatBRL,
	"money": words.FormatDecimal,
	"qty":   func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).ParseFS(templateFS, "templates/*.html"))

var fontStacks = map[layout.FontFamily]string{
	layout.Helvetica: `Helvetica, Arial, sans-serif`,
	layout.Times:     `"Times New Roman", Times, serif`,
	layout.Courier:   `"Courier New", Courier, monospace`,
}

// css builds a style attribute value from property/value pairs. Values come
// from resolved layouts: colours pass through ParseHex and sizes are numbers.
func css(pairs ...string) template.CSS {
	var s string
	for i := 0; i+1 < len(pairs); i += 2 {
		s += pairs[i] + ": " + pairs[i+1] + "; "
	}
	return template.CSS(s)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func hex(s string, fallback layout.RGB) string {
	return layout.ParseHex(s, fallback).Hex()
}

func fontStack(f layout.FontFamily) string {
	if s, ok := fontStacks[f]; ok {
		return s
	}
	return fontStacks[layout.Helvetica]
}

func justify(pos layout.LogoPosition) string {
	switch pos {
	case layout.LogoCenter:
		return "center"
	case layout.LogoRight:
		return "flex-end"
	}
	return "flex-start"
}

// block is one body block with its inline style.
type block struct {
	Kind  blocks.Kind
	Text  string
	Style template.CSS
}

type header struct {
	LogoURL   string
	LogoStyle template.CSS
	LogoRow   template.CSS
	Title     string
	Style     template.CSS
	Line      template.CSS
	Footer    template.CSS
	Page      template.CSS
}

type quoteData struct {
	header
	V            quote.View
	L            layout.Quote
	Watermark    string
	DateBadge    string
	DateLeft     bool
	DateInHeader bool
	Heading      template.CSS
	Body         template.CSS
	TableLine    template.CSS
	Blocks       []block
}

type presentationData struct {
	header
	V        presentation.View
	L        layout.Presentation
	Subtitle template.CSS
	Blocks   []block
}

var black = layout.RGB{}

func buildBlocks(bs []blocks.Block, titleStyle, subtitleStyle template.CSS) []block {
	out := make([]block, 0, len(bs))
	for _, b := range bs {
		pb := block{Kind: b.Kind, Text: b.Text}
		switch b.Kind {
		case blocks.Title:
			pb.Style = titleStyle
		case blocks.Subtitle:
			pb.Style = subtitleStyle
		case blocks.Bullet, blocks.Paragraph:
			if b.Justified {
				pb.Style = css("text-align", "justify")
			}
		}
		out = append(out, pb)
	}
	return out
}

// Quote writes the HTML preview of v to w.
func Quote(w io.Writer, v quote.View) error {
	l := v.Layout
	primary := layout.ParseHex(l.PrimaryColor, layout.RGB{R: 249, G: 115, B: 22})
	title := hex(l.TitleColor, primary)
	subtitle := hex(l.SubtitleColor, layout.RGB{R: 51, G: 65, B: 85})
	body := hex(l.BodyColor, black)

	watermark := ""
	if l.ShowWatermark {
		watermark = l.WatermarkText
		if watermark == "" {
			watermark = "ORÇAMENTO"
		}
	}

	d := quoteData{
		header: header{
			LogoURL:   l.LogoURL,
			LogoStyle: css("width", px(l.LogoWidth), "max-height", "72px", "object-fit", "contain"),
			LogoRow:   css("display", "flex", "justify-content", justify(l.LogoPosition)),
			Title:     v.Title,
			Style:     css("color", title, "font-size", px(l.TitleFontSize)),
			Line:      css("border-bottom", px(l.HeaderLineWidth)+" solid "+hex(l.HeaderLineColor, black)),
			Footer:    css("border-top", px(l.FooterLineWidth)+" solid "+hex(l.FooterLineColor, black)),
			Page: css("font-family", fontStack(l.FontFamily), "font-size", px(l.BodyFontSize), "color", body,
				"max-width", "820px", "margin", "0 auto", "padding", "40px", "position", "relative"),
		},
		V:            v,
		L:            l,
		Watermark:    watermark,
		DateBadge:    "Data: " + v.Date,
		DateLeft:     l.DatePosition.Left(),
		DateInHeader: l.DatePosition.InHeader(),
		Heading:      css("color", subtitle, "font-size", px(l.SubtitleFontSize), "text-transform", "uppercase"),
		Body:         css("color", body),
		TableLine:    css("border-top", px(l.TableLineWidth)+" solid "+hex(l.TableLineColor, layout.RGB{R: 148, G: 163, B: 184})),
		Blocks: buildBlocks(v.Blocks,
			css("color", title, "font-size", px(l.TitleFontSize-4)),
			css("color", subtitle, "font-size", px(l.SubtitleFontSize))),
	}
	return execute(w, "quote.html", d)
}

// Presentation writes the HTML preview of v to w.
func Presentation(w io.Writer, v presentation.View) error {
	l := v.Layout
	title := hex(l.TitleColor, layout.RGB{R: 15, G: 23, B: 42})
	subtitle := hex(l.SubtitleColor, layout.RGB{R: 100, G: 116, B: 139})
	slate := layout.RGB{R: 51, G: 65, B: 85}

	d := presentationData{
		header: header{
			LogoURL:   l.LogoURL,
			LogoStyle: css("width", px(l.LogoWidth), "max-height", "72px", "object-fit", "contain"),
			LogoRow:   css("display", "flex", "justify-content", justify(l.LogoPosition)),
			Title:     v.Title,
			Style:     css("color", title, "font-size", px(l.TitleFontSize), "text-align", "center"),
			Line:      css("border-bottom", px(l.HeaderLineWidth)+" solid "+hex(l.HeaderLineColor, slate)),
			Footer:    css("border-top", px(l.FooterLineWidth)+" solid "+hex(l.FooterLineColor, slate)),
			Page: css("font-family", fontStack(l.FontFamily), "font-size", px(l.BodyFontSize),
				"color", hex(l.BodyColor, black), "max-width", "820px", "margin", "0 auto", "padding", "40px"),
		},
		V:        v,
		L:        l,
		Subtitle: css("color", subtitle, "font-size", px(l.SubtitleFontSize), "text-align", "right", "text-transform", "uppercase"),
		Blocks: buildBlocks(v.Blocks,
			css("color", title, "font-size", px(max(l.TitleFontSize-4, 14))),
			css("color", subtitle, "font-size", px(l.SubtitleFontSize))),
	}
	return execute(w, "presentation.html", d)
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return crmdocs.Wrap("preview", fmt.Errorf("%w: %v", crmdocs.ErrRender, err))
	}
	return nil
}
