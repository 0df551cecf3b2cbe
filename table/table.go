package table

import (
	"github.com/phpdave11/gofpdf"
)

// Column defines one column of the table.
type Column struct {
	Anchor float64 // x of the left edge ("L") or right edge ("R")
	Width  float64 // wrap width. 0 means the cell is never wrapped.
	Align  string  // Default alignment for this column ("L", "R").
}

// Breaker is called before a row is drawn with the current baseline and the
// vertical space the row needs. It returns the baseline to draw at, which
// differs from y when the caller started a new page.
type Breaker func(y, needed float64) float64

// Vertical spacing of the header row and the page-break allowance of body
// rows, in points.
const (
	headerNeeded  = 18
	headerAdvance = 16
	breakPad      = 8
)

// Table is a table builder bound to one PDF document.
type Table struct {
	pdf       *gofpdf.Fpdf
	columns   []Column
	header    *Row
	rows      []*Row
	style     TableStyle
	breaker   Breaker
	translate func(string) string
}

// New creates a new Table. A nil breaker never breaks pages.
func New(pdf *gofpdf.Fpdf, breaker Breaker) *Table {
	if breaker == nil {
		breaker = func(y, _ float64) float64 { return y }
	}
	return &Table{
		pdf:       pdf,
		breaker:   breaker,
		translate: func(s string) string { return s },
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...Column) *Table {
	t.columns = cols
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetTranslator sets the function that encodes cell text for the current
// font, typically the document's cp1252 translator.
func (t *Table) SetTranslator(tr func(string) string) *Table {
	if tr != nil {
		t.translate = tr
	}
	return t
}

// SetHeader replaces the header row. The header is drawn once, above the
// first body row.
func (t *Table) SetHeader(cells ...string) *Row {
	t.header = newRow(true, cells)
	return t.header
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow(cells ...string) *Row {
	r := newRow(false, cells)
	t.rows = append(t.rows, r)
	return r
}

// Rows returns the body rows.
func (t *Table) Rows() []*Row { return t.rows }

// Render draws the table with its first baseline at y. Wrapped lines are
// lineHeight apart and rowGap separates the rows. It returns the baseline
// following the last row.
func (t *Table) Render(y, lineHeight, rowGap float64) (float64, error) {
	if t.pdf.Err() {
		return y, t.pdf.Error()
	}

	if t.header != nil {
		y = t.breaker(y, headerNeeded)
		t.renderRow(t.header, y, lineHeight)
		y += headerAdvance
	}

	for _, r := range t.rows {
		lines := t.wrapRow(r)
		height := float64(maxLines(lines)) * lineHeight
		y = t.breaker(y, height+breakPad)
		t.renderRow(r, y, lineHeight)
		y += height + rowGap
	}

	return y, t.pdf.Error()
}

// wrapRow splits every cell of r into the lines it is drawn with.
func (t *Table) wrapRow(r *Row) [][]string {
	out := make([][]string, len(r.cells))
	for i, cell := range r.cells {
		t.applyFont(t.resolveCellStyle(cell, r))
		text := t.translate(cell.text)
		if i >= len(t.columns) || t.columns[i].Width <= 0 {
			out[i] = []string{text}
			continue
		}
		for _, l := range t.pdf.SplitLines([]byte(text), t.columns[i].Width) {
			out[i] = append(out[i], string(l))
		}
		if len(out[i]) == 0 {
			out[i] = []string{""}
		}
	}
	return out
}

func maxLines(cells [][]string) int {
	n := 1
	for _, c := range cells {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// renderRow draws r with its first baseline at y.
func (t *Table) renderRow(r *Row, y, lineHeight float64) {
	lines := t.wrapRow(r)
	for i, cell := range r.cells {
		if i >= len(t.columns) {
			break
		}
		style := t.resolveCellStyle(cell, r)
		t.applyFont(style)
		if style.TextColor != nil {
			t.pdf.SetTextColor(style.TextColor.R, style.TextColor.G, style.TextColor.B)
		}

		align := "L"
		if style.Align != "" {
			align = style.Align
		} else if t.columns[i].Align != "" {
			align = t.columns[i].Align
		}

		for n, line := range lines[i] {
			x := t.columns[i].Anchor
			if align == "R" {
				x -= t.pdf.GetStringWidth(line)
			}
			t.pdf.Text(x, y+float64(n)*lineHeight, line)
		}
	}
}

func (t *Table) applyFont(style CellStyle) {
	if style.Font != nil {
		t.pdf.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
	}
}

// resolveCellStyle layers the header style and the cell alignment over the
// table defaults.
func (t *Table) resolveCellStyle(cell *Cell, row *Row) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}
	if t.style.TextColor != nil {
		result.TextColor = t.style.TextColor
	}

	if row.header && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}
	if cell.align != "" {
		result.Align = cell.align
	}

	return result
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
