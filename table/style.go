// Package table draws borderless, baseline-aligned tables such as the items
// table of a quote.
//
// Columns are anchored at an x coordinate: left-aligned cells start at the
// anchor, right-aligned cells end at it. Only cells of columns with a wrap
// width are wrapped; the tallest cell sets the row height. Pagination belongs
// to the caller through a Breaker.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	TextColor *RGBColor
	Font      *FontSpec
	Align     string // "L" or "R"
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	HeaderStyle *CellStyle
	CellFont    *FontSpec
	TextColor   *RGBColor
}
