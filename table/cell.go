package table

// Cell is one text cell. Its alignment, when set, wins over the column's.
type Cell struct {
	text  string
	align string
}

// Text returns the cell content.
func (c *Cell) Text() string { return c.text }

// SetAlign overrides the column alignment ("L" or "R") for this cell.
func (c *Cell) SetAlign(align string) *Cell {
	c.align = align
	return c
}

// Row is a header or body row. Cells beyond the column count are ignored.
type Row struct {
	cells  []*Cell
	header bool
}

func newRow(header bool, texts []string) *Row {
	r := &Row{header: header, cells: make([]*Cell, len(texts))}
	for i, s := range texts {
		r.cells[i] = &Cell{text: s}
	}
	return r
}

// Cells returns the cells of the row.
func (r *Row) Cells() []*Cell { return r.cells }
