package table_test

import (
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/apogeu/crmdocs/table"
)

// ExampleTable draws a quote items table with right-aligned amounts and
// prints the baseline that follows it.
func ExampleTable() {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCellMargin(0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	tbl := table.New(pdf, nil)
	tbl.SetColumns(
		table.Column{Anchor: 48, Width: 279},
		table.Column{Anchor: 357, Align: "R"},
		table.Column{Anchor: 452, Align: "R"},
		table.Column{Anchor: 547, Align: "R"},
	)
	tbl.SetStyle(table.TableStyle{
		HeaderStyle: &table.CellStyle{Font: &table.FontSpec{Family: "Helvetica", Style: "B", Size: 11}},
		CellFont:    &table.FontSpec{Family: "Helvetica", Size: 11},
		TextColor:   &table.RGBColor{R: 15, G: 23, B: 42},
	})
	tbl.SetHeader("Item", "Qtd", "Unit", "Total")
	tbl.AddRow("Site", "1", "R$ 1.000,00", "R$ 1.000,00")
	tbl.AddRow("Hosting", "12", "R$ 20,00", "R$ 240,00")

	y, err := tbl.Render(200, 16, 6)
	fmt.Println(y, err)
	// Output:
	// 260 <nil>
}
