package table_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/phpdave11/gofpdf"

	"github.com/apogeu/crmdocs/table"
)

var errFake = errors.New("engine failure")

func newTestPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCellMargin(0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	return pdf
}

func itemColumns() []table.Column {
	return []table.Column{
		{Anchor: 48, Width: 280},
		{Anchor: 357, Align: "R"},
		{Anchor: 452, Align: "R"},
		{Anchor: 547, Align: "R"},
	}
}

func TestBasicTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf, nil).SetColumns(itemColumns()...)
	tb.SetHeader("Descrição", "Qtd", "Unitário", "Total")
	tb.AddRow("Landing page", "2", "R$ 500,00", "R$ 1.000,00")
	tb.AddRow("Hospedagem", "1", "R$ 20,00", "R$ 20,00")

	y, err := tb.Render(100, 16, 6)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := 100.0 + 16 + 2*(16+6); y != want {
		t.Errorf("y = %v, want %v", y, want)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF output")
	}
}

func TestWrappedRowHeight(t *testing.T) {
	pdf := newTestPDF()
	desc := strings.Repeat("descrição longa do item ", 20)
	lines := len(pdf.SplitLines([]byte(desc), 280))
	if lines < 2 {
		t.Fatalf("expected the description to wrap, got %d line", lines)
	}

	var needed []float64
	tb := table.New(pdf, func(y, n float64) float64 {
		needed = append(needed, n)
		return y
	}).SetColumns(itemColumns()...)
	tb.AddRow(desc, "1", "R$ 1,00", "R$ 1,00")

	y, err := tb.Render(0, 16, 6)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	height := float64(lines) * 16
	if y != height+6 {
		t.Errorf("y = %v, want %v", y, height+6)
	}
	if len(needed) != 1 || needed[0] != height+8 {
		t.Errorf("breaker calls = %v", needed)
	}
}

func TestBreakerMovesRows(t *testing.T) {
	pdf := newTestPDF()
	tb := table.New(pdf, func(y, n float64) float64 {
		if y+n > 200 {
			pdf.AddPage()
			return 132
		}
		return y
	}).SetColumns(itemColumns()...)
	for i := 0; i < 5; i++ {
		tb.AddRow("item", "1", "R$ 1,00", "R$ 1,00")
	}

	y, err := tb.Render(150, 16, 6)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if pdf.PageCount() != 2 {
		t.Errorf("pages = %d, want 2", pdf.PageCount())
	}
	if y <= 132 || y > 200 {
		t.Errorf("y = %v not on the second page area", y)
	}
}

func TestStylePrecedence(t *testing.T) {
	pdf := newTestPDF()
	bold := &table.FontSpec{Family: "Helvetica", Style: "B", Size: 11}
	tb := table.New(pdf, nil).
		SetColumns(itemColumns()...).
		SetStyle(table.TableStyle{HeaderStyle: &table.CellStyle{Font: bold}})
	tb.SetHeader("Descrição", "Qtd", "Unitário", "Total")
	r := tb.AddRow("a", "b", "c", "d")
	r.Cells()[1].SetAlign("L")

	if _, err := tb.Render(100, 16, 6); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := r.Cells()[1].Text(); got != "b" {
		t.Errorf("cell text = %q", got)
	}
}

func TestRenderReportsEngineError(t *testing.T) {
	pdf := newTestPDF()
	pdf.SetError(errFake)
	_, err := table.New(pdf, nil).Render(0, 16, 6)
	if err == nil {
		t.Fatal("expected the engine error")
	}
}
