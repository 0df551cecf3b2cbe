// Package pageops provides page-level operations applied to a document
// while it is being built: text watermarks, page number stamping,
// letterhead backgrounds imported from an existing PDF, and reference codes.
//
// Operations that touch fragile engine features convert panics and engine
// error states into returned errors and clear the engine error, so the
// caller can carry on without the decoration.
package pageops

import (
	"errors"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// Position specifies where to place an element on a page.
type Position int

const (
	Center Position = iota
	TopLeft
	TopCenter
	TopRight
	BottomLeft
	BottomCenter
	BottomRight
)

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// guard runs fn and turns a panic or a new engine error into an error. The
// engine error state is cleared afterwards.
func guard(pdf *gofpdf.Fpdf, op string, fn func()) (err error) {
	if pdf.Err() {
		return fmt.Errorf("pageops: %s: %w", op, pdf.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: %s: %v", op, r)
		}
		if pdf.Err() {
			err = errors.Join(err, fmt.Errorf("pageops: %s: %w", op, pdf.Error()))
			pdf.ClearError()
		}
	}()
	fn()
	return nil
}

// calculatePosition returns x, y coordinates for text placement.
func calculatePosition(pos Position, pageW, pageH, textW, textH, marginX, marginY float64) (x, y float64) {
	switch pos {
	case TopLeft:
		return marginX, marginY + textH
	case TopCenter:
		return (pageW - textW) / 2, marginY + textH
	case TopRight:
		return pageW - textW - marginX, marginY + textH
	case BottomLeft:
		return marginX, pageH - marginY
	case BottomRight:
		return pageW - textW - marginX, pageH - marginY
	case Center:
		return (pageW - textW) / 2, pageH / 2
	default: // BottomCenter
		return (pageW - textW) / 2, pageH - marginY
	}
}
