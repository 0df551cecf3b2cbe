// Package crmdocs renders the commercial documents of Comercial OS: quotes
// ("orçamentos") and company or product presentations ("apresentações").
//
// The work is split across sibling packages: layout resolves the stored
// visual configuration, blocks and tmpl turn template text into content
// blocks, words spells BRL amounts, quote and presentation assemble the
// per-render views, and pdfexport and preview produce the final documents.
// This package only holds the error values shared by all of them.
package crmdocs

import (
	"errors"
	"fmt"
)

// Sentinel errors for common document generation failure conditions.
var (
	ErrInvalidParameters = errors.New("crmdocs: invalid parameters")
	ErrNotFound          = errors.New("crmdocs: record not found")
	ErrUnsupportedImage  = errors.New("crmdocs: unsupported image format")
	ErrImageTooLarge     = errors.New("crmdocs: image exceeds size limit")
	ErrRender            = errors.New("crmdocs: rendering failed")
)

// DocError represents an error that occurred during a specific document operation.
// It wraps an underlying error and includes the operation name for context.
type DocError struct {
	Op  string // operation name, e.g. "DecodeParameters", "ExportQuote"
	Err error  // underlying error
}

func (e *DocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crmdocs.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("crmdocs.%s: unknown error", e.Op)
}

func (e *DocError) Unwrap() error {
	return e.Err
}

// Wrap returns err annotated with the operation name. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return newDocError(op, err)
}

func newDocError(op string, err error) *DocError {
	return &DocError{Op: op, Err: err}
}
