package pdfexport

import (
	"time"

	"go.uber.org/zap"

	"github.com/apogeu/crmdocs/pageops"
)

// Option is a functional option for configuring a Renderer via New.
type Option func(*config)

type config struct {
	clock      func() time.Time
	compress   bool
	letterhead string
	refKind    pageops.CodeKind
	refPattern string
	logger     *zap.Logger
	author     string
}

// WithClock sets the clock used for the document creation date.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCompression enables or disables page stream compression.
func WithCompression(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithLetterhead draws page 1 of the PDF at path behind every page.
// A letterhead that cannot be imported is skipped with a warning.
func WithLetterhead(path string) Option {
	return func(c *config) {
		c.letterhead = path
	}
}

// WithReferenceCode draws a QR or PDF417 code after the content of every
// document that has an id. "{{id}}" in pattern is replaced by the id, as in
// "https://crm.example.com/q/{{id}}".
func WithReferenceCode(kind pageops.CodeKind, pattern string) Option {
	return func(c *config) {
		c.refKind = kind
		c.refPattern = pattern
	}
}

// WithLogger sets the logger used for degraded renders.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAuthor sets the author recorded in the document metadata.
func WithAuthor(author string) Option {
	return func(c *config) {
		c.author = author
	}
}

// Renderer turns resolved quote and presentation views into PDF files. It
// holds no per-document state and is safe for concurrent use.
type Renderer struct {
	cfg config
}

// New creates a Renderer.
//
// Example:
//
//	r := pdfexport.New(
//	    pdfexport.WithLogger(logger),
//	    pdfexport.WithReferenceCode(pageops.QRCode, "https://crm.example.com/q/{{id}}"),
//	)
//	out := r.Quote(quote.Build(in), nil)
func New(opts ...Option) *Renderer {
	cfg := config{
		clock:    time.Now,
		compress: true,
		author:   "Comercial OS",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}
