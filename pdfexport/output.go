package pdfexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
)

// Filename prefixes.
const (
	QuotePrefix        = "orcamento"
	PresentationPrefix = "apresentacao"
)

// Output is one rendered document.
type Output struct {
	Filename string
	Data     []byte
	Pages    int

	// Fallback is set when the main layout failed and Data holds the
	// minimal plain text document. Cause is the layout failure.
	Fallback bool
	Cause    error
}

// WriteTo writes the PDF bytes to w.
func (o *Output) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(o.Data)
	return int64(n), err
}

// Save writes the document to dir under its Filename and returns the path.
func (o *Output) Save(dir string) (string, error) {
	path := filepath.Join(dir, o.Filename)
	if err := os.WriteFile(path, o.Data, 0o644); err != nil {
		return "", crmdocs.Wrap("Save", err)
	}
	return path, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases title, replaces every run of characters outside [a-z0-9]
// with a hyphen and trims hyphens from both ends. An empty result becomes
// "documento".
func Slug(title string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if s == "" {
		return "documento"
	}
	return s
}

// Filename builds "<prefix>-<slug>.pdf", with a "-fallback" suffix before
// the extension for degraded documents.
func Filename(prefix, title string, fallback bool) string {
	name := prefix + "-" + Slug(title)
	if fallback {
		name += "-fallback"
	}
	return name + ".pdf"
}

// Quote renders v. img may be nil. The result is never nil: when the layout
// fails the fallback document is returned with Cause set.
func (r *Renderer) Quote(v quote.View, img *logo.Image) *Output {
	return r.render("Quote", QuotePrefix, v.Title, func() (*document, error) {
		return r.layoutQuote(v, img)
	}, v.FallbackLines)
}

// Presentation renders v like Quote.
func (r *Renderer) Presentation(v presentation.View, img *logo.Image) *Output {
	return r.render("Presentation", PresentationPrefix, v.Title, func() (*document, error) {
		return r.layoutPresentation(v, img)
	}, v.FallbackLines)
}

func (r *Renderer) render(op, prefix, title string, layout func() (*document, error), fallback func() []string) *Output {
	data, pages, err := run(layout)
	if err == nil {
		return &Output{Filename: Filename(prefix, title, false), Data: data, Pages: pages}
	}

	cause := crmdocs.Wrap(op, fmt.Errorf("%w: %v", crmdocs.ErrRender, err))
	r.cfg.logger.Error("layout failed, exporting fallback document",
		zap.String("op", op), zap.String("title", title), zap.Error(err))

	out := &Output{Filename: Filename(prefix, title, true), Fallback: true, Cause: cause}
	out.Data, out.Pages, err = r.fallback(title, fallback())
	if err != nil {
		// Only reachable when the engine cannot serialize plain Helvetica
		// text. The caller still gets an Output, with no data.
		r.cfg.logger.Error("fallback document failed", zap.String("op", op), zap.Error(err))
		out.Cause = crmdocs.Wrap(op, fmt.Errorf("%w: %v; fallback: %v", crmdocs.ErrRender, cause, err))
	}
	return out
}

// run lays out and serializes a document, converting panics into errors.
func run(layout func() (*document, error)) (data []byte, pages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	d, err := layout()
	if err != nil {
		return nil, 0, err
	}
	return d.finish()
}
