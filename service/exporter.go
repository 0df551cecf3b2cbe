// Package service loads document snapshots, resolves them into views and
// hands them to the PDF and HTML renderers, recording logs, metrics and
// traces for every export.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/internal/metrics"
	"github.com/apogeu/crmdocs/layout"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/preview"
	"github.com/apogeu/crmdocs/quote"
)

// Document kinds used as metric labels and span attributes.
const (
	KindQuote        = "quote"
	KindPresentation = "presentation"
)

// QuoteSource loads a quote snapshot.
type QuoteSource interface {
	Bundle(ctx context.Context, quoteID string) (quote.Input, error)
}

// PresentationSource loads presentations.
type PresentationSource interface {
	Company(ctx context.Context, id string) (presentation.Record, error)
	Product(ctx context.Context, id string) (presentation.Record, string, error)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogoFetcher sets the fetcher used for layout logos. Without one,
// documents are rendered without logo.
func WithLogoFetcher(f logo.Fetcher) Option {
	return func(e *Exporter) { e.logos = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records export metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// WithTracerProvider sets the provider export spans are created on. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Exporter) {
		if tp != nil {
			e.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithLocation sets the time zone quote dates are printed in.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		if loc != nil {
			e.loc = loc
		}
	}
}

const tracerName = "github.com/apogeu/crmdocs/service"

// Exporter produces quote and presentation documents. It is safe for
// concurrent use.
type Exporter struct {
	quotes        QuoteSource
	presentations PresentationSource
	renderer      *pdfexport.Renderer
	logos         logo.Fetcher
	logger        *zap.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	loc           *time.Location
}

// NewExporter creates an Exporter. Either source may be nil when the caller
// only renders inline input.
func NewExporter(quotes QuoteSource, presentations PresentationSource, r *pdfexport.Renderer, opts ...Option) *Exporter {
	e := &Exporter{
		quotes:        quotes,
		presentations: presentations,
		renderer:      r,
		logger:        zap.NewNop(),
		tracer:        otel.Tracer(tracerName),
		loc:           time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = pdfexport.New(pdfexport.WithLogger(e.logger))
	}
	return e
}

// ExportQuote loads quote id with its relations and renders it. Storage
// failures are returned; rendering failures yield the fallback document.
func (e *Exporter) ExportQuote(ctx context.Context, id string) (*pdfexport.Output, error) {
	ctx, span := e.tracer.Start(ctx, "ExportQuote", trace.WithAttributes(attribute.String("quote.id", id)))
	defer span.End()

	in, err := e.loadQuote(ctx, id)
	if err != nil {
		e.fail(span, KindQuote, err)
		return nil, err
	}
	return e.renderQuote(ctx, span, in), nil
}

// RenderQuoteInput renders an inline snapshot that is not stored.
func (e *Exporter) RenderQuoteInput(ctx context.Context, in quote.Input) *pdfexport.Output {
	ctx, span := e.tracer.Start(ctx, "RenderQuoteInput")
	defer span.End()
	return e.renderQuote(ctx, span, in)
}

// ExportPresentation loads presentation id of the given kind and renders it.
func (e *Exporter) ExportPresentation(ctx context.Context, kind presentation.Kind, id string) (*pdfexport.Output, error) {
	ctx, span := e.tracer.Start(ctx, "ExportPresentation", trace.WithAttributes(
		attribute.String("presentation.kind", string(kind)),
		attribute.String("presentation.id", id),
	))
	defer span.End()

	rec, product, err := e.loadPresentation(ctx, kind, id)
	if err != nil {
		e.fail(span, KindPresentation, err)
		return nil, err
	}
	return e.renderPresentation(ctx, span, rec, product), nil
}

// RenderPresentationInput renders an inline presentation that is not stored.
func (e *Exporter) RenderPresentationInput(ctx context.Context, rec presentation.Record, productName string) *pdfexport.Output {
	ctx, span := e.tracer.Start(ctx, "RenderPresentationInput")
	defer span.End()
	return e.renderPresentation(ctx, span, rec, productName)
}

// PreviewQuote writes the HTML preview of quote id to w.
func (e *Exporter) PreviewQuote(ctx context.Context, id string, w io.Writer) error {
	ctx, span := e.tracer.Start(ctx, "PreviewQuote", trace.WithAttributes(attribute.String("quote.id", id)))
	defer span.End()

	in, err := e.loadQuote(ctx, id)
	if err != nil {
		e.fail(span, KindQuote, err)
		return err
	}
	return e.PreviewQuoteInput(in, w)
}

// PreviewQuoteInput writes the HTML preview of an inline snapshot to w.
func (e *Exporter) PreviewQuoteInput(in quote.Input, w io.Writer) error {
	v := e.buildQuote(in)
	return preview.Quote(w, v)
}

// PreviewPresentation writes the HTML preview of presentation id to w.
func (e *Exporter) PreviewPresentation(ctx context.Context, kind presentation.Kind, id string, w io.Writer) error {
	ctx, span := e.tracer.Start(ctx, "PreviewPresentation", trace.WithAttributes(
		attribute.String("presentation.kind", string(kind)),
		attribute.String("presentation.id", id),
	))
	defer span.End()

	rec, product, err := e.loadPresentation(ctx, kind, id)
	if err != nil {
		e.fail(span, KindPresentation, err)
		return err
	}
	v := presentation.Build(rec, product)
	e.warnings(KindPresentation, rec.ID, v.Warnings)
	return preview.Presentation(w, v)
}

func (e *Exporter) loadQuote(ctx context.Context, id string) (quote.Input, error) {
	if e.quotes == nil {
		return quote.Input{}, crmdocs.Wrap("ExportQuote", fmt.Errorf("no quote source configured"))
	}
	return e.quotes.Bundle(ctx, id)
}

func (e *Exporter) loadPresentation(ctx context.Context, kind presentation.Kind, id string) (presentation.Record, string, error) {
	if e.presentations == nil {
		return presentation.Record{}, "", crmdocs.Wrap("ExportPresentation", fmt.Errorf("no presentation source configured"))
	}
	switch kind {
	case presentation.Company:
		rec, err := e.presentations.Company(ctx, id)
		return rec, "", err
	case presentation.Product:
		return e.presentations.Product(ctx, id)
	}
	return presentation.Record{}, "", crmdocs.Wrap("ExportPresentation",
		fmt.Errorf("%w: unknown presentation kind %q", crmdocs.ErrInvalidParameters, kind))
}

func (e *Exporter) buildQuote(in quote.Input) quote.View {
	if in.Location == nil {
		in.Location = e.loc
	}
	v := quote.Build(in)
	e.warnings(KindQuote, in.Quote.ID, v.Warnings)
	return v
}

func (e *Exporter) renderQuote(ctx context.Context, span trace.Span, in quote.Input) *pdfexport.Output {
	start := time.Now()
	v := e.buildQuote(in)
	img := e.loadLogo(ctx, KindQuote, v.Layout.LogoURL)
	out := e.renderer.Quote(v, img)
	e.record(span, KindQuote, v.ID, out, time.Since(start))
	return out
}

func (e *Exporter) renderPresentation(ctx context.Context, span trace.Span, rec presentation.Record, product string) *pdfexport.Output {
	start := time.Now()
	v := presentation.Build(rec, product)
	e.warnings(KindPresentation, rec.ID, v.Warnings)
	img := e.loadLogo(ctx, KindPresentation, v.Layout.LogoURL)
	out := e.renderer.Presentation(v, img)
	e.record(span, KindPresentation, v.ID, out, time.Since(start))
	return out
}

func (e *Exporter) loadLogo(ctx context.Context, kind, url string) *logo.Image {
	if url == "" || e.logos == nil {
		return nil
	}
	img := logo.Load(ctx, e.logos, url, e.logger)
	if img == nil && e.metrics != nil {
		e.metrics.LogoFailures.WithLabelValues(kind).Inc()
	}
	return img
}

func (e *Exporter) warnings(kind, id string, ws layout.Warnings) {
	if len(ws) == 0 {
		return
	}
	e.logger.Warn("layout fields fell back to defaults",
		zap.String("kind", kind), zap.String("id", id), zap.Strings("warnings", ws.Strings()))
	if e.metrics != nil {
		e.metrics.LayoutWarnings.WithLabelValues(kind).Add(float64(len(ws)))
	}
}

func (e *Exporter) record(span trace.Span, kind, id string, out *pdfexport.Output, took time.Duration) {
	outcome := metrics.OutcomeOK
	if out.Fallback {
		outcome = metrics.OutcomeFallback
		span.RecordError(out.Cause)
		span.SetStatus(codes.Error, "fallback document")
	}
	span.SetAttributes(
		attribute.String("document.filename", out.Filename),
		attribute.Int("document.pages", out.Pages),
		attribute.Bool("document.fallback", out.Fallback),
	)
	if e.metrics != nil {
		e.metrics.Exports.WithLabelValues(kind, outcome).Inc()
		e.metrics.ExportDuration.WithLabelValues(kind).Observe(took.Seconds())
	}
	e.logger.Info("document exported",
		zap.String("kind", kind), zap.String("id", id), zap.String("filename", out.Filename),
		zap.Int("pages", out.Pages), zap.Bool("fallback", out.Fallback), zap.Duration("took", took))
}

func (e *Exporter) fail(span trace.Span, kind string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if e.metrics != nil {
		e.metrics.Exports.WithLabelValues(kind, metrics.OutcomeError).Inc()
	}
	e.logger.Error("document export failed", zap.String("kind", kind), zap.Error(err))
}
