package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/internal/metrics"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
)

type fakeQuotes map[string]quote.Input

func (f fakeQuotes) Bundle(_ context.Context, id string) (quote.Input, error) {
	in, ok := f[id]
	if !ok {
		return quote.Input{}, crmdocs.Wrap("Quote", fmt.Errorf("%w: quote %s", crmdocs.ErrNotFound, id))
	}
	return in, nil
}

type fakePresentations struct {
	company map[string]presentation.Record
	product map[string]presentation.Record
	names   map[string]string
}

func (f fakePresentations) Company(_ context.Context, id string) (presentation.Record, error) {
	rec, ok := f.company[id]
	if !ok {
		return rec, crmdocs.ErrNotFound
	}
	return rec, nil
}

func (f fakePresentations) Product(_ context.Context, id string) (presentation.Record, string, error) {
	rec, ok := f.product[id]
	if !ok {
		return rec, "", crmdocs.ErrNotFound
	}
	return rec, f.names[id], nil
}

type fakeFetcher struct {
	data []byte
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) ([]byte, error) { return f.data, f.err }

func pngData(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return buf.Bytes()
}

func sampleInput(logoURL string) quote.Input {
	total := 980.0
	return quote.Input{
		Quote: quote.Record{
			ID:         "q1",
			Title:      "Proposta Site",
			Status:     quote.StatusSent,
			TotalValue: &total,
			CreatedAt:  time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
		},
		Contact: &quote.Contact{ID: "c1", Name: "Maria", Company: "ACME"},
		Model: &quote.Model{
			ID:              "m1",
			Name:            "Padrão",
			TemplateContent: "Olá {{cliente}}, segue a proposta de {{valor}}.",
			Parameters: map[string]any{
				"layout": map[string]any{"logo_url": logoURL, "title_font_size": "big"},
			},
		},
	}
}

type fixture struct {
	exp     *Exporter
	metrics *metrics.Metrics
	spans   *tracetest.SpanRecorder
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	quotes := fakeQuotes{"q1": sampleInput("https://cdn.example.com/logo.png")}
	pres := fakePresentations{
		company: map[string]presentation.Record{"p1": {ID: "p1", Kind: presentation.Company, Title: "ACME", Content: "<h2>Quem somos</h2><p>Uma empresa.</p>"}},
		product: map[string]presentation.Record{"p2": {ID: "p2", Kind: presentation.Product, ProductID: "prod", Content: "<p>Detalhes</p>"}},
		names:   map[string]string{"p2": "Hospedagem"},
	}
	r := pdfexport.New(pdfexport.WithCompression(false), pdfexport.WithLogger(zap.New(core)))
	base := []Option{
		WithLogger(zap.New(core)),
		WithMetrics(m),
		WithTracerProvider(tp),
		WithLocation(time.UTC),
		WithLogoFetcher(fakeFetcher{data: pngData(t)}),
	}
	exp := NewExporter(quotes, pres, r, append(base, opts...)...)
	return fixture{exp: exp, metrics: m, spans: sr, logs: logs}
}

func TestExportQuote(t *testing.T) {
	f := newFixture(t)

	out, err := f.exp.ExportQuote(context.Background(), "q1")
	require.NoError(t, err)
	assert.False(t, out.Fallback)
	assert.Equal(t, "orcamento-proposta-site.pdf", out.Filename)
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF")))
	assert.Contains(t, string(out.Data), "/Subtype /Image")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Exports.WithLabelValues(KindQuote, metrics.OutcomeOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(f.metrics.ExportDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LayoutWarnings.WithLabelValues(KindQuote)))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.LogoFailures.WithLabelValues(KindQuote)))

	warns := f.logs.FilterMessage("layout fields fell back to defaults").All()
	require.Len(t, warns, 1)
	assert.Equal(t, zapcore.WarnLevel, warns[0].Level)

	spans := f.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ExportQuote", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestExportQuoteNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.exp.ExportQuote(context.Background(), "missing")
	assert.ErrorIs(t, err, crmdocs.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Exports.WithLabelValues(KindQuote, metrics.OutcomeError)))

	spans := f.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestExportQuoteLogoFailure(t *testing.T) {
	f := newFixture(t, WithLogoFetcher(fakeFetcher{err: errors.New("connection refused")}))

	out, err := f.exp.ExportQuote(context.Background(), "q1")
	require.NoError(t, err)
	assert.False(t, out.Fallback)
	assert.NotContains(t, string(out.Data), "/Subtype /Image")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LogoFailures.WithLabelValues(KindQuote)))
}

func TestExportPresentation(t *testing.T) {
	f := newFixture(t)

	out, err := f.exp.ExportPresentation(context.Background(), presentation.Company, "p1")
	require.NoError(t, err)
	assert.Equal(t, "apresentacao-acme.pdf", out.Filename)

	out, err = f.exp.ExportPresentation(context.Background(), presentation.Product, "p2")
	require.NoError(t, err)
	assert.Equal(t, "apresentacao-apresenta-o-de-produto.pdf", out.Filename)

	_, err = f.exp.ExportPresentation(context.Background(), presentation.Kind("team"), "p1")
	assert.ErrorIs(t, err, crmdocs.ErrInvalidParameters)

	_, err = f.exp.ExportPresentation(context.Background(), presentation.Product, "p1")
	assert.ErrorIs(t, err, crmdocs.ErrNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Exports.WithLabelValues(KindPresentation, metrics.OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Exports.WithLabelValues(KindPresentation, metrics.OutcomeError)))
	assert.Len(t, f.spans.Ended(), 4)
}

func TestPreviewQuote(t *testing.T) {
	f := newFixture(t)

	var buf strings.Builder
	require.NoError(t, f.exp.PreviewQuote(context.Background(), "q1", &buf))
	assert.Contains(t, buf.String(), "Proposta Site")
	assert.Contains(t, buf.String(), "Olá Maria")

	err := f.exp.PreviewQuote(context.Background(), "missing", &buf)
	assert.ErrorIs(t, err, crmdocs.ErrNotFound)
}

func TestPreviewPresentation(t *testing.T) {
	f := newFixture(t)

	var buf strings.Builder
	require.NoError(t, f.exp.PreviewPresentation(context.Background(), presentation.Product, "p2", &buf))
	assert.Contains(t, buf.String(), "Hospedagem")
	assert.Contains(t, buf.String(), "Detalhes")
}

func TestNoSources(t *testing.T) {
	exp := NewExporter(nil, nil, nil)

	_, err := exp.ExportQuote(context.Background(), "q1")
	assert.Error(t, err)
	_, err = exp.ExportPresentation(context.Background(), presentation.Company, "p1")
	assert.Error(t, err)

	out := exp.RenderQuoteInput(context.Background(), sampleInput(""))
	assert.Equal(t, "orcamento-proposta-site.pdf", out.Filename)
}
