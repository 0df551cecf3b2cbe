package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/apogeu/crmdocs/internal/config"
	"github.com/apogeu/crmdocs/quote"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestNewWithoutDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logo.Cache.Addr = miniredis.RunT(t).Addr()
	cfg.Render.ReferenceCode.Pattern = "https://crm.example.com/q/{{id}}"

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Metrics)

	_, err = a.Exporter.ExportQuote(context.Background(), "q1")
	assert.Error(t, err)

	out := a.Exporter.RenderQuoteInput(context.Background(), quote.Input{
		Quote: quote.Record{ID: "q1", Title: "Proposta", CreatedAt: time.Now()},
	})
	assert.False(t, out.Fallback)
	assert.Equal(t, "orcamento-proposta.pdf", out.Filename)
}

func TestNewInvalidReferenceCode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.ReferenceCode = config.ReferenceCodeConfig{Kind: "barcode", Pattern: "{{id}}"}

	_, err := New(context.Background(), cfg, zaptest.NewLogger(t), nil)
	assert.ErrorContains(t, err, "reference code")
}

func TestNewUnreachableDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.DSN = "postgres://crm@127.0.0.1:1/crm?connect_timeout=1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := New(ctx, cfg, zaptest.NewLogger(t), nil)
	assert.Error(t, err)
}
