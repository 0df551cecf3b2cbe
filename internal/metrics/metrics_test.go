package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.Exports.WithLabelValues("quote", OutcomeOK).Inc()
	m.Exports.WithLabelValues("quote", OutcomeFallback).Inc()
	m.LayoutWarnings.WithLabelValues("presentation").Add(2)
	m.ExportDuration.WithLabelValues("quote").Observe(0.2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("quote", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LayoutWarnings.WithLabelValues("presentation")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `crmdocs_exports_total{kind="quote",outcome="fallback"} 1`)
	assert.Contains(t, string(body), "crmdocs_export_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Exports.WithLabelValues("quote", OutcomeOK).Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Exports.WithLabelValues("quote", OutcomeOK)))
}
