package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(3<<20), cfg.Logo.MaxBytes)
	assert.Equal(t, time.Hour, cfg.Logo.Cache.TTL)
	assert.True(t, cfg.Render.Compress)
	assert.Equal(t, "Comercial OS", cfg.Render.Author)
	assert.Equal(t, "qr", cfg.Render.ReferenceCode.Kind)
	assert.Equal(t, "America/Sao_Paulo", cfg.Render.Location().String())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
http:
  addr: ":9000"
database:
  dsn: postgres://crm@localhost/crm
  max_open: 4
logo:
  timeout: 2s
render:
  timezone: UTC
  reference_code:
    kind: pdf417
    pattern: "https://crm.example.com/q/{{id}}"
log:
  format: console
`)
	t.Setenv("CRMDOCS_HTTP_ADDR", ":7000")
	t.Setenv("CRMDOCS_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Addr, "environment wins over the file")
	assert.Equal(t, "postgres://crm@localhost/crm", cfg.Database.DSN)
	assert.Equal(t, 4, cfg.Database.MaxOpen)
	assert.Equal(t, 2*time.Second, cfg.Logo.Timeout)
	assert.Equal(t, "pdf417", cfg.Render.ReferenceCode.Kind)
	assert.Equal(t, time.UTC, cfg.Render.Location())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "CRMDOCS_RENDER_AUTHOR=ACME Vendas\n")
	t.Cleanup(func() { os.Unsetenv("CRMDOCS_RENDER_AUTHOR") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ACME Vendas", cfg.Render.Author)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"log level", "log:\n  level: verbose\n"},
		{"timezone", "render:\n  timezone: Mars/Olympus\n"},
		{"reference code kind", "render:\n  reference_code:\n    kind: barcode\n"},
		{"pool sizes", "database:\n  max_open: 1\n  max_idle: 5\n"},
		{"logo timeout", "logo:\n  timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "config.yaml", tt.yaml)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "http: [unclosed\n")
	_, err := Load(dir)
	assert.ErrorContains(t, err, "error reading config")
}
