// Package app wires configuration into a ready Exporter for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/apogeu/crmdocs/internal/config"
	"github.com/apogeu/crmdocs/internal/metrics"
	"github.com/apogeu/crmdocs/logo"
	"github.com/apogeu/crmdocs/pageops"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/service"
	"github.com/apogeu/crmdocs/store"
)

// App holds the process-wide dependencies built from a Config.
type App struct {
	Exporter *service.Exporter
	Metrics  *metrics.Metrics

	db  *sql.DB
	rdb *redis.Client
}

// New connects the stores configured in cfg and builds the exporter. Without
// a database DSN the exporter only renders inline input. When m is nil a
// fresh registry is created.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*App, error) {
	if m == nil {
		m = metrics.New()
	}
	a := &App{Metrics: m}

	var (
		quotes        service.QuoteSource
		presentations service.PresentationSource
	)
	if cfg.Database.DSN != "" {
		db, err := store.Open(ctx, cfg.Database.DSN, store.PoolConfig{
			MaxOpen:     cfg.Database.MaxOpen,
			MaxIdle:     cfg.Database.MaxIdle,
			MaxLifetime: cfg.Database.MaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		a.db = db
		quotes = store.NewQuotes(db)
		presentations = store.NewPresentations(db)
	} else {
		log.Warn("no database configured, stored documents are unavailable")
	}

	httpFetcher := logo.NewHTTPFetcher(cfg.Logo.Timeout)
	httpFetcher.MaxBytes = cfg.Logo.MaxBytes
	var fetcher logo.Fetcher = httpFetcher
	if cfg.Logo.Cache.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Logo.Cache.Addr,
			Password: cfg.Logo.Cache.Password,
			DB:       cfg.Logo.Cache.DB,
		})
		fetcher = logo.NewCachedFetcher(httpFetcher, a.rdb, cfg.Logo.Cache.TTL, log)
	}

	opts := []pdfexport.Option{
		pdfexport.WithLogger(log),
		pdfexport.WithCompression(cfg.Render.Compress),
		pdfexport.WithAuthor(cfg.Render.Author),
	}
	if cfg.Render.Letterhead != "" {
		opts = append(opts, pdfexport.WithLetterhead(cfg.Render.Letterhead))
	}
	if rc := cfg.Render.ReferenceCode; rc.Pattern != "" {
		kind, err := pageops.ParseCodeKind(rc.Kind)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("reference code: %w", err)
		}
		opts = append(opts, pdfexport.WithReferenceCode(kind, rc.Pattern))
	}

	a.Exporter = service.NewExporter(quotes, presentations, pdfexport.New(opts...),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithLocation(cfg.Render.Location()),
		service.WithLogoFetcher(fetcher),
	)
	return a, nil
}

// Close releases the database and cache connections.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
