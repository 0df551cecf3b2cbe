// Package store reads quotes, contacts, products, quote models and
// presentations from the Comercial OS Postgres database. Access is read only
// and failures are returned as they happen, without retries.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/apogeu/crmdocs"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// Open connects to the database at dsn through the pgx driver and pings it.
func Open(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
		db.SetConnMaxIdleTime(pool.MaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// notFound maps sql.ErrNoRows to crmdocs.ErrNotFound and annotates every
// error with op.
func notFound(op, what, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return crmdocs.Wrap(op, fmt.Errorf("%s %s: %w", what, id, crmdocs.ErrNotFound))
	}
	return crmdocs.Wrap(op, fmt.Errorf("%s %s: %w", what, id, err))
}

// decodeObject decodes a JSONB column. NULL and non-object values yield nil.
func decodeObject(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
