// Package postgres provides a pgx/v5-backed storage adapter that persists
// externalized tool outputs in a PostgreSQL table.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, databaseURL)
//	store := postgres.New(pool, nil)
//	_ = store.CreateSchema(ctx)
//
// To resolve postgres:// storage URIs through the shared resolver, call
// RegisterScheme once at startup; the URI's "table" and "prefix" query
// parameters select the object table and key prefix:
//
//	postgres.RegisterScheme()
//	store, _ := storage.Resolve(ctx, "postgres://user@host/db?table=blobs")
package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/youssefsiam38/ctxzip/adapter"
	"github.com/youssefsiam38/ctxzip/storage"
)

// DefaultTable is the object table used when none is configured.
const DefaultTable = "ctxzip_objects"

// Options configures a Postgres adapter.
type Options struct {
	// Table is the object table name. Default: DefaultTable.
	Table string

	// Prefix is an optional key prefix applied by ResolveKey.
	Prefix string
}

// Adapter implements adapter.Adapter over a PostgreSQL table.
type Adapter struct {
	pool   *pgxpool.Pool
	table  string
	prefix string
}

// New creates a Postgres adapter using the given connection pool. A nil
// opts uses defaults.
func New(pool *pgxpool.Pool, opts *Options) *Adapter {
	if opts == nil {
		opts = &Options{}
	}
	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	return &Adapter{pool: pool, table: table, prefix: opts.Prefix}
}

// CreateSchema creates the object table if it does not exist.
func (a *Adapter) CreateSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			body BYTEA NOT NULL,
			content_type TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, a.table)

	if _, err := a.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create object table %s: %w", a.table, err)
	}
	return nil
}

// ResolveKey resolves a logical name to a storage key, sanitizing
// path-traversal attempts and applying the configured prefix.
func (a *Adapter) ResolveKey(name string) string {
	safe := adapter.SanitizeName(name)
	if a.prefix != "" {
		return a.prefix + "/" + safe
	}
	return safe
}

// Write upserts content under the given key.
func (a *Adapter) Write(ctx context.Context, params adapter.WriteParams) (adapter.WriteResult, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, body, content_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET body = EXCLUDED.body, content_type = EXCLUDED.content_type
	`, a.table)

	contentType := params.ContentType
	var contentTypeArg *string
	if contentType != "" {
		contentTypeArg = &contentType
	}

	if _, err := a.pool.Exec(ctx, query, params.Key, params.Body, contentTypeArg); err != nil {
		return adapter.WriteResult{}, fmt.Errorf("failed to write %s: %w", params.Key, err)
	}
	return adapter.WriteResult{Key: params.Key}, nil
}

// ReadText reads the content stored under the given key.
func (a *Adapter) ReadText(ctx context.Context, params adapter.ReadParams) (string, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE key = $1`, a.table)

	var body []byte
	err := a.pool.QueryRow(ctx, query, params.Key).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", adapter.ErrNotFound, params.Key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", params.Key, err)
	}
	return string(body), nil
}

// OpenReadStream returns a reader over the stored content. The object is
// read fully; Postgres rows are not streamed.
func (a *Adapter) OpenReadStream(ctx context.Context, params adapter.ReadParams) (io.ReadCloser, error) {
	text, err := a.ReadText(ctx, params)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader([]byte(text))), nil
}

// Identity returns a stable postgres:// identifier derived from the table
// and prefix, used for known-key scoping and display.
func (a *Adapter) Identity() string {
	if a.prefix != "" {
		return "postgres://" + a.table + "/" + a.prefix
	}
	return "postgres://" + a.table
}

// RegisterScheme installs a factory so storage.Resolve can construct
// Postgres adapters from postgres:// URIs. The "table" and "prefix" query
// parameters are consumed by the adapter; everything else is passed to
// pgxpool. The schema is created if missing.
func RegisterScheme() {
	storage.RegisterScheme("postgres", func(ctx context.Context, uri *url.URL) (adapter.Adapter, error) {
		query := uri.Query()
		opts := &Options{
			Table:  query.Get("table"),
			Prefix: query.Get("prefix"),
		}
		query.Del("table")
		query.Del("prefix")

		connURI := *uri
		connURI.RawQuery = query.Encode()

		pool, err := pgxpool.New(ctx, connURI.String())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres storage: %w", err)
		}

		store := New(pool, opts)
		if err := store.CreateSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	})
}
