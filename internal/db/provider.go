package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"user-lookup-service/internal/metrics"
)

// ErrConnection marks failures to obtain a session from the store: refused or
// timed out dials, rejected credentials, unknown database.
var ErrConnection = errors.New("database connection failed")

// ConnectionProvider hands out one dedicated connection per call. Callers own
// the returned conn and must Close it.
type ConnectionProvider interface {
	Acquire(ctx context.Context) (*sqlx.Conn, error)
}

type Provider struct {
	db *sqlx.DB
}

func NewProvider(db *sqlx.DB) *Provider {
	return &Provider{db: db}
}

func (p *Provider) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		metrics.IncConnectionError()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return conn, nil
}

// Ping checks the store is reachable with the configured credentials.
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

func (p *Provider) Stats() sql.DBStats {
	return p.db.Stats()
}
