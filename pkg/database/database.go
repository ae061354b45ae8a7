// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/caretide/triage/pkg/lifecycle"
)

// System manages the ticket store connection and lifecycle coordination.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Ping verifies the connection is usable within the configured timeout.
	Ping(ctx context.Context) error
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type postgres struct {
	pool        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a database system with the given configuration.
// It calls sql.Open to validate the DSN and configure pool parameters,
// but does not establish a connection until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pool, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open ticket store: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &postgres{
		pool:        pool,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (p *postgres) Connection() *sql.DB {
	return p.pool
}

func (p *postgres) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, p.connTimeout)
	defer cancel()

	if err := p.pool.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	return nil
}

func (p *postgres) Start(lc *lifecycle.Coordinator) error {
	p.logger.Info("starting ticket store connection")

	lc.OnStartup(func() {
		if err := p.Ping(lc.Context()); err != nil {
			p.logger.Error("ticket store ping failed", "error", err)
			return
		}

		p.logger.Info("ticket store connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		p.logger.Info("closing ticket store connection")

		if err := p.pool.Close(); err != nil {
			p.logger.Error("ticket store close failed", "error", err)
			return
		}

		p.logger.Info("ticket store connection closed")
	})

	return nil
}
