package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the subset of a pgx pool used by PostgresSink.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS calculation_reports (
	id UUID PRIMARY KEY,
	calculator TEXT NOT NULL,
	inputs JSONB NOT NULL,
	outputs JSONB NOT NULL,
	report TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

	insertSQL = `INSERT INTO calculation_reports (id, calculator, inputs, outputs, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
)

// PostgresSink archives records in the calculation_reports table.
type PostgresSink struct {
	db     Querier
	close  func()
	logger *zap.Logger
}

// NewPostgresSink ensures the table exists on db.
func NewPostgresSink(ctx context.Context, db Querier, logger *zap.Logger) (*PostgresSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create calculation_reports table: %w", err)
	}
	return &PostgresSink{db: db, close: func() {}, logger: logger}, nil
}

// OpenPostgres connects a pool to dsn and returns a sink that owns it.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sink, err := NewPostgresSink(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	sink.close = pool.Close
	return sink, nil
}

// Save implements Sink.
func (s *PostgresSink) Save(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, insertSQL,
		rec.ID.String(), rec.Calculator, string(rec.Inputs), string(rec.Outputs), rec.Report, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
	}

	s.logger.Debug("archived calculation",
		zap.String("op", "storage.PostgresSink.Save"),
		zap.String("id", rec.ID.String()),
		zap.String("calculator", rec.Calculator),
	)
	return nil
}

// Close implements Sink.
func (s *PostgresSink) Close() error {
	s.close()
	return nil
}
