// Package storage archives calculation records to CSV files and Postgres.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/config"
	"github.com/iwvelando/property-calculators/internal/engine"
	"go.uber.org/zap"
)

// Record is one archived calculation.
type Record struct {
	ID         uuid.UUID              `json:"id"`
	Calculator string                 `json:"calculator"`
	Inputs     json.RawMessage        `json:"inputs"`
	Outputs    json.RawMessage        `json:"outputs"`
	Projection []engine.ProjectionRow `json:"projection"`
	Report     string                 `json:"report"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// NewRecord captures a calculation result with a fresh ID.
func NewRecord(result *calculator.Result, now time.Time) (Record, error) {
	inputs, err := json.Marshal(result.Inputs)
	if err != nil {
		return Record{}, fmt.Errorf("encode inputs of %s: %w", result.Calculator, err)
	}
	outputs, err := json.Marshal(result.Outputs)
	if err != nil {
		return Record{}, fmt.Errorf("encode outputs of %s: %w", result.Calculator, err)
	}
	return Record{
		ID:         uuid.New(),
		Calculator: result.Calculator,
		Inputs:     inputs,
		Outputs:    outputs,
		Projection: result.Projection,
		Report:     result.Report,
		CreatedAt:  now.UTC(),
	}, nil
}

// Sink persists records.
type Sink interface {
	Save(ctx context.Context, rec Record) error
	Close() error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) Save(context.Context, Record) error { return nil }
func (NopSink) Close() error { return nil }

// MultiSink saves to every sink in order. All sinks are attempted; the errors are joined.
type MultiSink []Sink

// Save implements Sink.
func (m MultiSink) Save(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Sink.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine returns the simplest sink that saves to all of sinks.
func Combine(sinks ...Sink) Sink {
	switch len(sinks) {
	case 0:
		return NopSink{}
	case 1:
		return sinks[0]
	}
	return MultiSink(sinks)
}

// Open builds the sinks enabled in cfg. With none enabled it returns a NopSink.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Sink, error) {
	var sinks []Sink
	if cfg.CSVDir != "" {
		s, err := NewCSVSink(cfg.CSVDir, logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if cfg.PostgresDSN != "" {
		s, err := OpenPostgres(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			_ = Combine(sinks...).Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return Combine(sinks...), nil
}
