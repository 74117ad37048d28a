package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/iwvelando/property-calculators/internal/engine"
	"go.uber.org/zap"
)

// CSVSink writes the projection of each record to <dir>/<calculator>-<id>.csv.
type CSVSink struct {
	dir    string
	logger *zap.Logger
}

// NewCSVSink creates dir if needed.
func NewCSVSink(dir string, logger *zap.Logger) (*CSVSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	return &CSVSink{dir: dir, logger: logger}, nil
}

// Path returns the file a record is written to.
func (s *CSVSink) Path(rec Record) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.csv", rec.Calculator, rec.ID))
}

// Save implements Sink.
func (s *CSVSink) Save(_ context.Context, rec Record) error {
	path := s.Path(rec)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteProjection(csv.NewWriter(f), rec.Projection); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Debug("saved projection",
		zap.String("op", "storage.CSVSink.Save"),
		zap.String("path", path),
		zap.Int("rows", len(rec.Projection)),
	)
	return nil
}

// Close implements Sink.
func (s *CSVSink) Close() error { return nil }

// ProjectionHeader returns the CSV header of rows: the fixed totals followed by each
// component name in sorted order.
func ProjectionHeader(rows []engine.ProjectionRow) []string {
	header := []string{"period", "inflow", "outflow", "net", "cumulative"}
	if len(rows) == 0 {
		return header
	}
	names := make([]string, 0, len(rows[0].Values))
	for name := range rows[0].Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(header, names...)
}

// WriteProjection writes rows with a header and flushes w.
func WriteProjection(w *csv.Writer, rows []engine.ProjectionRow) error {
	header := ProjectionHeader(rows)
	if err := w.Write(header); err != nil {
		return err
	}
	names := header[5:]
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Period),
			money(row.Inflow), money(row.Outflow), money(row.Net), money(row.Cumulative),
		}
		for _, name := range names {
			record = append(record, money(row.Value(name)))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
