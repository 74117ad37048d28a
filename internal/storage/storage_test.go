package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/calculators/cashflow"
	"github.com/iwvelando/property-calculators/internal/config"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(t *testing.T) Record {
	t.Helper()
	res, err := cashflow.Module().Calculate(context.Background(), nil, calculator.FormatJSON)
	require.NoError(t, err)
	rec, err := NewRecord(res, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return rec
}

func TestNewRecord(t *testing.T) {
	rec := sampleRecord(t)

	assert.Equal(t, cashflow.Name, rec.Calculator)
	assert.NotEqual(t, [16]byte{}, [16]byte(rec.ID))
	assert.True(t, strings.HasPrefix(string(rec.Inputs), "{"))
	assert.True(t, strings.HasPrefix(string(rec.Outputs), "{"))
	assert.NotEmpty(t, rec.Projection)
	assert.Contains(t, rec.Report, "#")
}

func TestCSVSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink, err := NewCSVSink(dir, nil)
	require.NoError(t, err)

	rec := sampleRecord(t)
	require.NoError(t, sink.Save(context.Background(), rec))
	require.NoError(t, sink.Close())

	f, err := os.Open(sink.Path(rec))
	require.NoError(t, err)
	defer f.Close()

	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, len(rec.Projection)+1)
	assert.Equal(t, []string{"period", "inflow", "outflow", "net", "cumulative"}, lines[0][:5])
	assert.Equal(t, "1", lines[1][0])
	assert.True(t, strings.HasSuffix(sink.Path(rec), rec.ID.String()+".csv"))
}

func TestCSVSinkReportsWriteErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink, err := NewCSVSink(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	err = sink.Save(context.Background(), sampleRecord(t))
	assert.ErrorContains(t, err, "failed to create")
}

func TestWriteProjectionColumns(t *testing.T) {
	rows := engine.Project([]engine.Component{
		{Name: "rent", Base: 1000, Flow: engine.Inflow},
		{Name: "expenses", Base: 400, Flow: engine.Outflow},
	}, 2)

	var sb strings.Builder
	require.NoError(t, WriteProjection(csv.NewWriter(&sb), rows))
	assert.Equal(t,
		"period,inflow,outflow,net,cumulative,expenses,rent\n"+
			"1,1000.00,400.00,600.00,600.00,400.00,1000.00\n"+
			"2,1000.00,400.00,600.00,1200.00,400.00,1000.00\n",
		sb.String())

	sb.Reset()
	require.NoError(t, WriteProjection(csv.NewWriter(&sb), nil))
	assert.Equal(t, "period,inflow,outflow,net,cumulative\n", sb.String())
}

func TestPostgresSink(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS calculation_reports").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	ctx := context.Background()
	sink, err := NewPostgresSink(ctx, mock, nil)
	require.NoError(t, err)

	rec := sampleRecord(t)
	mock.ExpectExec("INSERT INTO calculation_reports").
		WithArgs(rec.ID.String(), rec.Calculator, string(rec.Inputs), string(rec.Outputs), rec.Report, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, sink.Save(ctx, rec))
	require.NoError(t, sink.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	_, err = NewPostgresSink(ctx, mock, nil)
	assert.ErrorContains(t, err, "permission denied")

	mock.ExpectExec("CREATE TABLE").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	sink, err := NewPostgresSink(ctx, mock, nil)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO calculation_reports").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("duplicate key"))
	err = sink.Save(ctx, sampleRecord(t))
	assert.ErrorContains(t, err, "duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingSink struct {
	saved []Record
	err   error
}

func (r *recordingSink) Save(_ context.Context, rec Record) error {
	r.saved = append(r.saved, rec)
	return r.err
}

func (r *recordingSink) Close() error { return r.err }

func TestMultiSink(t *testing.T) {
	ok := &recordingSink{}
	broken := &recordingSink{err: errors.New("disk full")}
	last := &recordingSink{}

	sink := Combine(ok, broken, last)
	err := sink.Save(context.Background(), sampleRecord(t))
	assert.ErrorContains(t, err, "disk full")
	assert.Len(t, ok.saved, 1)
	assert.Len(t, last.saved, 1)
	assert.Error(t, sink.Close())
}

func TestCombineAndOpen(t *testing.T) {
	assert.IsType(t, NopSink{}, Combine())
	single := &recordingSink{}
	assert.Same(t, single, Combine(single))

	sink, err := Open(context.Background(), config.StorageConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, NopSink{}, sink)
	assert.NoError(t, sink.Save(context.Background(), Record{}))

	sink, err = Open(context.Background(), config.StorageConfig{CSVDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, sink)
}
