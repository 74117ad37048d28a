package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/calculators/cashflow"
	"github.com/iwvelando/property-calculators/internal/config"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsCanonical(t *testing.T) {
	a, err := Key("cash-flow", []byte(`{"purchasePrice": 300000, "downPayment": 60000}`), calculator.FormatJSON)
	require.NoError(t, err)
	b, err := Key("cash-flow", []byte(`{"downPayment":60000,"purchasePrice":300000}`), calculator.FormatJSON)
	require.NoError(t, err)
	c, err := Key("cash-flow", []byte("downPayment: 60000\npurchasePrice: 300000\n"), calculator.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Regexp(t, `^calc:cash-flow:[0-9a-f]{64}$`, a)

	other, err := Key("title-insurance", []byte(`{"downPayment":60000,"purchasePrice":300000}`), calculator.FormatJSON)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	empty, err := Key("cash-flow", nil, calculator.FormatJSON)
	require.NoError(t, err)
	braces, err := Key("cash-flow", []byte("{}"), calculator.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, empty, braces)

	_, err = Key("cash-flow", []byte("{"), calculator.FormatJSON)
	assert.ErrorIs(t, err, calculator.ErrDecode)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCache()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", "1", time.Minute))
	require.NoError(t, m.Set(ctx, "forever", "2", 0))

	v, ok, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	now = now.Add(2 * time.Minute)
	_, ok, err = m.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.NoError(t, m.Close())
}

func TestRedisCache(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()

	c, err := NewRedisCache(config.CacheConfig{Address: server.Addr()}, nil)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, time.Minute, server.TTL("k"))

	server.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisCache(config.CacheConfig{Address: addr}, nil)
	assert.Error(t, err)
}

type countingRunner struct {
	calculator.Runner
	calls int
}

func (c *countingRunner) Calculate(ctx context.Context, payload []byte, format calculator.Format) (*calculator.Result, error) {
	c.calls++
	return c.Runner.Calculate(ctx, payload, format)
}

func TestCachedRunner(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	repo := NewRedisCacheFromClient(client, nil)
	defer repo.Close()

	inner := &countingRunner{Runner: cashflow.Module()}
	runner := NewCachedRunner(inner, repo, time.Minute, nil)
	ctx := context.Background()
	payload := []byte(`{"monthlyRent": 3100}`)

	first, err := runner.Calculate(ctx, payload, calculator.FormatJSON)
	require.NoError(t, err)
	second, err := runner.Calculate(ctx, payload, calculator.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Calculator, second.Calculator)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, len(first.Projection), len(second.Projection))
	assert.IsType(t, map[string]any{}, second.Outputs)
	assert.Equal(t, cashflow.Name, runner.Name())

	_, err = runner.Calculate(ctx, []byte(`{"purchasePrice": -1}`), calculator.FormatJSON)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Len(t, server.Keys(), 1)
}

func TestCachedRunnerHonoursCancelledContext(t *testing.T) {
	inner := &countingRunner{Runner: cashflow.Module()}
	runner := NewCachedRunner(inner, NewMemoryCache(), time.Minute, nil)

	_, err := runner.Calculate(context.Background(), nil, calculator.FormatJSON)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := runner.Calculate(ctx, nil, calculator.FormatJSON)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Equal(t, 1, inner.calls)
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (failingRepo) Set(context.Context, string, string, time.Duration) error { return errors.New("down") }
func (failingRepo) Close() error { return nil }

func TestCachedRunnerToleratesCacheFailure(t *testing.T) {
	inner := &countingRunner{Runner: cashflow.Module()}
	runner := NewCachedRunner(inner, failingRepo{}, time.Minute, nil)

	for range 2 {
		res, err := runner.Calculate(context.Background(), nil, calculator.FormatJSON)
		require.NoError(t, err)
		assert.NotNil(t, res.Outputs)
	}
	assert.Equal(t, 2, inner.calls)
}

func TestWrapperDecoratesRegistry(t *testing.T) {
	reg := calculator.NewRegistry(cashflow.Module()).Wrap(Wrapper(NewMemoryCache(), time.Minute, nil))

	runner, err := reg.Get(cashflow.Name)
	require.NoError(t, err)
	assert.IsType(t, &CachedRunner{}, runner)
}
