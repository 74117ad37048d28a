package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"go.uber.org/zap"
)

// CachedRunner serves Calculate from a Repository and falls through to the wrapped
// runner on a miss. Cache failures are logged and never fail a calculation.
// Results served from the cache carry decoded JSON documents as Inputs and Outputs.
type CachedRunner struct {
	calculator.Runner
	repo   Repository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRunner decorates runner with repo.
func NewCachedRunner(runner calculator.Runner, repo Repository, ttl time.Duration, logger *zap.Logger) *CachedRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRunner{Runner: runner, repo: repo, ttl: ttl, logger: logger}
}

// Wrapper returns a function suitable for calculator.Registry.Wrap.
func Wrapper(repo Repository, ttl time.Duration, logger *zap.Logger) func(calculator.Runner) calculator.Runner {
	return func(r calculator.Runner) calculator.Runner {
		return NewCachedRunner(r, repo, ttl, logger)
	}
}

// Calculate implements calculator.Runner.
func (c *CachedRunner) Calculate(ctx context.Context, payload []byte, format calculator.Format) (*calculator.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := Key(c.Name(), payload, format)
	if err != nil {
		return nil, err
	}

	if cached, ok := c.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err := c.Runner.Calculate(ctx, payload, format)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

func (c *CachedRunner) lookup(ctx context.Context, key string) (*calculator.Result, bool) {
	raw, ok, err := c.repo.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed",
			zap.String("op", "cache.CachedRunner.Calculate"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var result calculator.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.Warn("discarding unreadable cache entry",
			zap.String("op", "cache.CachedRunner.Calculate"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	c.logger.Debug("cache hit",
		zap.String("op", "cache.CachedRunner.Calculate"),
		zap.String("key", key),
	)
	return &result, true
}

func (c *CachedRunner) store(ctx context.Context, key string, result *calculator.Result) {
	raw, err := json.Marshal(result)
	if err == nil {
		err = c.repo.Set(ctx, key, string(raw), c.ttl)
	}
	if err != nil {
		c.logger.Warn("cache store failed",
			zap.String("op", "cache.CachedRunner.Calculate"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
