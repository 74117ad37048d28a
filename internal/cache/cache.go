// Package cache stores calculation results keyed by calculator and canonical payload.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"gopkg.in/yaml.v3"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "calc"

// Repository is a string key/value store with expiry.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key derives the cache key of a calculation. Payloads that decode to the same
// document share a key regardless of encoding, key order or whitespace.
func Key(name string, payload []byte, format calculator.Format) (string, error) {
	canonical, err := canonicalize(payload, format)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s:%s", KeyPrefix, name, hex.EncodeToString(sum[:])), nil
}

func canonicalize(payload []byte, format calculator.Format) ([]byte, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return []byte("{}"), nil
	}

	var doc any
	var err error
	switch format {
	case calculator.FormatYAML:
		err = yaml.Unmarshal(payload, &doc)
	default:
		err = json.Unmarshal(payload, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", calculator.ErrDecode, err)
	}
	// encoding/json sorts map keys.
	return json.Marshal(doc)
}

type entry struct {
	value   string
	expires time.Time
}

// MemoryCache is an in-process Repository.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry), now: time.Now}
}

// Get implements Repository. Expired entries are dropped on read.
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements Repository. A non-positive ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Close implements Repository.
func (m *MemoryCache) Close() error { return nil }
