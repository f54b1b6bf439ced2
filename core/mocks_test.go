package core

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/router"
)

// discardLogger silences handler logging in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockValidator implements Validator with overridable behavior.
type MockValidator struct {
	ContentTypeFunc func(r *http.Request, allowedType string) (error, jsonResponse)
}

func (m *MockValidator) ContentType(r *http.Request, allowedType string) (error, jsonResponse) {
	if m.ContentTypeFunc != nil {
		return m.ContentTypeFunc(r, allowedType)
	}
	return nil, jsonResponse{}
}

// mapCache is a TTL-aware in-memory cache for tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]mapCacheEntry
}

type mapCacheEntry struct {
	value   interface{}
	expires time.Time
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]mapCacheEntry)}
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *mapCache) Set(key string, value interface{}, cost int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = mapCacheEntry{value: value}
	return true
}

func (c *mapCache) SetWithTTL(key string, value interface{}, cost int64, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = mapCacheEntry{value: value, expires: time.Now().Add(ttl)}
	return true
}

// mockNotifier records sent messages and can be forced to fail.
type mockNotifier struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, msg notify.Message) error
	sent     []notify.Message
}

func (m *mockNotifier) Send(ctx context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendFunc != nil {
		if err := m.sendFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockNotifier) sentMessages() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

// staticParams returns fixed URL parameters regardless of request context.
type staticParams router.Params

func (p staticParams) Get(ctx context.Context) router.Params {
	return router.Params(p)
}

// withClaims injects authentication claims as RequireAuth would.
func withClaims(r *http.Request, claims *AuthClaims) *http.Request {
	ctx := context.WithValue(r.Context(), authClaimsKey, claims)
	return r.WithContext(ctx)
}
