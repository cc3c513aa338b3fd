// Package cachetest provides an in-process cache.Client for tests.
package cachetest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"restmvc/internal/pkg/cache"
)

// Fake is a map-backed cache.Client. Expirations are recorded but never
// enforced. Setting Err makes every call fail with it.
type Fake struct {
	mu    sync.Mutex
	items map[string]string
	ttls  map[string]time.Duration

	Err error
}

var _ cache.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		items: make(map[string]string),
		ttls:  make(map[string]time.Duration),
	}
}

func (f *Fake) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	v, ok := f.items[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (f *Fake) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	f.store(key, value, expiration)
	return nil
}

func (f *Fake) store(key string, value interface{}, expiration time.Duration) {
	switch v := value.(type) {
	case []byte:
		f.items[key] = string(v)
	case string:
		f.items[key] = v
	default:
		f.items[key] = fmt.Sprint(v)
	}
	f.ttls[key] = expiration
}

func (f *Fake) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	delete(f.items, key)
	delete(f.ttls, key)
	return nil
}

// SetNX stores value only when key is absent.
func (f *Fake) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return false, f.Err
	}
	if _, exists := f.items[key]; exists {
		return false, nil
	}
	f.store(key, value, expiration)
	return true, nil
}

// IncrWindow increments key and gives it window as TTL when it has none.
func (f *Fake) IncrWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return 0, f.Err
	}
	n, _ := strconv.ParseInt(f.items[key], 10, 64)
	n++
	f.items[key] = strconv.FormatInt(n, 10)
	if n == 1 || f.ttls[key] <= 0 {
		f.ttls[key] = window
	}
	return n, nil
}

// Expire drops key as if its TTL had run out.
func (f *Fake) Expire(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.items, key)
	delete(f.ttls, key)
}

// Has reports whether key is currently stored.
func (f *Fake) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.items[key]
	return ok
}

// TTL returns the expiration passed with the last Set of key.
func (f *Fake) TTL(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.ttls[key]
}
