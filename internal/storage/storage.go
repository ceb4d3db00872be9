// Package storage provides tab-scoped key/value storage: values live for the
// lifetime of the process and are never written to disk.
package storage

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"github.com/proconsult/onboard/internal/log"
)

// Store is the string key/value contract used by the token cache.
type Store interface {
	GetItem(ctx context.Context, key string) (string, bool)
	SetItem(ctx context.Context, key, value string)
	RemoveItem(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// Session is an in-memory Store. Items never expire on their own.
type Session struct {
	name  string
	cache *gocache.Cache
}

// NewSession creates an empty session store. name only appears in logs.
func NewSession(name string) *Session {
	return &Session{
		name:  name,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetItem returns the value stored under key.
func (s *Session) GetItem(_ context.Context, key string) (string, bool) {
	v, found := s.cache.Get(key)
	if !found {
		return "", false
	}

	value, ok := v.(string)
	if !ok {
		log.Error(log.CatToken, "session storage holds non-string value", "store", s.name, "key", key)
		return "", false
	}
	return value, true
}

// SetItem stores value under key, replacing any previous value.
func (s *Session) SetItem(_ context.Context, key, value string) {
	s.cache.Set(key, value, gocache.NoExpiration)
}

// RemoveItem deletes key. Removing a missing key is a no-op.
func (s *Session) RemoveItem(_ context.Context, key string) {
	s.cache.Delete(key)
}

// Clear removes every item.
func (s *Session) Clear(_ context.Context) {
	s.cache.Flush()
}

// Len returns the number of stored items.
func (s *Session) Len() int {
	return s.cache.ItemCount()
}
