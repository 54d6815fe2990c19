package conversation

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store holds one Log per session. A log belongs to exactly one session and
// all pipeline stages touching it run sequentially within a request, so the
// store needs no per-log locking.
type Store interface {
	// Load returns the session's log, or a fresh empty log when none exists.
	Load(ctx context.Context, sessionID string) (*Log, error)
	Save(ctx context.Context, sessionID string, log *Log) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps logs in process memory with a sliding TTL.
type MemoryStore struct {
	cache *cache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Log, error) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*Log), nil
	}
	return NewLog(), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, log *Log) error {
	s.cache.Set(sessionID, log, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
