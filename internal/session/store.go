package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"wellbeing/domain/core"
	"wellbeing/internal"
)

// Entry is one stored upload with its bookkeeping
type Entry[T any] struct {
	ID        core.UploadID
	Value     T
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store keeps analyzed uploads in memory, expiring them after TTL and evicting the oldest
// once more than MaxUploads are held. Nothing is written to disk.
type Store[T any] struct {
	mu         sync.RWMutex
	entries    map[core.UploadID]*Entry[T]
	ttl        time.Duration
	maxUploads int
	now        func() time.Time
	logger     *internal.Logger
}

// NewStore creates an in-memory store. Zero ttl disables expiry; zero maxUploads disables eviction.
func NewStore[T any](ttl time.Duration, maxUploads int, logger *internal.Logger) *Store[T] {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store[T]{
		entries:    make(map[core.UploadID]*Entry[T]),
		ttl:        ttl,
		maxUploads: maxUploads,
		now:        time.Now,
		logger:     logger,
	}
}

// Put stores a value under a fresh upload ID
func (s *Store[T]) Put(value T) core.UploadID {
	id := core.NewUploadID()
	s.PutWithID(id, value)
	return id
}

// PutWithID stores a value under an existing ID, replacing any previous entry
func (s *Store[T]) PutWithID(id core.UploadID, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := &Entry[T]{ID: id, Value: value, CreatedAt: now}
	if s.ttl > 0 {
		entry.ExpiresAt = now.Add(s.ttl)
	}
	s.entries[id] = entry

	s.removeExpiredLocked(now)
	s.evictLocked()
}

// Get returns the value for id; expired entries are reported as missing
func (s *Store[T]) Get(id core.UploadID) (T, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	var zero T
	if !ok || s.expired(entry, s.now()) {
		return zero, core.ErrUploadNotFound
	}
	return entry.Value, nil
}

// Delete discards an upload
func (s *Store[T]) Delete(id core.UploadID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return core.ErrUploadNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of live uploads
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e, now) {
			n++
		}
	}
	return n
}

// CleanupExpired drops every expired upload and returns how many were removed
func (s *Store[T]) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeExpiredLocked(s.now())
}

// RunJanitor sweeps expired uploads every interval until ctx is done
func (s *Store[T]) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.CleanupExpired(); n > 0 {
				s.logger.Debug("[SessionStore] Expired %d uploads", n)
			}
		}
	}
}

func (s *Store[T]) expired(e *Entry[T], now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

func (s *Store[T]) removeExpiredLocked(now time.Time) int {
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Store[T]) evictLocked() {
	if s.maxUploads <= 0 || len(s.entries) <= s.maxUploads {
		return
	}

	ordered := make([]*Entry[T], 0, len(s.entries))
	for _, e := range s.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	excess := len(ordered) - s.maxUploads
	for _, e := range ordered[:excess] {
		delete(s.entries, e.ID)
		s.logger.Debug("[SessionStore] Evicted upload %s", e.ID)
	}
}
