package cache

import (
	"sync"
	"time"

	"github.com/handiism/muzbot/internal/model"
)

// Store is a bounded, time-evicting in-memory store for search results.
//
// Each stored result set gets a monotonically increasing numeric key
// that is later echoed back through inline-button callbacks. Keys come
// from a guarded counter, never from the current map size, so eviction
// can never cause two result sets to share a key.
//
// Store is safe for use from concurrent chat updates.
type Store struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]entry

	ttl        time.Duration
	maxEntries int
}

type entry struct {
	tracks  []model.Track
	addedAt time.Time
}

// New creates a Store that drops entries older than ttl and keeps at
// most maxEntries result sets, evicting oldest first.
func New(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		entries:    make(map[uint64]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Put stores a result set and returns its key. Key assignment and
// insertion happen atomically; expired and over-budget entries are
// evicted on the way in.
func (s *Store) Put(tracks []model.Track) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked(time.Now())

	id := s.nextID
	s.nextID++
	s.entries[id] = entry{tracks: tracks, addedAt: time.Now()}
	return id
}

// Get returns the result set stored under id, or false if it was never
// stored, has expired, or has been evicted.
func (s *Store) Get(id uint64) ([]model.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if time.Since(e.addedAt) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	return e.tracks, true
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(time.Now())
	return len(s.entries)
}

// expireLocked drops entries older than the TTL.
func (s *Store) expireLocked(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.addedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// evictLocked drops expired entries, then the oldest entries until one
// slot is free. Keys are monotonic, so the smallest key is the oldest.
func (s *Store) evictLocked(now time.Time) {
	s.expireLocked(now)

	for len(s.entries) >= s.maxEntries {
		oldest := uint64(0)
		found := false
		for id := range s.entries {
			if !found || id < oldest {
				oldest = id
				found = true
			}
		}
		if !found {
			return
		}
		delete(s.entries, oldest)
	}
}
