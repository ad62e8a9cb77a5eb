package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/handiism/muzbot/internal/model"
)

func tracks(name string) []model.Track {
	return []model.Track{model.NewTrack(0, name, "Song", "https://example.com/a.mp3")}
}

func TestStore_PutGet(t *testing.T) {
	store := New(time.Minute, 100)

	id := store.Put(tracks("Artist"))
	got, ok := store.Get(id)
	if !ok {
		t.Fatal("Get returned false for a fresh entry")
	}
	if got[0].Performer != "Artist" {
		t.Errorf("Performer = %q, want %q", got[0].Performer, "Artist")
	}
}

func TestStore_KeysAreMonotonic(t *testing.T) {
	store := New(time.Minute, 100)

	first := store.Put(tracks("a"))
	second := store.Put(tracks("b"))
	if second <= first {
		t.Errorf("keys not monotonic: %d then %d", first, second)
	}
}

func TestStore_MissingKey(t *testing.T) {
	store := New(time.Minute, 100)
	if _, ok := store.Get(42); ok {
		t.Error("Get returned true for a key never stored")
	}
}

func TestStore_ExpiredEntry(t *testing.T) {
	store := New(10*time.Millisecond, 100)

	id := store.Put(tracks("a"))
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(id); ok {
		t.Error("Get returned true for an expired entry")
	}
}

func TestStore_EvictsOldestOverBudget(t *testing.T) {
	store := New(time.Minute, 3)

	first := store.Put(tracks("a"))
	store.Put(tracks("b"))
	store.Put(tracks("c"))
	last := store.Put(tracks("d"))

	if store.Len() > 3 {
		t.Errorf("Len() = %d, want at most 3", store.Len())
	}
	if _, ok := store.Get(first); ok {
		t.Error("oldest entry survived eviction")
	}
	if _, ok := store.Get(last); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestStore_KeysUniqueAfterEviction(t *testing.T) {
	// A map-size key scheme would reuse keys once entries are evicted;
	// the counter must not.
	store := New(time.Minute, 2)

	seen := make(map[uint64]bool)
	for i := 0; i < 10; i++ {
		id := store.Put(tracks("x"))
		if seen[id] {
			t.Fatalf("key %d assigned twice", id)
		}
		seen[id] = true
	}
}

func TestStore_ConcurrentPut(t *testing.T) {
	store := New(time.Minute, 1000)

	var wg sync.WaitGroup
	ids := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- store.Put(tracks("x"))
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("key %d assigned twice under concurrency", id)
		}
		seen[id] = true
	}
}
