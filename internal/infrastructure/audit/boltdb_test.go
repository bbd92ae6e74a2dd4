package audit

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 5; i++ {
		err := store.Append(Entry{
			ActorID:   "admin-1",
			ActorRole: "admin",
			Operation: "create",
			Entity:    "task",
			EntityID:  fmt.Sprintf("task-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// newest first
	if entries[0].EntityID != "task-4" || entries[2].EntityID != "task-2" {
		t.Errorf("wrong order: %s .. %s", entries[0].EntityID, entries[2].EntityID)
	}
	if entries[0].ID == "" {
		t.Error("entry ID was not assigned")
	}
}

func TestSize(t *testing.T) {
	store := openTestStore(t)

	if n, err := store.Size(); err != nil || n != 0 {
		t.Fatalf("empty store size = %d, err = %v", n, err)
	}

	for i := 0; i < 4; i++ {
		if err := store.Append(Entry{EntityID: fmt.Sprintf("t-%d", i)}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if n != 4 {
		t.Errorf("size = %d, want 4", n)
	}
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	cutoff := time.Now()
	old := cutoff.Add(-time.Hour)
	fresh := cutoff.Add(time.Hour)

	for i, ts := range []time.Time{old, old, fresh} {
		err := store.Append(Entry{EntityID: fmt.Sprintf("t-%d", i), Timestamp: ts})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := store.Cleanup(cutoff); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	n, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if n != 1 {
		t.Errorf("size after cleanup = %d, want 1", n)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].EntityID != "t-2" {
		t.Errorf("unexpected survivor: %+v", entries)
	}
}

func TestClosedStore(t *testing.T) {
	var store *Store
	if err := store.Append(Entry{}); err == nil {
		t.Error("nil store Append should fail")
	}
	if _, err := store.Recent(1); err == nil {
		t.Error("nil store Recent should fail")
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil store Close should be a no-op, got %v", err)
	}
}
