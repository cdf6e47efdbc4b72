package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.Get("bookmarks"); !errors.Is(err, ErrNoKey) {
		t.Fatalf("Get on empty store error = %v, want ErrNoKey", err)
	}
	if err := s.Put("bookmarks", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, err := s.Get("bookmarks")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("Get = %q, want stored value", got)
	}

	// Returned slices must not alias stored data.
	got[0] = 'X'
	again, _ := s.Get("bookmarks")
	if string(again) != `[{"id":"a"}]` {
		t.Fatalf("Get after mutation = %q, want stored value", again)
	}

	if err := s.Put("bookmarks", []byte(`[]`)); err != nil {
		t.Fatalf("Put overwrite returned error: %v", err)
	}
	if got, _ := s.Get("bookmarks"); string(got) != `[]` {
		t.Fatalf("Get after overwrite = %q, want []", got)
	}

	if err := s.Delete("bookmarks"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := s.Delete("bookmarks"); err != nil {
		t.Fatalf("Delete of missing key returned error: %v", err)
	}
	if _, err := s.Get("bookmarks"); !errors.Is(err, ErrNoKey) {
		t.Fatalf("Get after Delete error = %v, want ErrNoKey", err)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	testStore(t, s)
	if s.Writes() != 4 {
		t.Fatalf("Writes = %d, want 4", s.Writes())
	}
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forkify.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	testStore(t, s)
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forkify.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt returned error: %v", err)
	}
	if err := s.Put("bookmarks", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt (reopen) returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.Get("bookmarks")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("Get = %q, want persisted value", got)
	}
}
