package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KrUtHi96/sidebyside/internal/compare"
)

func tempFile(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stored-*.pdf")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Now()
	s := New(ttl, nil)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_SaveAndGet(t *testing.T) {
	s, _ := newTestStore(2 * time.Hour)
	res := &compare.Result{}

	id := s.Save(res, "", "")
	if id == "" {
		t.Fatal("expected a generated id")
	}
	got := s.Get(id)
	if got == nil || got.Result != res {
		t.Fatalf("expected the stored result back, got %#v", got)
	}
	if s.State(id) != StateOK {
		t.Errorf("expected ok state, got %s", s.State(id))
	}
}

func TestStore_UnknownIDIsMissing(t *testing.T) {
	s, _ := newTestStore(2 * time.Hour)
	if s.Get("nope") != nil {
		t.Error("unknown id must return nil")
	}
	if s.State("nope") != StateMissing {
		t.Errorf("expected missing, got %s", s.State("nope"))
	}
}

func TestStore_ExpiryEvictsAndLeavesTombstone(t *testing.T) {
	s, now := newTestStore(2 * time.Hour)
	path := tempFile(t)

	id := s.Save(&compare.Result{}, path, "")

	*now = now.Add(3 * time.Hour)
	if s.Get(id) != nil {
		t.Error("expired result must not be returned")
	}
	if s.State(id) != StateExpired {
		t.Errorf("expected expired, got %s", s.State(id))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("parked file must be removed on eviction")
	}
}

func TestStore_CleanupForgetsOldTombstones(t *testing.T) {
	s, now := newTestStore(2 * time.Hour)
	id := s.Save(&compare.Result{}, "", "")

	*now = now.Add(3 * time.Hour)
	s.Cleanup()
	if s.State(id) != StateExpired {
		t.Fatalf("expected expired after first cleanup, got %s", s.State(id))
	}

	*now = now.Add(25 * time.Hour)
	s.Cleanup()
	if s.State(id) != StateMissing {
		t.Errorf("old tombstones are forgotten, got %s", s.State(id))
	}
}

func TestStore_CloseRemovesAllParkedFiles(t *testing.T) {
	s, _ := newTestStore(2 * time.Hour)
	a := tempFile(t)
	b := tempFile(t)
	s.Save(&compare.Result{}, a, b)

	s.Close()
	for _, p := range []string{a, b} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s removed", filepath.Base(p))
		}
	}
}

func TestStore_GetState(t *testing.T) {
	s, now := newTestStore(2 * time.Hour)
	id := s.Save(&compare.Result{}, "", "")

	if st, state := s.GetState(id); st == nil || state != StateOK {
		t.Errorf("expected ok, got %v/%s", st, state)
	}
	*now = now.Add(3 * time.Hour)
	if st, state := s.GetState(id); st != nil || state != StateExpired {
		t.Errorf("expected expired, got %v/%s", st, state)
	}
}
