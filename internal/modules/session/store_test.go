// README: Session store tests (lazy creation, rollback on error, per-key serialization).
package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"smartdrive/internal/modules/slots"
)

func TestGetOrCreate_DefaultsAndIdempotent(t *testing.T) {
	s := NewStore()
	a := s.GetOrCreate("abc")
	if a.Key != "abc" || a.Turns != 0 || a.LastAsked != "" {
		t.Fatalf("unexpected default session: %+v", a)
	}
	if a.Slots != slots.Default() {
		t.Fatalf("expected all slots unset, got %+v", a.Slots.Map())
	}
	b := s.GetOrCreate("abc")
	if a != b {
		t.Fatalf("second GetOrCreate returned a different session: %+v vs %+v", a, b)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}
}

func TestLookup_DoesNotCreate(t *testing.T) {
	s := NewStore()
	if _, ok := s.Lookup("ghost"); ok {
		t.Fatal("expected unseen key to be missing")
	}
	if s.Len() != 0 {
		t.Fatalf("Lookup created a session: len=%d", s.Len())
	}

	if _, err := s.Update("ghost", func(sess *Session) error {
		sess.Turns = 2
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok := s.Lookup("ghost")
	if !ok || got.Turns != 2 || got.Key != "ghost" {
		t.Fatalf("unexpected lookup result: ok=%v %+v", ok, got)
	}
}

func TestGetOrCreate_ConcurrentSameKey(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.GetOrCreate("same")
		}()
	}
	wg.Wait()
	if s.Len() != 1 {
		t.Fatalf("expected a single session, got %d", s.Len())
	}
}

func TestUpdate_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	got, err := s.Update("k", func(sess *Session) error {
		sess.Slots.City = slots.Text("Rabat")
		sess.LastAsked = slots.Category
		sess.Turns++
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Turns != 1 || got.LastAsked != slots.Category {
		t.Fatalf("unexpected returned session: %+v", got)
	}
	stored := s.GetOrCreate("k")
	if stored.Slots.City != slots.Text("Rabat") || stored.Turns != 1 {
		t.Fatalf("update not committed: %+v", stored)
	}
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	s := NewStore()
	_, _ = s.Update("k", func(sess *Session) error {
		sess.Slots.Fuel = slots.Text("diesel")
		sess.Turns = 1
		return nil
	})

	boom := errors.New("model down")
	got, err := s.Update("k", func(sess *Session) error {
		sess.Slots.Fuel = slots.Any()
		sess.Turns++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got.Slots.Fuel != slots.Text("diesel") || got.Turns != 1 {
		t.Fatalf("expected pre-turn state back, got %+v", got)
	}
	if stored := s.GetOrCreate("k"); stored.Slots.Fuel != slots.Text("diesel") {
		t.Fatalf("failed update leaked into store: %+v", stored)
	}
}

func TestUpdate_SerializedPerKey(t *testing.T) {
	s := NewStore()
	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update("shared", func(sess *Session) error {
				sess.Turns++
				return nil
			})
		}()
	}
	wg.Wait()
	if got := s.GetOrCreate("shared").Turns; got != workers {
		t.Fatalf("lost updates: expected %d turns, got %d", workers, got)
	}
}

func TestUpdate_DifferentKeysIsolated(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", i)
			_, _ = s.Update(key, func(sess *Session) error {
				sess.Turns = i
				return nil
			})
		}(i)
	}
	wg.Wait()
	for i := 0; i < 20; i++ {
		if got := s.GetOrCreate(fmt.Sprintf("user-%d", i)).Turns; got != i {
			t.Fatalf("user-%d: expected %d turns, got %d", i, i, got)
		}
	}
}
