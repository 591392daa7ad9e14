package core

import (
	"testing"
	"time"
)

func TestSessions_CreateGetRemove(t *testing.T) {
	s := NewSessions(4, time.Hour)
	st := NewViewState()

	id := s.Create(st)
	got, ok := s.Get(id)
	if !ok || got != st {
		t.Fatalf("Get(%q) = %p, %v; want %p, true", id, got, ok, st)
	}

	s.Remove(id)
	if _, ok := s.Get(id); ok {
		t.Error("Get after Remove should miss")
	}
}

func TestSessions_EvictsOldest(t *testing.T) {
	s := NewSessions(2, time.Hour)
	first := s.Create(NewViewState())
	second := s.Create(NewViewState())

	// Touching first makes second the least recently used.
	if _, ok := s.Get(first); !ok {
		t.Fatal("first session missing")
	}
	s.Create(NewViewState())

	if _, ok := s.Get(second); ok {
		t.Error("least recently used session should be evicted")
	}
	if _, ok := s.Get(first); !ok {
		t.Error("recently used session should survive")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSessions_Expire(t *testing.T) {
	s := NewSessions(4, 20*time.Millisecond)
	id := s.Create(NewViewState())

	time.Sleep(60 * time.Millisecond)
	if _, ok := s.Get(id); ok {
		t.Error("session should expire after the TTL")
	}
}

func TestSessions_RejectsMalformedID(t *testing.T) {
	s := NewSessions(4, time.Hour)
	if _, ok := s.Get("../../etc/passwd"); ok {
		t.Error("malformed id should never match")
	}
}
