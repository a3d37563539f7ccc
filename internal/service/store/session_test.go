package store

import (
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSessionStore(time.Hour)

	id := s.Create("alice")
	user, ok := s.Lookup(id)
	if !ok || user != "alice" {
		t.Fatalf("Lookup = (%q, %v), want (alice, true)", user, ok)
	}

	s.Delete(id)
	if _, ok := s.Lookup(id); ok {
		t.Fatal("session still valid after Delete")
	}
}

func TestSessionIdleExpiry(t *testing.T) {
	s := NewSessionStore(10 * time.Minute)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id := s.Create("bob")

	now = now.Add(9 * time.Minute)
	if _, ok := s.Lookup(id); !ok {
		t.Fatal("session expired too early")
	}

	// Lookup 刷新了空闲计时
	now = now.Add(9 * time.Minute)
	if _, ok := s.Lookup(id); !ok {
		t.Fatal("session not refreshed by Lookup")
	}

	now = now.Add(11 * time.Minute)
	if _, ok := s.Lookup(id); ok {
		t.Fatal("session should have expired")
	}
}
