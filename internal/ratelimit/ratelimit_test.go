package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow(1) {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	if l.Allow(1) {
		t.Fatal("fourth request should be limited")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	if !l.Allow(1) {
		t.Fatal("first key limited")
	}
	if !l.Allow(2) {
		t.Fatal("second key should have its own budget")
	}
	if l.Allow(1) {
		t.Fatal("first key should be exhausted")
	}
}

func TestWindowSlides(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow(1) || !l.Allow(1) {
		t.Fatal("initial budget")
	}
	if l.Allow(1) {
		t.Fatal("over budget")
	}

	// 30s later the window still covers both events.
	now = now.Add(30 * time.Second)
	if l.Allow(1) {
		t.Fatal("window has not slid yet")
	}

	// 61s after the first events, both fall out of the window.
	now = now.Add(31 * time.Second)
	if !l.Allow(1) {
		t.Fatal("budget should have recovered")
	}
}

func TestPruneDropsIdleKeys(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow(1)
	l.Allow(2)

	now = now.Add(2 * time.Minute)
	l.Prune()
	if len(l.events) != 0 {
		t.Errorf("events = %d keys, want 0 after prune", len(l.events))
	}
}
