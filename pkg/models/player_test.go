package models

import (
	"testing"
	"time"
)

func TestTouchUpdatesLastSeen(t *testing.T) {
	p := &Player{ID: "alice", Username: "alice"}
	if p.IsConnected() {
		t.Fatalf("a fresh player must not report connected")
	}
	if !p.LastSeen.IsZero() {
		t.Fatalf("a fresh player has no last-seen time")
	}

	p.Connected = true
	before := time.Now()
	p.Touch()
	if p.LastSeen.Before(before) {
		t.Fatalf("Touch should move last-seen forward, got %v", p.LastSeen)
	}
	if !p.IsConnected() {
		t.Fatalf("touching must not change connection state")
	}
}
