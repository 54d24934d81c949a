package server

import (
	"testing"

	"github.com/verdant-games/gardensim/pkg/models"
)

func TestLobbyTracksPresence(t *testing.T) {
	l := NewLobby()
	if l.PlayerCount() != 0 {
		t.Fatalf("a fresh lobby must be empty")
	}

	p := &models.Player{ID: "alice", Username: "alice"}
	l.AddPlayer(p, nil)
	if !p.IsConnected() {
		t.Fatalf("joining the lobby should mark the player connected")
	}
	got, ok := l.GetPlayer("alice")
	if !ok || got.Username != "alice" {
		t.Fatalf("GetPlayer should find alice, got %+v", got)
	}
	if l.PlayerCount() != 1 {
		t.Fatalf("expected 1 player online, got %d", l.PlayerCount())
	}

	l.RemovePlayer("alice")
	if _, ok := l.GetPlayer("alice"); ok {
		t.Fatalf("a removed player must not resolve")
	}
	if l.PlayerCount() != 0 {
		t.Fatalf("expected an empty lobby, got %d", l.PlayerCount())
	}
}
