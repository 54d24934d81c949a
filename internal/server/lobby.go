package server

import (
	"log"
	"sync"
	"time"

	"github.com/verdant-games/gardensim/internal/network"
	"github.com/verdant-games/gardensim/pkg/models"
)

// Lobby tracks every player currently connected to the game and fans
// messages out to them.
type Lobby struct {
	CreatedAt time.Time

	players     map[string]*models.Player // playerID -> Player
	connections map[string]*Connection    // playerID -> Connection
	mu          sync.RWMutex
}

// NewLobby creates an empty lobby
func NewLobby() *Lobby {
	return &Lobby{
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]*Connection),
	}
}

// AddPlayer adds a player to the lobby
func (l *Lobby) AddPlayer(player *models.Player, conn *Connection) {
	l.mu.Lock()
	defer l.mu.Unlock()

	player.Connected = true
	player.ConnectedAt = time.Now()
	l.players[player.ID] = player
	l.connections[player.ID] = conn

	log.Printf("Player %s joined the lobby (%d online)", player.Username, len(l.players))
}

// RemovePlayer removes a player from the lobby
func (l *Lobby) RemovePlayer(playerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if player, exists := l.players[playerID]; exists {
		log.Printf("Player %s left the lobby", player.Username)
		delete(l.players, playerID)
		delete(l.connections, playerID)
	}
}

// GetPlayer retrieves a player by ID
func (l *Lobby) GetPlayer(playerID string) (*models.Player, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	player, exists := l.players[playerID]
	return player, exists
}

// PlayerCount returns how many players are online
func (l *Lobby) PlayerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.players)
}

// BroadcastMessage sends a message to all connected players
func (l *Lobby) BroadcastMessage(msg *network.ServerMessage) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, conn := range l.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified connection
func (l *Lobby) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, conn := range l.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}
