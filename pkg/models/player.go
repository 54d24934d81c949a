package models

import "time"

// Player represents a connected player
type Player struct {
	// From JWT claims
	ID       string `json:"id"`
	Username string `json:"username"`
	Icon     string `json:"icon"`

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`
}

// IsConnected checks if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Connected
}

// Touch updates the player's last-seen time
func (p *Player) Touch() {
	p.LastSeen = time.Now()
}
