package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verdant-games/gardensim/internal/network"
	"github.com/verdant-games/gardensim/internal/result"
	"github.com/verdant-games/gardensim/internal/service"
	"github.com/verdant-games/gardensim/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (set after authentication)
	player *models.Player

	// Loaded game state (set on join)
	state *service.Player

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool

	// Guards against closing the send channel twice
	closeOnce sync.Once
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, 256),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	if c.player != nil {
		c.player.Touch()
	}
	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()
	case network.MsgTypeLeave:
		c.handleLeave()
	case network.MsgTypePing:
		c.handlePing()
	default:
		c.handleGameAction(msg)
	}
}

// handleJoin loads the player's game state and enters the lobby
func (c *Connection) handleJoin() {
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}

	state, err := c.server.loadOrCreatePlayer(c.player)
	if err != nil {
		log.Printf("Failed to load player %s: %v", c.player.Username, err)
		c.SendError("join_failed", "Failed to load game state")
		return
	}
	c.state = state

	c.server.lobby.AddPlayer(c.player, c)

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
			State:    c.server.snapshot(state),
		},
	})

	c.server.lobby.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypePlayerJoined,
		Payload: network.PlayerJoinedPayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
		},
	})
}

// handleLeave saves the player's state and exits the lobby
func (c *Connection) handleLeave() {
	if c.player == nil {
		return
	}
	if c.state != nil {
		if err := c.server.game.SavePlayer(c.server.ctx, c.player.Username); err != nil {
			log.Printf("Failed to save player %s on leave: %v", c.player.Username, err)
		}
	}
	c.server.lobby.RemovePlayer(c.player.ID)

	c.server.lobby.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypePlayerLeft,
		Payload: network.PlayerLeftPayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
		},
	})
}

// handleGameAction runs one game operation and reports its outcome
func (c *Connection) handleGameAction(msg *network.ClientMessage) {
	if !c.authenticated || c.state == nil {
		c.SendError("not_joined", "Join before playing")
		return
	}

	switch msg.Type {
	case network.MsgTypeState:
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypeStateUpdate,
			Payload: c.server.snapshot(c.state),
		})
		return

	case network.MsgTypePlaceItem:
		var p network.PlaceItemPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.PlaceItem(c.state, p.PlotID, p.ItemName)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeHarvest:
		var p network.HarvestPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		if p.Requested == 0 {
			p.Requested = 1
		}
		res := c.server.game.HarvestPlot(c.state, p.PlotID, p.Requested, p.Key)
		c.sendHarvestResult(msg.Type, res)

	case network.MsgTypeHarvestAll:
		var p network.HarvestAllPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.HarvestAll(c.state, p.Key)
		c.sendHarvestResult(msg.Type, res)

	case network.MsgTypePickup:
		var p network.PlotPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.PickupDecoration(c.state, p.PlotID)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeCollectEgg:
		var p network.PlotPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.CollectEgg(c.state, p.PlotID)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeDestroy:
		var p network.PlotPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.DestroyPlotItem(c.state, p.PlotID)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeBuy:
		var p network.TradePayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.BuyFromStore(c.state, p.Store, p.ItemName, p.Quantity)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeSell:
		var p network.TradePayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.SellToStore(c.state, p.Store, p.ItemName, p.Quantity)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, map[string]int{"gold": c.state.Inventory.Gold})

	case network.MsgTypeTrash:
		var p network.TrashPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		res := c.server.game.TrashItem(c.state, p.ItemName, p.Quantity)
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	case network.MsgTypeExpand:
		var p network.ResizePayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		var res result.Result[int]
		if p.Line == "column" {
			res = c.server.game.ExpandGardenColumn(c.state, p.Store)
		} else {
			res = c.server.game.ExpandGardenRow(c.state, p.Store)
		}
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, map[string]int{"gold": c.state.Inventory.Gold})

	case network.MsgTypeShrink:
		var p network.ResizePayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		var res result.Result[struct{}]
		if p.Line == "column" {
			res = c.server.game.ShrinkGardenColumn(c.state)
		} else {
			res = c.server.game.ShrinkGardenRow(c.state)
		}
		c.sendActionResult(msg.Type, res.Successful(), res.Messages, nil)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

func (c *Connection) sendHarvestResult(action string, res result.Result[service.HarvestReport]) {
	var detail any
	if res.Successful() {
		detail = map[string]int{
			"harvests":      len(res.Payload.Yields),
			"exp":           res.Payload.TotalExp,
			"levels_gained": res.Payload.LevelsGained,
		}
	}
	c.sendActionResult(action, res.Successful(), res.Messages, detail)
}

func (c *Connection) sendActionResult(action string, success bool, messages []string, detail any) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeActionResult,
		Payload: network.ActionResultPayload{
			Action:   action,
			Success:  success,
			Messages: messages,
			Detail:   detail,
		},
	})
}

func (c *Connection) decode(raw json.RawMessage, out any) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("Failed to parse %T payload: %v", out, err)
		c.SendError("invalid_payload", "Failed to parse payload")
		return false
	}
	return true
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. Both the read pump and server shutdown call
// this; only the first call runs.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		if c.authenticated && c.player != nil {
			c.handleLeave()
		}
		close(c.send)
		c.ws.Close()
	})
}
