package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin       = "join"
	MsgTypeLeave      = "leave"
	MsgTypePing       = "ping"
	MsgTypeState      = "state"
	MsgTypePlaceItem  = "place_item"
	MsgTypeHarvest    = "harvest"
	MsgTypeHarvestAll = "harvest_all"
	MsgTypePickup     = "pickup"
	MsgTypeCollectEgg = "collect_egg"
	MsgTypeDestroy    = "destroy"
	MsgTypeBuy        = "buy"
	MsgTypeSell       = "sell"
	MsgTypeTrash      = "trash"
	MsgTypeExpand     = "expand"
	MsgTypeShrink     = "shrink"
)

// Message types - Server → Client
const (
	MsgTypeWelcome      = "welcome"
	MsgTypePlayerJoined = "player_joined"
	MsgTypePlayerLeft   = "player_left"
	MsgTypeActionResult = "action_result"
	MsgTypeStateUpdate  = "state_update"
	MsgTypeError        = "error"
	MsgTypePong         = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PlaceItemPayload plants a seed, places a decoration, or starts an egg
// incubating on a plot
type PlaceItemPayload struct {
	PlotID   string `json:"plot_id"`
	ItemName string `json:"item_name"`
}

// HarvestPayload collects harvests from one plot
type HarvestPayload struct {
	PlotID    string `json:"plot_id"`
	Requested int    `json:"requested"`
	Key       string `json:"key,omitempty"`
}

// HarvestAllPayload collects one harvest from every ready plot
type HarvestAllPayload struct {
	Key string `json:"key,omitempty"`
}

// PlotPayload targets a single plot
type PlotPayload struct {
	PlotID string `json:"plot_id"`
}

// TradePayload buys or sells items through a store
type TradePayload struct {
	Store    string `json:"store"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// TrashPayload discards inventory items
type TrashPayload struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// ResizePayload grows or shrinks the garden by one row or column
type ResizePayload struct {
	Store string `json:"store,omitempty"`
	Line  string `json:"line"` // "row" or "column"
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID string       `json:"player_id"`
	Username string       `json:"username"`
	State    StatePayload `json:"state"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// ActionResultPayload reports the outcome of a game action. Success means
// the action applied; otherwise Messages explains the refusal.
type ActionResultPayload struct {
	Action   string   `json:"action"`
	Success  bool     `json:"success"`
	Messages []string `json:"messages,omitempty"`
	Detail   any      `json:"detail,omitempty"`
}

// StatePayload is a full snapshot of the player's game state
type StatePayload struct {
	Username string        `json:"username"`
	Icon     string        `json:"icon"`
	Level    int           `json:"level"`
	Exp      int           `json:"exp"`
	NextExp  int           `json:"next_exp"`
	Gold     int           `json:"gold"`
	Items    []StateItem   `json:"items"`
	Garden   [][]StatePlot `json:"garden"`
}

// StateItem is one inventory stack in a snapshot
type StateItem struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Subtype  string `json:"subtype"`
	Quantity int    `json:"quantity"`
}

// StatePlot is one garden plot in a snapshot
type StatePlot struct {
	PlotID        string `json:"plot_id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Subtype       string `json:"subtype"`
	UsesRemaining int    `json:"uses_remaining"`
	ReadySeconds  int64  `json:"ready_seconds"` // 0 when ready, -1 when nothing grows
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
