package protocol

import (
	"encoding/json"
)

// Client -> server message types.
const (
	MsgJoin     = "join"
	MsgChat     = "chat"
	MsgGenerate = "generate"
	MsgPlace    = "place_unit"
	MsgDemolish = "demolish_unit"
	MsgCapture  = "capture"
)

// Server -> client message types.
const (
	MsgInit     = "init"
	MsgTile     = "tile"
	MsgSelf     = "self"
	MsgChatRecv = "chat_receive"
	MsgGameOver = "game_over"
	MsgGameWon  = "game_won"
)

// Bounds applied at the boundary before anything reaches the engine.
const (
	MaxChatLen = 60
	MaxNameLen = 15
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
