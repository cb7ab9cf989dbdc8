package protocol

// Payloads pushed to clients.

// Init is the full snapshot a player receives once on join.
type Init struct {
	PlayerID string              `json:"playerId"`
	Map      []TileSnapshot      `json:"map"`
	You      PlayerSnapshot      `json:"you"`
	Shop     map[string]UnitInfo `json:"shop"`
}

type TileSnapshot struct {
	ID         int    `json:"id"`
	Owner      string `json:"owner,omitempty"`
	Defense    int    `json:"defense"`
	MaxDefense int    `json:"maxDefense"`
	Unit       string `json:"unit,omitempty"`
	IsHome     bool   `json:"isHome"`
	Color      string `json:"color"`
}

type PlayerSnapshot struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	MP        int    `json:"mp"`
	MPS       int    `json:"mps"`
	HomeIndex int    `json:"homeIndex"`
	Color     string `json:"color"`
}

type UnitInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Cost        int    `json:"cost"`
	Val         int    `json:"val"`
	Symbol      string `json:"symbol"`
	Upgrade     string `json:"upgrade,omitempty"`
}

type ChatMessage struct {
	User  string `json:"user"`
	Msg   string `json:"msg"`
	Color string `json:"color"`
}

// GameOver is sent to an eliminated player's session.
type GameOver struct {
	Reason string `json:"reason,omitempty"`
}

// GameWon is sent to the last remaining player's session.
type GameWon struct{}
