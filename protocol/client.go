package protocol

// Payloads coming in from the client. Validated by typed decode; anything
// that does not fit one of these shapes is dropped at the boundary.

type Join struct {
	V    int    `json:"v"`              // protocol version
	Name string `json:"name,omitempty"` // requested display name
}

type Chat struct {
	Msg string `json:"msg"`
}

type PlaceUnit struct {
	TileIndex int    `json:"tileIndex"`
	UnitType  string `json:"unitType"`
}

type Demolish struct {
	TileIndex int `json:"tileIndex"`
}

type Capture struct {
	TileIndex int `json:"tileIndex"`
}
