package room

// Conn is the transport handle the room writes to. The websocket layer
// implements it; tests use channel-backed fakes.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Commands delivered on the room Inbox. One variant per action the
// boundary accepts; the room's handleCommand switch is the single
// dispatch point into the engine.

// Join: issued once after the join envelope is parsed.
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
}

type Chat struct {
	PlayerID string
	Msg      string
}

type Generate struct {
	PlayerID string
}

type PlaceUnit struct {
	PlayerID  string
	TileIndex int
	UnitType  string
}

type Demolish struct {
	PlayerID  string
	TileIndex int
}

type Capture struct {
	PlayerID  string
	TileIndex int
}

// Leave: issued on disconnect. Teardown is immediate and unconditional.
type Leave struct {
	PlayerID string
}

// AddBot: spawn a bot player into the match. Name is optional.
type AddBot struct {
	Name string
}
