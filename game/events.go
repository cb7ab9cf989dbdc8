package game

// Events describe what an accepted operation changed. The engine never
// talks to the network itself; the room loop translates these into
// broadcasts. Consumed with a type switch, like room commands.

// TileUpdated: the tile at Index changed and must be re-broadcast.
type TileUpdated struct {
	Index int
}

// PlayerUpdated: the player's mp/mps changed and should be pushed to
// that player's session.
type PlayerUpdated struct {
	PlayerID string
}

// PlayerJoined: a new player entered; Index is the home tile.
type PlayerJoined struct {
	PlayerID string
	Index    int
}

// PlayerEliminated: the player's capital fell (or they left); their
// session gets a game-over signal.
type PlayerEliminated struct {
	PlayerID string
	Username string
}

// PlayerWon: the last remaining non-bot player.
type PlayerWon struct {
	PlayerID string
	Username string
}

// SystemChat: a server-authored chat line for everyone.
type SystemChat struct {
	Msg   string
	Color string
}
