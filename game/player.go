package game

import "time"

// MaxUsernameLen bounds display names; longer names are truncated.
const MaxUsernameLen = 15

// Player is one participant, human or bot. MP ("energy") is the single
// currency for all actions; MPS is recomputed from scratch every economy
// tick, never carried over.
type Player struct {
	ID        string
	Username  string
	MP        int
	MPS       int
	LastMove  time.Time // zero at join: first action is never cooldown-gated
	HomeIndex int
	Color     string
	Bot       bool
}
