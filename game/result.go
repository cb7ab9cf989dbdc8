package game

// Reject reasons. Rejections are quiet by design (no broadcast follows),
// but callers and tests can still see why an action bounced.
const (
	ReasonNoPlayer     = "no_player"
	ReasonOutOfRange   = "out_of_range"
	ReasonCooldown     = "cooldown"
	ReasonNotOwner     = "not_owner"
	ReasonNotAdjacent  = "not_adjacent"
	ReasonOwnTile      = "own_tile"
	ReasonUnknownUnit  = "unknown_unit"
	ReasonNoUnit       = "no_unit"
	ReasonInsufficient = "insufficient_energy"
)

// Result reports whether an action applied, and carries the events the
// room must broadcast when it did.
type Result struct {
	Accepted bool
	Reason   string // set iff !Accepted
	Events   []any
}

func accepted(events ...any) Result {
	return Result{Accepted: true, Events: events}
}

func rejected(reason string) Result {
	return Result{Reason: reason}
}
