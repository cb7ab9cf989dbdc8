package game

// EconomyTick recomputes every player's income from scratch and credits
// it. Income is 1 flat plus the val of every owned production unit; there
// is no incremental bookkeeping, so structure changes take effect on the
// very next tick. Returns a PlayerUpdated event per player, in id order.
func (e *Engine) EconomyTick() []any {
	for _, p := range e.players {
		p.MPS = 1
	}
	for i := range e.tiles {
		t := &e.tiles[i]
		if t.Owner == "" || t.Unit == "" {
			continue
		}
		p, ok := e.players[t.Owner]
		if !ok {
			continue
		}
		if unit, ok := e.catalog[t.Unit]; ok && unit.Type == UnitProd {
			p.MPS += unit.Val
		}
	}

	ids := e.PlayerIDs()
	events := make([]any, 0, len(ids))
	for _, id := range ids {
		p := e.players[id]
		p.MP += p.MPS
		events = append(events, PlayerUpdated{PlayerID: id})
	}
	return events
}
