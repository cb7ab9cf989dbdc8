package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

// Settings are the environment-derived rules of one match. Read-only once
// the engine is constructed.
type Settings struct {
	Width           int
	Height          int
	Cooldown        time.Duration
	StartingEnergy  int
	StartingIncome  int
	BaseTileDefense int
	HomeTileDefense int
	SpawnAttempts   int
}

// DefaultSettings mirrors the stock 20x20 game.
func DefaultSettings() Settings {
	return Settings{
		Width:           20,
		Height:          20,
		Cooldown:        3 * time.Second,
		StartingEnergy:  10,
		StartingIncome:  0,
		BaseTileDefense: 10,
		HomeTileDefense: 100,
		SpawnAttempts:   50,
	}
}

// Join-order color palette.
var playerColors = []string{"#ff00ff", "#00ffff", "#ff1493", "#00ff00", "#ff6400", "#87ceeb"}

// Engine owns the authoritative game state: the flat tile grid and the
// player registry. All mutation goes through its methods, each of which is
// a single synchronous step; invalid input is answered with a Rejected
// result and zero mutation, never a panic or partial write.
type Engine struct {
	settings Settings
	catalog  Catalog
	tiles    []Tile
	players  map[string]*Player
	clock    Clock
	rng      *rand.Rand
	joined   int // total joins ever, drives palette cycling
}

// NewEngine builds a fresh neutral grid. clock and rng may be nil, in
// which case the system clock and a time-seeded source are used.
func NewEngine(s Settings, c Catalog, clock Clock, rng *rand.Rand) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tiles := make([]Tile, s.Width*s.Height)
	for i := range tiles {
		tiles[i].ID = i
		tiles[i].reset(s.BaseTileDefense)
	}
	return &Engine{
		settings: s,
		catalog:  c,
		tiles:    tiles,
		players:  make(map[string]*Player),
		clock:    clock,
		rng:      rng,
	}
}

func (e *Engine) Settings() Settings { return e.settings }
func (e *Engine) Catalog() Catalog   { return e.catalog }
func (e *Engine) Size() int          { return len(e.tiles) }
func (e *Engine) Width() int         { return e.settings.Width }
func (e *Engine) Height() int        { return e.settings.Height }

// GetTile returns the tile at index, or nil if out of range.
func (e *Engine) GetTile(index int) *Tile {
	if index < 0 || index >= len(e.tiles) {
		return nil
	}
	return &e.tiles[index]
}

// Player returns the player record, or nil if unknown.
func (e *Engine) Player(id string) *Player {
	return e.players[id]
}

func (e *Engine) PlayerCount() int { return len(e.players) }

// PlayerIDs returns all player ids in sorted order.
func (e *Engine) PlayerIDs() []string {
	ids := make([]string, 0, len(e.players))
	for id := range e.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BotIDs returns the ids of bot players in sorted order.
func (e *Engine) BotIDs() []string {
	ids := make([]string, 0, len(e.players))
	for id, p := range e.players {
		if p.Bot {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// OwnedTiles returns the indices of every tile owned by the player.
func (e *Engine) OwnedTiles(playerID string) []int {
	var out []int
	for i := range e.tiles {
		if e.tiles[i].Owner == playerID {
			out = append(out, i)
		}
	}
	return out
}

// IsAdjacentOwned reports whether any 4-neighbor of index belongs to the
// player. This is the reachability rule for capture.
func (e *Engine) IsAdjacentOwned(index int, playerID string) bool {
	for _, n := range Neighbors(index, e.settings.Width, e.settings.Height) {
		if e.tiles[n].Owner == playerID {
			return true
		}
	}
	return false
}

// HasEnemyNeighbor reports whether any 4-neighbor of index is owned by
// someone other than the player.
func (e *Engine) HasEnemyNeighbor(index int, playerID string) bool {
	for _, n := range Neighbors(index, e.settings.Width, e.settings.Height) {
		if o := e.tiles[n].Owner; o != "" && o != playerID {
			return true
		}
	}
	return false
}

// FindSpawnPoint samples up to SpawnAttempts random unclaimed tiles and
// keeps the one maximizing the minimum distance to every existing capital
// (maximin placement). With no players yet the first unclaimed sample
// wins. If every sample was claimed, an unconstrained random index is
// returned; the caller accepts the collision.
func (e *Engine) FindSpawnPoint() int {
	best := -1
	maxMin := -1.0
	for i := 0; i < e.settings.SpawnAttempts; i++ {
		cand := e.rng.Intn(len(e.tiles))
		if e.tiles[cand].Owner != "" {
			continue
		}
		if len(e.players) == 0 {
			return cand
		}
		minDist := math.MaxFloat64
		for _, p := range e.players {
			if p.HomeIndex < 0 {
				continue
			}
			if d := Distance(cand, p.HomeIndex, e.settings.Width); d < minDist {
				minDist = d
			}
		}
		if minDist > maxMin {
			maxMin = minDist
			best = cand
		}
	}
	if best == -1 {
		return e.rng.Intn(len(e.tiles))
	}
	return best
}

// AddPlayer creates a player at a computed spawn tile and hardens that
// tile into their capital.
func (e *Engine) AddPlayer(id, username string) (*Player, []any) {
	return e.addPlayer(id, username, false)
}

// AddBot is AddPlayer for bot-controlled players.
func (e *Engine) AddBot(id, username string) (*Player, []any) {
	return e.addPlayer(id, username, true)
}

func (e *Engine) addPlayer(id, username string, bot bool) (*Player, []any) {
	if _, exists := e.players[id]; exists {
		return nil, nil
	}
	name := []rune(username)
	if len(name) > MaxUsernameLen {
		name = name[:MaxUsernameLen]
	}
	if len(name) == 0 {
		name = []rune("Drifter")
	}

	spawn := e.FindSpawnPoint()
	color := playerColors[e.joined%len(playerColors)]
	e.joined++

	p := &Player{
		ID:        id,
		Username:  string(name),
		MP:        e.settings.StartingEnergy,
		MPS:       e.settings.StartingIncome,
		HomeIndex: spawn,
		Color:     color,
		Bot:       bot,
	}
	e.players[id] = p

	tile := &e.tiles[spawn]
	tile.Owner = id
	tile.Color = color
	tile.IsHome = true
	tile.Defense = e.settings.HomeTileDefense
	tile.MaxDefense = e.settings.HomeTileDefense

	events := []any{
		PlayerJoined{PlayerID: id, Index: spawn},
		TileUpdated{Index: spawn},
		SystemChat{Msg: fmt.Sprintf("%s has established a colony.", p.Username), Color: "#fff"},
	}
	return p, events
}

// RemovePlayer deletes the player and resets every tile they owned to the
// neutral default. Used for both voluntary disconnect and capital loss.
func (e *Engine) RemovePlayer(id string) Result {
	if _, ok := e.players[id]; !ok {
		return rejected(ReasonNoPlayer)
	}
	delete(e.players, id)
	var events []any
	for i := range e.tiles {
		if e.tiles[i].Owner == id {
			e.tiles[i].reset(e.settings.BaseTileDefense)
			events = append(events, TileUpdated{Index: i})
		}
	}
	return accepted(events...)
}

// CanPlayerAct reports whether the player exists and their shared
// build/capture cooldown has elapsed.
func (e *Engine) CanPlayerAct(id string) bool {
	p, ok := e.players[id]
	if !ok {
		return false
	}
	return e.clock.Now().Sub(p.LastMove) >= e.settings.Cooldown
}

// SetPlayerCooldown stamps the player's last-move time to now.
func (e *Engine) SetPlayerCooldown(id string) {
	if p, ok := e.players[id]; ok {
		p.LastMove = e.clock.Now()
	}
}

// UpdateTilePlayer is the ownership-transfer primitive: new owner and
// color, defense and capacity back to the base default, unit cleared.
// IsHome is left alone; the capture path decides capital loss.
func (e *Engine) UpdateTilePlayer(index int, ownerID, color string) {
	t := e.GetTile(index)
	if t == nil {
		return
	}
	t.Owner = ownerID
	t.Color = color
	t.Defense = e.settings.BaseTileDefense
	t.MaxDefense = e.settings.BaseTileDefense
	t.Unit = ""
}

// Generate is the manual charge: +1 energy, no cooldown.
func (e *Engine) Generate(id string) Result {
	p, ok := e.players[id]
	if !ok {
		return rejected(ReasonNoPlayer)
	}
	p.MP++
	return accepted(PlayerUpdated{PlayerID: id})
}

// PlaceUnit builds a catalog unit on an owned tile. Military units raise
// the tile's defense and capacity additively; overwriting an existing
// unit does not revert its contribution.
func (e *Engine) PlaceUnit(id string, index int, unitKey string) Result {
	p, ok := e.players[id]
	if !ok {
		return rejected(ReasonNoPlayer)
	}
	if !e.CanPlayerAct(id) {
		return rejected(ReasonCooldown)
	}
	t := e.GetTile(index)
	if t == nil {
		return rejected(ReasonOutOfRange)
	}
	if t.Owner != id {
		return rejected(ReasonNotOwner)
	}
	unit, ok := e.catalog[unitKey]
	if !ok {
		return rejected(ReasonUnknownUnit)
	}
	if p.MP < unit.Cost {
		return rejected(ReasonInsufficient)
	}

	p.MP -= unit.Cost
	e.SetPlayerCooldown(id)
	t.Unit = unitKey
	if unit.Type == UnitMil {
		t.Defense += unit.Val
		t.MaxDefense += unit.Val
	}
	return accepted(TileUpdated{Index: index}, PlayerUpdated{PlayerID: id})
}

// Demolish clears the unit on an owned tile. Military contribution is
// removed from the capacity and current defense is clamped down to it.
// No cooldown, no refund.
func (e *Engine) Demolish(id string, index int) Result {
	if _, ok := e.players[id]; !ok {
		return rejected(ReasonNoPlayer)
	}
	t := e.GetTile(index)
	if t == nil {
		return rejected(ReasonOutOfRange)
	}
	if t.Owner != id {
		return rejected(ReasonNotOwner)
	}
	if t.Unit == "" {
		return rejected(ReasonNoUnit)
	}
	if unit, ok := e.catalog[t.Unit]; ok && unit.Type == UnitMil {
		t.MaxDefense -= unit.Val
		if t.MaxDefense < e.settings.BaseTileDefense {
			t.MaxDefense = e.settings.BaseTileDefense
		}
		if t.Defense > t.MaxDefense {
			t.Defense = t.MaxDefense
		}
	}
	t.Unit = ""
	return accepted(TileUpdated{Index: index})
}

// Capture transfers an adjacent tile to the acting player for an energy
// cost equal to its current defense. Conquered territory always restarts
// at the base defense. Capturing a capital eliminates its owner, and if
// exactly one non-bot player then remains, that player wins.
func (e *Engine) Capture(id string, index int) Result {
	p, ok := e.players[id]
	if !ok {
		return rejected(ReasonNoPlayer)
	}
	if !e.CanPlayerAct(id) {
		return rejected(ReasonCooldown)
	}
	t := e.GetTile(index)
	if t == nil {
		return rejected(ReasonOutOfRange)
	}
	if t.Owner == id {
		return rejected(ReasonOwnTile)
	}
	if !e.IsAdjacentOwned(index, id) {
		return rejected(ReasonNotAdjacent)
	}
	if p.MP < t.Defense {
		return rejected(ReasonInsufficient)
	}

	p.MP -= t.Defense
	e.SetPlayerCooldown(id)

	prevOwner := t.Owner
	wasHome := t.IsHome
	e.UpdateTilePlayer(index, id, p.Color)
	t.IsHome = false // capitals do not transfer

	events := []any{
		TileUpdated{Index: index},
		PlayerUpdated{PlayerID: id},
	}

	if wasHome && prevOwner != "" {
		if victim, ok := e.players[prevOwner]; ok {
			events = append(events,
				SystemChat{
					Msg:   fmt.Sprintf("CAPITAL FALLEN! %s has been eliminated!", victim.Username),
					Color: "#ff0000",
				},
				PlayerEliminated{PlayerID: victim.ID, Username: victim.Username},
			)
			events = append(events, e.RemovePlayer(prevOwner).Events...)
			if winner := e.soleSurvivor(); winner != nil {
				events = append(events, PlayerWon{PlayerID: winner.ID, Username: winner.Username})
			}
		}
	}
	return accepted(events...)
}

// soleSurvivor returns the last remaining non-bot player, or nil if the
// game is still contested.
func (e *Engine) soleSurvivor() *Player {
	var last *Player
	for _, p := range e.players {
		if p.Bot {
			continue
		}
		if last != nil {
			return nil
		}
		last = p
	}
	return last
}
