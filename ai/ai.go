// Package ai drives bot players over the same action surface a human
// session uses. Bots cannot bypass cooldowns or touch state directly;
// they only win by being fast, rule-following callers of capture, build
// and generate.
package ai

import (
	"math"
	"math/rand"
	"time"

	"gridfall/game"
)

const (
	captureMargin    = 1.05 // required mp headroom over a target's defense
	buildThreshold   = 50   // minimum mp before considering any build
	surplusThreshold = 150  // mp above which more production is stacked
	lowEnergy        = 30   // below this, scrape for cheap captures or generate
	distWeight       = 4.0  // weight of capital distance in target scoring
	jitterSpan       = 20.0 // random spread added to scores
)

// Engine evaluates one decision per eligible bot per pass. Each bot is
// throttled independently so bots act slower than the cooldown alone
// would allow.
type Engine struct {
	game     *game.Engine
	clock    game.Clock
	rng      *rand.Rand
	throttle time.Duration
	lastAct  map[string]time.Time
}

func New(g *game.Engine, clock game.Clock, rng *rand.Rand, throttle time.Duration) *Engine {
	if clock == nil {
		clock = game.SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		game:     g,
		clock:    clock,
		rng:      rng,
		throttle: throttle,
		lastAct:  make(map[string]time.Time),
	}
}

// RunPass gives every bot one decision opportunity and returns the game
// events produced by accepted actions. Called by the room loop right
// after each economy tick.
func (a *Engine) RunPass() []any {
	var events []any
	now := a.clock.Now()
	for _, botID := range a.game.BotIDs() {
		if now.Sub(a.lastAct[botID]) < a.throttle {
			continue
		}
		evs, acted := a.decide(botID)
		if acted {
			a.lastAct[botID] = now
			events = append(events, evs...)
		}
	}
	return events
}

// decide runs the priority ladder for one bot: lethal capture, expansion
// capture, production build, defense build, emergency cheap capture,
// manual generate.
func (a *Engine) decide(botID string) ([]any, bool) {
	g := a.game
	bot := g.Player(botID)
	if bot == nil || !g.CanPlayerAct(botID) {
		return nil, false
	}

	enemy := a.nearestEnemy(bot)
	if enemy == nil {
		return nil, false
	}

	// Lethal: take the enemy capital the moment it is reachable and paid for.
	if capital := g.GetTile(enemy.HomeIndex); capital != nil &&
		g.IsAdjacentOwned(enemy.HomeIndex, botID) && bot.MP >= capital.Defense {
		return a.execCapture(botID, enemy.HomeIndex)
	}

	targets := a.captureTargets(botID, enemy)
	if best, ok := a.bestTarget(targets); ok {
		if float64(bot.MP) >= float64(best.cost)*captureMargin {
			return a.execCapture(botID, best.index)
		}
	}

	if bot.MP >= buildThreshold {
		if !a.hasProduction(botID) || bot.MP >= surplusThreshold {
			if key, ok := a.bestAffordable(game.UnitProd, bot.MP); ok {
				if idx, ok := a.buildSite(bot); ok {
					return a.execBuild(botID, idx, key)
				}
			}
		}
		if key, ok := a.bestAffordable(game.UnitMil, bot.MP); ok {
			if idx, ok := a.buildSite(bot); ok {
				return a.execBuild(botID, idx, key)
			}
		}
	}

	// Low on energy: grab anything affordable rather than idling.
	if bot.MP < lowEnergy {
		if cheap, ok := a.cheapestAffordable(targets, bot.MP); ok {
			return a.execCapture(botID, cheap.index)
		}
	}

	res := g.Generate(botID)
	return res.Events, res.Accepted
}

func (a *Engine) execCapture(botID string, index int) ([]any, bool) {
	res := a.game.Capture(botID, index)
	return res.Events, res.Accepted
}

func (a *Engine) execBuild(botID string, index int, unitKey string) ([]any, bool) {
	res := a.game.PlaceUnit(botID, index, unitKey)
	return res.Events, res.Accepted
}

// nearestEnemy picks the rival whose capital is closest to the bot's.
func (a *Engine) nearestEnemy(bot *game.Player) *game.Player {
	var nearest *game.Player
	minDist := math.MaxFloat64
	for _, id := range a.game.PlayerIDs() {
		p := a.game.Player(id)
		if p == nil || p.ID == bot.ID {
			continue
		}
		d := game.Distance(bot.HomeIndex, p.HomeIndex, a.game.Width())
		if d < minDist {
			minDist = d
			nearest = p
		}
	}
	return nearest
}

type target struct {
	index int
	cost  int
	score float64
}

// captureTargets enumerates every tile bordering bot territory that is
// not bot-owned and not a capital, scored by capture cost plus distance
// to the enemy capital, with jitter so play is not deterministic.
func (a *Engine) captureTargets(botID string, enemy *game.Player) []target {
	g := a.game
	seen := make(map[int]bool)
	var out []target
	for _, owned := range g.OwnedTiles(botID) {
		for _, n := range game.Neighbors(owned, g.Width(), g.Height()) {
			if seen[n] {
				continue
			}
			seen[n] = true
			t := g.GetTile(n)
			if t.Owner == botID || t.IsHome {
				continue
			}
			dist := game.Distance(n, enemy.HomeIndex, g.Width())
			jitter := (a.rng.Float64() - 0.5) * jitterSpan
			out = append(out, target{
				index: n,
				cost:  t.Defense,
				score: float64(t.Defense) + distWeight*dist + jitter,
			})
		}
	}
	return out
}

func (a *Engine) bestTarget(targets []target) (target, bool) {
	if len(targets) == 0 {
		return target{}, false
	}
	best := targets[0]
	for _, t := range targets[1:] {
		if t.score < best.score {
			best = t
		}
	}
	return best, true
}

func (a *Engine) cheapestAffordable(targets []target, mp int) (target, bool) {
	found := false
	var cheap target
	for _, t := range targets {
		if t.cost > mp {
			continue
		}
		if !found || t.cost < cheap.cost {
			cheap = t
			found = true
		}
	}
	return cheap, found
}

func (a *Engine) hasProduction(botID string) bool {
	g := a.game
	for _, idx := range g.OwnedTiles(botID) {
		t := g.GetTile(idx)
		if t.Unit == "" {
			continue
		}
		if unit, ok := g.Catalog()[t.Unit]; ok && unit.Type == game.UnitProd {
			return true
		}
	}
	return false
}

// bestAffordable picks the highest-tier unit of the class the bot can
// pay for right now, falling back through cheaper tiers.
func (a *Engine) bestAffordable(class string, mp int) (string, bool) {
	for _, key := range a.game.Catalog().KeysByCost(class) {
		if a.game.Catalog()[key].Cost <= mp {
			return key, true
		}
	}
	return "", false
}

// buildSite picks an owned, unit-less, non-capital tile, preferring one
// that borders enemy territory. The capital itself is the last resort.
func (a *Engine) buildSite(bot *game.Player) (int, bool) {
	g := a.game
	candidate := -1
	for _, idx := range g.OwnedTiles(bot.ID) {
		t := g.GetTile(idx)
		if t.Unit != "" || t.IsHome {
			continue
		}
		candidate = idx
		if g.HasEnemyNeighbor(idx, bot.ID) {
			return idx, true
		}
	}
	if candidate != -1 {
		return candidate, true
	}
	if home := g.GetTile(bot.HomeIndex); home != nil && home.Unit == "" && home.Owner == bot.ID {
		return bot.HomeIndex, true
	}
	return -1, false
}
