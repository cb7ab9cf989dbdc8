package room

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"gridfall/ai"
	"gridfall/game"
	"gridfall/protocol"
)

var botNames = []string{"VEGA", "NYX", "ORION", "LYRA", "CYGNUS", "ALTAIR"}

// Room is one match: a single goroutine owning the engine, fed typed
// commands through Inbox. The economy ticker and the bot pass run inside
// the same loop, so every mutation of the grid is a non-interleaved step.
type Room struct {
	Inbox chan any

	engine      *game.Engine
	bots        *ai.Engine
	economyTick time.Duration
	clients     map[string]Conn
	clientCount atomic.Int32
	nextID      int
	botSeq      int
	quit        chan struct{}

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when the last human leaves
}

func New(settings game.Settings, catalog game.Catalog, economyTick, botThrottle time.Duration) *Room {
	engine := game.NewEngine(settings, catalog, nil, nil)
	return &Room{
		Inbox:       make(chan any, 256),
		engine:      engine,
		bots:        ai.New(engine, nil, nil, botThrottle),
		economyTick: economyTick,
		clients:     make(map[string]Conn),
		nextID:      1,
		quit:        make(chan struct{}),
	}
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return int(r.clientCount.Load())
}

func (r *Room) Run() {
	ticker := time.NewTicker(r.economyTick)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.dispatch(r.engine.EconomyTick())
			r.dispatch(r.bots.RunPass())
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		playerID := fmt.Sprintf("p%d", r.nextID)
		r.nextID++
		r.clients[playerID] = c.Conn
		r.clientCount.Store(int32(len(r.clients)))
		_, events := r.engine.AddPlayer(playerID, c.Name)
		r.sendTo(playerID, protocol.MsgInit, r.initFor(playerID))
		r.dispatch(events)
		c.Reply <- JoinResult{PlayerID: playerID}
	case AddBot:
		name := c.Name
		if name == "" {
			name = botNames[r.botSeq%len(botNames)]
		}
		r.botSeq++
		botID := "bot-" + uuid.NewString()
		_, events := r.engine.AddBot(botID, name)
		r.dispatch(events)
	case Chat:
		r.handleChat(c.PlayerID, c.Msg)
	case Generate:
		r.dispatch(r.engine.Generate(c.PlayerID).Events)
	case PlaceUnit:
		r.dispatch(r.engine.PlaceUnit(c.PlayerID, c.TileIndex, c.UnitType).Events)
	case Demolish:
		r.dispatch(r.engine.Demolish(c.PlayerID, c.TileIndex).Events)
	case Capture:
		r.dispatch(r.engine.Capture(c.PlayerID, c.TileIndex).Events)
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

func (r *Room) handleChat(playerID, msg string) {
	p := r.engine.Player(playerID)
	msg = strings.TrimSpace(msg)
	if p == nil || msg == "" {
		return
	}
	runes := []rune(msg)
	if len(runes) > protocol.MaxChatLen {
		runes = runes[:protocol.MaxChatLen]
	}
	r.broadcast(protocol.MsgChatRecv, protocol.ChatMessage{
		User:  p.Username,
		Msg:   string(runes),
		Color: p.Color,
	})
}

func (r *Room) handleLeave(playerID string) {
	r.dispatch(r.engine.RemovePlayer(playerID).Events)
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
		delete(r.clients, playerID)
		r.clientCount.Store(int32(len(r.clients)))
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

// dispatch translates engine events into outbound traffic.
func (r *Room) dispatch(events []any) {
	for _, ev := range events {
		switch e := ev.(type) {
		case game.TileUpdated:
			r.broadcast(protocol.MsgTile, r.tileSnapshot(e.Index))
		case game.PlayerUpdated:
			if p := r.engine.Player(e.PlayerID); p != nil && !p.Bot {
				r.sendTo(e.PlayerID, protocol.MsgSelf, playerSnapshot(p))
			}
		case game.SystemChat:
			r.broadcast(protocol.MsgChatRecv, protocol.ChatMessage{User: "SYSTEM", Msg: e.Msg, Color: e.Color})
		case game.PlayerEliminated:
			r.sendTo(e.PlayerID, protocol.MsgGameOver, protocol.GameOver{Reason: "capital_fallen"})
			if c, ok := r.clients[e.PlayerID]; ok {
				_ = c.Close()
				delete(r.clients, e.PlayerID)
				r.clientCount.Store(int32(len(r.clients)))
			}
		case game.PlayerWon:
			r.sendTo(e.PlayerID, protocol.MsgGameWon, protocol.GameWon{})
		case game.PlayerJoined:
			// init + home tile broadcast already cover the join
		}
	}
}

func (r *Room) broadcast(msgType string, payload any) {
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		return
	}
	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.evict(id)
	}
}

func (r *Room) sendTo(playerID, msgType string, payload any) {
	c, ok := r.clients[playerID]
	if !ok {
		return
	}
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		return
	}
	if err := c.Send(b); err != nil {
		r.evict(playerID)
	}
}

// evict drops a dead connection and tears its player down.
func (r *Room) evict(playerID string) {
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
		delete(r.clients, playerID)
		r.clientCount.Store(int32(len(r.clients)))
	}
	r.dispatch(r.engine.RemovePlayer(playerID).Events)
}

func (r *Room) initFor(playerID string) protocol.Init {
	eng := r.engine
	snap := protocol.Init{
		PlayerID: playerID,
		Map:      make([]protocol.TileSnapshot, eng.Size()),
		Shop:     make(map[string]protocol.UnitInfo, len(eng.Catalog())),
	}
	for i := 0; i < eng.Size(); i++ {
		snap.Map[i] = r.tileSnapshot(i)
	}
	if p := eng.Player(playerID); p != nil {
		snap.You = playerSnapshot(p)
	}
	for key, u := range eng.Catalog() {
		snap.Shop[key] = protocol.UnitInfo{
			Name:        u.Name,
			Description: u.Description,
			Type:        u.Type,
			Cost:        u.Cost,
			Val:         u.Val,
			Symbol:      u.Symbol,
			Upgrade:     u.Upgrade,
		}
	}
	return snap
}

func (r *Room) tileSnapshot(index int) protocol.TileSnapshot {
	t := r.engine.GetTile(index)
	if t == nil {
		return protocol.TileSnapshot{ID: index}
	}
	return protocol.TileSnapshot{
		ID:         t.ID,
		Owner:      t.Owner,
		Defense:    t.Defense,
		MaxDefense: t.MaxDefense,
		Unit:       t.Unit,
		IsHome:     t.IsHome,
		Color:      t.Color,
	}
}

func playerSnapshot(p *game.Player) protocol.PlayerSnapshot {
	return protocol.PlayerSnapshot{
		ID:        p.ID,
		Username:  p.Username,
		MP:        p.MP,
		MPS:       p.MPS,
		HomeIndex: p.HomeIndex,
		Color:     p.Color,
	}
}
