package room

import (
	"testing"
	"time"

	"gridfall/game"
	"gridfall/protocol"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

// newTestRoom uses hour-long tick intervals so nothing fires on its own
// during a test; every mutation is driven through the Inbox.
func newTestRoom() *Room {
	return New(game.DefaultSettings(), game.DefaultCatalog(), time.Hour, time.Hour)
}

func join(t *testing.T, r *Room, fc *fakeConn, name string) string {
	t.Helper()
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: name, Reply: reply}
	select {
	case res := <-reply:
		if res.PlayerID == "" {
			t.Fatalf("expected player id, got empty")
		}
		return res.PlayerID
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for join reply")
		return ""
	}
}

// waitFor scans a connection's outbound messages until one of the given
// type arrives and decodes its payload into out.
func waitFor[T any](t *testing.T, fc *fakeConn, msgType string) T {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T != msgType {
				continue
			}
			out, err := protocol.DecodePayload[T](env)
			if err != nil {
				t.Fatalf("decode %s payload: %v", msgType, err)
			}
			return out
		case <-timeout:
			t.Fatalf("timed out waiting for %q", msgType)
			panic("unreachable")
		}
	}
}

func TestRoomJoinReceivesInit(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	playerID := join(t, r, fc, "alice")

	init := waitFor[protocol.Init](t, fc, protocol.MsgInit)
	if init.PlayerID != playerID {
		t.Fatalf("init player id = %q, want %q", init.PlayerID, playerID)
	}
	if len(init.Map) != 400 {
		t.Fatalf("init map has %d tiles, want 400", len(init.Map))
	}
	if len(init.Shop) != 5 {
		t.Fatalf("init shop has %d units, want 5", len(init.Shop))
	}
	if init.You.MP != 10 {
		t.Fatalf("starting mp = %d, want 10", init.You.MP)
	}
	home := init.Map[init.You.HomeIndex]
	if home.Owner != playerID || !home.IsHome {
		t.Fatalf("home tile not set up in init snapshot: %+v", home)
	}
}

func TestRoomGeneratePushesSelf(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	playerID := join(t, r, fc, "alice")
	waitFor[protocol.Init](t, fc, protocol.MsgInit)

	r.Inbox <- Generate{PlayerID: playerID}
	self := waitFor[protocol.PlayerSnapshot](t, fc, protocol.MsgSelf)
	if self.MP != 11 {
		t.Fatalf("mp after generate = %d, want 11", self.MP)
	}
}

func TestRoomChatRelayedToAll(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc1 := &fakeConn{sendCh: make(chan []byte, 64)}
	fc2 := &fakeConn{sendCh: make(chan []byte, 64)}
	p1 := join(t, r, fc1, "alice")
	join(t, r, fc2, "bob")

	r.Inbox <- Chat{PlayerID: p1, Msg: "  hello grid  "}

	for _, fc := range []*fakeConn{fc1, fc2} {
		for {
			msg := waitFor[protocol.ChatMessage](t, fc, protocol.MsgChatRecv)
			if msg.User == "SYSTEM" {
				continue // join announcements
			}
			if msg.User != "alice" || msg.Msg != "hello grid" {
				t.Fatalf("chat = %+v, want alice saying %q", msg, "hello grid")
			}
			break
		}
	}
}

func TestRoomChatDropsEmpty(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	p1 := join(t, r, fc, "alice")
	waitFor[protocol.Init](t, fc, protocol.MsgInit)

	r.Inbox <- Chat{PlayerID: p1, Msg: "   "}
	r.Inbox <- Generate{PlayerID: p1}

	// The self push from Generate must be the next non-system traffic;
	// a blank chat line never goes out.
	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			switch env.T {
			case protocol.MsgSelf:
				return
			case protocol.MsgChatRecv:
				msg, _ := protocol.DecodePayload[protocol.ChatMessage](env)
				if msg.User != "SYSTEM" {
					t.Fatalf("blank chat was relayed: %+v", msg)
				}
			}
		case <-timeout:
			t.Fatalf("timed out waiting for self push")
		}
	}
}

func TestRoomLeaveResetsTerritory(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc1 := &fakeConn{sendCh: make(chan []byte, 64)}
	fc2 := &fakeConn{sendCh: make(chan []byte, 256)}
	p1 := join(t, r, fc1, "alice")
	init1 := waitFor[protocol.Init](t, fc1, protocol.MsgInit)
	join(t, r, fc2, "bob")
	waitFor[protocol.Init](t, fc2, protocol.MsgInit)

	r.Inbox <- Leave{PlayerID: p1}

	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc2.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil || env.T != protocol.MsgTile {
				continue
			}
			tile, err := protocol.DecodePayload[protocol.TileSnapshot](env)
			if err != nil {
				t.Fatalf("decode tile: %v", err)
			}
			if tile.ID != init1.You.HomeIndex {
				continue
			}
			if tile.Owner != "" || tile.IsHome {
				t.Fatalf("left player's home not reset: %+v", tile)
			}
			return
		case <-timeout:
			t.Fatalf("timed out waiting for home tile reset broadcast")
		}
	}
}

func TestRoomAddBotAnnounces(t *testing.T) {
	r := newTestRoom()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	join(t, r, fc, "alice")
	waitFor[protocol.Init](t, fc, protocol.MsgInit)

	r.Inbox <- AddBot{Name: "VEGA"}

	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil || env.T != protocol.MsgChatRecv {
				continue
			}
			msg, err := protocol.DecodePayload[protocol.ChatMessage](env)
			if err != nil {
				t.Fatalf("decode chat: %v", err)
			}
			if msg.User == "SYSTEM" && msg.Msg == "VEGA has established a colony." {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for bot join announcement")
		}
	}
}

func TestManagerCreateAndList(t *testing.T) {
	m := NewManager(game.DefaultSettings(), game.DefaultCatalog(), time.Hour, time.Hour, 0)
	code := m.CreateRoom()
	if len(code) != 6 {
		t.Fatalf("room code %q, want 6 chars", code)
	}
	rooms := m.ListRooms()
	if len(rooms) != 1 || rooms[0].Code != code {
		t.Fatalf("ListRooms = %+v", rooms)
	}
	if m.GetOrCreateRoom(code) != m.GetOrCreateRoom(code) {
		t.Fatalf("GetOrCreateRoom not idempotent for %q", code)
	}
}

func TestManagerRemovesEmptyRoom(t *testing.T) {
	m := NewManager(game.DefaultSettings(), game.DefaultCatalog(), time.Hour, time.Hour, 0)
	code := m.CreateRoom()
	r := m.GetOrCreateRoom(code)

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	p1 := join(t, r, fc, "alice")
	waitFor[protocol.Init](t, fc, protocol.MsgInit)

	r.Inbox <- Leave{PlayerID: p1}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(m.ListRooms()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("empty room was not removed")
}
