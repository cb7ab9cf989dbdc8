// Package network is the websocket edge: it upgrades connections, decodes
// envelopes, and forwards typed commands to a room. No game rules live
// here; anything the room rejects simply produces no broadcast.
package network

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"gridfall/protocol"
	"gridfall/room"
)

const (
	readLimit    = 1 << 20
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	outboxSize   = 64
)

// DefaultRoomCode is used when a client connects without picking a room.
const DefaultRoomCode = "LOBBY"

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	manager *room.Manager
}

func NewServer(m *room.Manager) *Server {
	return &Server{manager: m}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/api/rooms", s.roomsHandler)
	return mux
}

func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(s.manager.ListRooms())
	case http.MethodPost:
		code := s.manager.CreateRoom()
		_ = json.NewEncoder(w).Encode(room.RoomInfo{Code: code})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("room"))
	if code == "" {
		code = DefaultRoomCode
	}
	rm := s.manager.GetOrCreateRoom(code)
	if rm == nil {
		http.Error(w, "bad room", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	wc := newWSConn(conn)
	go wc.writePump()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	playerID := ""
	defer func() {
		if playerID != "" {
			rm.Inbox <- room.Leave{PlayerID: playerID}
		}
		_ = wc.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}

		if playerID == "" {
			// Nothing else is accepted until the client joins.
			if env.T != protocol.MsgJoin {
				continue
			}
			join, err := protocol.DecodePayload[protocol.Join](env)
			if err != nil {
				continue
			}
			reply := make(chan room.JoinResult, 1)
			rm.Inbox <- room.Join{Conn: wc, Name: join.Name, Reply: reply}
			playerID = (<-reply).PlayerID
			continue
		}

		s.forward(rm, playerID, env)
	}
}

// forward maps a decoded envelope onto a room command. Unknown or
// malformed messages are dropped.
func (s *Server) forward(rm *room.Room, playerID string, env protocol.Envelope) {
	switch env.T {
	case protocol.MsgChat:
		if p, err := protocol.DecodePayload[protocol.Chat](env); err == nil {
			rm.Inbox <- room.Chat{PlayerID: playerID, Msg: p.Msg}
		}
	case protocol.MsgGenerate:
		rm.Inbox <- room.Generate{PlayerID: playerID}
	case protocol.MsgPlace:
		if p, err := protocol.DecodePayload[protocol.PlaceUnit](env); err == nil {
			rm.Inbox <- room.PlaceUnit{PlayerID: playerID, TileIndex: p.TileIndex, UnitType: p.UnitType}
		}
	case protocol.MsgDemolish:
		if p, err := protocol.DecodePayload[protocol.Demolish](env); err == nil {
			rm.Inbox <- room.Demolish{PlayerID: playerID, TileIndex: p.TileIndex}
		}
	case protocol.MsgCapture:
		if p, err := protocol.DecodePayload[protocol.Capture](env); err == nil {
			rm.Inbox <- room.Capture{PlayerID: playerID, TileIndex: p.TileIndex}
		}
	}
}
