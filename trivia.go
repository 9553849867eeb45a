// Quizroyale trivia game
//
// Clients connect over a websocket, create or join a room by short code,
// and play rounds of ranked-answer trivia. The host advances the shared
// phases (lobby → team formation → question → reveal → round results →
// final results); players submit free-text answers that are scored when
// the host reveals entries on the board.
//
// Features:
// - Rooms identified by random 6-char codes (A-Z, 0-9), collision-checked
// - First player in a room is host; host migrates on disconnect
// - Team modes (two fixed slots) and free-for-all (everyone for themself)
// - Per-round, per-player power-ups, tracked server-side
// - Players identified by cookie (playerID)
// - Rooms auto-reaped after configurable idle timeout
// - In-browser QR button to share the room join link, backed by go-qrcode

package main

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const maxNameLength = 20

// Messages coming from clients
type ClientMessage struct {
	Type        string         `json:"type"`                   // "create_room", "join_room", "start_game", ...
	PlayerName  string         `json:"player_name,omitempty"`  // create_room / join_room
	RoomCode    string         `json:"room_code,omitempty"`    // join_room
	Mode        string         `json:"mode,omitempty"`         // start_game
	Settings    map[string]any `json:"settings,omitempty"`     // start_game
	Answer      string         `json:"answer,omitempty"`       // submit_answer
	AnswerIndex *int           `json:"answer_index,omitempty"` // reveal_answer
	PowerUpID   string         `json:"power_up_id,omitempty"`  // use_power_up
}

// Messages sent to clients
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomMessage struct {
	Type string       `json:"type"` // "room_created", "room_joined", "room_updated"
	Room RoomSnapshot `json:"room"`
}

type GameMessage struct {
	Type string       `json:"type"` // "game_started", "round_started", "game_state", "answer_revealed", "game_ended"
	Game GameSnapshot `json:"game"`
}

type PowerUpMessage struct {
	Type      string `json:"type"` // "power_up_used"
	PlayerID  string `json:"player_id"`
	PowerUpID string `json:"power_up_id"`
	Effect    string `json:"effect"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string

	// guarded by the gateway mutex
	room   string
	closed bool
}

// Gateway is the transport layer in front of the registry and rooms: it
// resolves a connection to its identity cookie, dispatches inbound events
// to registry/room operations, and fans results out to every connection in
// the room. Game rules live entirely behind the operations it calls.
type Gateway struct {
	cfg *Config
	reg *Registry

	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

func newGateway(cfg *Config, reg *Registry) *Gateway {
	return &Gateway{
		cfg:   cfg,
		reg:   reg,
		rooms: make(map[string]map[*Client]bool),
	}
}

// attach subscribes a client to a room's fanout set. A client can only be
// in one room at a time, so any previous subscription is dropped first.
func (gw *Gateway) attach(code string, c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if c.room != "" && c.room != code {
		gw.detachLocked(c.room, c)
	}

	if gw.rooms[code] == nil {
		gw.rooms[code] = make(map[*Client]bool)
	}
	gw.rooms[code][c] = true
	c.room = code
}

func (gw *Gateway) detach(code string, c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.detachLocked(code, c)
}

func (gw *Gateway) detachLocked(code string, c *Client) {
	if conns := gw.rooms[code]; conns != nil {
		delete(conns, c)
		if len(conns) == 0 {
			delete(gw.rooms, code)
		}
	}
	if c.room == code {
		c.room = ""
	}
}

func (gw *Gateway) closeClientLocked(c *Client) {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (gw *Gateway) closeClient(c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.closeClientLocked(c)
}

func (gw *Gateway) sendTo(c *Client, msg any) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- msg:
	default:
		// Client is slow/full - drop them.
		gw.closeClientLocked(c)
	}
}

func (gw *Gateway) broadcast(code string, msg any) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	for c := range gw.rooms[code] {
		if c.closed {
			delete(gw.rooms[code], c)
			continue
		}
		select {
		case c.send <- msg:
		default:
			gw.closeClientLocked(c)
			delete(gw.rooms[code], c)
		}
	}
}

func (gw *Gateway) sendError(c *Client, err error) {
	gw.sendTo(c, ErrorMessage{Type: "error", Code: errorCode(err), Message: err.Error()})
}

func (gw *Gateway) sendErrorCode(c *Client, code, message string) {
	gw.sendTo(c, ErrorMessage{Type: "error", Code: code, Message: message})
}

func (gw *Gateway) handleMessage(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "create_room":
		name := strings.TrimSpace(msg.PlayerName)
		if name == "" || len(name) > maxNameLength {
			gw.sendErrorCode(c, "invalid_name", "Player name must be 1-20 characters.")
			return
		}

		snap, err := gw.reg.CreateRoom(name, c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.attach(snap.Code, c)
		gw.sendTo(c, RoomMessage{Type: "room_created", Room: snap})

	case "join_room":
		name := strings.TrimSpace(msg.PlayerName)
		if name == "" || len(name) > maxNameLength {
			gw.sendErrorCode(c, "invalid_name", "Player name must be 1-20 characters.")
			return
		}

		snap, err := gw.reg.JoinRoom(msg.RoomCode, name, c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.attach(snap.Code, c)
		gw.sendTo(c, RoomMessage{Type: "room_joined", Room: snap})
		gw.broadcast(snap.Code, RoomMessage{Type: "room_updated", Room: snap})

	case "start_game":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		snap, err := room.StartGame(c.playerID, msg.Mode, msg.Settings)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		logf(gw.cfg, "GAMES: Game started in room %s (%s)", snap.Code, snap.Mode)
		gw.broadcast(snap.Code, GameMessage{Type: "game_started", Game: snap})

	case "start_round":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		snap, err := room.StartRound(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.broadcast(snap.Code, GameMessage{Type: "round_started", Game: snap})

	case "submit_answer":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		snap, err := room.SubmitAnswer(c.playerID, msg.Answer)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.broadcast(snap.Code, GameMessage{Type: "game_state", Game: snap})

	case "reveal_answer":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}
		if msg.AnswerIndex == nil {
			gw.sendError(c, ErrInvalidIndex)
			return
		}

		snap, err := room.RevealAnswer(c.playerID, *msg.AnswerIndex)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.broadcast(snap.Code, GameMessage{Type: "answer_revealed", Game: snap})

	case "use_power_up":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		effect, err := room.UsePowerUp(c.playerID, msg.PowerUpID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		logf(gw.cfg, "GAMES: Power-up %q used in room %s", msg.PowerUpID, room.Code())
		gw.broadcast(room.Code(), PowerUpMessage{
			Type:      "power_up_used",
			PlayerID:  c.playerID,
			PowerUpID: msg.PowerUpID,
			Effect:    effect,
		})

	case "next_round":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		snap, err := room.NextRound(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		if snap.Phase == PhaseFinalResults {
			logf(gw.cfg, "GAMES: Game ended in room %s", snap.Code)
			gw.broadcast(snap.Code, GameMessage{Type: "game_ended", Game: snap})
		} else {
			gw.broadcast(snap.Code, GameMessage{Type: "round_started", Game: snap})
		}

	case "force_advance":
		// Collaborator-driven timeout hook; host-gated at the transport.
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}
		if room.Snapshot().Host != c.playerID {
			gw.sendError(c, ErrNotHost)
			return
		}

		snap := room.ForceAdvance()
		gw.broadcast(snap.Code, GameMessage{Type: "game_state", Game: snap})

	case "get_state":
		room, err := gw.reg.RoomFor(c.playerID)
		if err != nil {
			gw.sendError(c, err)
			return
		}

		gw.sendTo(c, GameMessage{Type: "game_state", Game: room.Game()})

	case "leave_room":
		gw.dropPlayer(c)

	default:
		// ignore unknown types
	}
}

// dropPlayer removes the connection's player from its room and notifies
// the remaining players, unless the departure deleted the room.
func (gw *Gateway) dropPlayer(c *Client) {
	outcome := gw.reg.RemovePlayer(c.playerID)
	if outcome.RoomCode == "" {
		return
	}

	gw.detach(outcome.RoomCode, c)

	if outcome.RoomDeleted {
		return
	}

	gw.broadcast(outcome.RoomCode, RoomMessage{Type: "room_updated", Room: outcome.Room})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "quizroyale_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func (gw *Gateway) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		c := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		go c.writePump()
		gw.readPump(c)
	}
}

func (gw *Gateway) readPump(c *Client) {
	defer func() {
		gw.dropPlayer(c)
		gw.closeClient(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		gw.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for a room's join URL using
// go-qrcode.
func qrHandler(cfg *Config, path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(strings.TrimSpace(ps.ByName("code")))
		if code == "" {
			http.Error(w, "missing room code", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + path + "?code=" + code

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func serveTriviaClient(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		data, err := assets.ReadFile("assets/trivia/index.html")
		if err != nil {
			http.Error(w, "client not found", http.StatusInternalServerError)
			return
		}

		_, err = w.Write(data)
		if err != nil {
			errs <- err

			return
		}
	}
}

// registerTriviaGame sets up routes so that:
//   - $path           → HTML client (joins via ?code= or creates a room)
//   - $path/ws        → WebSocket carrying all game events
//   - $path/qr/:code  → PNG QR code for a room's join URL
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router, reg *Registry, errs chan<- error) {
	gw := newGateway(cfg, reg)

	mux.GET(cfg.prefix+path, serveTriviaClient(cfg, errs))
	mux.GET(cfg.prefix+path+"/ws", gw.serveWS())
	mux.GET(cfg.prefix+path+"/qr/:code", qrHandler(cfg, path))
}
