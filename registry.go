package main

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 10000
)

// RemovalOutcome reports what RemovePlayer did. When the departure emptied
// the room, RoomDeleted is set and Room is zero; otherwise Room holds the
// updated snapshot.
type RemovalOutcome struct {
	RoomCode    string
	Removed     bool
	RoomDeleted bool
	Room        RoomSnapshot
}

// Registry owns the mapping from room code to room and from connection
// identity to room code. It is the single source of truth for which room a
// player is in. reg.mu guards only the two maps; room state is guarded by
// each room's own lock, always acquired after reg.mu.
type Registry struct {
	mu         sync.Mutex
	cfg        *Config
	catalog    *Catalog
	rooms      map[string]*Room
	identities map[string]string
}

func newRegistry(cfg *Config, catalog *Catalog) *Registry {
	reg := &Registry{
		cfg:        cfg,
		catalog:    catalog,
		rooms:      make(map[string]*Room),
		identities: make(map[string]string),
	}

	if cfg.sessionTimeout > 0 {
		go reg.reaperLoop()
	}

	return reg
}

// newRoomCodeLocked generates a room code by rejection sampling against
// live codes. Attempts are capped so exhaustion of the code space surfaces
// as an error instead of an infinite loop.
func (reg *Registry) newRoomCodeLocked() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		buf := make([]byte, codeLength)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		out := make([]byte, codeLength)
		for i := range out {
			out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
		}
		code := string(out)

		if _, exists := reg.rooms[code]; !exists {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

// CreateRoom makes a new room with the caller as host and sole player. An
// identity already in some other room is moved out of it first, keeping the
// one-room-per-player invariant.
func (reg *Registry) CreateRoom(hostName, identity string) (RoomSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.removeLocked(identity)

	code, err := reg.newRoomCodeLocked()
	if err != nil {
		return RoomSnapshot{}, err
	}

	room := newRoom(code, hostName, identity, reg.cfg, reg.catalog.Random)
	reg.rooms[code] = room
	reg.identities[identity] = code

	logf(reg.cfg, "ROOMS: %q created room %s", hostName, code)

	return room.Snapshot(), nil
}

// Resolve looks up the room code a connection identity currently belongs
// to.
func (reg *Registry) Resolve(identity string) (string, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, ok := reg.identities[identity]

	return code, ok
}

// Room looks up a live room by code. Codes are case-insensitive on the way
// in; the registry stores them uppercased.
func (reg *Registry) Room(code string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[strings.ToUpper(strings.TrimSpace(code))]

	return room, ok
}

// RoomFor resolves an identity straight to its room.
func (reg *Registry) RoomFor(identity string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, ok := reg.identities[identity]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// JoinRoom adds an identity to the room with the given code. An identity
// already in some other room is moved out of it once the join succeeds,
// keeping the one-room-per-player invariant; a rejected join leaves the
// existing membership untouched.
func (reg *Registry) JoinRoom(code, name, identity string) (RoomSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}

	snap, err := room.Join(name, identity)
	if err != nil {
		return RoomSnapshot{}, err
	}

	if prev, ok := reg.identities[identity]; ok && prev != room.Code() {
		reg.removeLocked(identity)
	}

	reg.identities[identity] = room.Code()

	logf(reg.cfg, "ROOMS: %q joined room %s", name, room.Code())

	return snap, nil
}

// RemovePlayer drops an identity from its room, wherever it is. Removing an
// identity that is not in any room is a no-op, not an error, so disconnect
// and explicit leave can race safely.
func (reg *Registry) RemovePlayer(identity string) RemovalOutcome {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return reg.removeLocked(identity)
}

func (reg *Registry) removeLocked(identity string) RemovalOutcome {
	code, ok := reg.identities[identity]
	if !ok {
		return RemovalOutcome{}
	}
	delete(reg.identities, identity)

	room, ok := reg.rooms[code]
	if !ok {
		return RemovalOutcome{RoomCode: code}
	}

	removed, empty := room.removePlayer(identity)
	if empty {
		// No orphan rooms: deletion is synchronous with the departure
		// that emptied the room.
		delete(reg.rooms, code)

		logf(reg.cfg, "ROOMS: Room %s deleted (empty)", code)

		return RemovalOutcome{RoomCode: code, Removed: removed, RoomDeleted: true}
	}

	logf(reg.cfg, "ROOMS: Player left room %s", code)

	return RemovalOutcome{RoomCode: code, Removed: removed, Room: room.Snapshot()}
}

// Stats reports live room and player counts for the API layer.
func (reg *Registry) Stats() (rooms, players int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rooms), len(reg.identities)
}

// reaperLoop periodically tears down rooms idle longer than the configured
// session timeout.
func (reg *Registry) reaperLoop() {
	ticker := time.NewTicker(reg.cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-reg.cfg.sessionTimeout)

		reg.mu.Lock()
		for code, room := range reg.rooms {
			if room.LastActive().Before(cutoff) {
				delete(reg.rooms, code)
				for id, c := range reg.identities {
					if c == code {
						delete(reg.identities, id)
					}
				}

				logf(reg.cfg, "ROOMS: Room %s reaped after idle timeout", code)
			}
		}
		reg.mu.Unlock()
	}
}
