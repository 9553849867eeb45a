package main

import (
	"errors"
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	// sessionTimeout stays zero so no reaper goroutine runs under test.
	return newRegistry(testConfig(), newCatalog())
}

func TestCreateRoomCodes(t *testing.T) {
	reg := testRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		snap, err := reg.CreateRoom("host", "identity")
		if err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}

		if len(snap.Code) != codeLength {
			t.Fatalf("code %q has length %d, want %d", snap.Code, len(snap.Code), codeLength)
		}
		for _, r := range snap.Code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q, outside the alphabet", snap.Code, r)
			}
		}
		if seen[snap.Code] {
			t.Fatalf("code %q issued twice", snap.Code)
		}
		seen[snap.Code] = true
	}
}

func TestCreateRoomReplacesMembership(t *testing.T) {
	reg := testRegistry(t)

	first, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	second, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("second CreateRoom failed: %v", err)
	}

	// Sole player left the first room, so it must be gone.
	if _, ok := reg.Room(first.Code); ok {
		t.Errorf("room %s survived its only player moving out", first.Code)
	}

	code, ok := reg.Resolve("alice-id")
	if !ok || code != second.Code {
		t.Errorf("Resolve = (%q, %v), want (%q, true)", code, ok, second.Code)
	}

	if rooms, players := reg.Stats(); rooms != 1 || players != 1 {
		t.Errorf("Stats = (%d, %d), want (1, 1)", rooms, players)
	}
}

func TestJoinRoom(t *testing.T) {
	reg := testRegistry(t)

	snap, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("case-insensitive code", func(t *testing.T) {
		joined, err := reg.JoinRoom(strings.ToLower(snap.Code), "bob", "bob-id")
		if err != nil {
			t.Fatalf("JoinRoom failed: %v", err)
		}
		if len(joined.Players) != 2 {
			t.Errorf("got %d players, want 2", len(joined.Players))
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		if _, err := reg.JoinRoom("NOSUCH", "carol", "carol-id"); !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("JoinRoom = %v, want ErrRoomNotFound", err)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		if _, err := reg.JoinRoom(snap.Code, "bob", "other-id"); !errors.Is(err, ErrNameTaken) {
			t.Errorf("JoinRoom = %v, want ErrNameTaken", err)
		}
	})

	t.Run("failed join leaves no membership", func(t *testing.T) {
		if _, ok := reg.Resolve("other-id"); ok {
			t.Error("rejected identity has a room membership")
		}
	})
}

func TestJoinRoomMovesPlayer(t *testing.T) {
	reg := testRegistry(t)

	roomA, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	roomB, err := reg.CreateRoom("bob", "bob-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	snap, err := reg.JoinRoom(roomB.Code, "alice", "alice-id")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if len(snap.Players) != 2 {
		t.Errorf("room B has %d players, want 2", len(snap.Players))
	}

	// Alice was room A's only player, so moving out must delete it.
	if _, ok := reg.Room(roomA.Code); ok {
		t.Errorf("room %s survived its only player moving to %s", roomA.Code, roomB.Code)
	}
	if code, _ := reg.Resolve("alice-id"); code != roomB.Code {
		t.Errorf("Resolve = %q, want %q", code, roomB.Code)
	}
	if rooms, players := reg.Stats(); rooms != 1 || players != 2 {
		t.Errorf("Stats = (%d, %d), want (1, 2)", rooms, players)
	}

	// Draining room B must leave nothing behind.
	reg.RemovePlayer("alice-id")
	reg.RemovePlayer("bob-id")
	if rooms, players := reg.Stats(); rooms != 0 || players != 0 {
		t.Errorf("Stats after drain = (%d, %d), want (0, 0)", rooms, players)
	}
}

func TestJoinRoomRejectionKeepsMembership(t *testing.T) {
	reg := testRegistry(t)

	roomA, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	roomB, err := reg.CreateRoom("bob", "bob-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	// Joining under bob's name fails, so alice must stay in room A.
	if _, err := reg.JoinRoom(roomB.Code, "bob", "alice-id"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("JoinRoom = %v, want ErrNameTaken", err)
	}

	if code, _ := reg.Resolve("alice-id"); code != roomA.Code {
		t.Errorf("Resolve = %q, want %q", code, roomA.Code)
	}
	room, ok := reg.Room(roomA.Code)
	if !ok || room.PlayerCount() != 1 {
		t.Errorf("room %s lost its player after a rejected move", roomA.Code)
	}
}

func TestRemovePlayer(t *testing.T) {
	reg := testRegistry(t)

	snap, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if _, err := reg.JoinRoom(snap.Code, "bob", "bob-id"); err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}

	outcome := reg.RemovePlayer("alice-id")
	if !outcome.Removed || outcome.RoomDeleted {
		t.Fatalf("outcome = %+v, want removed without deletion", outcome)
	}
	if outcome.Room.Host != "bob-id" {
		t.Errorf("host = %q, want %q after promotion", outcome.Room.Host, "bob-id")
	}

	outcome = reg.RemovePlayer("bob-id")
	if !outcome.Removed || !outcome.RoomDeleted {
		t.Fatalf("outcome = %+v, want removal deleting the room", outcome)
	}
	if _, ok := reg.Room(snap.Code); ok {
		t.Errorf("room %s survived losing its last player", snap.Code)
	}

	// Removing an identity with no membership is a no-op.
	outcome = reg.RemovePlayer("bob-id")
	if outcome.Removed || outcome.RoomCode != "" {
		t.Errorf("repeat removal = %+v, want zero outcome", outcome)
	}
}

func TestRoomFor(t *testing.T) {
	reg := testRegistry(t)

	snap, err := reg.CreateRoom("alice", "alice-id")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	room, err := reg.RoomFor("alice-id")
	if err != nil {
		t.Fatalf("RoomFor failed: %v", err)
	}
	if room.Code() != snap.Code {
		t.Errorf("RoomFor code = %q, want %q", room.Code(), snap.Code)
	}

	if _, err := reg.RoomFor("mallory-id"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("RoomFor unknown identity = %v, want ErrRoomNotFound", err)
	}
}
