package main

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: ErrRoomNotFound, want: "room_not_found"},
		{err: ErrRoomFull, want: "room_full"},
		{err: ErrGameInProgress, want: "game_in_progress"},
		{err: ErrNameTaken, want: "name_taken"},
		{err: ErrNotEnoughPlayers, want: "not_enough_players"},
		{err: ErrNotHost, want: "not_host"},
		{err: ErrWrongPhase, want: "wrong_phase"},
		{err: ErrPlayerNotInRoom, want: "player_not_in_room"},
		{err: ErrNoCurrentQuestion, want: "no_current_question"},
		{err: ErrInvalidIndex, want: "invalid_index"},
		{err: ErrPowerUpUsed, want: "power_up_used"},
		{err: ErrUnknownPowerUp, want: "unknown_power_up"},
		{err: ErrCodeSpaceExhausted, want: "capacity_exceeded"},
		{err: errors.New("surprise"), want: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := errorCode(tt.err); got != tt.want {
				t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}

	t.Run("wrapped errors still map", func(t *testing.T) {
		wrapped := fmt.Errorf("starting game: %w", ErrNotEnoughPlayers)
		if got := errorCode(wrapped); got != "not_enough_players" {
			t.Errorf("errorCode(wrapped) = %q, want %q", got, "not_enough_players")
		}
	})
}
