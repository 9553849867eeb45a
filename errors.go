/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Game errors are sentinel values so callers can branch with errors.Is
// and the gateway can map them to stable wire codes.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrNameTaken          = errors.New("name already taken")
	ErrNotEnoughPlayers   = errors.New("not enough players")
	ErrNotHost            = errors.New("only the host may do that")
	ErrWrongPhase         = errors.New("operation not valid in current phase")
	ErrPlayerNotInRoom    = errors.New("player not in room")
	ErrNoCurrentQuestion  = errors.New("no current question")
	ErrInvalidIndex       = errors.New("answer index out of range")
	ErrPowerUpUsed        = errors.New("power-up already used this round")
	ErrUnknownPowerUp     = errors.New("unknown power-up")
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)

// errorCode maps a game error to the short code sent over the wire.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, ErrNameTaken):
		return "name_taken"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, ErrNotHost):
		return "not_host"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, ErrPlayerNotInRoom):
		return "player_not_in_room"
	case errors.Is(err, ErrNoCurrentQuestion):
		return "no_current_question"
	case errors.Is(err, ErrInvalidIndex):
		return "invalid_index"
	case errors.Is(err, ErrPowerUpUsed):
		return "power_up_used"
	case errors.Is(err, ErrUnknownPowerUp):
		return "unknown_power_up"
	case errors.Is(err, ErrCodeSpaceExhausted):
		return "capacity_exceeded"
	default:
		return "internal_error"
	}
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
