package main

import (
	"time"
)

// Snapshots are pure projections of room state for the wire. They never
// alias engine internals, so handlers can marshal them after the room lock
// is released.

type PlayerSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	IsHost   bool   `json:"is_host"`
	Team     string `json:"team,omitempty"`
	Score    int    `json:"score"`
	Answered bool   `json:"answered"`
}

type TeamSnapshot struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Members  []string `json:"members"`
	Score    int      `json:"score"`
	Answered bool     `json:"answered"`
}

type RevealedAnswer struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// QuestionSnapshot hides the board: clients see the prompt and how many
// answers exist, but answer text and points only appear once revealed.
type QuestionSnapshot struct {
	ID          int              `json:"id"`
	Category    string           `json:"category"`
	Prompt      string           `json:"question"`
	AnswerCount int              `json:"answer_count"`
	Revealed    []RevealedAnswer `json:"revealed"`
}

type RoomSnapshot struct {
	Code       string           `json:"room_code"`
	Host       string           `json:"host"`
	Phase      Phase            `json:"phase"`
	Players    []PlayerSnapshot `json:"players"`
	MaxPlayers int              `json:"max_players"`
	Settings   map[string]any   `json:"settings"`
	CreatedAt  time.Time        `json:"created_at"`
}

type GameSnapshot struct {
	RoomSnapshot

	Mode      string            `json:"mode"`
	Round     int               `json:"current_round"`
	MaxRounds int               `json:"max_rounds"`
	Teams     []TeamSnapshot    `json:"teams"`
	Question  *QuestionSnapshot `json:"current_question,omitempty"`
}

func (r *Room) Snapshot() RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshotLocked()
}

func (r *Room) Game() GameSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.gameSnapshotLocked()
}

func (r *Room) snapshotLocked() RoomSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		players = append(players, PlayerSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Avatar:   p.Avatar,
			IsHost:   p.IsHost,
			Team:     p.TeamKey,
			Score:    p.Score,
			Answered: p.Answered,
		})
	}

	settings := make(map[string]any, len(r.settings))
	for k, v := range r.settings {
		settings[k] = v
	}

	return RoomSnapshot{
		Code:       r.code,
		Host:       r.hostID,
		Phase:      r.phase,
		Players:    players,
		MaxPlayers: r.capacity,
		Settings:   settings,
		CreatedAt:  r.createdAt,
	}
}

func (r *Room) gameSnapshotLocked() GameSnapshot {
	teams := make([]TeamSnapshot, 0, len(r.teamOrder))
	for _, key := range r.teamOrder {
		t := r.teams[key]
		teams = append(teams, TeamSnapshot{
			Key:      t.Key,
			Name:     t.Name,
			Color:    t.Color,
			Members:  append([]string(nil), t.Members...),
			Score:    t.Score,
			Answered: t.Answered,
		})
	}

	snap := GameSnapshot{
		RoomSnapshot: r.snapshotLocked(),
		Mode:         r.mode.String(),
		Round:        r.round,
		MaxRounds:    r.maxRounds,
		Teams:        teams,
	}

	if r.question != nil {
		q := &QuestionSnapshot{
			ID:          r.question.ID,
			Category:    r.question.Category,
			Prompt:      r.question.Prompt,
			AnswerCount: len(r.question.Answers),
			Revealed:    []RevealedAnswer{},
		}
		for _, i := range r.revealed {
			ans := r.question.Answers[i]
			q.Revealed = append(q.Revealed, RevealedAnswer{
				Index:  i,
				Text:   ans.Text,
				Points: ans.Points,
				Rank:   ans.Rank,
			})
		}
		snap.Question = q
	}

	return snap
}
