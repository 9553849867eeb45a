package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

// The read-only game API: content tables and live counters. Everything
// stateful goes through the websocket gateway instead.

type leaderboardEntry struct {
	Rank         int    `json:"rank"`
	Player       string `json:"player"`
	Score        int    `json:"score"`
	GamesWon     int    `json:"games_won"`
	Achievements int    `json:"achievements"`
}

// Placeholder standings until accounts exist; there is no persistence
// layer to back a real leaderboard.
var leaderboardTable = []leaderboardEntry{
	{Rank: 1, Player: "MemeLord420", Score: 15420, GamesWon: 89, Achievements: 12},
	{Rank: 2, Player: "StreamQueen", Score: 14230, GamesWon: 76, Achievements: 10},
	{Rank: 3, Player: "RoastMaster", Score: 13890, GamesWon: 71, Achievements: 9},
	{Rank: 4, Player: "ChaosAgent", Score: 12560, GamesWon: 65, Achievements: 8},
	{Rank: 5, Player: "ViralStar", Score: 11340, GamesWon: 58, Achievements: 7},
}

func serveJSON(cfg *Config, errs chan<- error, what string, payload func(r *http.Request, ps httprouter.Params) (any, int)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		v, status := payload(r, ps)

		data, err := json.Marshal(v)
		if err != nil {
			errs <- err
			http.Error(w, "encoding failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)
		w.WriteHeader(status)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "API: %s (%s) to %s in %s",
			what,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func registerGameAPI(cfg *Config, mux *httprouter.Router, reg *Registry, catalog *Catalog, errs chan<- error) {
	prefix := cfg.prefix + "/api/game"

	mux.GET(prefix+"/health", serveJSON(cfg, errs, "Health", func(_ *http.Request, _ httprouter.Params) (any, int) {
		rooms, players := reg.Stats()

		return map[string]any{
			"status":            "healthy",
			"rooms":             rooms,
			"connected_players": players,
		}, http.StatusOK
	}))

	mux.GET(prefix+"/stats", serveJSON(cfg, errs, "Stats", func(_ *http.Request, _ httprouter.Params) (any, int) {
		rooms, players := reg.Stats()

		return map[string]any{
			"active_rooms":      rooms,
			"connected_players": players,
			"total_questions":   catalog.Len(),
		}, http.StatusOK
	}))

	mux.GET(prefix+"/questions", serveJSON(cfg, errs, "Questions", func(_ *http.Request, _ httprouter.Params) (any, int) {
		return map[string]any{
			"questions":       catalog.Questions(),
			"total_questions": catalog.Len(),
		}, http.StatusOK
	}))

	mux.GET(prefix+"/questions/random", serveJSON(cfg, errs, "Random question", func(_ *http.Request, _ httprouter.Params) (any, int) {
		return map[string]any{"question": catalog.Random()}, http.StatusOK
	}))

	mux.GET(prefix+"/questions/id/:id", serveJSON(cfg, errs, "Question", func(_ *http.Request, ps httprouter.Params) (any, int) {
		id, err := strconv.Atoi(ps.ByName("id"))
		if err != nil {
			return map[string]any{"error": "Invalid question id"}, http.StatusBadRequest
		}

		q, ok := catalog.ByID(id)
		if !ok {
			return map[string]any{"error": "Question not found"}, http.StatusNotFound
		}

		return map[string]any{"question": q}, http.StatusOK
	}))

	mux.GET(prefix+"/questions/category/:category", serveJSON(cfg, errs, "Category", func(_ *http.Request, ps httprouter.Params) (any, int) {
		return map[string]any{
			"questions": catalog.ByCategory(ps.ByName("category")),
		}, http.StatusOK
	}))

	mux.GET(prefix+"/powerups", serveJSON(cfg, errs, "Power-ups", func(_ *http.Request, _ httprouter.Params) (any, int) {
		return map[string]any{"power_ups": powerUpTable}, http.StatusOK
	}))

	mux.GET(prefix+"/achievements", serveJSON(cfg, errs, "Achievements", func(_ *http.Request, _ httprouter.Params) (any, int) {
		return map[string]any{"achievements": achievementTable}, http.StatusOK
	}))

	mux.GET(prefix+"/leaderboard", serveJSON(cfg, errs, "Leaderboard", func(_ *http.Request, _ httprouter.Params) (any, int) {
		return map[string]any{"leaderboard": leaderboardTable}, http.StatusOK
	}))
}
