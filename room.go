package main

import (
	"crypto/rand"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Phase is the room's position in the round state machine. Transitions only
// move forward:
//
//	lobby → team_formation → question → reveal → round_results
//	round_results → question (next round) | final_results
//
// final_results is terminal.
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseTeamFormation Phase = "team_formation"
	PhaseQuestion      Phase = "question"
	PhaseReveal        Phase = "reveal"
	PhaseRoundResults  Phase = "round_results"
	PhaseFinalResults  Phase = "final_results"
)

// GameMode is either free-for-all (every player is their own team) or
// N-vs-N (the roster is split into two fixed team slots).
type GameMode struct {
	freeForAll bool
	teamSize   int
}

func (m GameMode) String() string {
	switch {
	case m.freeForAll:
		return "free_for_all"
	case m.teamSize > 0:
		return fmt.Sprintf("%dv%d", m.teamSize, m.teamSize)
	default:
		// not yet chosen (pre-game lobby)
		return ""
	}
}

func parseGameMode(s string) (GameMode, error) {
	mode := strings.ToLower(strings.TrimSpace(s))

	switch mode {
	case "", "2v2":
		return GameMode{teamSize: 2}, nil
	case "ffa", "free_for_all":
		return GameMode{freeForAll: true}, nil
	}

	if left, right, found := strings.Cut(mode, "v"); found && left == right {
		if n, err := strconv.Atoi(left); err == nil && n >= 1 {
			return GameMode{teamSize: n}, nil
		}
	}

	return GameMode{}, fmt.Errorf("unknown game mode %q", s)
}

type Player struct {
	ID       string
	Name     string
	Avatar   string
	IsHost   bool
	TeamKey  string
	Score    int
	Answer   string
	Answered bool

	// power-ups consumed this round; reset every round, not every game
	usedPowerUps map[string]bool
}

type Team struct {
	Key      string
	Name     string
	Color    string
	Members  []string
	Score    int
	Answer   string
	Answered bool
}

// The two fixed team slots used in N-vs-N mode.
var teamSlots = []struct {
	Key   string
	Name  string
	Color string
}{
	{Key: "team1", Name: "Team Chaos", Color: "red"},
	{Key: "team2", Name: "Team Mayhem", Color: "blue"},
}

var ffaColors = []string{"red", "blue", "green", "purple", "orange", "pink", "teal", "yellow"}

var avatarPool = []string{"🦊", "🐸", "🦖", "🐙", "🦄", "👾", "🤖", "🐼", "🦁", "🐧"}

const defaultAvatar = "🎮"

func defaultSettings() map[string]any {
	return map[string]any{
		"chaos_cards":     true,
		"roast_mode":      true,
		"viral_clips":     true,
		"trending_topics": true,
	}
}

// Room owns the authoritative state of one game session. Every mutating
// operation runs under r.mu; *Locked helpers assume it is already held.
// Cross-room operations never serialize against each other.
type Room struct {
	mu sync.Mutex

	code       string
	hostID     string
	players    map[string]*Player
	order      []string // player IDs in join order; drives host promotion
	teams      map[string]*Team
	teamOrder  []string
	phase      Phase
	round      int
	maxRounds  int
	mode       GameMode
	capacity   int
	minPlayers int
	question   *Question
	revealed   []int
	settings   map[string]any
	createdAt  time.Time
	lastActive time.Time

	pick func() Question
}

func newRoom(code, hostName, hostID string, cfg *Config, pick func() Question) *Room {
	now := time.Now()

	r := &Room{
		code:       code,
		players:    make(map[string]*Player),
		teams:      make(map[string]*Team),
		phase:      PhaseLobby,
		maxRounds:  cfg.maxRounds,
		capacity:   cfg.maxPlayers,
		minPlayers: cfg.minPlayers,
		settings:   defaultSettings(),
		createdAt:  now,
		lastActive: now,
		pick:       pick,
	}

	host := r.addPlayerLocked(hostName, hostID)
	host.IsHost = true
	r.hostID = hostID

	return r
}

func (r *Room) Code() string {
	return r.code
}

func (r *Room) LastActive() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lastActive
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.players)
}

func (r *Room) addPlayerLocked(name, identity string) *Player {
	p := &Player{
		ID:           identity,
		Name:         name,
		Avatar:       r.unusedAvatarLocked(),
		usedPowerUps: make(map[string]bool),
	}

	r.players[identity] = p
	r.order = append(r.order, identity)

	return p
}

func (r *Room) unusedAvatarLocked() string {
	for _, avatar := range avatarPool {
		taken := false
		for _, p := range r.players {
			if p.Avatar == avatar {
				taken = true
				break
			}
		}
		if !taken {
			return avatar
		}
	}

	return defaultAvatar
}

// Join appends a player to the lobby. Joining with an identity already in
// the room is a no-op returning the current snapshot, so reconnecting
// clients can rejoin safely.
func (r *Room) Join(name, identity string) (RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[identity]; ok {
		return r.snapshotLocked(), nil
	}

	if len(r.players) >= r.capacity {
		return RoomSnapshot{}, ErrRoomFull
	}
	if r.phase != PhaseLobby {
		return RoomSnapshot{}, ErrGameInProgress
	}
	for _, p := range r.players {
		if p.Name == name {
			return RoomSnapshot{}, ErrNameTaken
		}
	}

	r.addPlayerLocked(name, identity)
	r.lastActive = time.Now()

	return r.snapshotLocked(), nil
}

// removePlayer drops a player from the roster and any team. Reports whether
// the identity was present, and whether the room is now empty. When the host
// leaves, the earliest-joined remaining player is promoted. Removal during a
// question recomputes completion over the remaining roster.
func (r *Room) removePlayer(identity string) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[identity]
	if !ok {
		return false, len(r.players) == 0
	}

	delete(r.players, identity)
	if i := slices.Index(r.order, identity); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	if t := r.teams[p.TeamKey]; t != nil {
		if i := slices.Index(t.Members, identity); i >= 0 {
			t.Members = slices.Delete(t.Members, i, i+1)
		}
		// Singleton free-for-all teams vanish with their player; fixed
		// team slots keep their score for the remaining rounds.
		if len(t.Members) == 0 && r.mode.freeForAll {
			delete(r.teams, t.Key)
			if i := slices.Index(r.teamOrder, t.Key); i >= 0 {
				r.teamOrder = slices.Delete(r.teamOrder, i, i+1)
			}
		}
	}

	if len(r.players) == 0 {
		return true, true
	}

	if p.IsHost {
		next := r.players[r.order[0]]
		next.IsHost = true
		r.hostID = next.ID
	}

	if r.phase == PhaseQuestion && r.allAnsweredLocked() {
		r.phase = PhaseReveal
	}

	r.lastActive = time.Now()

	return true, false
}

// StartGame moves the lobby into team formation. Host-only; requires the
// configured minimum player count. Caller-supplied settings override the
// room defaults. Teams are formed exactly once here; re-shuffling requires
// returning to the lobby, which the state machine forbids.
func (r *Room) StartGame(identity, mode string, settings map[string]any) (GameSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.hostID {
		return GameSnapshot{}, ErrNotHost
	}
	if r.phase != PhaseLobby {
		return GameSnapshot{}, ErrWrongPhase
	}
	if len(r.players) < r.minPlayers {
		return GameSnapshot{}, ErrNotEnoughPlayers
	}

	parsed, err := parseGameMode(mode)
	if err != nil {
		return GameSnapshot{}, err
	}
	r.mode = parsed

	for k, v := range settings {
		r.settings[k] = v
	}

	r.formTeamsLocked()
	r.phase = PhaseTeamFormation
	r.lastActive = time.Now()

	return r.gameSnapshotLocked(), nil
}

func (r *Room) formTeamsLocked() {
	r.teams = make(map[string]*Team)
	r.teamOrder = nil

	ids := slices.Clone(r.order)
	shuffleIDs(ids)

	if r.mode.freeForAll {
		for i, id := range ids {
			p := r.players[id]
			t := &Team{
				Key:     id,
				Name:    p.Name,
				Color:   ffaColors[i%len(ffaColors)],
				Members: []string{id},
			}
			p.TeamKey = id
			r.teams[id] = t
			r.teamOrder = append(r.teamOrder, id)
		}

		return
	}

	// Two contiguous chunks of the shuffled roster. The second chunk takes
	// any remainder, so uneven rosters stay fully partitioned.
	split := min(r.mode.teamSize, len(ids))
	chunks := [][]string{ids[:split], ids[split:]}

	for i, slot := range teamSlots {
		t := &Team{
			Key:     slot.Key,
			Name:    slot.Name,
			Color:   slot.Color,
			Members: slices.Clone(chunks[i]),
		}
		for _, id := range t.Members {
			r.players[id].TeamKey = t.Key
		}
		r.teams[t.Key] = t
		r.teamOrder = append(r.teamOrder, t.Key)
	}
}

// Fisher-Yates shuffle using crypto/rand.
func shuffleIDs(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			continue
		}
		j := int(b[0]) % (i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// StartRound begins the first question round after team formation.
func (r *Room) StartRound(identity string) (GameSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.hostID {
		return GameSnapshot{}, ErrNotHost
	}
	if r.phase != PhaseTeamFormation {
		return GameSnapshot{}, ErrWrongPhase
	}

	r.startRoundLocked()
	r.lastActive = time.Now()

	return r.gameSnapshotLocked(), nil
}

func (r *Room) startRoundLocked() {
	q := r.pick()
	r.question = &q
	r.revealed = nil

	for _, p := range r.players {
		p.Answer = ""
		p.Answered = false
		p.usedPowerUps = make(map[string]bool)
	}
	for _, t := range r.teams {
		t.Answer = ""
		t.Answered = false
	}

	r.round++
	r.phase = PhaseQuestion
}

// SubmitAnswer records a player's answer for the current question.
// Resubmission overwrites: last write wins. The answer is mirrored onto the
// player's team, so in team mode one submission closes out the whole team.
// Once all required parties have answered, the room advances to reveal.
func (r *Room) SubmitAnswer(identity, answer string) (GameSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[identity]
	if !ok {
		return GameSnapshot{}, ErrPlayerNotInRoom
	}
	if r.phase != PhaseQuestion {
		return GameSnapshot{}, ErrWrongPhase
	}

	p.Answer = answer
	p.Answered = true

	if t := r.teams[p.TeamKey]; t != nil {
		t.Answer = answer
		t.Answered = true
	}

	if r.allAnsweredLocked() {
		r.phase = PhaseReveal
	}

	r.lastActive = time.Now()

	return r.gameSnapshotLocked(), nil
}

// allAnsweredLocked checks round completion. Free-for-all requires every
// player to have answered; team modes require every non-empty team, so a
// single submission per team suffices.
func (r *Room) allAnsweredLocked() bool {
	if len(r.players) == 0 {
		return false
	}

	if r.mode.freeForAll {
		for _, p := range r.players {
			if !p.Answered {
				return false
			}
		}

		return true
	}

	answered := false
	for _, key := range r.teamOrder {
		t := r.teams[key]
		if len(t.Members) == 0 {
			continue
		}
		if !t.Answered {
			return false
		}
		answered = true
	}

	return answered
}

// RevealAnswer discloses one ranked answer and awards its points to every
// player and team whose recorded answer matches it. Host-only. Revealing
// during the question phase is the host's explicit early advance to reveal.
// Revealing an index twice is a no-op returning the current state, so
// points are never awarded twice. Revealing the final index closes the
// round.
func (r *Room) RevealAnswer(identity string, index int) (GameSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.hostID {
		return GameSnapshot{}, ErrNotHost
	}
	if r.question == nil {
		return GameSnapshot{}, ErrNoCurrentQuestion
	}
	if r.phase != PhaseQuestion && r.phase != PhaseReveal {
		return GameSnapshot{}, ErrWrongPhase
	}
	if index < 0 || index >= len(r.question.Answers) {
		return GameSnapshot{}, ErrInvalidIndex
	}

	if slices.Contains(r.revealed, index) {
		return r.gameSnapshotLocked(), nil
	}

	r.phase = PhaseReveal
	r.revealed = append(r.revealed, index)

	ans := r.question.Answers[index]
	for _, p := range r.players {
		if p.Answered && answersMatch(p.Answer, ans.Text) {
			p.Score += ans.Points
		}
	}
	for _, t := range r.teams {
		if t.Answered && answersMatch(t.Answer, ans.Text) {
			t.Score += ans.Points
		}
	}

	if len(r.revealed) == len(r.question.Answers) {
		r.phase = PhaseRoundResults
	}

	r.lastActive = time.Now()

	return r.gameSnapshotLocked(), nil
}

// NextRound either starts the next question round or, when the round cap
// has been reached, ends the game with cumulative scores.
func (r *Room) NextRound(identity string) (GameSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.hostID {
		return GameSnapshot{}, ErrNotHost
	}
	if r.phase != PhaseRoundResults {
		return GameSnapshot{}, ErrWrongPhase
	}

	if r.round >= r.maxRounds {
		r.phase = PhaseFinalResults
		r.question = nil
		r.revealed = nil
	} else {
		r.startRoundLocked()
	}

	r.lastActive = time.Now()

	return r.gameSnapshotLocked(), nil
}

// UsePowerUp records a power-up usage and returns its effect description.
// Each power-up is usable once per player per round. The engine only does
// the bookkeeping; enforcing the effect is up to the clients.
func (r *Room) UsePowerUp(identity, powerUpID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[identity]
	if !ok {
		return "", ErrPlayerNotInRoom
	}

	pu, ok := powerUpByID(powerUpID)
	if !ok {
		return "", ErrUnknownPowerUp
	}

	if p.usedPowerUps[powerUpID] {
		return "", ErrPowerUpUsed
	}
	p.usedPowerUps[powerUpID] = true

	r.lastActive = time.Now()

	return pu.Description, nil
}

// ForceAdvance is the hook for collaborator-driven timeouts. It pushes the
// room one step forward from any mid-game phase and is a no-op elsewhere,
// so a timer firing late can never corrupt state.
func (r *Room) ForceAdvance() GameSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.phase {
	case PhaseQuestion:
		r.phase = PhaseReveal
	case PhaseReveal:
		r.phase = PhaseRoundResults
	case PhaseRoundResults:
		if r.round >= r.maxRounds {
			r.phase = PhaseFinalResults
			r.question = nil
			r.revealed = nil
		} else {
			r.startRoundLocked()
		}
	case PhaseLobby, PhaseTeamFormation, PhaseFinalResults:
		// nothing to advance
	}

	r.lastActive = time.Now()

	return r.gameSnapshotLocked()
}
