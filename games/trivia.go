// Package games holds design notes for game modes.
package games

// Survey-style trivia: each round shows a prompt with a hidden board of
// ranked answers. Players type free-text guesses; the host reveals board
// entries one at a time, and anyone whose guess matches a revealed entry
// scores its points.

// Game flow:
// - Host creates a room and shares the 6-char code (or the QR link)
// - Players join from their phones; first player in the room is host
// - Host picks a mode: free-for-all, or fixed teams (2v2, 3v3, ...)
// - Each round: everyone answers, host reveals, scores accumulate
// - After the configured number of rounds, final standings are shown

// Matching rules:
// - Case-insensitive, whitespace-trimmed
// - Substring matches count in either direction ("tiktok" matches
//   "TikTok dances" and vice versa), so partial guesses still score

// Implementation details:
// - One websocket per player carries every game event
// - Players are identified by cookie, so refreshing rejoins the room
// - Team mode scores both the player and their team; completion in team
//   mode means every non-empty team has at least one answer in

// Ideas not built yet:
// - Persistent leaderboard once accounts exist
// - Timed questions with automatic reveal
