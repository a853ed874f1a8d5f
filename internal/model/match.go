package model

import "time"

// MatchID uniquely identifies a played match
type MatchID string

// Outcome describes how a match finished
type Outcome string

const (
	OutcomeWon  Outcome = "won"  // A player completed a line
	OutcomeDraw Outcome = "draw" // Board filled without a line
	OutcomeQuit Outcome = "quit" // A player quit before the end
)

// MatchRecord is the history entry written when a match finishes
type MatchRecord struct {
	ID         MatchID   `json:"id"`
	Rules      Rules     `json:"rules"`
	Outcome    Outcome   `json:"outcome"`
	Winner     int       `json:"winner"` // Player index, or WinnerUndecided/WinnerNone
	WinLane    WinLane   `json:"win_lane,omitempty"`
	Moves      []int     `json:"moves"` // Columns in play order
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// HasWinner returns true if a player won the match
func (m *MatchRecord) HasWinner() bool {
	return m.Outcome == OutcomeWon && m.Winner >= 0
}

// Duration returns how long the match took
func (m *MatchRecord) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// MatchStats aggregates outcomes across recorded matches
type MatchStats struct {
	Total        int             `json:"total"`
	WinsByPlayer map[int]int     `json:"wins_by_player"`
	WinsByLane   map[WinLane]int `json:"wins_by_lane"`
	Draws        int             `json:"draws"`
	Quits        int             `json:"quits"`
}
