package response

import (
	"strconv"
	"time"

	"github.com/mcoot/connectn/internal/model"
)

// Rules represents the rules a match was played with
type Rules struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	Players     int `json:"players"`
	FirstPlayer int `json:"first_player"`
	WinLineSize int `json:"win_line_size"`
}

// RulesFromModel converts model.Rules
func RulesFromModel(r model.Rules) Rules {
	return Rules{
		Width:       r.Width,
		Height:      r.Height,
		Players:     r.Players,
		FirstPlayer: r.FirstPlayer,
		WinLineSize: r.WinLineSize,
	}
}

// Match represents a finished match in API responses
type Match struct {
	ID         string    `json:"id"`
	Rules      Rules     `json:"rules"`
	Outcome    string    `json:"outcome"`
	Winner     *int      `json:"winner"`
	WinLane    string    `json:"win_lane,omitempty"`
	Moves      []int     `json:"moves"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// MatchFromModel converts model.MatchRecord. Winner is null unless a player won.
func MatchFromModel(m *model.MatchRecord) Match {
	var winner *int
	if m.HasWinner() {
		w := m.Winner
		winner = &w
	}

	moves := m.Moves
	if moves == nil {
		moves = []int{}
	}

	return Match{
		ID:         string(m.ID),
		Rules:      RulesFromModel(m.Rules),
		Outcome:    string(m.Outcome),
		Winner:     winner,
		WinLane:    string(m.WinLane),
		Moves:      moves,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		DurationMS: m.Duration().Milliseconds(),
	}
}

// MatchList is the response for GET /matches
type MatchList struct {
	Matches []Match `json:"matches"`
	Count   int     `json:"count"`
}

// MatchListFromModel converts a slice of records, keeping their order
func MatchListFromModel(records []*model.MatchRecord) MatchList {
	matches := make([]Match, len(records))
	for i, m := range records {
		matches[i] = MatchFromModel(m)
	}
	return MatchList{Matches: matches, Count: len(matches)}
}

// Stats represents aggregated outcomes
type Stats struct {
	Total        int            `json:"total"`
	WinsByPlayer map[string]int `json:"wins_by_player"`
	WinsByLane   map[string]int `json:"wins_by_lane"`
	Draws        int            `json:"draws"`
	Quits        int            `json:"quits"`
}

// StatsFromModel converts model.MatchStats. Player keys are 0-based indexes.
func StatsFromModel(s *model.MatchStats) Stats {
	byPlayer := make(map[string]int, len(s.WinsByPlayer))
	for player, wins := range s.WinsByPlayer {
		byPlayer[strconv.Itoa(player)] = wins
	}
	byLane := make(map[string]int, len(s.WinsByLane))
	for lane, wins := range s.WinsByLane {
		byLane[string(lane)] = wins
	}
	return Stats{
		Total:        s.Total,
		WinsByPlayer: byPlayer,
		WinsByLane:   byLane,
		Draws:        s.Draws,
		Quits:        s.Quits,
	}
}

// Health is the response for GET /health
type Health struct {
	Status string `json:"status"`
}
