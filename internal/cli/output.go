package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mcoot/connectn/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Match:
		o.printMatch(v)
	case response.MatchList:
		o.printMatchList(v)
	case response.Stats:
		o.printStats(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Rules: %dx%d, %d players, line of %d\n",
		m.Rules.Width, m.Rules.Height, m.Rules.Players, m.Rules.WinLineSize)
	fmt.Fprintf(o.w, "Result: %s\n", resultText(m))
	fmt.Fprintf(o.w, "Finished: %s (%d moves)\n", m.FinishedAt.Format("2006-01-02 15:04:05"), len(m.Moves))

	cols := make([]string, len(m.Moves))
	for i, col := range m.Moves {
		cols[i] = strconv.Itoa(col + 1)
	}
	fmt.Fprintf(o.w, "Moves: %s\n", strings.Join(cols, " "))
}

func (o *Output) printMatchList(l response.MatchList) {
	if l.Count == 0 {
		fmt.Fprintln(o.w, "No matches recorded")
		return
	}
	fmt.Fprintf(o.w, "Matches (%d):\n", l.Count)
	for _, m := range l.Matches {
		fmt.Fprintf(o.w, "  - %s  %s  %s\n", m.ID, m.FinishedAt.Format("2006-01-02 15:04"), resultText(m))
	}
}

func (o *Output) printStats(s response.Stats) {
	fmt.Fprintf(o.w, "Matches: %d\n", s.Total)
	fmt.Fprintf(o.w, "Draws: %d\n", s.Draws)
	fmt.Fprintf(o.w, "Quits: %d\n", s.Quits)

	if len(s.WinsByPlayer) > 0 {
		fmt.Fprintln(o.w, "Wins by player:")
		for _, k := range sortedKeys(s.WinsByPlayer) {
			fmt.Fprintf(o.w, "  Player %s: %d\n", playerNumber(k), s.WinsByPlayer[k])
		}
	}
	if len(s.WinsByLane) > 0 {
		fmt.Fprintln(o.w, "Wins by direction:")
		for _, k := range sortedKeys(s.WinsByLane) {
			fmt.Fprintf(o.w, "  %s: %d\n", k, s.WinsByLane[k])
		}
	}
}

func resultText(m response.Match) string {
	switch {
	case m.Winner != nil:
		return fmt.Sprintf("player %d won (%s)", *m.Winner+1, m.WinLane)
	case m.Outcome == "draw":
		return "draw"
	default:
		return "quit"
	}
}

// playerNumber turns a 0-based index key into the 1-based number players see
func playerNumber(key string) string {
	idx, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	return strconv.Itoa(idx + 1)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
