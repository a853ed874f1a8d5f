package console

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mcoot/connectn/internal/model"
)

// Renderer draws the board as text
type Renderer struct {
	out     io.Writer
	palette Palette

	// Highlight lowercases the letters of the winning line
	Highlight bool
}

// NewRenderer creates a Renderer writing to out
func NewRenderer(out io.Writer, palette Palette) *Renderer {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Renderer{out: out, palette: palette}
}

// RenderBoard prints the column numbers followed by one line per row, top first
func (r *Renderer) RenderBoard(view *model.BoardView) error {
	var sb strings.Builder

	for col := 0; col < view.Rules.Width; col++ {
		fmt.Fprintf(&sb, " %d", (col+1)%10)
	}
	sb.WriteByte('\n')

	for row := 0; row < view.Rules.Height; row++ {
		sb.WriteByte('|')
		for col := 0; col < view.Rules.Width; col++ {
			sb.WriteByte(r.cellLetter(view, col, row))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

func (r *Renderer) cellLetter(view *model.BoardView, col, row int) byte {
	owner := view.BoardValue(col, row)
	if owner == model.EmptyCell {
		return ' '
	}
	letter := r.palette.Colour(owner).Letter
	if r.Highlight && view.InWinningLine(col, row) {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// AnnounceResult prints the winner, or why the game ended without one
func (r *Renderer) AnnounceResult(view *model.BoardView, outcome model.Outcome) error {
	var msg string
	switch outcome {
	case model.OutcomeWon:
		msg = r.palette.Label(view.Winner) + " wins!"
	case model.OutcomeDraw:
		msg = "No winner"
	default:
		msg = "Game is ended"
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
