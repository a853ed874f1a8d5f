package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/game"
)

type ConsoleSuite struct {
	suite.Suite
	engine *game.Engine
	out    *bytes.Buffer
	ctx    context.Context
}

func TestConsoleSuite(t *testing.T) {
	suite.Run(t, new(ConsoleSuite))
}

func (s *ConsoleSuite) SetupTest() {
	engine, err := game.New(model.DefaultRules())
	s.Require().NoError(err)
	engine.Start()
	s.engine = engine
	s.out = &bytes.Buffer{}
	s.ctx = context.Background()
}

func (s *ConsoleSuite) play(columns ...int) {
	for _, col := range columns {
		s.Require().NoError(s.engine.MakeTurn(col))
	}
}

func (s *ConsoleSuite) input(lines string) *Input {
	in := NewInput(strings.NewReader(lines), s.out, nil)
	s.Require().NoError(in.GameStarted(s.ctx, s.engine.Rules()))
	return in
}

// Palette tests

func (s *ConsoleSuite) TestPaletteKnownPlayers() {
	s.Equal(Colour{Name: "GREEN", Letter: 'G'}, DefaultPalette.Colour(0))
	s.Equal(Colour{Name: "RED", Letter: 'R'}, DefaultPalette.Colour(1))
	s.Equal("Player 2 [RED]", DefaultPalette.Label(1))
}

func (s *ConsoleSuite) TestPaletteBeyondEnd() {
	palette := Palette{{Name: "GREEN", Letter: 'G'}}
	s.Equal(Colour{Name: "P3", Letter: '3'}, palette.Colour(2))
	s.Equal(Colour{Name: "P12", Letter: '#'}, palette.Colour(11))
}

// Input tests

func (s *ConsoleSuite) TestChooseColumnConvertsToZeroBased() {
	col, err := s.input("3\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.Require().NoError(err)
	s.Equal(2, col)
	s.Equal("Player 1 [GREEN] - choose column (1-7): ", s.out.String())
}

func (s *ConsoleSuite) TestChooseColumnTrimsWhitespace() {
	col, err := s.input("  7 \n").ChooseColumn(s.ctx, 1, s.engine.Snapshot())
	s.Require().NoError(err)
	s.Equal(6, col)
}

func (s *ConsoleSuite) TestChooseColumnQuit() {
	_, err := s.input("x\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.ErrorIs(err, model.ErrQuit)

	_, err = s.input("X\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.ErrorIs(err, model.ErrQuit)
}

func (s *ConsoleSuite) TestChooseColumnReprompts() {
	col, err := s.input("abc\n0\n8\n\n4\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.Require().NoError(err)
	s.Equal(3, col)

	out := s.out.String()
	s.Equal(4, strings.Count(out, "Please select proper column"))
	s.Equal(5, strings.Count(out, "choose column (1-7)"))
}

func (s *ConsoleSuite) TestChooseColumnRejectsFullColumn() {
	s.play(0, 0, 0, 1, 0, 0, 0)
	s.Require().False(s.engine.CanSelectColumn(0))

	col, err := s.input("1\n2\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.Require().NoError(err)
	s.Equal(1, col)
	s.Contains(s.out.String(), "Please select proper column")
}

func (s *ConsoleSuite) TestChooseColumnEOF() {
	_, err := s.input("abc\n").ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.ErrorIs(err, io.EOF)
}

func (s *ConsoleSuite) TestChooseColumnKeepsReadingAcrossCalls() {
	in := s.input("1\n2\n")

	first, err := in.ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.Require().NoError(err)
	second, err := in.ChooseColumn(s.ctx, 1, s.engine.Snapshot())
	s.Require().NoError(err)

	s.Equal(0, first)
	s.Equal(1, second)
}

func (s *ConsoleSuite) TestChooseColumnCanceled() {
	pr, pw := io.Pipe()
	defer pw.Close()

	in := NewInput(pr, s.out, nil)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := in.ChooseColumn(ctx, 0, s.engine.Snapshot())
	s.ErrorIs(err, context.Canceled)
}

func (s *ConsoleSuite) TestCloseStopsReaderAfterCancel() {
	pr, pw := io.Pipe()
	defer pw.Close()

	in := NewInput(pr, s.out, nil)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := in.ChooseColumn(ctx, 0, s.engine.Snapshot())
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().NoError(in.Close())

	// The reader picks up this line and must drop it instead of blocking
	_, err = pw.Write([]byte("1\n"))
	s.Require().NoError(err)

	select {
	case <-in.stopped:
	case <-time.After(time.Second):
		s.Fail("reader goroutine still running after Close")
	}

	_, err = in.ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.ErrorIs(err, io.EOF)
}

func (s *ConsoleSuite) TestChooseColumnReadError() {
	pr, pw := io.Pipe()
	pw.CloseWithError(errors.New("terminal gone"))

	in := NewInput(pr, s.out, nil)
	_, err := in.ChooseColumn(s.ctx, 0, s.engine.Snapshot())
	s.ErrorContains(err, "terminal gone")
}

// Renderer tests

func (s *ConsoleSuite) TestRenderEmptyBoard() {
	r := NewRenderer(s.out, nil)
	s.Require().NoError(r.RenderBoard(s.engine.Snapshot()))

	expected := " 1 2 3 4 5 6 7\n" + strings.Repeat("| | | | | | | |\n", 6)
	s.Equal(expected, s.out.String())
}

func (s *ConsoleSuite) TestRenderPieces() {
	s.play(0, 1, 0)
	r := NewRenderer(s.out, nil)
	s.Require().NoError(r.RenderBoard(s.engine.Snapshot()))

	lines := strings.Split(strings.TrimSuffix(s.out.String(), "\n"), "\n")
	s.Require().Len(lines, 7)
	s.Equal("| | | | | | | |", lines[4])
	s.Equal("|G| | | | | | |", lines[5])
	s.Equal("|G|R| | | | | |", lines[6])
}

func (s *ConsoleSuite) TestRenderHighlightsWinningLine() {
	s.play(0, 1, 0, 1, 0, 1, 0)
	r := NewRenderer(s.out, nil)
	r.Highlight = true
	s.Require().NoError(r.RenderBoard(s.engine.Snapshot()))

	lines := strings.Split(strings.TrimSuffix(s.out.String(), "\n"), "\n")
	s.Equal("| | | | | | | |", lines[1])
	s.Equal("|g| | | | | | |", lines[3])
	s.Equal("|g|R| | | | | |", lines[6])
}

func (s *ConsoleSuite) TestAnnounceWinner() {
	s.play(0, 1, 0, 1, 0, 1, 0)
	r := NewRenderer(s.out, nil)
	s.Require().NoError(r.AnnounceResult(s.engine.Snapshot(), model.OutcomeWon))
	s.Equal("Player 1 [GREEN] wins!\n", s.out.String())
}

func (s *ConsoleSuite) TestAnnounceDrawAndQuit() {
	r := NewRenderer(s.out, nil)
	s.Require().NoError(r.AnnounceResult(s.engine.Snapshot(), model.OutcomeDraw))
	s.Require().NoError(r.AnnounceResult(s.engine.Snapshot(), model.OutcomeQuit))
	s.Equal("No winner\nGame is ended\n", s.out.String())
}
