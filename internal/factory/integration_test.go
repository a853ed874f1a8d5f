package factory

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectn/internal/console"
	"github.com/mcoot/connectn/internal/model"
	redisstorage "github.com/mcoot/connectn/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	out *bytes.Buffer
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.out = &bytes.Buffer{}
	s.ctx = context.Background()
}

// playConsole runs a match fed by the given console lines
func (s *IntegrationSuite) playConsole(rules model.Rules, lines ...string) (*model.MatchRecord, error) {
	in := console.NewInput(strings.NewReader(strings.Join(lines, "\n")+"\n"), s.out, nil)
	controller, err := s.app.NewMatch(rules, in, console.NewRenderer(s.out, nil))
	s.Require().NoError(err)
	return controller.Run(s.ctx)
}

// Test: Complete console game from first prompt to history
func (s *IntegrationSuite) TestCompleteConsoleGame() {
	s.app.MockRandom.QueueID("MATCH1")

	record, err := s.playConsole(model.DefaultRules(), "1", "2", "1", "2", "1", "2", "1")
	s.Require().NoError(err)
	s.Equal(model.OutcomeWon, record.Outcome)
	s.Equal(0, record.Winner)
	s.Contains(s.out.String(), "Player 1 [GREEN] wins!")

	stored, err := s.app.HistoryService.Get(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal([]int{0, 1, 0, 1, 0, 1, 0}, stored.Moves)
}

// Test: Mistyped columns are re-prompted without losing the turn
func (s *IntegrationSuite) TestConsoleReprompt() {
	record, err := s.playConsole(model.DefaultRules(), "9", "a", "1", "2", "1", "2", "1", "2", "1")
	s.Require().NoError(err)
	s.Equal(0, record.Winner)
	s.Equal(2, strings.Count(s.out.String(), "Please select proper column"))
}

// Test: Quitting mid game records a quit
func (s *IntegrationSuite) TestConsoleQuit() {
	record, err := s.playConsole(model.DefaultRules(), "4", "x")
	s.Require().NoError(err)
	s.Equal(model.OutcomeQuit, record.Outcome)
	s.True(strings.HasSuffix(s.out.String(), "Game is ended\n"))

	stats, err := s.app.HistoryService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Quits)
}

// Test: Running out of input is a failure, not a quit
func (s *IntegrationSuite) TestConsoleEOF() {
	_, err := s.playConsole(model.DefaultRules(), "4")
	s.ErrorIs(err, model.ErrInputFailure)
}

// Test: Several matches feed the stats
func (s *IntegrationSuite) TestStatsAcrossMatches() {
	_, err := s.playConsole(model.DefaultRules(), "1", "2", "1", "2", "1", "2", "1")
	s.Require().NoError(err)

	second := model.DefaultRules()
	second.FirstPlayer = 1
	_, err = s.playConsole(second, "1", "1", "2", "2", "3", "3", "4")
	s.Require().NoError(err)

	small := model.Rules{Width: 2, Height: 2, Players: 2, WinLineSize: 3}
	_, err = s.playConsole(small, "1", "2", "1", "2")
	s.Require().NoError(err)

	stats, err := s.app.HistoryService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(1, stats.WinsByPlayer[0])
	s.Equal(1, stats.WinsByPlayer[1])
	s.Equal(1, stats.Draws)
	s.Equal(1, stats.WinsByLane[model.WinLaneVertical])
	s.Equal(1, stats.WinsByLane[model.WinLaneHorizontal])

	matches, err := s.app.HistoryService.List(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(matches, 3)
	s.Equal(model.OutcomeDraw, matches[0].Outcome)
}

// Test: Invalid rules are rejected before a controller exists
func (s *IntegrationSuite) TestNewMatchInvalidRules() {
	_, err := s.app.NewMatch(model.Rules{Width: 0, Height: 6, Players: 2, WinLineSize: 4}, nil, nil)
	s.ErrorIs(err, model.ErrInvalidArgument)
}

// Test: First player drawn from the random source
func (s *IntegrationSuite) TestRandomFirstPlayer() {
	s.app.MockRandom.QueueIntn(1)
	rules := s.app.RandomFirstPlayer(model.DefaultRules())
	s.Equal(1, rules.FirstPlayer)
}

// Test: Factory wires the redis backend
func (s *IntegrationSuite) TestNewWithRedis() {
	mr := miniredis.RunT(s.T())
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	s.Require().NoError(err)
	defer func() { s.NoError(app.Close()) }()

	in := console.NewInput(strings.NewReader("1\n2\n1\n2\n1\n2\n1\n"), s.out, nil)
	controller, err := app.NewMatch(model.DefaultRules(), in, console.NewRenderer(s.out, nil))
	s.Require().NoError(err)

	record, err := controller.Run(s.ctx)
	s.Require().NoError(err)

	stored, err := app.HistoryService.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeWon, stored.Outcome)
}

func (s *IntegrationSuite) TestNewDefaultsToMemory() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NoError(app.Close())

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: "sqlite"})
	s.Error(err)
}
