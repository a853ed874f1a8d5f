package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/connectn/internal/dependencies/clock"
	"github.com/mcoot/connectn/internal/dependencies/random"
	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/game"
	"github.com/mcoot/connectn/internal/services/history"
)

// BoardQuery is the read-only board access handed to collaborators
type BoardQuery interface {
	BoardValue(col, row int) int
	CanSelectColumn(col int) bool
}

var _ BoardQuery = (*model.BoardView)(nil)

// InputProvider chooses columns on behalf of players
type InputProvider interface {
	// GameStarted notifies the provider that a new game began
	GameStarted(ctx context.Context, rules model.Rules) error

	// ChooseColumn blocks until the player picks a column. Returning
	// model.ErrQuit ends the match without a result.
	ChooseColumn(ctx context.Context, player int, board BoardQuery) (int, error)
}

// Renderer depicts the board and the final result
type Renderer interface {
	RenderBoard(view *model.BoardView) error
	AnnounceResult(view *model.BoardView, outcome model.Outcome) error
}

// Controller drives one input, apply and render cycle per turn
type Controller struct {
	engine   game.EngineInterface
	input    InputProvider
	renderer Renderer
	history  history.ServiceInterface
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	engine game.EngineInterface,
	input InputProvider,
	renderer Renderer,
	history history.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		engine:   engine,
		input:    input,
		renderer: renderer,
		history:  history,
		clock:    clock,
		random:   random,
		logger:   logger,
	}
}

// Run plays a full match and records it in the history. Input failures and
// rejected moves end the match with an error; a quit ends it cleanly.
func (c *Controller) Run(ctx context.Context) (*model.MatchRecord, error) {
	rules := c.engine.Rules()
	record := &model.MatchRecord{
		ID:        model.MatchID(c.random.ID()),
		Rules:     rules,
		Winner:    model.WinnerUndecided,
		Moves:     []int{},
		StartedAt: c.clock.Now(),
	}
	logger := c.logger.With(slog.String("match_id", string(record.ID)))

	c.engine.Start()
	if err := c.input.GameStarted(ctx, rules); err != nil {
		return nil, fmt.Errorf("notify players: %w: %w", model.ErrInputFailure, err)
	}

	logger.Info("match started",
		slog.Int("width", rules.Width),
		slog.Int("height", rules.Height),
		slog.Int("players", rules.Players),
		slog.Int("win_line_size", rules.WinLineSize),
	)

	quit, err := c.playTurns(ctx, logger, record)
	if err != nil {
		return nil, err
	}

	view := c.engine.Snapshot()
	record.Outcome = outcomeOf(view, quit)
	record.Winner = view.Winner
	record.WinLane = view.WinLane
	record.FinishedAt = c.clock.Now()

	if !quit {
		if err := c.renderer.RenderBoard(view); err != nil {
			return nil, fmt.Errorf("render board: %w", err)
		}
	}
	if err := c.renderer.AnnounceResult(view, record.Outcome); err != nil {
		return nil, fmt.Errorf("announce result: %w", err)
	}

	logger.Info("match finished",
		slog.String("outcome", string(record.Outcome)),
		slog.Int("winner", record.Winner),
		slog.String("win_lane", string(record.WinLane)),
		slog.Int("moves", len(record.Moves)),
	)

	if err := c.history.Record(ctx, record); err != nil {
		return record, fmt.Errorf("record match: %w", err)
	}
	return record, nil
}

// playTurns loops until the game ends or a player quits
func (c *Controller) playTurns(ctx context.Context, logger *slog.Logger, record *model.MatchRecord) (bool, error) {
	for c.engine.IsPlaying() {
		view := c.engine.Snapshot()
		if err := c.renderer.RenderBoard(view); err != nil {
			return false, fmt.Errorf("render board: %w", err)
		}

		player := c.engine.CurrentPlayer()
		column, err := c.input.ChooseColumn(ctx, player, view)
		if errors.Is(err, model.ErrQuit) || errors.Is(err, context.Canceled) {
			logger.Info("player quit", slog.Int("player", player))
			return true, nil
		}
		if err != nil {
			logger.Error("failed to read input",
				slog.Int("player", player),
				slog.String("error", err.Error()),
			)
			return false, fmt.Errorf("player %d: %w: %w", player, model.ErrInputFailure, err)
		}

		if err := c.engine.MakeTurn(column); err != nil {
			logger.Error("turn rejected",
				slog.Int("player", player),
				slog.Int("column", column),
				slog.String("error", err.Error()),
			)
			return false, fmt.Errorf("player %d turn: %w", player, err)
		}
		record.Moves = append(record.Moves, column)

		logger.Debug("turn made",
			slog.Int("player", player),
			slog.Int("column", column),
		)
	}
	return false, nil
}

func outcomeOf(view *model.BoardView, quit bool) model.Outcome {
	switch {
	case quit:
		return model.OutcomeQuit
	case view.Winner >= 0:
		return model.OutcomeWon
	default:
		return model.OutcomeDraw
	}
}
