package history

import (
	"context"
	"log/slog"

	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/storage"
)

// DefaultListLimit is used when a caller asks for a non-positive number of matches
const DefaultListLimit = 20

// Service records and queries finished matches
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new history Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record stores a finished match
func (s *Service) Record(ctx context.Context, match *model.MatchRecord) error {
	if err := s.storage.SaveMatch(ctx, match); err != nil {
		s.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("match recorded",
		slog.String("match_id", string(match.ID)),
		slog.String("outcome", string(match.Outcome)),
		slog.Int("winner", match.Winner),
		slog.Int("moves", len(match.Moves)),
	)
	return nil
}

// List returns recent matches, newest first
func (s *Service) List(ctx context.Context, limit int) ([]*model.MatchRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.storage.ListMatches(ctx, limit)
}

// Get retrieves a single match
func (s *Service) Get(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	return s.storage.GetMatch(ctx, id)
}

// Delete removes a recorded match
func (s *Service) Delete(ctx context.Context, id model.MatchID) error {
	if _, err := s.storage.GetMatch(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}

	s.logger.Info("match deleted", slog.String("match_id", string(id)))
	return nil
}

// Stats aggregates outcomes over every recorded match
func (s *Service) Stats(ctx context.Context) (*model.MatchStats, error) {
	matches, err := s.storage.ListMatches(ctx, 0)
	if err != nil {
		return nil, err
	}

	stats := &model.MatchStats{
		WinsByPlayer: make(map[int]int),
		WinsByLane:   make(map[model.WinLane]int),
	}
	for _, m := range matches {
		stats.Total++
		switch m.Outcome {
		case model.OutcomeWon:
			stats.WinsByPlayer[m.Winner]++
			stats.WinsByLane[m.WinLane]++
		case model.OutcomeDraw:
			stats.Draws++
		case model.OutcomeQuit:
			stats.Quits++
		}
	}
	return stats, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Record(ctx context.Context, match *model.MatchRecord) error
	List(ctx context.Context, limit int) ([]*model.MatchRecord, error)
	Get(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	Delete(ctx context.Context, id model.MatchID) error
	Stats(ctx context.Context) (*model.MatchStats, error)
}

var _ ServiceInterface = (*Service)(nil)
