package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	matches map[model.MatchID]*model.MatchRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches: make(map[model.MatchID]*model.MatchRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = cloneMatch(match)
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return cloneMatch(match), nil
}

func (s *Storage) ListMatches(ctx context.Context, limit int) ([]*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*model.MatchRecord, 0, len(s.matches))
	for _, match := range s.matches {
		matches = append(matches, cloneMatch(match))
	}
	slices.SortFunc(matches, func(a, b *model.MatchRecord) int {
		if c := b.FinishedAt.Compare(a.FinishedAt); c != 0 {
			return c
		}
		// Stable order for matches finishing at the same instant
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

// cloneMatch copies a record so callers never share the stored move slice
func cloneMatch(match *model.MatchRecord) *model.MatchRecord {
	clone := *match
	clone.Moves = slices.Clone(match.Moves)
	return &clone
}
