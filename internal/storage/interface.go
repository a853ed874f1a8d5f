package storage

import (
	"context"

	"github.com/mcoot/connectn/internal/model"
)

// Storage defines the interface for match history persistence
type Storage interface {
	SaveMatch(ctx context.Context, match *model.MatchRecord) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	// ListMatches returns up to limit matches, most recently finished first.
	// A limit of zero or less returns every match.
	ListMatches(ctx context.Context, limit int) ([]*model.MatchRecord, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
}
