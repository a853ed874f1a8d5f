package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	now    func() time.Time
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.MatchRecord) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	now := s.now()

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL)
	pipe.ZAdd(ctx, matchIndexKey(), redis.Z{
		Score:  float64(match.FinishedAt.UnixMilli()),
		Member: string(match.ID),
	})
	if s.cfg.MatchTTL > 0 {
		pipe.ZAdd(ctx, matchExpiryKey(), redis.Z{
			Score:  float64(now.Add(s.cfg.MatchTTL).UnixMilli()),
			Member: string(match.ID),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return s.sweepExpired(ctx, now)
}

// sweepExpired drops index entries whose records have passed their TTL
func (s *Storage) sweepExpired(ctx context.Context, now time.Time) error {
	ids, err := s.client.ZRangeByScore(ctx, matchExpiryKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return err
	}
	return s.unindex(ctx, ids)
}

// unindex removes match IDs from both indexes
func (s *Storage) unindex(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	pipe := s.client.TxPipeline()
	pipe.ZRem(ctx, matchIndexKey(), members...)
	pipe.ZRem(ctx, matchExpiryKey(), members...)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.MatchRecord
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) ListMatches(ctx context.Context, limit int) ([]*model.MatchRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, matchIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.MatchRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.MatchID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.MatchRecord, 0, len(values))
	var expired []string
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var match model.MatchRecord
		if err := json.Unmarshal([]byte(str), &match); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", ids[i], err)
		}
		matches = append(matches, &match)
	}

	if err := s.unindex(ctx, expired); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.ZRem(ctx, matchIndexKey(), string(id))
	pipe.ZRem(ctx, matchExpiryKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}
