package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/redisstore"
)

// RedisWatchlist stores each user's tracked stocks as one ordered JSON
// array under a per-user key.
type RedisWatchlist struct {
	store *redisstore.Store
}

var _ domrepo.WatchlistStore = (*RedisWatchlist)(nil)

func NewRedisWatchlist(store *redisstore.Store) *RedisWatchlist {
	return &RedisWatchlist{store: store}
}

func (r *RedisWatchlist) Get(ctx context.Context, userID string) ([]json.RawMessage, error) {
	data, err := r.store.Client().Get(ctx, r.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("watchlist get: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("watchlist decode: %w", err)
	}
	return entries, nil
}

func (r *RedisWatchlist) Append(ctx context.Context, userID string, entry json.RawMessage) error {
	entries, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	return r.save(ctx, userID, append(entries, entry))
}

func (r *RedisWatchlist) RemoveAt(ctx context.Context, userID string, index int) error {
	entries, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return domrepo.ErrIndexOutOfRange
	}
	return r.save(ctx, userID, append(entries[:index], entries[index+1:]...))
}

func (r *RedisWatchlist) save(ctx context.Context, userID string, entries []json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("watchlist encode: %w", err)
	}
	if err := r.store.Client().Set(ctx, r.key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("watchlist set: %w", err)
	}
	return nil
}

func (r *RedisWatchlist) key(userID string) string {
	return r.store.Key("watchlist", userID)
}
