// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	redisstore "github.com/taibuivan/locallibrary/internal/platform/redis"
)

// visitsField is the per-session key suffix of the home page counter.
const visitsField = "num_visits"

// RedisVisitStore implements [VisitStore] with one counter key per session.
type RedisVisitStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisVisitStore creates a visit store whose keys expire with the session.
func NewRedisVisitStore(client redis.UniversalClient, ttl time.Duration) *RedisVisitStore {
	return &RedisVisitStore{client: client, ttl: ttl}
}

/*
Hit increments the session's counter and refreshes its expiry.

Parameters:
  - context: context.Context
  - sessionID: Browsing session id from the session cookie

Returns:
  - int64: Visits recorded before this one
  - error: Connectivity errors
*/
func (store *RedisVisitStore) Hit(context context.Context, sessionID string) (int64, error) {
	key := redisstore.SessionKey(constants.RedisPrefixSession, sessionID, visitsField)

	var incr *redis.IntCmd
	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, key)
		pipe.Expire(context, key, store.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_visit_counter_failed: %w", err)
	}

	return incr.Val() - 1, nil
}
