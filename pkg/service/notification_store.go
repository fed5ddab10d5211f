// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/babooppa6/gleamSolver/pkg/notify"
)

// RedisNotificationStore keeps a session's notification set in redis.
//
// Layout under the session prefix:
//
//	notes            hash   key -> message
//	error_keys       set    keys with at least one error
//	errors:<key>     set    messages, for deduplication
//	error_log:<key>  list   messages in arrival order
type RedisNotificationStore struct {
	client    redis.UniversalClient
	sessionID string
	ttl       time.Duration
}

// RedisNotificationStoreConfig configures a RedisNotificationStore.
type RedisNotificationStoreConfig struct {
	SessionID string
	TTL       time.Duration
}

// NewRedisNotificationStore creates a new redis-backed notification set.
func NewRedisNotificationStore(client redis.UniversalClient, cfg RedisNotificationStoreConfig) *RedisNotificationStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	return &RedisNotificationStore{
		client:    client,
		sessionID: cfg.SessionID,
		ttl:       cfg.TTL,
	}
}

// Upsert sets the message stored under key.
func (r *RedisNotificationStore) Upsert(ctx context.Context, key, message string) error {
	notes := makeSessionKey(r.sessionID, "notes")

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, notes, key, message)
		p.Expire(ctx, notes, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert notification %s: %w", key, err)
	}
	return nil
}

// recordError appends ARGV[1] to the log unless the seen set already holds
// it. The log is written first so a failed push leaves nothing behind.
//
// KEYS: seen, log, error_keys. ARGV: message, error key, ttl in ms.
var recordError = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[1])
redis.call("SADD", KEYS[1], ARGV[1])
redis.call("SADD", KEYS[3], ARGV[2])
for i = 1, 3 do
	redis.call("PEXPIRE", KEYS[i], ARGV[3])
end
return 1
`)

// Error records message under key unless the same text is already there.
func (r *RedisNotificationStore) Error(ctx context.Context, key, message string) (bool, error) {
	keys := []string{
		makeSessionKey(r.sessionID, "errors", key),
		makeSessionKey(r.sessionID, "error_log", key),
		makeSessionKey(r.sessionID, "error_keys"),
	}

	added, err := recordError.Run(ctx, r.client, keys, message, key, r.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to record error %s: %w", key, err)
	}
	return added == 1, nil
}

// Snapshot reads the whole notification set.
func (r *RedisNotificationStore) Snapshot(ctx context.Context) (*notify.Snapshot, error) {
	notes, err := r.client.HGetAll(ctx, makeSessionKey(r.sessionID, "notes")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	keys, err := r.client.SMembers(ctx, makeSessionKey(r.sessionID, "error_keys")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read error keys: %w", err)
	}

	s := &notify.Snapshot{
		Notes:  notes,
		Errors: make(map[string][]string, len(keys)),
	}
	for _, k := range keys {
		msgs, err := r.client.LRange(ctx, makeSessionKey(r.sessionID, "error_log", k), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read errors %s: %w", k, err)
		}
		s.Errors[k] = msgs
	}
	return s, nil
}

var _ notify.Notifier = (*RedisNotificationStore)(nil)
