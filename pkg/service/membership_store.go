// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/group"
)

// RedisMembershipStore keeps the responder's pre-session membership
// snapshot. The first snapshot saved for a session wins.
type RedisMembershipStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisMembershipStoreConfig configures a RedisMembershipStore.
type RedisMembershipStoreConfig struct {
	TTL time.Duration
}

// NewRedisMembershipStore creates a new redis-backed snapshot store.
func NewRedisMembershipStore(client redis.UniversalClient, cfg RedisMembershipStoreConfig) *RedisMembershipStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	return &RedisMembershipStore{client: client, ttl: cfg.TTL}
}

// SaveIfAbsent stores groups as the session's snapshot unless one exists,
// and returns the stored snapshot.
func (r *RedisMembershipStore) SaveIfAbsent(ctx context.Context, sessionID string, groups []string) ([]string, error) {
	key := makeSessionKey(sessionID, "memberships")

	if groups == nil {
		groups = []string{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ok, err := r.client.SetNX(ctx, key, data, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	if ok {
		logrus.Infof("saved membership snapshot for session %s (%d groups)", sessionID, len(groups))
		return groups, nil
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	logrus.Infof("reusing membership snapshot for session %s (%d groups)", sessionID, len(stored))
	return stored, nil
}

var _ group.SnapshotStore = (*RedisMembershipStore)(nil)
