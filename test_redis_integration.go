// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/service"
)

// This is a manual integration test for the redis-backed session stores.
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on REDIS_HOST:REDIS_PORT (default localhost:6379)

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client, err := service.NewRedisClient(ctx, service.RedisConfig{
		Addr:     common.GetEnv("REDIS_HOST", "localhost") + ":" + common.GetEnv("REDIS_PORT", "6379"),
		Password: common.GetEnv("REDIS_PASSWORD", ""),
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer client.Close()

	sessionID := common.NewSessionID("integration")
	logrus.Infof("Testing with session ID: %s", sessionID)

	// Test 1: Membership snapshot is saved once
	logrus.Infof("=== Test 1: Membership snapshot ===")
	snaps := service.NewRedisMembershipStore(client, service.RedisMembershipStoreConfig{})
	first, err := snaps.SaveIfAbsent(ctx, sessionID, []string{"veterans"})
	if err != nil {
		logrus.Fatalf("SaveIfAbsent failed: %v", err)
	}
	second, err := snaps.SaveIfAbsent(ctx, sessionID, []string{"veterans", "gamers"})
	if err != nil {
		logrus.Fatalf("SaveIfAbsent failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		logrus.Fatalf("snapshot was overwritten: first=%v second=%v", first, second)
	}
	logrus.Infof("snapshot kept: %v", second)

	// Test 2: Notifications are deduplicated
	logrus.Infof("=== Test 2: Notification set ===")
	store := service.NewRedisNotificationStore(client, service.RedisNotificationStoreConfig{SessionID: sessionID})
	if err := store.Upsert(ctx, notify.KeyProgress, "1/3"); err != nil {
		logrus.Fatalf("Upsert failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := store.Error(ctx, notify.KeyGroup, "log in to steam"); err != nil {
			logrus.Fatalf("Error failed: %v", err)
		}
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		logrus.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Progress() != "1/3" {
		logrus.Fatalf("progress mismatch: %q", snap.Progress())
	}
	if n := len(snap.ErrorMessages()); n != 1 {
		logrus.Fatalf("expected 1 deduplicated error, got %d", n)
	}
	logrus.Infof("notifications: %+v", snap)

	// Cleanup
	keys, err := client.Keys(ctx, service.KeyPrefix+sessionID+"*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}

	logrus.Infof("All Redis integration tests passed")
}
