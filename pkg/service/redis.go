// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultSessionTTL bounds how long a session's keys outlive it.
	DefaultSessionTTL = 24 * time.Hour
	// KeyPrefix is the prefix for all solver keys.
	KeyPrefix = "gleam_solver:session:"
)

// RedisConfig configures the redis connection.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries uint64
}

// NewRedisClient connects to redis, retrying the initial ping with
// exponential backoff.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 5
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)

	err := backoff.Retry(func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Warnf("redis connection failed: %v, retrying...", err)
			return err
		}
		return nil
	}, b)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logrus.Infof("connected to redis at %s", cfg.Addr)
	return client, nil
}

// makeSessionKey creates a redis key scoped to a session.
func makeSessionKey(sessionID string, parts ...string) string {
	key := KeyPrefix + sessionID
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
