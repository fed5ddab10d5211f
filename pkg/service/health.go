// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the session stores are reachable.
// Without a redis client the stores live in memory and are always healthy.
type HealthChecker struct {
	client redis.UniversalClient
}

// NewHealthChecker creates a new health checker. client may be nil.
func NewHealthChecker(client redis.UniversalClient) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check pings redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.client.Ping(ctx).Err(); err != nil {
		logrus.Errorf("session store health check failed: %v", err)
		return err
	}

	logrus.Debugf("session store health check passed")
	return nil
}

// IsHealthy returns true if the session stores are accessible.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
