// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/babooppa6/gleamSolver/pkg/campaign"
	"github.com/babooppa6/gleamSolver/pkg/notify"
)

const shutdownTimeout = 15 * time.Second

// Serve runs the control API and metrics servers until ctx is done, then
// shuts everything down. Runs are started through the control API.
func (a *App) Serve(ctx context.Context) error {
	if a.grpcServer == nil || a.metricsServer == nil {
		return errors.New("servers were not set up")
	}

	if err := a.startWatcher(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.grpcServer.Serve(gctx) })
	g.Go(func() error { return a.metricsServer.Serve(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	logrus.Info("application started successfully")
	return g.Wait()
}

// Solve runs one orchestration pass, waits for it and shuts down.
func (a *App) Solve(ctx context.Context) (*campaign.Report, *notify.Snapshot, error) {
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = a.Shutdown(shutdownCtx)
	}()

	if err := a.startWatcher(ctx); err != nil {
		return nil, nil, err
	}

	session := a.engine.Session
	info, err := session.Trigger(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start run: %w", err)
	}
	logrus.Infof("run %d started with %d pending entries", info.Run, info.Pending)

	report, err := session.Wait(ctx)
	if err != nil {
		return report, nil, err
	}

	snap, err := session.Notifications(ctx)
	if err != nil {
		return report, nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return report, snap, nil
}

func (a *App) startWatcher(ctx context.Context) error {
	if a.watcher == nil {
		return nil
	}
	if err := a.watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch profile: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down all application components.
//
// Components are shut down in reverse dependency order:
// 1. Stop accepting new requests (gRPC + metrics servers)
// 2. Close the session (running pass, group channel, profile watcher)
// 3. Close external connections (browser, Redis)
// 4. Flush telemetry data (OpenTelemetry)
//
// Shutdown errors are logged but don't stop the shutdown sequence.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Shutdown servers (stop accepting new requests)
	// ============================================================
	if a.grpcServer != nil {
		if err := a.grpcServer.Shutdown(ctx); err != nil {
			logrus.Errorf("gRPC server shutdown error: %v", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	// ============================================================
	// Step 2: Close the session
	// ============================================================
	if err := a.engine.Session.Close(); err != nil {
		logrus.Errorf("session close error: %v", err)
	}

	// ============================================================
	// Step 3: Close external connections
	// ============================================================
	if a.browser != nil {
		if err := a.browser.Close(); err != nil {
			logrus.Errorf("browser close error: %v", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	// ============================================================
	// Step 4: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}

// Session returns the solving session.
func (a *App) Session() *campaign.Session {
	return a.engine.Session
}
