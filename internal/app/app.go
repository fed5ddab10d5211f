// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/internal/bootstrap"
	"github.com/babooppa6/gleamSolver/internal/config"
	"github.com/babooppa6/gleamSolver/internal/server"
	"github.com/babooppa6/gleamSolver/pkg/browser"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/host/mock"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/profile"
	"github.com/babooppa6/gleamSolver/pkg/service"
)

const metricsEndpoint = "/metrics"

// Options selects how the application runs.
type Options struct {
	// Serve starts the control API and metrics servers.
	Serve bool
	// Fixture solves a mock host loaded from this JSON file instead of
	// opening the campaign in a browser.
	Fixture string
}

// Simulated reports whether the application runs against a fixture.
func (o Options) Simulated() bool {
	return o.Fixture != ""
}

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg     *config.Config
	opts    Options
	profile *profile.Profile
	engine  *bootstrap.Engine

	browser           *browser.Browser
	redisClient       *redis.Client
	watcher           *profile.Watcher
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Profile (YAML engine tuning)
// 2. Redis (optional session stores)
// 3. Session stores (notifications, membership snapshots)
// 4. Host (browser page or simulated fixture) and group hub
// 5. Engine (handlers, orchestrator, session)
// 6. Profile watcher
// 7. Servers (gRPC, metrics)
// 8. Telemetry (OpenTelemetry tracing)
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg, opts: opts}
	ok := false
	defer func() {
		if !ok {
			app.cleanup()
		}
	}()

	// ============================================================
	// Step 1: Load the profile
	// ============================================================
	p, err := loadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	app.profile = p

	// ============================================================
	// Step 2: Initialize Redis
	// ============================================================
	if cfg.RedisEnabled() {
		client, err := service.NewRedisClient(ctx, service.RedisConfig{
			Addr:       cfg.RedisAddr(),
			Password:   cfg.RedisPassword,
			MaxRetries: uint64(cfg.RedisMaxRetries),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		app.redisClient = client
	}

	// ============================================================
	// Step 3: Initialize session stores
	// ============================================================
	sessionID := common.NewSessionID("gleam")
	notifier, snaps := app.initStores(sessionID)

	// ============================================================
	// Step 4: Initialize the host and the group hub
	// ============================================================
	h, hub, err := app.initHost(ctx, sessionID, snaps)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 5: Build the engine
	// ============================================================
	engine, err := bootstrap.InitEngine(ctx, bootstrap.EngineOptions{
		SessionID: sessionID,
		Profile:   p,
		Host:      h,
		Notifier:  notifier,
		Hub:       hub,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init engine: %w", err)
	}
	app.engine = engine

	// ============================================================
	// Step 6: Watch the profile
	// ============================================================
	if cfg.WatchProfile && fileExists(cfg.ProfilePath) {
		watcher, err := profile.NewWatcher(cfg.ProfilePath, p, engine.Reload)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile watcher: %w", err)
		}
		app.watcher = watcher
		engine.Session.AddCloser(watcher)
	}

	// ============================================================
	// Step 7: Setup servers
	// ============================================================
	if opts.Serve {
		app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, engine.Session)
		if err := app.grpcServer.Setup(); err != nil {
			return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
		}
		if app.redisClient != nil {
			app.grpcServer.SetHealthProbe(service.NewHealthChecker(app.redisClient))
		}

		app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, metricsEndpoint)
		if err := app.metricsServer.Setup(); err != nil {
			return nil, fmt.Errorf("failed to setup metrics server: %w", err)
		}
	}

	// ============================================================
	// Step 8: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	ok = true
	logrus.Infof("application initialized for session %s", sessionID)

	return app, nil
}

// loadProfile reads the profile file, falling back to the defaults when it
// does not exist.
func loadProfile(path string) (*profile.Profile, error) {
	if !fileExists(path) {
		logrus.Warnf("profile %s not found, using defaults", path)
		return profile.Default(), nil
	}

	p, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile from %s: %w", path, err)
	}
	logrus.Infof("loaded profile from %s", path)
	return p, nil
}

// initStores creates the notification set and the membership snapshot
// store, in redis when it is configured.
func (a *App) initStores(sessionID string) (notify.Notifier, group.SnapshotStore) {
	log := logrus.WithField("session_id", sessionID)

	if a.redisClient == nil {
		return notify.WithLogging(notify.NewMemory(), log), group.NewMemorySnapshots()
	}

	ttl := time.Duration(a.cfg.SessionTTLHours) * time.Hour
	notifier := service.NewRedisNotificationStore(a.redisClient, service.RedisNotificationStoreConfig{
		SessionID: sessionID,
		TTL:       ttl,
	})
	snaps := service.NewRedisMembershipStore(a.redisClient, service.RedisMembershipStoreConfig{TTL: ttl})

	logrus.Info("session stores backed by redis")
	return notify.WithLogging(notifier, log), snaps
}

// initHost opens the campaign, or loads the fixture in simulated runs, and
// returns the matching hub factory.
func (a *App) initHost(ctx context.Context, sessionID string, snaps group.SnapshotStore) (host.Host, bootstrap.HubFactory, error) {
	g := a.profile.Group
	log := logrus.WithField("session_id", sessionID)

	if a.opts.Simulated() {
		f, err := os.Open(a.opts.Fixture)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open fixture: %w", err)
		}
		defer f.Close()

		h, err := mock.LoadFixture(f)
		if err != nil {
			return nil, nil, err
		}

		// Every simulated join succeeds against an in-memory account.
		svc := group.NewMemoryService(true)
		hub := func(parent group.Window) group.FrameOpener {
			return group.HubOpener(parent, svc, snaps, group.HubConfig{
				HubOrigin:  g.HubOrigin,
				HostOrigin: g.HostOrigin,
				SessionID:  sessionID,
			}, log)
		}

		logrus.Infof("simulating campaign from %s", a.opts.Fixture)
		return h, hub, nil
	}

	a.browser = browser.New(browser.Config{
		DebuggerURL:       a.cfg.DebuggerURL,
		Bin:               a.cfg.ChromeBin,
		Headless:          a.cfg.Headless,
		UserDataDir:       a.cfg.ChromeUserDataDir,
		NavigationTimeout: time.Duration(a.cfg.NavigationTimeoutS) * time.Second,
	})
	if err := a.browser.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	page, err := a.browser.Open(ctx, a.cfg.CampaignURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open campaign: %w", err)
	}

	hub := func(parent group.Window) group.FrameOpener {
		return browser.HubOpener(a.browser, parent, snaps, browser.HubConfig{
			URL:        g.HubURL,
			HubOrigin:  g.HubOrigin,
			HostOrigin: g.HostOrigin,
			SessionID:  sessionID,
		}, log)
	}

	logrus.Infof("opened campaign %s", a.cfg.CampaignURL)
	return browser.NewPageHost(page), hub, nil
}

// cleanup releases what New acquired when it fails halfway.
func (a *App) cleanup() {
	if a.engine != nil {
		_ = a.engine.Session.Close()
	}
	if a.browser != nil {
		_ = a.browser.Close()
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
