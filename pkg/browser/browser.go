// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package browser drives a Chrome instance through the DevTools protocol and
// adapts the contest page and the group hub page to the engine's interfaces.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// DefaultNavigationTimeout bounds a single navigation.
const DefaultNavigationTimeout = 30 * time.Second

// ErrNotStarted is returned before Start succeeded.
var ErrNotStarted = errors.New("browser not started")

// Config configures the browser.
type Config struct {
	// DebuggerURL connects to a running Chrome instead of launching one.
	// A user profile that is already logged in to the contest and group
	// sites is the expected setup.
	DebuggerURL string
	// Bin is the Chrome binary to launch. Empty lets the launcher find one.
	Bin      string
	Headless bool
	// UserDataDir keeps cookies between launches.
	UserDataDir       string
	NavigationTimeout time.Duration
}

// Browser owns the Chrome connection.
type Browser struct {
	cfg Config
	log *logrus.Entry

	mu       sync.Mutex
	browser  *rod.Browser
	launched *launcher.Launcher
}

// New creates a browser. Call Start before opening pages.
func New(cfg Config) *Browser {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = DefaultNavigationTimeout
	}
	return &Browser{
		cfg: cfg,
		log: logrus.WithField("component", "browser"),
	}
}

// Start connects to an existing Chrome or launches a new one.
func (b *Browser) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return nil
	}

	controlURL := b.cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(b.cfg.Headless)
		if b.cfg.Bin != "" {
			l = l.Bin(b.cfg.Bin)
		}
		if b.cfg.UserDataDir != "" {
			l = l.UserDataDir(b.cfg.UserDataDir)
		}
		url, err := l.Context(ctx).Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		b.launched = l
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	b.browser = browser
	b.log.Infof("connected to chrome at %s", controlURL)
	return nil
}

// Open creates a page, navigates it to url and waits for its load event.
func (b *Browser) Open(ctx context.Context, url string) (*rod.Page, error) {
	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()

	if browser == nil {
		return nil, ErrNotStarted
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	nav := page.Context(ctx).Timeout(b.cfg.NavigationTimeout)
	if err := nav.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait for %s to load: %w", url, err)
	}

	b.log.Debugf("opened %s", url)
	return page, nil
}

// Close disconnects and, when the browser was launched here, stops Chrome.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		if b.launched != nil {
			err = b.browser.Close()
		}
		b.browser = nil
	}
	if b.launched != nil {
		b.launched.Cleanup()
		b.launched = nil
	}
	b.log.Info("browser closed")
	return err
}

// evaluator runs functions inside one page, one at a time.
type evaluator struct {
	mu   sync.Mutex
	page *rod.Page
}

// eval calls the JavaScript function js with args and decodes its result
// into out when out is not nil.
func (e *evaluator) eval(ctx context.Context, js string, out any, args ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           js,
		JSArgs:       args,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if out == nil {
		return nil
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("read result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
