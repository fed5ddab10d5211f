// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

var (
	// ErrRunInProgress is returned by Trigger while a pass is running.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrSessionClosed is returned after Close.
	ErrSessionClosed = errors.New("session closed")
	// ErrNoRun is returned by Wait before the first Trigger.
	ErrNoRun = errors.New("no run was triggered")
)

// TriggerInfo describes a started pass.
type TriggerInfo struct {
	SessionID string
	Run       int
	Pending   int
}

// Session owns everything that lives as long as one solving session: the
// orchestrator, the mode selector, the notification set and resources
// such as the group channel that are torn down with it.
type Session struct {
	id       string
	host     host.Host
	orch     *Orchestrator
	selector *policy.Selector
	notifier notify.Notifier
	log      *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	prepareMu sync.Mutex
	prepared  bool

	mu      sync.Mutex
	closers []io.Closer
	running bool
	closed  bool
	runs    int
	done    chan struct{}
	last    *Report
	lastErr error
}

// NewSession creates a session. Runs started by Trigger use a context
// derived from ctx.
func NewSession(ctx context.Context, id string, h host.Host, orch *Orchestrator, selector *policy.Selector, notifier notify.Notifier) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		id:       id,
		host:     h,
		orch:     orch,
		selector: selector,
		notifier: notifier,
		log:      logrus.WithField("session_id", id),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// AddCloser registers a resource closed with the session.
func (s *Session) AddCloser(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, c)
}

// Trigger starts an orchestration pass in the background.
func (s *Session) Trigger(ctx context.Context) (*TriggerInfo, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.runs++
	run := s.runs
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	pending, err := s.prepare(ctx)
	if err != nil {
		s.finish(done, nil, err)
		return nil, err
	}

	log := s.log.WithField("run", run)
	log.Infof("starting run with %d pending entries", pending)

	go func() {
		report, err := s.orch.Run(s.ctx)
		if err != nil {
			log.Errorf("run failed: %v", err)
		}
		s.finish(done, report, err)
	}()

	return &TriggerInfo{SessionID: s.id, Run: run, Pending: pending}, nil
}

// prepare waits for the host until it succeeded once, then counts pending
// entries.
func (s *Session) prepare(ctx context.Context) (int, error) {
	s.prepareMu.Lock()
	if !s.prepared {
		if err := s.orch.Prepare(ctx); err != nil {
			s.prepareMu.Unlock()
			return 0, err
		}
		s.prepared = true
	}
	s.prepareMu.Unlock()

	auth, err := s.host.Authentications(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read authentications: %w", err)
	}
	entries, err := s.host.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}

	pending := 0
	for _, e := range entries {
		if e.Eligible() && auth.Satisfies(e) {
			pending++
		}
	}
	return pending, nil
}

func (s *Session) finish(done chan struct{}, report *Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.last = report
	s.lastErr = err
	close(done)
}

// Running reports whether a pass is in progress.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Wait blocks until the latest pass finished and returns its report.
func (s *Session) Wait(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil, ErrNoRun
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

// Mode returns the mode the next dispatch would use.
func (s *Session) Mode(ctx context.Context) (policy.Mode, error) {
	camp, err := s.host.Campaign(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read campaign: %w", err)
	}
	return s.selector.Resolve(camp.Type), nil
}

// SetMode overrides the mode for every later dispatch. An empty value
// restores the campaign default.
func (s *Session) SetMode(value string) error {
	if value == "" {
		s.selector.Clear()
		s.log.Info("mode override cleared")
		return nil
	}

	mode, err := policy.ParseMode(value)
	if err != nil {
		return err
	}
	s.selector.Override(mode)
	s.log.Infof("mode overridden to %s", mode)
	return nil
}

// Notifications returns the current notification set.
func (s *Session) Notifications(ctx context.Context) (*notify.Snapshot, error) {
	return s.notifier.Snapshot(ctx)
}

// Close cancels a running pass, waits for it and closes registered
// resources in reverse order.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	done := s.done
	closers := s.closers
	s.mu.Unlock()

	s.cancel()
	if done != nil {
		<-done
	}

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.log.Info("session closed")
	return errors.Join(errs...)
}
