// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RequesterConfig configures a Requester.
type RequesterConfig struct {
	// HubOrigin is the helper frame's origin. Requests target it and
	// responses from any other origin are rejected.
	HubOrigin string
	// Timeout bounds the wait for a join response. Zero waits until the
	// request context is done.
	Timeout time.Duration
}

// Requester runs in the solver's page. It owns the helper frame, created
// lazily on first use and shared by every request. The frame's load signal
// is awaited once per channel, never per request.
type Requester struct {
	self   Window
	opener FrameOpener
	cfg    RequesterConfig
	log    *logrus.Entry

	mu      sync.Mutex
	gate    *loadGate
	frame   Frame
	waiters map[string][]chan Response
	last    map[string]Status
	opened  int
	closed  bool
	stop    chan struct{}
	done    chan struct{}
}

type loadGate struct {
	done chan struct{}
	hub  Window
	err  error
}

// NewRequester creates a requester posting from self.
func NewRequester(self Window, opener FrameOpener, cfg RequesterConfig, log *logrus.Entry) *Requester {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Requester{
		self:    self,
		opener:  opener,
		cfg:     cfg,
		log:     log.WithField("component", "group_requester"),
		waiters: make(map[string][]chan Response),
		last:    make(map[string]Status),
	}
}

// Join asks the helper frame to join a group and waits for the response
// correlated by id.
func (r *Requester) Join(ctx context.Context, name, id string) (Status, error) {
	hub, err := r.connect(ctx)
	if err != nil {
		return "", err
	}

	ch := r.await(id)
	defer r.forget(id, ch)

	r.log.Debugf("requesting join of group %s (%s)", name, id)
	if err := hub.Deliver(r.self, Request{Action: ActionJoin, Name: name, ID: id}, r.cfg.HubOrigin); err != nil {
		return "", fmt.Errorf("failed to post join request: %w", err)
	}

	var timeout <-chan time.Time
	if r.cfg.Timeout > 0 {
		t := time.NewTimer(r.cfg.Timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case resp := <-ch:
		r.log.Debugf("group %s (%s): %s", name, id, resp.Status)
		return resp.Status, nil
	case <-timeout:
		return "", fmt.Errorf("%w: join %s", ErrTimeout, name)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Leave asks the helper frame to leave a group. The request is only posted
// when the latest response for id was StatusJoined; it reports whether a
// request was sent. No response is expected.
func (r *Requester) Leave(ctx context.Context, name, id string) (bool, error) {
	r.mu.Lock()
	status := r.last[id]
	if status == StatusJoined {
		r.last[id] = statusLeft
	}
	r.mu.Unlock()

	if status != StatusJoined {
		r.log.Debugf("not leaving group %s (%s): last status %q", name, id, status)
		return false, nil
	}

	hub, err := r.connect(ctx)
	if err != nil {
		return false, err
	}
	if err := hub.Deliver(r.self, Request{Action: ActionLeave, Name: name, ID: id}, r.cfg.HubOrigin); err != nil {
		return false, fmt.Errorf("failed to post leave request: %w", err)
	}

	r.log.Infof("left group %s (%s)", name, id)
	return true, nil
}

// LastStatus returns the latest response status received for id.
func (r *Requester) LastStatus(id string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[id]
}

// Opened returns how many times a helper frame was opened.
func (r *Requester) Opened() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opened
}

// Close tears down the helper frame and stops listening.
func (r *Requester) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	frame, stop, done := r.frame, r.stop, r.done
	r.frame = nil
	r.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	if frame != nil {
		return frame.Close()
	}
	return nil
}

// connect returns the helper window, opening and loading the frame on
// first use. Concurrent callers share one load.
func (r *Requester) connect(ctx context.Context) (Window, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	g := r.gate
	if g == nil {
		g = &loadGate{done: make(chan struct{})}
		r.gate = g
		r.mu.Unlock()
		r.open(ctx, g)
	} else {
		r.mu.Unlock()
	}

	select {
	case <-g.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.hub, nil
}

func (r *Requester) open(ctx context.Context, g *loadGate) {
	defer close(g.done)

	fail := func(err error) {
		g.err = err
		r.mu.Lock()
		if r.gate == g {
			r.gate = nil
		}
		r.mu.Unlock()
	}

	frame, err := r.opener(ctx)
	if err != nil {
		fail(fmt.Errorf("failed to open helper frame: %w", err))
		return
	}
	if err := frame.Load(ctx); err != nil {
		_ = frame.Close()
		fail(fmt.Errorf("helper frame did not load: %w", err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		_ = frame.Close()
		g.err = ErrClosed
		return
	}

	r.opened++
	r.frame = frame
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	g.hub = frame.Window()
	go r.dispatch(g.hub, r.stop, r.done)

	r.log.Info("helper frame loaded")
}

// dispatch routes validated responses to waiting requests.
func (r *Requester) dispatch(hub Window, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case msg := <-r.self.Messages():
			if msg.Source != hub {
				r.log.Debug("ignoring message from unexpected source")
				continue
			}
			if r.cfg.HubOrigin != "" && msg.Origin != r.cfg.HubOrigin {
				r.log.Warnf("ignoring message from unexpected origin %q", msg.Origin)
				continue
			}

			var resp Response
			if err := json.Unmarshal(msg.Data, &resp); err != nil || resp.ID == "" || resp.Status == "" {
				r.log.Debug("ignoring malformed response")
				continue
			}
			r.resolve(resp)
		}
	}
}

func (r *Requester) resolve(resp Response) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last[resp.ID] = resp.Status
	for _, ch := range r.waiters[resp.ID] {
		select {
		case ch <- resp:
		default:
		}
	}
	delete(r.waiters, resp.ID)
}

func (r *Requester) await(id string) chan Response {
	ch := make(chan Response, 1)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiters[id] = append(r.waiters[id], ch)
	return ch
}

func (r *Requester) forget(id string, ch chan Response) {
	r.mu.Lock()
	defer r.mu.Unlock()

	waiters := r.waiters[id]
	for i, w := range waiters {
		if w == ch {
			r.waiters[id] = append(waiters[:i], waiters[i+1:]...)
			break
		}
	}
	if len(r.waiters[id]) == 0 {
		delete(r.waiters, id)
	}
}
