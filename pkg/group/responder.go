// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ResponderConfig configures a Responder.
type ResponderConfig struct {
	// HostOrigin is the solver page's origin. Messages from any other origin
	// are rejected and responses are only delivered to it.
	HostOrigin string
	// SessionID scopes the membership snapshot.
	SessionID string
}

// Responder runs in the helper frame. It captures the user's memberships
// once, then answers join requests and performs leaves for groups that were
// joined during the session only.
type Responder struct {
	self   Window
	parent Window
	svc    Service
	snaps  SnapshotStore
	cfg    ResponderConfig
	log    *logrus.Entry

	initOnce sync.Once
	initErr  error

	mu       sync.RWMutex
	loggedIn bool
	members  map[string]bool
}

// NewResponder creates a responder listening on self for requests from parent.
func NewResponder(self, parent Window, svc Service, snaps SnapshotStore, cfg ResponderConfig, log *logrus.Entry) *Responder {
	if snaps == nil {
		snaps = NewMemorySnapshots()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Responder{
		self:    self,
		parent:  parent,
		svc:     svc,
		snaps:   snaps,
		cfg:     cfg,
		log:     log.WithField("component", "group_responder"),
		members: make(map[string]bool),
	}
}

// Init captures the pre-session membership snapshot. Only the first call
// does any work.
func (r *Responder) Init(ctx context.Context) error {
	r.initOnce.Do(func() {
		r.initErr = r.snapshot(ctx)
	})
	return r.initErr
}

func (r *Responder) snapshot(ctx context.Context) error {
	loggedIn, err := r.svc.LoggedIn(ctx)
	if err != nil {
		return fmt.Errorf("failed to check login state: %w", err)
	}
	if !loggedIn {
		r.log.Warn("no user session in helper frame, join requests will be answered not_logged_in")
		return nil
	}

	groups, err := r.svc.Memberships(ctx)
	if err != nil {
		return fmt.Errorf("failed to read memberships: %w", err)
	}
	groups, err = r.snaps.SaveIfAbsent(ctx, r.cfg.SessionID, groups)
	if err != nil {
		return fmt.Errorf("failed to save membership snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggedIn = true
	for _, g := range groups {
		r.members[normalize(g)] = true
	}
	r.log.Infof("captured %d pre-session group memberships", len(groups))
	return nil
}

// Preexisting reports whether the group is in the pre-session snapshot.
func (r *Responder) Preexisting(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[normalize(name)]
}

// Serve initializes the responder and handles requests until ctx is done.
func (r *Responder) Serve(ctx context.Context) error {
	if err := r.Init(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-r.self.Messages():
			r.handle(ctx, msg)
		}
	}
}

func (r *Responder) handle(ctx context.Context, msg Message) {
	if msg.Source != r.parent {
		r.log.Debug("ignoring message from unexpected source")
		return
	}
	if r.cfg.HostOrigin != "" && msg.Origin != r.cfg.HostOrigin {
		r.log.Warnf("ignoring message from unexpected origin %q", msg.Origin)
		return
	}

	var req Request
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Name == "" {
		r.log.Debug("ignoring malformed request")
		return
	}

	switch req.Action {
	case ActionJoin:
		r.join(ctx, req)
	case ActionLeave:
		r.leave(ctx, req)
	default:
		r.log.Debugf("ignoring unknown action %q", req.Action)
	}
}

func (r *Responder) join(ctx context.Context, req Request) {
	r.mu.RLock()
	loggedIn := r.loggedIn
	r.mu.RUnlock()

	switch {
	case !loggedIn:
		r.reply(req, StatusNotLoggedIn)
	case r.Preexisting(req.Name):
		r.reply(req, StatusAlreadyJoined)
	default:
		if err := r.svc.Join(ctx, req.Name); err != nil {
			if errors.Is(err, ErrNotLoggedIn) {
				r.reply(req, StatusNotLoggedIn)
				return
			}
			r.log.Errorf("failed to join group %s: %v", req.Name, err)
			return
		}
		r.log.Infof("joined group %s", req.Name)
		r.reply(req, StatusJoined)
	}
}

func (r *Responder) leave(ctx context.Context, req Request) {
	r.mu.RLock()
	loggedIn := r.loggedIn
	r.mu.RUnlock()

	if !loggedIn {
		return
	}
	if r.Preexisting(req.Name) {
		r.log.Warnf("refusing to leave pre-session group %s", req.Name)
		return
	}
	if err := r.svc.Leave(ctx, req.Name, req.ID); err != nil {
		r.log.Errorf("failed to leave group %s: %v", req.Name, err)
		return
	}
	r.log.Infof("left group %s", req.Name)
}

func (r *Responder) reply(req Request, status Status) {
	target := r.cfg.HostOrigin
	if target == "" {
		target = AnyOrigin
	}
	resp := Response{Status: status, Name: req.Name, ID: req.ID}
	if err := r.parent.Deliver(r.self, resp, target); err != nil {
		r.log.Errorf("failed to post %s response for %s: %v", status, req.Name, err)
	}
}

// HubConfig configures an in-process helper frame.
type HubConfig struct {
	HubOrigin  string
	HostOrigin string
	SessionID  string
}

// HubOpener returns a FrameOpener whose frames host a Responder in a new
// in-process window talking to parent. Loading the frame captures the
// membership snapshot; closing it stops the responder.
func HubOpener(parent Window, svc Service, snaps SnapshotStore, cfg HubConfig, log *logrus.Entry) FrameOpener {
	return func(ctx context.Context) (Frame, error) {
		hub := NewLocalWindow(cfg.HubOrigin, 16)
		resp := NewResponder(hub, parent, svc, snaps, ResponderConfig{
			HostOrigin: cfg.HostOrigin,
			SessionID:  cfg.SessionID,
		}, log)

		serveCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		started := false

		load := func(ctx context.Context) error {
			if err := resp.Init(ctx); err != nil {
				return err
			}
			started = true
			go func() {
				defer close(done)
				_ = resp.Serve(serveCtx)
			}()
			return nil
		}
		closeFn := func() error {
			cancel()
			if started {
				<-done
			}
			return nil
		}

		return NewLocalFrame(hub, load, closeFn), nil
	}
}
