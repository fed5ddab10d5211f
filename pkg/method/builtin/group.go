// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/metrics"
	"github.com/babooppa6/gleamSolver/pkg/notify"
)

// NotLoggedInMessage is surfaced when the helper frame has no session.
const NotLoggedInMessage = "Steam group entries were marked entered without joining: log in to steamcommunity.com and rerun to join them"

// ErrMissingGroup is returned for a group entry without a group name or id.
var ErrMissingGroup = errors.New("entry has no group")

// GroupHandler joins a group through the group protocol before committing.
// Retract leaves it again, but only a group joined by this session.
type GroupHandler struct {
	base
	deps *Dependencies
}

// NewGroupHandler creates a new group-join handler.
func NewGroupHandler(config method.HandlerConfig, deps *Dependencies) *GroupHandler {
	return &GroupHandler{
		base: base{config: config, kind: classify.KindGroup, name: "Group Join"},
		deps: deps,
	}
}

// Handle joins the group and commits the entry once the protocol resolved.
// A not_logged_in response still commits the entry and records a warning.
func (h *GroupHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID
	name, gid := d.Entry.GroupName(), d.Entry.GroupID()
	if name == "" || gid == "" {
		return fmt.Errorf("%w: %s", ErrMissingGroup, id)
	}

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}

	status, err := h.deps.Groups.Join(ctx, name, gid)
	if err != nil {
		return fmt.Errorf("failed to join group %s: %w", name, err)
	}
	metrics.GroupResponses.WithLabelValues(string(status)).Inc()

	switch status {
	case group.StatusNotLoggedIn:
		d.Logger().Warnf("group %s: not logged in", name)
		if h.deps.Notifier != nil {
			if _, err := h.deps.Notifier.Error(ctx, notify.KeyGroup, NotLoggedInMessage); err != nil {
				d.Logger().Errorf("failed to record notification: %v", err)
			}
		}
		return h.deps.Committer.Commit(ctx, id)
	case group.StatusJoined, group.StatusAlreadyJoined:
		d.Logger().Infof("group %s: %s", name, status)
		return h.deps.Committer.CommitAndWait(ctx, id)
	default:
		return fmt.Errorf("unexpected group status %q", status)
	}
}

// Retract leaves the group if this session joined it.
func (h *GroupHandler) Retract(ctx context.Context, d *method.Dispatch) error {
	sent, err := h.deps.Groups.Leave(ctx, d.Entry.GroupName(), d.Entry.GroupID())
	if err != nil {
		return err
	}
	if !sent {
		return method.ErrNothingToRetract
	}
	return nil
}
