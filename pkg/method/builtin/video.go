// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// VideoHandler marks a video entry watched and commits it.
type VideoHandler struct {
	base
	deps       *Dependencies
	watchDelay time.Duration
}

// NewVideoHandler creates a new video handler. The optional watch_delay
// parameter holds the entry open before it is marked watched.
func NewVideoHandler(config method.HandlerConfig, deps *Dependencies) *VideoHandler {
	return &VideoHandler{
		base:       base{config: config, kind: classify.KindVideo, name: "Video"},
		deps:       deps,
		watchDelay: config.GetParameterDuration("watch_delay", 0),
	}
}

// Handle marks the video watched and commits the entry.
func (h *VideoHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}

	if h.watchDelay > 0 {
		t := time.NewTimer(h.watchDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}

	if err := h.deps.Host.VideoWatched(ctx, id); err != nil {
		return fmt.Errorf("failed to mark video watched: %w", err)
	}
	return h.deps.Committer.Commit(ctx, id)
}
