// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// MediaHandler shares one item of an entry's media list. The list is only
// populated after the entry was first visited.
type MediaHandler struct {
	base
	deps *Dependencies
	rand common.Rand
}

// NewMediaHandler creates a new media-share handler.
func NewMediaHandler(config method.HandlerConfig, deps *Dependencies) *MediaHandler {
	return &MediaHandler{
		base: base{config: config, kind: classify.KindMedia, name: "Media Share"},
		deps: deps,
		rand: deps.rand(),
	}
}

// Handle visits the entry, waits for its media list, selects a random item
// and commits the entry.
func (h *MediaHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}
	if err := h.deps.Host.TriggerVisit(ctx, id); err != nil {
		return fmt.Errorf("failed to trigger visit: %w", err)
	}

	var media []entry.Media
	err := h.deps.Committer.Await(ctx, id, func(ctx context.Context) (bool, error) {
		e, err := h.deps.Host.Entry(ctx, id)
		if err != nil {
			return false, err
		}
		media = e.Media
		return len(media) > 0, nil
	})
	if err != nil {
		return fmt.Errorf("media list not populated: %w", err)
	}

	pick := media[h.rand.IntN(len(media))]
	if err := h.deps.Host.SelectMedia(ctx, id, pick.ID); err != nil {
		return fmt.Errorf("failed to select media: %w", err)
	}

	d.Logger().Debugf("selected media %s of %d", pick.ID, len(media))
	return h.deps.Committer.CommitAndWait(ctx, id)
}
