// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// ClickHandler marks an entry visited and commits it.
type ClickHandler struct {
	base
	deps *Dependencies
}

// NewClickHandler creates a new click handler.
func NewClickHandler(config method.HandlerConfig, deps *Dependencies) *ClickHandler {
	return &ClickHandler{
		base: base{config: config, kind: classify.KindClick, name: "Click"},
		deps: deps,
	}
}

// Handle triggers the visit and commits the entry.
func (h *ClickHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}
	if err := h.deps.Host.TriggerVisit(ctx, id); err != nil {
		return fmt.Errorf("failed to trigger visit: %w", err)
	}
	return h.deps.Committer.Commit(ctx, id)
}
