// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// ErrNoChoices is returned for a choice entry without a choice list.
var ErrNoChoices = errors.New("entry has no choices")

// ChoiceHandler answers multiple-choice entries with a uniformly random
// choice.
type ChoiceHandler struct {
	base
	deps *Dependencies
	rand common.Rand
}

// NewChoiceHandler creates a new multiple-choice handler.
func NewChoiceHandler(config method.HandlerConfig, deps *Dependencies) *ChoiceHandler {
	return &ChoiceHandler{
		base: base{config: config, kind: classify.KindChoice, name: "Multiple Choice"},
		deps: deps,
		rand: deps.rand(),
	}
}

// Handle stores the picked choice in the shape the entry's template
// expects and commits the entry.
func (h *ChoiceHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID

	choices := d.Entry.Choices()
	if len(choices) == 0 {
		return fmt.Errorf("%w: %s", ErrNoChoices, id)
	}
	choice := choices[h.rand.IntN(len(choices))]

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}

	var err error
	switch d.Route.Variant {
	case classify.VariantImage:
		err = h.deps.Host.ChooseImage(ctx, id, choice)
	case classify.VariantCheckbox:
		err = h.deps.Host.SaveAnswer(ctx, id, map[string]bool{choice: true})
	default:
		err = h.deps.Host.SaveAnswer(ctx, id, choice)
	}
	if err != nil {
		return fmt.Errorf("failed to store choice: %w", err)
	}

	d.Logger().Debugf("picked choice %q of %d", choice, len(choices))
	return h.deps.Committer.CommitAndWait(ctx, id)
}
