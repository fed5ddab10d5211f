// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/answer"
	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// QuestionHandler answers free-text entries with a random string matching
// the entry's answer pattern.
type QuestionHandler struct {
	base
	deps    *Dependencies
	answers *answer.Generator
}

// NewQuestionHandler creates a new free-text question handler. The
// repeat_cap parameter overrides the shared generator's repetition cap.
func NewQuestionHandler(config method.HandlerConfig, deps *Dependencies) *QuestionHandler {
	gen := deps.Answers
	if n := config.GetParameterInt("repeat_cap", 0); n > 0 || gen == nil {
		if n == 0 {
			n = answer.DefaultRepeatCap
		}
		gen = answer.New(answer.WithRepeatCap(n), answer.WithRand(deps.rand()))
	}

	return &QuestionHandler{
		base:    base{config: config, kind: classify.KindQuestion, name: "Question"},
		deps:    deps,
		answers: gen,
	}
}

// Handle saves a generated answer, waits until the host accepts it and
// commits the entry.
func (h *QuestionHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	id := d.Entry.ID
	pattern := classify.AnswerPattern(d.Entry)

	text, err := h.answers.Generate(pattern)
	if err != nil {
		return fmt.Errorf("failed to generate answer for %q: %w", pattern, err)
	}

	if err := h.deps.Committer.Loading(ctx, id); err != nil {
		return err
	}
	if err := h.deps.Host.SaveAnswer(ctx, id, text); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	if err := h.deps.Host.ValidateAnswer(ctx, id); err != nil {
		return fmt.Errorf("failed to validate answer: %w", err)
	}

	d.Logger().Debugf("answered %q with %q", pattern, text)

	err = h.deps.Committer.Await(ctx, id, func(ctx context.Context) (bool, error) {
		e, err := h.deps.Host.Entry(ctx, id)
		if err != nil {
			return false, err
		}
		return e.AnswerValid, nil
	})
	if err != nil {
		return fmt.Errorf("answer not accepted: %w", err)
	}

	return h.deps.Committer.CommitAndWait(ctx, id)
}
