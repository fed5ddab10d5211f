// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"context"
	"errors"
	"fmt"

	"github.com/babooppa6/gleamSolver/pkg/metrics"
)

// Executor runs handlers for dispatched entries. Failures and panics are
// contained in the returned Result and never propagate to the caller.
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new handler executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
	}
}

// Execute runs the handler serving the dispatch's route. When the handler
// succeeds and the mode retracts, the handler's Retract runs afterwards.
func (e *Executor) Execute(ctx context.Context, d *Dispatch) (result *Result) {
	log := d.Logger()
	kind := string(d.Route.Kind)

	h := e.registry.GetEnabled(d.Route.Kind)
	if h == nil {
		err := fmt.Errorf("%w: %s", ErrHandlerNotFound, d.Route.Kind)
		log.Warnf("%v", err)
		return NewErrorResult(d, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrHandlerPanic, r)
			log.Errorf("handler %s failed: %v", h.Name(), err)
			metrics.HandlerFailures.WithLabelValues(kind).Inc()
			result = NewErrorResult(d, err)
		}
	}()

	log.Infof("executing handler %s (%s)", h.Name(), d.Route)
	metrics.EntriesDispatched.WithLabelValues(kind, d.Route.Tier.String()).Inc()

	err := h.Handle(ctx, d)
	if errors.Is(err, ErrUnsupportedEntry) {
		log.Warnf("handler %s skipped entry: %v", h.Name(), err)
		res := NewResult(d)
		res.Skipped = true
		return res
	}
	if err != nil {
		log.Errorf("handler %s failed: %v", h.Name(), err)
		metrics.HandlerFailures.WithLabelValues(kind).Inc()
		return NewErrorResult(d, err)
	}

	log.Infof("handler %s completed successfully", h.Name())
	result = NewResult(d)

	if d.Mode.Retracts() {
		result.Retracted = e.retract(ctx, h, d)
	}
	return result
}

// retract undoes a completed action and reports whether anything was undone.
func (e *Executor) retract(ctx context.Context, h Handler, d *Dispatch) bool {
	log := d.Logger()

	err := h.Retract(ctx, d)
	switch {
	case err == nil:
		log.Infof("handler %s retracted successfully", h.Name())
		return true
	case errors.Is(err, ErrRetractNotSupported), errors.Is(err, ErrNothingToRetract):
		log.Debugf("handler %s: %v", h.Name(), err)
	default:
		log.Errorf("failed to retract handler %s: %v", h.Name(), err)
	}
	return false
}

// GetRegistry returns the handler registry used by this executor.
func (e *Executor) GetRegistry() *Registry {
	return e.registry
}
