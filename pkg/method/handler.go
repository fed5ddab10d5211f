// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

// Handler completes one category of entries.
// Handlers are registered in a Registry by kind and run by the Executor.
type Handler interface {
	// Kind returns the route kind this handler serves.
	Kind() classify.Kind

	// Name returns human-readable handler name.
	Name() string

	// Handle imitates the user action for the entry and commits it.
	Handle(ctx context.Context, d *Dispatch) error

	// Retract undoes the action after a successful Handle when the mode
	// asks for it (optional, can return ErrRetractNotSupported).
	Retract(ctx context.Context, d *Dispatch) error

	// Config returns the handler's configuration.
	Config() HandlerConfig
}

// Dispatch carries one entry through a handler.
type Dispatch struct {
	Entry *entry.Entry
	Route classify.Route
	Mode  policy.Mode
	Log   *logrus.Entry
}

// NewDispatch creates a dispatch with a logger scoped to the entry.
func NewDispatch(e *entry.Entry, route classify.Route, mode policy.Mode) *Dispatch {
	return &Dispatch{
		Entry: e,
		Route: route,
		Mode:  mode,
		Log: logrus.WithFields(logrus.Fields{
			"entry_id":   e.ID,
			"entry_type": e.Type,
			"kind":       route.Kind,
		}),
	}
}

// Logger returns the dispatch logger, falling back to the standard logger.
func (d *Dispatch) Logger() *logrus.Entry {
	if d.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return d.Log
}

// Result represents the outcome of one dispatch.
type Result struct {
	EntryID   string
	Kind      classify.Kind
	Success   bool
	Skipped   bool
	Retracted bool
	Error     error
	Metadata  map[string]interface{}
}

// NewResult creates a successful result.
func NewResult(d *Dispatch) *Result {
	return &Result{
		EntryID:  d.Entry.ID,
		Kind:     d.Route.Kind,
		Success:  true,
		Metadata: make(map[string]interface{}),
	}
}

// NewErrorResult creates a failed result with an error.
func NewErrorResult(d *Dispatch, err error) *Result {
	return &Result{
		EntryID:  d.Entry.ID,
		Kind:     d.Route.Kind,
		Success:  false,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// WithMetadata adds metadata to the result and returns it for chaining.
func (r *Result) WithMetadata(key string, value interface{}) *Result {
	r.Metadata[key] = value
	return r
}
