// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package host defines the narrow adapter over the contest widget's
// client-side state. The engine reads entries and campaign state through
// State and imitates user actions through Commands.
package host

import (
	"context"
	"errors"

	"github.com/babooppa6/gleamSolver/pkg/entry"
)

var (
	// ErrNotLoaded is returned when the widget has not finished loading.
	ErrNotLoaded = errors.New("host widget not loaded")
	// ErrEntryNotFound is returned for an unknown entry id.
	ErrEntryNotFound = errors.New("entry not found")
)

// State exposes read access to the widget.
type State interface {
	// Loaded reports whether the widget finished rendering its entries.
	Loaded(ctx context.Context) (bool, error)
	Campaign(ctx context.Context) (*entry.Campaign, error)
	Authentications(ctx context.Context) (entry.Authentications, error)
	// Entries returns fresh snapshots of every rendered entry.
	Entries(ctx context.Context) ([]*entry.Entry, error)
	// Entry returns a fresh snapshot of one entry.
	Entry(ctx context.Context, id string) (*entry.Entry, error)
}

// Commands imitates the side effects of genuine user actions.
type Commands interface {
	// RevealHidden marks every entry mandatory so the widget renders all of them.
	RevealHidden(ctx context.Context) error
	// SetEntering toggles the loading indicator of an entry.
	SetEntering(ctx context.Context, id string, entering bool) error
	TriggerVisit(ctx context.Context, id string) error
	VideoWatched(ctx context.Context, id string) error
	// SaveAnswer writes form data keyed by entry id. value is a string or
	// a map[string]bool for checkbox entries.
	SaveAnswer(ctx context.Context, id string, value any) error
	ValidateAnswer(ctx context.Context, id string) error
	ChooseImage(ctx context.Context, id string, choice string) error
	SelectMedia(ctx context.Context, id string, mediaID string) error
	// MarkEntered invokes the widget's "entry link clicked" action.
	MarkEntered(ctx context.Context, id string) error
	// Verify asks the widget to verify the entry.
	Verify(ctx context.Context, id string) error
}

// Host is the full adapter.
type Host interface {
	State
	Commands
}
