// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package group implements the cross-context join/leave protocol between
// the page running the solver (Requester) and a privileged helper frame on
// the group service's own origin (Responder).
package group

import (
	"errors"
)

// Action is the request verb.
type Action string

const (
	ActionJoin  Action = "join"
	ActionLeave Action = "leave"
)

// Status is the outcome of a join request.
type Status string

const (
	// StatusJoined means the group was joined during this session and may be left.
	StatusJoined Status = "joined"
	// StatusAlreadyJoined means the membership predates the session.
	StatusAlreadyJoined Status = "already_joined"
	// StatusNotLoggedIn means the helper frame has no user session.
	StatusNotLoggedIn Status = "not_logged_in"

	statusLeft Status = "left"
)

// Request is posted by the Requester. Leave requests get no response.
type Request struct {
	Action Action `json:"action"`
	Name   string `json:"name"`
	ID     string `json:"id"`
}

// Response answers a join request.
type Response struct {
	Status Status `json:"status"`
	Name   string `json:"name,omitempty"`
	ID     string `json:"id,omitempty"`
}

var (
	// ErrTimeout is returned when no response arrives in time.
	ErrTimeout = errors.New("group: no response from helper frame")
	// ErrClosed is returned after the channel was torn down.
	ErrClosed = errors.New("group: channel closed")
	// ErrNotLoggedIn is returned by a Service without a user session.
	ErrNotLoggedIn = errors.New("group: not logged in")
)
