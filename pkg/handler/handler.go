// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package handler exposes the solver control service over gRPC.
package handler

const (
	// Fully qualified service name
	ServiceName = "gleamsolver.control.v1.SolverControl"

	// Full method names
	TriggerMethod       = "/" + ServiceName + "/Trigger"
	GetModeMethod       = "/" + ServiceName + "/GetMode"
	SetModeMethod       = "/" + ServiceName + "/SetMode"
	NotificationsMethod = "/" + ServiceName + "/Notifications"

	// Response fields
	FieldSessionID = "session_id"
	FieldRun       = "run"
	FieldPending   = "pending"
	FieldProgress  = "progress"
	FieldTerminal  = "terminal"
	FieldErrors    = "errors"
)
