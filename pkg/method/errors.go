// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import "errors"

var (
	// ErrRetractNotSupported indicates that a handler's action cannot be undone.
	ErrRetractNotSupported = errors.New("retract not supported for this handler")

	// ErrNothingToRetract indicates that the action left nothing to undo.
	ErrNothingToRetract = errors.New("nothing to retract")

	// ErrUnsupportedEntry indicates a recognized entry the handler deliberately does not automate.
	ErrUnsupportedEntry = errors.New("entry is not automated")

	// ErrHandlerNotFound indicates that no enabled handler serves a route kind.
	ErrHandlerNotFound = errors.New("handler not found in registry")

	// ErrInvalidConfig indicates that a handler's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid handler configuration")

	// ErrHandlerPanic wraps a panic recovered from a handler.
	ErrHandlerPanic = errors.New("handler panicked")
)
