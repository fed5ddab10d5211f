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

// UploadHandler recognizes upload entries and leaves them alone. Solving
// them needs a file the solver cannot produce.
type UploadHandler struct {
	base
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(config method.HandlerConfig) *UploadHandler {
	return &UploadHandler{
		base: base{config: config, kind: classify.KindUpload, name: "Upload"},
	}
}

// Handle always reports the entry as unsupported.
func (h *UploadHandler) Handle(ctx context.Context, d *method.Dispatch) error {
	return fmt.Errorf("%w: upload entries need a user-provided file", method.ErrUnsupportedEntry)
}
