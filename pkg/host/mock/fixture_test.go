// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture_Shipped(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "..", "config", "fixture.json"))
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer f.Close()

	h, err := LoadFixture(f)
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}

	ctx := context.Background()
	entries, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 10 {
		t.Errorf("len(entries) = %d, want 10", len(entries))
	}

	auth, _ := h.Authentications(ctx)
	if !auth["twitter"] || auth["facebook"] {
		t.Errorf("Authentications() = %v", auth)
	}

	if len(h.PendingMedia["108"]) != 2 {
		t.Errorf("PendingMedia[108] = %v, want 2 items", h.PendingMedia["108"])
	}
}
