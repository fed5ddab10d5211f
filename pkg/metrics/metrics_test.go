// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := Register(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	EntriesSkipped.WithLabelValues("mode").Inc()
	Progress.Set(0.5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{"gleam_solver_entries_skipped_total", "gleam_solver_progress_ratio"} {
		if !found[name] {
			t.Errorf("metric %s not gathered", name)
		}
	}
}
