// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"testing"
	"time"

	"github.com/babooppa6/gleamSolver/pkg/classify"
)

const testKind = "factory_test_kind"

func init() {
	RegisterHandlerType(testKind, func(config HandlerConfig) (Handler, error) {
		return &testHandler{kind: classify.Kind(testKind), config: config}, nil
	})
}

func TestCreateHandler(t *testing.T) {
	h, err := CreateHandler(HandlerConfig{Kind: testKind, Enabled: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h == nil || h.Kind() != classify.Kind(testKind) {
		t.Fatalf("Expected handler of kind %s, got %v", testKind, h)
	}
}

func TestCreateHandler_Disabled(t *testing.T) {
	h, err := CreateHandler(HandlerConfig{Kind: testKind, Enabled: false})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h != nil {
		t.Error("Expected nil handler for disabled config")
	}
}

func TestCreateHandler_UnknownKind(t *testing.T) {
	h, err := CreateHandler(HandlerConfig{Kind: "unknown_kind", Enabled: true})
	if err == nil {
		t.Error("Expected error for unknown handler kind")
	}
	if h != nil {
		t.Error("Expected nil handler for unknown kind")
	}
}

func TestRegisterHandlers_WithErrors(t *testing.T) {
	registry := NewRegistry()
	configs := []HandlerConfig{
		{Kind: testKind, Enabled: true},
		{Kind: "unknown_kind", Enabled: true},
	}

	if err := RegisterHandlers(registry, configs); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Expected 1 registered handler, got %d", registry.Count())
	}
}

func TestRegisteredTypes(t *testing.T) {
	found := false
	for _, k := range RegisteredTypes() {
		if k == testKind {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s in registered types", testKind)
	}
}

func TestHandlerConfig_Parameters(t *testing.T) {
	c := HandlerConfig{Parameters: map[string]interface{}{
		"count":    2,
		"ratio":    float64(3),
		"name":     "x",
		"on":       true,
		"wait":     "250ms",
		"seconds":  2,
		"patterns": []interface{}{"a", 1, "b"},
	}}

	if got := c.GetParameterInt("count", 0); got != 2 {
		t.Errorf("GetParameterInt = %d, expected 2", got)
	}
	if got := c.GetParameterInt("ratio", 0); got != 3 {
		t.Errorf("GetParameterInt(float) = %d, expected 3", got)
	}
	if got := c.GetParameterString("name", ""); got != "x" {
		t.Errorf("GetParameterString = %q, expected x", got)
	}
	if !c.GetParameterBool("on", false) {
		t.Error("GetParameterBool = false, expected true")
	}
	if got := c.GetParameterDuration("wait", 0); got != 250*time.Millisecond {
		t.Errorf("GetParameterDuration(string) = %v, expected 250ms", got)
	}
	if got := c.GetParameterDuration("seconds", 0); got != 2*time.Second {
		t.Errorf("GetParameterDuration(int) = %v, expected 2s", got)
	}
	if got := c.GetParameterStringSlice("patterns", nil); len(got) != 2 {
		t.Errorf("GetParameterStringSlice = %v, expected 2 strings", got)
	}
	if got := c.GetParameterString("missing", "def"); got != "def" {
		t.Errorf("default not returned: %q", got)
	}
}
