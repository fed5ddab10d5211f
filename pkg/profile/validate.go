// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"fmt"
	"strings"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/method"
)

// ValidateWiring validates that the handler registry matches the profile.
// It checks that every enabled handler in the profile has a registered
// instance, which catches a forgotten handler type factory.
func ValidateWiring(registry *method.Registry, p *Profile) error {
	var errors []string

	for _, hc := range p.Handlers {
		if !hc.Enabled {
			continue
		}

		if registry.GetEnabled(classify.Kind(hc.Kind)) == nil {
			errors = append(errors, fmt.Sprintf("handler '%s' is enabled in profile but not registered", hc.Kind))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("handler wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
