// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/method/builtin"
	"github.com/babooppa6/gleamSolver/pkg/profile"
)

// InitHandlerExecutor creates the handler registry from the profile's
// handler list and wraps it in an executor.
//
// Steps to add a new handler kind:
// 1. Create the handler in pkg/method/builtin/
// 2. Register its factory in pkg/method/builtin/init.go
// 3. Teach pkg/classify which entries map to the new kind
// 4. Add it to the handlers list in config/solver.yaml
func InitHandlerExecutor(p *profile.Profile, deps *builtin.Dependencies) (*method.Executor, *method.Registry, error) {
	builtin.RegisterHandlers(deps)

	registry := method.NewRegistry()
	if err := method.RegisterHandlers(registry, p.HandlerConfigs()); err != nil {
		return nil, nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	if err := profile.ValidateWiring(registry, p); err != nil {
		return nil, nil, fmt.Errorf("handler wiring validation failed: %w", err)
	}
	logrus.Infof("registered %d handlers, wiring validation passed", registry.Count())

	return method.NewExecutor(registry), registry, nil
}
