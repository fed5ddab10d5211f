// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// HandlerFactory is a function that creates a handler from a configuration.
type HandlerFactory func(config HandlerConfig) (Handler, error)

var (
	factoriesMu sync.RWMutex
	// factories stores registered handler factories by kind
	factories = make(map[string]HandlerFactory)
)

// RegisterHandlerType registers a factory function for a handler kind.
// This allows external packages to register their handlers without creating import cycles.
func RegisterHandlerType(kind string, factory HandlerFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[kind] = factory
	logrus.Debugf("registered handler type: %s", kind)
}

// RegisteredTypes returns the registered handler kinds, sorted.
func RegisteredTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// CreateHandler creates a handler instance based on the configuration.
// Returns an error if the handler kind is unknown.
func CreateHandler(config HandlerConfig) (Handler, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled handler: %s", config.Kind)
		return nil, nil
	}

	logrus.Debugf("creating handler: kind=%s", config.Kind)

	factoriesMu.RLock()
	factory, exists := factories[config.Kind]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown handler kind: %s", config.Kind)
	}

	return factory(config)
}

// CreateHandlers creates multiple handler instances from a list of configurations.
// Returns all successfully created handlers and any errors encountered.
func CreateHandlers(configs []HandlerConfig) ([]Handler, []error) {
	var handlers []Handler
	var errs []error

	for _, config := range configs {
		h, err := CreateHandler(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create handler %s: %w", config.Kind, err))
			continue
		}

		if h != nil {
			handlers = append(handlers, h)
		}
	}

	return handlers, errs
}

// RegisterHandlers registers multiple handlers with the provided registry.
func RegisterHandlers(registry *Registry, configs []HandlerConfig) error {
	handlers, errs := CreateHandlers(configs)

	if len(errs) > 0 {
		logrus.Warnf("encountered %d errors while creating handlers", len(errs))
		for _, err := range errs {
			logrus.Warnf("handler creation error: %v", err)
		}
	}

	for _, h := range handlers {
		if err := registry.Register(h); err != nil {
			return fmt.Errorf("failed to register handler %s: %w", h.Kind(), err)
		}
	}

	logrus.Infof("registered %d handlers", len(handlers))
	return nil
}
