// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package method

import (
	"fmt"
	"sync"

	"github.com/babooppa6/gleamSolver/pkg/classify"
)

// Registry manages available handlers, one per route kind.
// It provides thread-safe registration and lookup of handlers.
type Registry struct {
	handlers map[classify.Kind]Handler
	mu       sync.RWMutex
}

// NewRegistry creates a new empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[classify.Kind]Handler),
	}
}

// Register adds a handler to the registry.
// Returns an error if a handler for the same kind already exists.
func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[h.Kind()]; exists {
		return fmt.Errorf("handler %s already registered", h.Kind())
	}

	r.handlers[h.Kind()] = h
	return nil
}

// Unregister removes a handler from the registry.
func (r *Registry) Unregister(kind classify.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[kind]; !exists {
		return fmt.Errorf("handler %s not found", kind)
	}

	delete(r.handlers, kind)
	return nil
}

// Get returns the handler for a kind, or nil.
func (r *Registry) Get(kind classify.Kind) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.handlers[kind]
}

// GetEnabled returns the handler for a kind only if it's enabled.
func (r *Registry) GetEnabled(kind classify.Kind) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := r.handlers[kind]
	if h != nil && !h.Config().Enabled {
		return nil
	}

	return h
}

// GetAll returns all registered handlers.
func (r *Registry) GetAll() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}

	return handlers
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}
