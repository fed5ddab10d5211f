// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group

import (
	"context"
	"strings"
	"sync"
)

// Service performs group operations on behalf of the logged-in user.
type Service interface {
	LoggedIn(ctx context.Context) (bool, error)
	// Memberships lists the names of the groups the user belongs to.
	Memberships(ctx context.Context) ([]string, error)
	Join(ctx context.Context, name string) error
	Leave(ctx context.Context, name, id string) error
}

// SnapshotStore keeps the pre-session membership snapshot.
type SnapshotStore interface {
	// SaveIfAbsent stores groups for the session unless a snapshot already
	// exists, and returns the snapshot in effect.
	SaveIfAbsent(ctx context.Context, sessionID string, groups []string) ([]string, error)
}

// MemorySnapshots is an in-process SnapshotStore.
type MemorySnapshots struct {
	mu        sync.Mutex
	snapshots map[string][]string
}

// NewMemorySnapshots creates an empty store.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{snapshots: make(map[string][]string)}
}

func (m *MemorySnapshots) SaveIfAbsent(ctx context.Context, sessionID string, groups []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.snapshots[sessionID]; ok {
		return append([]string(nil), existing...), nil
	}
	m.snapshots[sessionID] = append([]string(nil), groups...)
	return groups, nil
}

// MemoryService is an in-process Service used by tests and dry runs.
type MemoryService struct {
	mu       sync.Mutex
	loggedIn bool
	groups   map[string]bool

	// JoinErr fails every Join when set.
	JoinErr error

	Joins  []string
	Leaves []string
}

// NewMemoryService creates a service whose user belongs to groups.
func NewMemoryService(loggedIn bool, groups ...string) *MemoryService {
	s := &MemoryService{loggedIn: loggedIn, groups: make(map[string]bool)}
	for _, g := range groups {
		s.groups[normalize(g)] = true
	}
	return s
}

func (s *MemoryService) LoggedIn(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn, nil
}

func (s *MemoryService) Memberships(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return nil, ErrNotLoggedIn
	}
	groups := make([]string, 0, len(s.groups))
	for g := range s.groups {
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *MemoryService) Join(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return ErrNotLoggedIn
	}
	if s.JoinErr != nil {
		return s.JoinErr
	}
	s.Joins = append(s.Joins, name)
	s.groups[normalize(name)] = true
	return nil
}

func (s *MemoryService) Leave(ctx context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn {
		return ErrNotLoggedIn
	}
	s.Leaves = append(s.Leaves, name)
	delete(s.groups, normalize(name))
	return nil
}

// Member reports whether the user currently belongs to the group.
func (s *MemoryService) Member(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups[normalize(name)]
}

// LeaveCount returns how many leaves were performed.
func (s *MemoryService) LeaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Leaves)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
