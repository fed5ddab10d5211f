// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notify

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Well-known notification keys.
const (
	KeyProgress = "progress"
	KeyTerminal = "terminal"
	KeyGroup    = "group"
)

// Notifier is the user-facing notification area: keyed upserts plus keyed
// error messages deduplicated by text.
type Notifier interface {
	// Upsert sets the message stored under key.
	Upsert(ctx context.Context, key, message string) error
	// Error records message under key unless the same text is already
	// recorded there. It reports whether the message was new.
	Error(ctx context.Context, key, message string) (bool, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a point-in-time copy of the notification set.
type Snapshot struct {
	Notes  map[string]string   `json:"notes"`
	Errors map[string][]string `json:"errors"`
}

// Progress returns the "processed/total" note, if any.
func (s *Snapshot) Progress() string {
	return s.Notes[KeyProgress]
}

// Terminal returns the terminal status note, if any.
func (s *Snapshot) Terminal() string {
	return s.Notes[KeyTerminal]
}

// ErrorMessages flattens errors in key order.
func (s *Snapshot) ErrorMessages() []string {
	keys := make([]string, 0, len(s.Errors))
	for k := range s.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		out = append(out, s.Errors[k]...)
	}
	return out
}

// Memory is an in-process Notifier.
type Memory struct {
	mu     sync.RWMutex
	notes  map[string]string
	errors map[string][]string
}

// NewMemory creates an empty in-process notifier.
func NewMemory() *Memory {
	return &Memory{
		notes:  make(map[string]string),
		errors: make(map[string][]string),
	}
}

func (m *Memory) Upsert(ctx context.Context, key, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes[key] = message
	return nil
}

func (m *Memory) Error(ctx context.Context, key, message string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.errors[key] {
		if existing == message {
			return false, nil
		}
	}
	m.errors[key] = append(m.errors[key], message)
	return true, nil
}

func (m *Memory) Snapshot(ctx context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &Snapshot{
		Notes:  make(map[string]string, len(m.notes)),
		Errors: make(map[string][]string, len(m.errors)),
	}
	for k, v := range m.notes {
		s.Notes[k] = v
	}
	for k, v := range m.errors {
		s.Errors[k] = append([]string(nil), v...)
	}
	return s, nil
}

// Logging wraps a Notifier and mirrors every new notification to a logger.
type Logging struct {
	next Notifier
	log  *logrus.Entry
}

// WithLogging decorates next with logrus output.
func WithLogging(next Notifier, log *logrus.Entry) *Logging {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Logging{next: next, log: log}
}

func (l *Logging) Upsert(ctx context.Context, key, message string) error {
	l.log.WithField("key", key).Info(message)
	return l.next.Upsert(ctx, key, message)
}

func (l *Logging) Error(ctx context.Context, key, message string) (bool, error) {
	added, err := l.next.Error(ctx, key, message)
	if err != nil {
		return false, err
	}
	if added {
		l.log.WithField("key", key).Warn(message)
	}
	return added, nil
}

func (l *Logging) Snapshot(ctx context.Context) (*Snapshot, error) {
	return l.next.Snapshot(ctx)
}
