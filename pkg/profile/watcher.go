// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

const defaultDebounce = 200 * time.Millisecond

// Apply pushes the runtime-tunable parts of a profile into the engine:
// the mode override and the disabled entry types.
func Apply(p *Profile, selector *policy.Selector, classifier *classify.Classifier) {
	if mode, ok := p.ModeOverride(); ok {
		selector.Override(mode)
	} else {
		selector.Clear()
	}
	classifier.SetDisabled(p.Disabled())
}

// Watcher reloads a profile file when it changes. Invalid revisions are
// logged and ignored; the last valid profile stays current.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Profile)
	debounce time.Duration
	log      *logrus.Entry

	mu      sync.RWMutex
	current *Profile
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path, seeded with the already loaded
// profile.
func NewWatcher(path string, current *Profile, onChange func(*Profile)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		onChange: onChange,
		debounce: defaultDebounce,
		log:      logrus.WithField("profile", path),
		current:  current,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Current returns the last valid profile.
func (w *Watcher) Current() *Profile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are followed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.log.Info("watching profile for changes")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Errorf("error closing watcher: %v", err)
	}
}

// Close implements io.Closer.
func (w *Watcher) Close() error {
	w.Stop()
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %v", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		w.log.Warnf("ignoring profile change: %v", err)
		return
	}

	w.mu.Lock()
	w.current = p
	w.mu.Unlock()

	w.log.Infof("profile reloaded (mode=%q, %d disabled types)", p.Mode, len(p.DisabledTypes))
	if w.onChange != nil {
		w.onChange(p)
	}
}
