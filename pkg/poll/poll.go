// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package poll

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is the predicate re-evaluation period.
const DefaultInterval = 500 * time.Millisecond

// ErrTimeout is returned when the condition is not met before the poller's timeout.
var ErrTimeout = errors.New("poll: condition not met before timeout")

// Condition is evaluated on every tick. Returning an error stops polling.
type Condition func(ctx context.Context) (bool, error)

// Func adapts a plain predicate to a Condition.
func Func(f func() bool) Condition {
	return func(context.Context) (bool, error) {
		return f(), nil
	}
}

// Poller re-evaluates a condition on a fixed interval.
// A zero timeout waits until the context is cancelled.
type Poller struct {
	interval time.Duration
	timeout  time.Duration
}

// New creates a poller. A non-positive interval selects DefaultInterval.
func New(interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Poller{interval: interval, timeout: timeout}
}

// Interval returns the tick period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Timeout returns the bound on a single wait, zero meaning none.
func (p *Poller) Timeout() time.Duration {
	return p.timeout
}

// Wait blocks until cond reports true. The first evaluation happens one
// interval after the call. It returns ErrTimeout when the poller's timeout
// elapses, the context's error when ctx is done, or the condition's error.
func (p *Poller) Wait(ctx context.Context, cond Condition) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, p.timeout, ErrTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-ticker.C:
			ok, err := cond(ctx)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

// Until polls cond in the background and invokes then exactly once when it
// first reports true. then is never invoked if polling ends for any other reason.
func (p *Poller) Until(ctx context.Context, cond Condition, then func()) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		err := p.Wait(ctx, cond)
		if err == nil && then != nil {
			h.once.Do(then)
		}
		h.err = err
	}()

	return h
}

// Handle controls a background poll started by Until.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Stop cancels the poll and waits for it to exit.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once polling has ended.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns why polling ended. It is only meaningful after Done is closed.
func (h *Handle) Err() error {
	<-h.done
	return h.err
}
