// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWait_TrueAfterNTicks(t *testing.T) {
	const n = 4
	var calls int32

	p := New(5*time.Millisecond, time.Second)
	err := p.Wait(context.Background(), Func(func() bool {
		return atomic.AddInt32(&calls, 1) >= n
	}))
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != n {
		t.Errorf("predicate evaluated %d times, expected %d", got, n)
	}
}

func TestWait_FirstCheckAfterOneInterval(t *testing.T) {
	interval := 30 * time.Millisecond
	p := New(interval, time.Second)

	start := time.Now()
	if err := p.Wait(context.Background(), Func(func() bool { return true })); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("condition satisfied after %v, expected at least one interval (%v)", elapsed, interval)
	}
}

func TestWait_Timeout(t *testing.T) {
	p := New(5*time.Millisecond, 30*time.Millisecond)

	err := p.Wait(context.Background(), Func(func() bool { return false }))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	p := New(5*time.Millisecond, 0)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := p.Wait(ctx, Func(func() bool { return false }))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWait_ConditionError(t *testing.T) {
	boom := errors.New("boom")
	p := New(5*time.Millisecond, time.Second)

	err := p.Wait(context.Background(), func(context.Context) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected condition error, got %v", err)
	}
}

func TestUntil_CallbackExactlyOnce(t *testing.T) {
	var calls, callbacks int32
	p := New(2*time.Millisecond, time.Second)

	h := p.Until(context.Background(), Func(func() bool {
		return atomic.AddInt32(&calls, 1) >= 3
	}), func() {
		atomic.AddInt32(&callbacks, 1)
	})

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("poll did not finish")
	}
	if err := h.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Give a stray tick the chance to fire.
	time.Sleep(20 * time.Millisecond)

	if got := atomic.LoadInt32(&callbacks); got != 1 {
		t.Errorf("callback invoked %d times, expected 1", got)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("predicate evaluated %d times after satisfaction, expected 3", got)
	}
}

func TestUntil_StopPreventsCallback(t *testing.T) {
	var callbacks int32
	p := New(2*time.Millisecond, 0)

	h := p.Until(context.Background(), Func(func() bool { return false }), func() {
		atomic.AddInt32(&callbacks, 1)
	})
	time.Sleep(10 * time.Millisecond)
	h.Stop()

	if atomic.LoadInt32(&callbacks) != 0 {
		t.Error("callback must not run after Stop")
	}
	if !errors.Is(h.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", h.Err())
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(0, -1)
	if p.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, expected %v", p.Interval(), DefaultInterval)
	}
	if p.Timeout() != 0 {
		t.Errorf("Timeout() = %v, expected 0", p.Timeout())
	}
}
