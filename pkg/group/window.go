// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// AnyOrigin delivers to a window regardless of its origin.
const AnyOrigin = "*"

// Message is one delivered cross-context message.
type Message struct {
	// Source is the window that posted the message.
	Source Window
	// Origin is the source window's origin.
	Origin string
	Data   json.RawMessage
}

// Window is one browsing context reachable by structured messages.
// Delivery order is FIFO per receiving window only.
type Window interface {
	Origin() string
	// Deliver posts data to this window on behalf of source. The message is
	// dropped without error when targetOrigin does not match the window.
	Deliver(source Window, data any, targetOrigin string) error
	// Messages is the inbound stream of this window.
	Messages() <-chan Message
}

// LocalWindow is an in-process Window backed by a buffered channel.
type LocalWindow struct {
	origin string
	inbox  chan Message
	done   chan struct{}
	once   sync.Once
}

// NewLocalWindow creates a window with the given origin and inbox size.
func NewLocalWindow(origin string, buffer int) *LocalWindow {
	if buffer < 1 {
		buffer = 1
	}
	return &LocalWindow{
		origin: origin,
		inbox:  make(chan Message, buffer),
		done:   make(chan struct{}),
	}
}

func (w *LocalWindow) Origin() string {
	return w.origin
}

func (w *LocalWindow) Messages() <-chan Message {
	return w.inbox
}

func (w *LocalWindow) Deliver(source Window, data any, targetOrigin string) error {
	if targetOrigin != AnyOrigin && targetOrigin != w.origin {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	msg := Message{Source: source, Data: raw}
	if source != nil {
		msg.Origin = source.Origin()
	}

	select {
	case <-w.done:
		return ErrClosed
	default:
	}

	select {
	case w.inbox <- msg:
		return nil
	case <-w.done:
		return ErrClosed
	}
}

// Close stops accepting messages.
func (w *LocalWindow) Close() {
	w.once.Do(func() { close(w.done) })
}

// Frame is the hidden helper document hosting the Responder.
type Frame interface {
	// Load navigates the frame and returns once its load signal fired.
	Load(ctx context.Context) error
	Window() Window
	Close() error
}

// FrameOpener creates the helper frame. It is called lazily, at most once
// per successful channel.
type FrameOpener func(ctx context.Context) (Frame, error)

// LocalFrame is a Frame over a LocalWindow with pluggable load and close steps.
type LocalFrame struct {
	win     *LocalWindow
	load    func(ctx context.Context) error
	closeFn func() error
	loads   atomic.Int32
}

// NewLocalFrame creates a frame. load and closeFn may be nil.
func NewLocalFrame(win *LocalWindow, load func(ctx context.Context) error, closeFn func() error) *LocalFrame {
	return &LocalFrame{win: win, load: load, closeFn: closeFn}
}

func (f *LocalFrame) Load(ctx context.Context) error {
	f.loads.Add(1)
	if f.load == nil {
		return nil
	}
	return f.load(ctx)
}

func (f *LocalFrame) Window() Window {
	return f.win
}

// Loads returns how many times Load was called.
func (f *LocalFrame) Loads() int {
	return int(f.loads.Load())
}

func (f *LocalFrame) Close() error {
	f.win.Close()
	if f.closeFn != nil {
		return f.closeFn()
	}
	return nil
}
