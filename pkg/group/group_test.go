// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	hostOrigin = "https://gleam.io"
	hubOrigin  = "https://steamcommunity.com"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.PanicLevel)
	goleak.VerifyTestMain(m)
}

type harness struct {
	page      *LocalWindow
	svc       *MemoryService
	requester *Requester
	frames    []*LocalFrame
}

func newHarness(t *testing.T, svc *MemoryService, timeout time.Duration) *harness {
	t.Helper()

	h := &harness{
		page: NewLocalWindow(hostOrigin, 16),
		svc:  svc,
	}
	hub := HubOpener(h.page, svc, NewMemorySnapshots(), HubConfig{
		HubOrigin:  hubOrigin,
		HostOrigin: hostOrigin,
		SessionID:  "test",
	}, nil)

	opener := func(ctx context.Context) (Frame, error) {
		f, err := hub(ctx)
		if err != nil {
			return nil, err
		}
		h.frames = append(h.frames, f.(*LocalFrame))
		return f, nil
	}

	h.requester = NewRequester(h.page, opener, RequesterConfig{HubOrigin: hubOrigin, Timeout: timeout}, nil)
	t.Cleanup(func() { _ = h.requester.Close() })
	return h
}

// waitLeaves polls until the responder has processed n leaves.
func waitLeaves(t *testing.T, svc *MemoryService, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return svc.LeaveCount() == n }, time.Second, 5*time.Millisecond)
}

func TestJoin_NewGroupIsJoinedAndLeft(t *testing.T) {
	h := newHarness(t, NewMemoryService(true), time.Second)
	ctx := context.Background()

	status, err := h.requester.Join(ctx, "gamers", "101")
	require.NoError(t, err)
	assert.Equal(t, StatusJoined, status)
	assert.True(t, h.svc.Member("gamers"))

	sent, err := h.requester.Leave(ctx, "gamers", "101")
	require.NoError(t, err)
	assert.True(t, sent)
	waitLeaves(t, h.svc, 1)
	assert.False(t, h.svc.Member("gamers"))
}

func TestJoin_PreexistingGroupIsNeverLeft(t *testing.T) {
	h := newHarness(t, NewMemoryService(true, "Veterans"), time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		status, err := h.requester.Join(ctx, "veterans", "7")
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadyJoined, status)

		sent, err := h.requester.Leave(ctx, "veterans", "7")
		require.NoError(t, err)
		assert.False(t, sent, "leave must not be sent after already_joined")
	}

	assert.Empty(t, h.svc.Joins)
	assert.Equal(t, 0, h.svc.LeaveCount())
	assert.True(t, h.svc.Member("veterans"))
}

func TestResponder_RefusesToLeavePreexistingGroup(t *testing.T) {
	page := NewLocalWindow(hostOrigin, 4)
	hub := NewLocalWindow(hubOrigin, 4)
	svc := NewMemoryService(true, "veterans")
	resp := NewResponder(hub, page, svc, nil, ResponderConfig{HostOrigin: hostOrigin}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = resp.Serve(ctx)
	}()

	// A leave for a snapshot group, posted directly to bypass the requester.
	require.NoError(t, hub.Deliver(page, Request{Action: ActionLeave, Name: "veterans", ID: "7"}, hubOrigin))
	require.NoError(t, hub.Deliver(page, Request{Action: ActionJoin, Name: "marker", ID: "8"}, hubOrigin))

	select {
	case msg := <-page.Messages():
		assert.Contains(t, string(msg.Data), `"joined"`)
	case <-time.After(time.Second):
		t.Fatal("no response to marker join")
	}

	cancel()
	<-done
	assert.Equal(t, 0, svc.LeaveCount())
	assert.True(t, svc.Member("veterans"))
}

func TestJoin_NotLoggedIn(t *testing.T) {
	h := newHarness(t, NewMemoryService(false), time.Second)
	ctx := context.Background()

	status, err := h.requester.Join(ctx, "gamers", "101")
	require.NoError(t, err)
	assert.Equal(t, StatusNotLoggedIn, status)

	sent, err := h.requester.Leave(ctx, "gamers", "101")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestJoin_ChannelReusedAndLoadedOnce(t *testing.T) {
	h := newHarness(t, NewMemoryService(true), time.Second)
	ctx := context.Background()

	_, err := h.requester.Join(ctx, "first", "1")
	require.NoError(t, err)
	_, err = h.requester.Join(ctx, "second", "2")
	require.NoError(t, err)

	assert.Equal(t, 1, h.requester.Opened())
	require.Len(t, h.frames, 1)
	assert.Equal(t, 1, h.frames[0].Loads())
}

func TestJoin_NoFrameUntilFirstUse(t *testing.T) {
	h := newHarness(t, NewMemoryService(true), time.Second)
	assert.Equal(t, 0, h.requester.Opened())
	assert.Empty(t, h.frames)
}

func TestRequester_RejectsSpoofedResponses(t *testing.T) {
	page := NewLocalWindow(hostOrigin, 8)
	hub := NewLocalWindow(hubOrigin, 8)
	evil := NewLocalWindow("https://evil.example", 1)
	impostor := NewLocalWindow(hubOrigin, 1)

	opener := func(ctx context.Context) (Frame, error) {
		return NewLocalFrame(hub, nil, nil), nil
	}
	r := NewRequester(page, opener, RequesterConfig{HubOrigin: hubOrigin, Timeout: 100 * time.Millisecond}, nil)
	defer r.Close()

	go func() {
		// Wait for the join request, then answer from the wrong places.
		<-hub.Messages()
		_ = page.Deliver(evil, Response{Status: StatusJoined, ID: "1"}, AnyOrigin)
		_ = page.Deliver(impostor, Response{Status: StatusJoined, ID: "1"}, AnyOrigin)
	}()

	_, err := r.Join(context.Background(), "gamers", "1")
	assert.True(t, errors.Is(err, ErrTimeout), "expected timeout, got %v", err)
	assert.Equal(t, Status(""), r.LastStatus("1"))

	sent, err := r.Leave(context.Background(), "gamers", "1")
	assert.NoError(t, err)
	assert.False(t, sent)
}

func TestResponder_RejectsSpoofedRequests(t *testing.T) {
	page := NewLocalWindow(hostOrigin, 4)
	hub := NewLocalWindow(hubOrigin, 4)
	evil := NewLocalWindow("https://evil.example", 4)
	svc := NewMemoryService(true)
	resp := NewResponder(hub, page, svc, nil, ResponderConfig{HostOrigin: hostOrigin}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = resp.Serve(ctx)
	}()

	require.NoError(t, hub.Deliver(evil, Request{Action: ActionJoin, Name: "spoof", ID: "1"}, AnyOrigin))
	require.NoError(t, hub.Deliver(page, Request{Action: ActionJoin, Name: "real", ID: "2"}, hubOrigin))

	select {
	case msg := <-page.Messages():
		assert.Contains(t, string(msg.Data), `"real"`)
	case <-time.After(time.Second):
		t.Fatal("no response to legitimate join")
	}

	cancel()
	<-done
	assert.Equal(t, []string{"real"}, svc.Joins)
}

func TestResponder_SnapshotTakenOnce(t *testing.T) {
	svc := NewMemoryService(true, "alpha")
	snaps := NewMemorySnapshots()
	page := NewLocalWindow(hostOrigin, 1)

	first := NewResponder(NewLocalWindow(hubOrigin, 1), page, svc, snaps, ResponderConfig{SessionID: "s"}, nil)
	require.NoError(t, first.Init(context.Background()))

	// Joined during the session, after the first snapshot.
	require.NoError(t, svc.Join(context.Background(), "beta"))

	second := NewResponder(NewLocalWindow(hubOrigin, 1), page, svc, snaps, ResponderConfig{SessionID: "s"}, nil)
	require.NoError(t, second.Init(context.Background()))

	assert.True(t, second.Preexisting("alpha"))
	assert.False(t, second.Preexisting("beta"), "groups joined during the session must stay revocable")
}

func TestRequester_OpenFailureRetried(t *testing.T) {
	page := NewLocalWindow(hostOrigin, 1)
	calls := 0
	opener := func(ctx context.Context) (Frame, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return NewLocalFrame(NewLocalWindow(hubOrigin, 1), func(ctx context.Context) error {
			return errors.New("still broken")
		}, nil), nil
	}
	r := NewRequester(page, opener, RequesterConfig{HubOrigin: hubOrigin}, nil)
	defer r.Close()

	_, err := r.Join(context.Background(), "g", "1")
	assert.Error(t, err)
	_, err = r.Join(context.Background(), "g", "1")
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, r.Opened())
}

func TestRequester_ClosedRejectsRequests(t *testing.T) {
	h := newHarness(t, NewMemoryService(true), time.Second)
	require.NoError(t, h.requester.Close())

	_, err := h.requester.Join(context.Background(), "g", "1")
	assert.True(t, errors.Is(err, ErrClosed))
}
