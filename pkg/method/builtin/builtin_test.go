// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babooppa6/gleamSolver/pkg/answer"
	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/host/mock"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
	"github.com/babooppa6/gleamSolver/pkg/poll"
)

func init() {
	logrus.SetLevel(logrus.PanicLevel)
}

// fakeGroups is a scripted group channel.
type fakeGroups struct {
	status group.Status
	err    error
	joins  int
	leaves int
	last   group.Status
}

func (f *fakeGroups) Join(ctx context.Context, name, id string) (group.Status, error) {
	f.joins++
	f.last = f.status
	return f.status, f.err
}

func (f *fakeGroups) Leave(ctx context.Context, name, id string) (bool, error) {
	if f.last != group.StatusJoined {
		return false, nil
	}
	f.leaves++
	f.last = ""
	return true, nil
}

func newDeps(h *mock.Host) *Dependencies {
	rnd := common.NewRand(7)
	return &Dependencies{
		Host:      h,
		Committer: method.NewCommitter(h, poll.New(5*time.Millisecond, time.Second)),
		Answers:   answer.New(answer.WithRand(rnd)),
		Groups:    &fakeGroups{status: group.StatusJoined},
		Notifier:  notify.NewMemory(),
		Rand:      rnd,
	}
}

func dispatch(e *entry.Entry, mode policy.Mode) *method.Dispatch {
	return method.NewDispatch(e, classify.Classify(e), mode)
}

func addEntry(h *mock.Host, e *entry.Entry) *entry.Entry {
	e.CanEnter = true
	h.AddEntry(e)
	return e
}

func assertEntered(t *testing.T, h *mock.Host, id string) {
	t.Helper()
	e, err := h.Entry(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, e.Entered, "entry %s should be entered", id)
	assert.False(t, e.Entering, "entry %s should not be loading", id)
}

func TestClickHandler_Handle(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "c1", Type: entry.TypeTwitterEnter})

	err := NewClickHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoAll))
	require.NoError(t, err)

	assertEntered(t, h, "c1")
	assert.Equal(t, []string{
		mock.CallSetEntering,
		mock.CallTriggerVisit,
		mock.CallSetEntering,
		mock.CallMarkEntered,
		mock.CallVerify,
	}, h.CallsFor("c1"))
}

func TestVideoHandler_Handle(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "v1", Type: entry.TypeYoutubeWatch})

	cfg := method.HandlerConfig{Enabled: true, Parameters: map[string]interface{}{"watch_delay": "10ms"}}
	start := time.Now()
	err := NewVideoHandler(cfg, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoAll))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	got, _ := h.Entry(context.Background(), "v1")
	assert.True(t, got.Watched)
	assertEntered(t, h, "v1")
}

func TestClickAndVideo_CommitWithoutWaiting(t *testing.T) {
	h := mock.New(entry.Campaign{})
	h.VerifyDelay = time.Hour
	click := addEntry(h, &entry.Entry{ID: "c1", Type: entry.TypeTwitterEnter})
	video := addEntry(h, &entry.Entry{ID: "v1", Type: entry.TypeYoutubeWatch})

	deps := newDeps(h)
	deps.Committer = method.NewCommitter(h, poll.New(5*time.Millisecond, 40*time.Millisecond))

	require.NoError(t, NewClickHandler(method.HandlerConfig{Enabled: true}, deps).Handle(context.Background(), dispatch(click, policy.UndoAll)))

	cfg := method.HandlerConfig{Enabled: true, Parameters: map[string]interface{}{"watch_delay": "1ms"}}
	require.NoError(t, NewVideoHandler(cfg, deps).Handle(context.Background(), dispatch(video, policy.UndoAll)))

	for _, id := range []string{"c1", "v1"} {
		assert.Equal(t, 1, h.Count(mock.CallVerify, id))
		e, err := h.Entry(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, e.Entered, "entry %s is still pending verification", id)
	}
}

func TestVideoHandler_CancelledWhileWatching(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "v1", Type: entry.TypeVimeoWatch})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := method.HandlerConfig{Enabled: true, Parameters: map[string]interface{}{"watch_delay": "1h"}}
	err := NewVideoHandler(cfg, newDeps(h)).Handle(ctx, dispatch(e, policy.UndoAll))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, h.Count(mock.CallVideoWatched, "v1"))
}

func TestChoiceHandler_Variants(t *testing.T) {
	choices := []string{"red", "green", "blue"}

	tests := []struct {
		name     string
		template string
		method   string
		check    func(t *testing.T, h *mock.Host)
	}{
		{
			name:     "single",
			template: "choose_option",
			check: func(t *testing.T, h *mock.Host) {
				assert.Contains(t, choices, h.Answer("m1"))
			},
		},
		{
			name:   "checkbox",
			method: "Multiple answers",
			check: func(t *testing.T, h *mock.Host) {
				got, ok := h.Answer("m1").(map[string]bool)
				require.True(t, ok, "checkbox answer should be a map")
				require.Len(t, got, 1)
				for k, v := range got {
					assert.Contains(t, choices, k)
					assert.True(t, v)
				}
			},
		},
		{
			name:     "image",
			template: "choose_image",
			check: func(t *testing.T, h *mock.Host) {
				assert.Equal(t, 1, h.Count(mock.CallChooseImage, "m1"))
				assert.Equal(t, 0, h.Count(mock.CallSaveAnswer, "m1"))
				assert.Contains(t, choices, h.Answer("m1"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mock.New(entry.Campaign{})
			e := addEntry(h, &entry.Entry{
				ID:         "m1",
				Type:       entry.TypeCustomAction,
				Template:   tt.template,
				MethodType: tt.method,
				Config6:    "red\n\ngreen\nblue\n",
			})

			err := NewChoiceHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoSome))
			require.NoError(t, err)
			tt.check(t, h)
			assertEntered(t, h, "m1")
		})
	}
}

func TestChoiceHandler_NoChoices(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "m1", Type: entry.TypeCustomAction, Template: "choose_image"})

	err := NewChoiceHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoSome))
	assert.ErrorIs(t, err, ErrNoChoices)
	assert.Equal(t, 0, h.Count(mock.CallMarkEntered, ""))
}

func TestQuestionHandler_AnswerMatchesPattern(t *testing.T) {
	patterns := []string{`[a-z]{5}`, `\d+-\d+`, `(yes|no)!*`}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			h := mock.New(entry.Campaign{})
			e := addEntry(h, &entry.Entry{ID: "q1", Type: entry.TypeCustomAction, Template: "question", Config5: p})

			err := NewQuestionHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoSome))
			require.NoError(t, err)

			text, ok := h.Answer("q1").(string)
			require.True(t, ok)
			assert.Regexp(t, regexp.MustCompile(`^(?:`+p+`)$`), text)
			assertEntered(t, h, "q1")
		})
	}
}

func TestQuestionHandler_OptionalPatternNeverBlank(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		h := mock.New(entry.Campaign{})
		e := addEntry(h, &entry.Entry{ID: "q1", Type: entry.TypeCustomAction, Template: "question", Config5: `[a-z]*`})

		deps := newDeps(h)
		deps.Answers = answer.New(answer.WithRand(common.NewRand(seed)))
		deps.Committer = method.NewCommitter(h, poll.New(2*time.Millisecond, 200*time.Millisecond))

		err := NewQuestionHandler(method.HandlerConfig{Enabled: true}, deps).Handle(context.Background(), dispatch(e, policy.UndoSome))
		require.NoErrorf(t, err, "seed %d", seed)
		assert.NotEmptyf(t, h.Answer("q1"), "seed %d", seed)
		assertEntered(t, h, "q1")
	}
}

func TestQuestionHandler_FixedPatterns(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "y1", Type: entry.TypeYoutubeVideoLink})

	err := NewQuestionHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoSome))
	require.NoError(t, err)
	assert.Regexp(t, `^`+classify.VideoLinkPattern+`$`, h.Answer("y1"))
}

func TestQuestionHandler_WaitsForValidation(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "q1", Type: entry.TypeCustomAction, Template: "question", Config5: `[a-z]+`})

	// The host rejects every answer.
	h.OnCommand = func(call mock.Call) {
		if call.Method == mock.CallValidateAnswer {
			h.UpdateEntry("q1", func(e *entry.Entry) { e.AnswerValid = false })
		}
	}

	deps := newDeps(h)
	deps.Committer = method.NewCommitter(h, poll.New(5*time.Millisecond, 40*time.Millisecond))

	err := NewQuestionHandler(method.HandlerConfig{Enabled: true}, deps).Handle(context.Background(), dispatch(e, policy.UndoSome))
	assert.ErrorIs(t, err, poll.ErrTimeout)
	assert.Equal(t, 0, h.Count(mock.CallMarkEntered, "q1"))
}

func TestQuestionHandler_RepeatCapParameter(t *testing.T) {
	h := mock.New(entry.Campaign{})
	cfg := method.HandlerConfig{Enabled: true, Parameters: map[string]interface{}{"repeat_cap": 1}}

	q := NewQuestionHandler(cfg, newDeps(h))
	assert.Equal(t, 1, q.answers.RepeatCap())

	q = NewQuestionHandler(method.HandlerConfig{Enabled: true}, newDeps(h))
	assert.Equal(t, answer.DefaultRepeatCap, q.answers.RepeatCap())
}

func TestMediaHandler_Handle(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "p1", Type: entry.TypeInstagramChoose})
	h.PendingMedia["p1"] = []entry.Media{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	err := NewMediaHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoSome))
	require.NoError(t, err)

	got, _ := h.Entry(context.Background(), "p1")
	assert.Contains(t, []string{"a", "b", "c"}, got.Selected)
	assertEntered(t, h, "p1")

	calls := h.CallsFor("p1")
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, mock.CallTriggerVisit, calls[1], "media list is only populated after the visit")
}

func TestMediaHandler_EmptyMediaTimesOut(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "p1", Type: entry.TypeFacebookMedia})

	deps := newDeps(h)
	deps.Committer = method.NewCommitter(h, poll.New(5*time.Millisecond, 30*time.Millisecond))

	err := NewMediaHandler(method.HandlerConfig{Enabled: true}, deps).Handle(context.Background(), dispatch(e, policy.UndoSome))
	assert.ErrorIs(t, err, poll.ErrTimeout)
	assert.Equal(t, 0, h.Count(mock.CallSelectMedia, "p1"))
}

func groupEntry(h *mock.Host) *entry.Entry {
	return addEntry(h, &entry.Entry{ID: "g1", Type: entry.TypeSteamJoinGroup, Config3: "gamers", Config4: "101"})
}

func TestGroupHandler_NotLoggedIn(t *testing.T) {
	h := mock.New(entry.Campaign{})
	deps := newDeps(h)
	deps.Groups = &fakeGroups{status: group.StatusNotLoggedIn}
	handler := NewGroupHandler(method.HandlerConfig{Enabled: true}, deps)

	e := groupEntry(h)
	for i := 0; i < 2; i++ {
		h.UpdateEntry("g1", func(e *entry.Entry) { e.Entered = false })
		require.NoError(t, handler.Handle(context.Background(), dispatch(e, policy.UndoAll)))
		assertEntered(t, h, "g1")
	}

	snap, err := deps.Notifier.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{NotLoggedInMessage}, snap.ErrorMessages())
}

func TestGroupHandler_JoinError(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := groupEntry(h)
	deps := newDeps(h)
	deps.Groups = &fakeGroups{err: group.ErrTimeout}

	err := NewGroupHandler(method.HandlerConfig{Enabled: true}, deps).Handle(context.Background(), dispatch(e, policy.UndoAll))
	assert.ErrorIs(t, err, group.ErrTimeout)
	assert.Equal(t, 0, h.Count(mock.CallMarkEntered, "g1"), "entry must not be committed before the protocol resolves")
}

func TestGroupHandler_MissingGroup(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "g1", Type: entry.TypeSteamJoinGroup})

	err := NewGroupHandler(method.HandlerConfig{Enabled: true}, newDeps(h)).Handle(context.Background(), dispatch(e, policy.UndoAll))
	assert.True(t, errors.Is(err, ErrMissingGroup))
}

func TestGroupHandler_LeaveFollowsMode(t *testing.T) {
	tests := []struct {
		status group.Status
		mode   policy.Mode
		leaves int
	}{
		{group.StatusJoined, policy.UndoAll, 1},
		{group.StatusJoined, policy.UndoSome, 1},
		{group.StatusJoined, policy.UndoNone, 0},
		{group.StatusAlreadyJoined, policy.UndoAll, 0},
		{group.StatusAlreadyJoined, policy.UndoSome, 0},
		{group.StatusNotLoggedIn, policy.UndoAll, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+string(tt.mode), func(t *testing.T) {
			h := mock.New(entry.Campaign{})
			e := groupEntry(h)
			deps := newDeps(h)
			groups := &fakeGroups{status: tt.status}
			deps.Groups = groups

			registry := method.NewRegistry()
			require.NoError(t, registry.Register(NewGroupHandler(method.HandlerConfig{Enabled: true}, deps)))

			result := method.NewExecutor(registry).Execute(context.Background(), dispatch(e, tt.mode))
			require.True(t, result.Success, "unexpected error: %v", result.Error)
			assert.Equal(t, tt.leaves, groups.leaves)
			assert.Equal(t, tt.leaves == 1, result.Retracted)
		})
	}
}

func TestGroupHandler_ThroughProtocol(t *testing.T) {
	const hostOrigin, hubOrigin = "https://gleam.io", "https://steamcommunity.com"

	h := mock.New(entry.Campaign{})
	e := groupEntry(h)
	svc := group.NewMemoryService(true)

	page := group.NewLocalWindow(hostOrigin, 16)
	opener := group.HubOpener(page, svc, group.NewMemorySnapshots(), group.HubConfig{
		HubOrigin:  hubOrigin,
		HostOrigin: hostOrigin,
		SessionID:  "builtin-test",
	}, nil)
	requester := group.NewRequester(page, opener, group.RequesterConfig{HubOrigin: hubOrigin, Timeout: time.Second}, nil)
	defer requester.Close()

	deps := newDeps(h)
	deps.Groups = requester

	registry := method.NewRegistry()
	require.NoError(t, registry.Register(NewGroupHandler(method.HandlerConfig{Enabled: true}, deps)))

	result := method.NewExecutor(registry).Execute(context.Background(), dispatch(e, policy.UndoAll))
	require.True(t, result.Success, "unexpected error: %v", result.Error)
	assert.True(t, result.Retracted)
	assertEntered(t, h, "g1")

	require.Eventually(t, func() bool { return svc.LeaveCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, svc.Member("gamers"))
}

func TestUploadHandler_IsSkipped(t *testing.T) {
	h := mock.New(entry.Campaign{})
	e := addEntry(h, &entry.Entry{ID: "u1", Type: entry.TypeUploadAction})

	registry := method.NewRegistry()
	require.NoError(t, registry.Register(NewUploadHandler(method.HandlerConfig{Enabled: true})))

	result := method.NewExecutor(registry).Execute(context.Background(), dispatch(e, policy.UndoSome))
	assert.True(t, result.Success)
	assert.True(t, result.Skipped)
	assert.Empty(t, h.CallsFor("u1"))
}

func TestRegisterHandlers(t *testing.T) {
	h := mock.New(entry.Campaign{})
	RegisterHandlers(newDeps(h))

	registry := method.NewRegistry()
	require.NoError(t, method.RegisterHandlers(registry, DefaultConfigs()))
	assert.Equal(t, len(DefaultConfigs()), registry.Count())

	for _, k := range classify.Kinds {
		assert.NotNil(t, registry.GetEnabled(k), "no handler for %s", k)
	}
}
