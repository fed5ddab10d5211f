// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

func TestApply(t *testing.T) {
	selector := policy.NewSelector()
	classifier := classify.New()

	Apply(&Profile{Mode: "undo_some", DisabledTypes: []string{"twitter_follow"}}, selector, classifier)
	mode, ok := selector.Overridden()
	assert.True(t, ok)
	assert.Equal(t, policy.UndoSome, mode)
	assert.True(t, classifier.Disabled(entry.TypeTwitterFollow))

	Apply(&Profile{}, selector, classifier)
	_, ok = selector.Overridden()
	assert.False(t, ok)
	assert.False(t, classifier.Disabled(entry.TypeTwitterFollow))
}

func TestWatcher_Reload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeProfile(t, "mode: undo_all\n")
	initial, err := Load(path)
	require.NoError(t, err)

	selector := policy.NewSelector()
	classifier := classify.New()
	changes := make(chan *Profile, 4)

	w, err := NewWatcher(path, initial, func(p *Profile) {
		Apply(p, selector, classifier)
		changes <- p
	})
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("mode: undo_none\ndisabled_types: [steam_join_group]\n"), 0644))

	select {
	case p := <-changes:
		assert.Equal(t, "undo_none", p.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("profile change was not picked up")
	}

	assert.Equal(t, policy.UndoNone, selector.Resolve(entry.CampaignReward))
	assert.True(t, classifier.Disabled(entry.TypeSteamJoinGroup))

	// An invalid revision keeps the last valid profile.
	require.NoError(t, os.WriteFile(path, []byte("mode: undo_everything\n"), 0644))
	select {
	case p := <-changes:
		t.Fatalf("invalid profile was applied: %+v", p)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, "undo_none", w.Current().Mode)

	w.Stop()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeProfile(t, "mode: undo_all\n")
	initial, err := Load(path)
	require.NoError(t, err)

	called := make(chan struct{}, 1)
	w, err := NewWatcher(path, initial, func(*Profile) { called <- struct{}{} })
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path+".bak", []byte("mode: undo_none\n"), 0644))

	select {
	case <-called:
		t.Fatal("a change to another file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Same(t, initial, w.Current())
}
