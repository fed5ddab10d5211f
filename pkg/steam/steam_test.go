// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steam

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/babooppa6/gleamSolver/pkg/group"
)

const groupsPage = `<html><body>
<div class="groupBlock">
  <div class="groupBlockMedium"><a class="linkTitle" href="https://steamcommunity.com/groups/indiegala">IndieGala</a></div>
</div>
<div class="groupBlock odd">
  <a class="linkTitle" href="https://steamcommunity.com/groups/GameDealsHub/">Game Deals</a>
  <a class="linkStandard" href="https://steamcommunity.com/groups/ignored">ignored</a>
</div>
<a class="linkTitle" href="https://steamcommunity.com/groups/outside">outside any block</a>
</body></html>`

func TestParseGroups(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
		err      error
	}{
		{name: "group list", body: groupsPage, expected: []string{"indiegala", "GameDealsHub"}},
		{name: "no groups", body: "<p>You belong to 0 groups.</p>", expected: []string{}},
		{name: "login page", body: "<form id='login'></form>", err: ErrNoGroupList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGroups(tt.body)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected error %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type fakeFetcher struct {
	session string
	profile string
	pages   map[string]string
	posts   []post
}

type post struct {
	URL  string
	Form url.Values
}

func (f *fakeFetcher) Get(ctx context.Context, rawURL string) (string, error) {
	return f.pages[rawURL], nil
}

func (f *fakeFetcher) PostForm(ctx context.Context, rawURL string, form url.Values) (string, error) {
	f.posts = append(f.posts, post{URL: rawURL, Form: form})
	return "", nil
}

func (f *fakeFetcher) SessionID(ctx context.Context) (string, error) {
	return f.session, nil
}

func (f *fakeFetcher) ProfileURL(ctx context.Context) (string, error) {
	return f.profile, nil
}

func TestClient_JoinAndLeave(t *testing.T) {
	f := &fakeFetcher{session: "abc123", profile: "http://steamcommunity.com/id/player"}
	c := NewClient(f, "")
	ctx := context.Background()

	if err := c.Join(ctx, "indiegala"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if err := c.Leave(ctx, "indiegala", "103582791429521412"); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}

	want := []post{
		{
			URL:  "https://steamcommunity.com/groups/indiegala",
			Form: url.Values{"action": {"join"}, "sessionID": {"abc123"}},
		},
		{
			URL:  "https://steamcommunity.com/id/player/home_process",
			Form: url.Values{"action": {"leaveGroup"}, "sessionID": {"abc123"}, "groupId": {"103582791429521412"}},
		},
	}
	if diff := cmp.Diff(want, f.posts); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_NotLoggedIn(t *testing.T) {
	c := NewClient(&fakeFetcher{}, "")
	ctx := context.Background()

	loggedIn, err := c.LoggedIn(ctx)
	if err != nil || loggedIn {
		t.Errorf("LoggedIn() = %v, %v; expected false, nil", loggedIn, err)
	}
	if err := c.Join(ctx, "g"); !errors.Is(err, group.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestClient_Memberships(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://steamcommunity.com/my/groups": groupsPage}}
	groups, err := NewClient(f, "").Memberships(context.Background())
	if err != nil {
		t.Fatalf("Memberships failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %v", groups)
	}
}
