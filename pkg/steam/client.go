// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steam

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/group"
)

// DefaultBaseURL is the community site root.
const DefaultBaseURL = "https://steamcommunity.com"

// Fetcher performs requests with the user's community session.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (string, error)
	PostForm(ctx context.Context, rawURL string, form url.Values) (string, error)
	// SessionID returns the page's session token, empty without a session.
	SessionID(ctx context.Context) (string, error)
	// ProfileURL returns the logged-in user's profile URL, empty without a session.
	ProfileURL(ctx context.Context) (string, error)
}

// Client implements group.Service against the community site.
type Client struct {
	fetch Fetcher
	base  string
	log   *logrus.Entry
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewClient(fetch Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		fetch: fetch,
		base:  strings.TrimRight(baseURL, "/"),
		log:   logrus.WithField("component", "steam"),
	}
}

func (c *Client) LoggedIn(ctx context.Context) (bool, error) {
	profile, err := c.fetch.ProfileURL(ctx)
	if err != nil {
		return false, err
	}
	return profile != "", nil
}

func (c *Client) Memberships(ctx context.Context) ([]string, error) {
	body, err := c.fetch.Get(ctx, c.base+"/my/groups")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group list: %w", err)
	}
	groups, err := ParseGroups(body)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("user belongs to %d groups", len(groups))
	return groups, nil
}

func (c *Client) Join(ctx context.Context, name string) error {
	sid, err := c.sessionID(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("action", "join")
	form.Set("sessionID", sid)
	if _, err := c.fetch.PostForm(ctx, c.base+"/groups/"+url.PathEscape(name), form); err != nil {
		return fmt.Errorf("failed to join group %s: %w", name, err)
	}
	return nil
}

func (c *Client) Leave(ctx context.Context, name, id string) error {
	sid, err := c.sessionID(ctx)
	if err != nil {
		return err
	}
	profile, err := c.fetch.ProfileURL(ctx)
	if err != nil {
		return err
	}
	if profile == "" {
		return group.ErrNotLoggedIn
	}

	form := url.Values{}
	form.Set("sessionID", sid)
	form.Set("action", "leaveGroup")
	form.Set("groupId", id)
	if _, err := c.fetch.PostForm(ctx, homeProcessURL(profile), form); err != nil {
		return fmt.Errorf("failed to leave group %s: %w", name, err)
	}
	return nil
}

func (c *Client) sessionID(ctx context.Context) (string, error) {
	sid, err := c.fetch.SessionID(ctx)
	if err != nil {
		return "", err
	}
	if sid == "" {
		return "", group.ErrNotLoggedIn
	}
	return sid, nil
}

// homeProcessURL derives the profile action endpoint from a profile URL.
func homeProcessURL(profile string) string {
	profile = strings.Replace(profile, "http://", "https://", 1)
	if !strings.HasSuffix(profile, "/") {
		profile += "/"
	}
	return profile + "home_process"
}

var _ group.Service = (*Client)(nil)
