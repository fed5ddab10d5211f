// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package browser

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-rod/rod"

	"github.com/babooppa6/gleamSolver/pkg/steam"
)

var (
	fetchJS = script("method, url, body", `
  const init = { method, credentials: "include" };
  if (body !== "") {
    init.body = body;
    init.headers = { "Content-Type": "application/x-www-form-urlencoded; charset=UTF-8" };
  }
  return fetch(url, init).then((res) =>
    res.text().then((text) => ({ status: res.status, body: text })));`)

	sessionIDJS = script("", `
  return typeof window.g_sessionID === "string" ? window.g_sessionID : "";`)

	profileURLJS = script("", `
  const a = document.querySelector(".playerAvatar a");
  return a ? a.href : "";`)
)

type fetchResult struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// PageFetcher performs requests from inside a community page so they carry
// the user's cookies.
type PageFetcher struct {
	ev *evaluator
}

// NewPageFetcher adapts page. The page must be on the community site.
func NewPageFetcher(page *rod.Page) *PageFetcher {
	return &PageFetcher{ev: &evaluator{page: page}}
}

func (f *PageFetcher) Get(ctx context.Context, rawURL string) (string, error) {
	return f.do(ctx, "GET", rawURL, "")
}

func (f *PageFetcher) PostForm(ctx context.Context, rawURL string, form url.Values) (string, error) {
	return f.do(ctx, "POST", rawURL, form.Encode())
}

func (f *PageFetcher) SessionID(ctx context.Context) (string, error) {
	var sid string
	if err := f.ev.eval(ctx, sessionIDJS, &sid); err != nil {
		return "", err
	}
	return sid, nil
}

func (f *PageFetcher) ProfileURL(ctx context.Context) (string, error) {
	var profile string
	if err := f.ev.eval(ctx, profileURLJS, &profile); err != nil {
		return "", err
	}
	return profile, nil
}

func (f *PageFetcher) do(ctx context.Context, method, rawURL, body string) (string, error) {
	var res fetchResult
	if err := f.ev.eval(ctx, fetchJS, &res, method, rawURL, body); err != nil {
		return "", err
	}
	if res.Status < 200 || res.Status >= 400 {
		return "", fmt.Errorf("%s %s: unexpected status %d", method, rawURL, res.Status)
	}
	return res.Body, nil
}

var _ steam.Fetcher = (*PageFetcher)(nil)
