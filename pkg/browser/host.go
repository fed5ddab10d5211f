// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/host"
)

// Widget selectors.
const (
	RootSelector  = ".popup-blocks-container"
	EntrySelector = ".entry-method"
)

// prelude locates the widget scopes. Every script starts with it.
const prelude = `
const rootScope = () => {
  const el = document.querySelector("` + RootSelector + `");
  if (!el || !window.angular) return null;
  return window.angular.element(el).scope() || null;
};
const entryScopes = () => {
  if (!window.angular) return [];
  return Array.from(document.querySelectorAll("` + EntrySelector + `"))
    .map((el) => window.angular.element(el).scope())
    .filter((s) => s && s.entry_method);
};
const entryScope = (id) => entryScopes().find((s) => String(s.entry_method.id) === id) || null;
const str = (v) => (v === undefined || v === null ? "" : String(v));
const formData = (g) => {
  g.entryState = g.entryState || {};
  g.entryState.formData = g.entryState.formData || {};
  return g.entryState.formData;
};
const snapshot = (g, s) => {
  const em = s.entry_method;
  return {
    id: str(em.id),
    entry_type: str(em.entry_type),
    method_type: str(em.method_type),
    template: str(em.template),
    requires_authentication: !!em.requires_authentication,
    provider: str(em.provider),
    config3: str(em.config3),
    config4: str(em.config4),
    config5: str(em.config5),
    config6: str(em.config6),
    mandatory: !!em.mandatory,
    entering: !!em.entering,
    watched: !!em.watched,
    error: str(em.error),
    media: (em.media || []).map((m) => ({ id: str(m.id), url: str(m.url || m.image) })),
    selected: str(em.selected),
    answer_valid: !!em.answer_valid,
    can_enter: !!g.canEnter(em),
    entered: !!g.isEntered(em),
  };
};
const apply = (g) => {
  if (g && !g.$$phase && !(g.$root && g.$root.$$phase)) g.$apply();
};
`

// script wraps body into a function of params with the prelude in scope.
func script(params, body string) string {
	return "(" + params + ") => {" + prelude + body + "\n}"
}

// command wraps body into a function of the entry id and optional extra
// params. The body runs with g as the root scope, s as the entry scope and
// em as the entry method. The script reports whether the entry was found.
func command(params, body string) string {
	if params != "" {
		params = ", " + params
	}
	return script("id"+params, `
  const g = rootScope();
  const s = entryScope(id);
  if (!g || !s) return { found: false };
  const em = s.entry_method;
`+body+`
  apply(g);
  return { found: true };`)
}

var (
	loadedJS = script("", `
  const g = rootScope();
  return !!(g && g.campaign && entryScopes().length > 0);`)

	campaignJS = script("", `
  const g = rootScope();
  if (!g || !g.campaign) return null;
  const c = g.campaign;
  const claims = (g.contestant && g.contestant.claims) || {};
  return {
    id: str(c.id || c.key),
    name: str(c.name),
    campaign_type: str(c.campaign_type),
    ended: !!(c.finished || c.ended),
    reward_claimed: Object.keys(claims).length > 0,
  };`)

	authenticationsJS = script("", `
  const g = rootScope();
  const auth = {};
  if (!g || !g.contestant) return auth;
  for (const a of g.contestant.authentications || []) {
    const linked = !a.expired;
    auth[str(a.provider)] = auth[str(a.provider)] || linked;
  }
  return auth;`)

	entriesJS = script("", `
  const g = rootScope();
  if (!g) return null;
  return entryScopes().map((s) => snapshot(g, s));`)

	entryJS = script("id", `
  const g = rootScope();
  const s = entryScope(id);
  if (!g || !s) return null;
  return snapshot(g, s);`)

	revealHiddenJS = script("", `
  const g = rootScope();
  if (!g) return false;
  for (const s of entryScopes()) s.entry_method.mandatory = true;
  apply(g);
  return true;`)

	setEnteringJS = command("entering", `
  em.entering = entering;`)

	triggerVisitJS = command("", `
  s.triggerVisit(em.id);`)

	videoWatchedJS = command("", `
  em.watched = true;
  s.videoWatched(em);`)

	saveAnswerJS = command("value", `
  formData(g)[em.id] = value;
  em.answer_valid = false;`)

	validateAnswerJS = command("", `
  const value = formData(g)[em.id];
  let valid = typeof value === "string" && value !== "";
  if (valid && em.config5) {
    try {
      valid = new RegExp("^(?:" + em.config5 + ")$").test(value);
    } catch (e) {
      valid = false;
    }
  }
  em.answer_valid = valid;`)

	chooseImageJS = command("choice", `
  formData(g)[em.id] = choice;`)

	selectMediaJS = command("mediaID", `
  em.selected = mediaID;
  const media = (em.media || []).find((m) => String(m.id) === mediaID);
  if (media) formData(g)[em.id] = media;`)

	markEnteredJS = command("", `
  s.enterLinkClick(em);`)

	verifyJS = command("", `
  s.verifyEntryMethod();`)
)

// commandResult is what every command script returns.
type commandResult struct {
	Found bool `json:"found"`
}

// PageHost implements host.Host over the widget rendered in a page.
type PageHost struct {
	ev *evaluator
}

// NewPageHost adapts page. The page must show the contest.
func NewPageHost(page *rod.Page) *PageHost {
	return &PageHost{ev: &evaluator{page: page}}
}

func (h *PageHost) Loaded(ctx context.Context) (bool, error) {
	var loaded bool
	if err := h.ev.eval(ctx, loadedJS, &loaded); err != nil {
		return false, err
	}
	return loaded, nil
}

func (h *PageHost) Campaign(ctx context.Context) (*entry.Campaign, error) {
	var c *entry.Campaign
	if err := h.ev.eval(ctx, campaignJS, &c); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, host.ErrNotLoaded
	}
	return c, nil
}

func (h *PageHost) Authentications(ctx context.Context) (entry.Authentications, error) {
	auth := entry.Authentications{}
	if err := h.ev.eval(ctx, authenticationsJS, &auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func (h *PageHost) Entries(ctx context.Context) ([]*entry.Entry, error) {
	var entries []*entry.Entry
	if err := h.ev.eval(ctx, entriesJS, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, host.ErrNotLoaded
	}
	return entries, nil
}

func (h *PageHost) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	var e *entry.Entry
	if err := h.ev.eval(ctx, entryJS, &e, id); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s", host.ErrEntryNotFound, id)
	}
	return e, nil
}

func (h *PageHost) RevealHidden(ctx context.Context) error {
	var ok bool
	if err := h.ev.eval(ctx, revealHiddenJS, &ok); err != nil {
		return err
	}
	if !ok {
		return host.ErrNotLoaded
	}
	return nil
}

func (h *PageHost) SetEntering(ctx context.Context, id string, entering bool) error {
	return h.command(ctx, setEnteringJS, id, entering)
}

func (h *PageHost) TriggerVisit(ctx context.Context, id string) error {
	return h.command(ctx, triggerVisitJS, id)
}

func (h *PageHost) VideoWatched(ctx context.Context, id string) error {
	return h.command(ctx, videoWatchedJS, id)
}

func (h *PageHost) SaveAnswer(ctx context.Context, id string, value any) error {
	return h.command(ctx, saveAnswerJS, id, value)
}

func (h *PageHost) ValidateAnswer(ctx context.Context, id string) error {
	return h.command(ctx, validateAnswerJS, id)
}

func (h *PageHost) ChooseImage(ctx context.Context, id string, choice string) error {
	return h.command(ctx, chooseImageJS, id, choice)
}

func (h *PageHost) SelectMedia(ctx context.Context, id string, mediaID string) error {
	return h.command(ctx, selectMediaJS, id, mediaID)
}

func (h *PageHost) MarkEntered(ctx context.Context, id string) error {
	return h.command(ctx, markEnteredJS, id)
}

func (h *PageHost) Verify(ctx context.Context, id string) error {
	return h.command(ctx, verifyJS, id)
}

func (h *PageHost) command(ctx context.Context, js, id string, args ...any) error {
	var res commandResult
	if err := h.ev.eval(ctx, js, &res, append([]any{id}, args...)...); err != nil {
		return err
	}
	if !res.Found {
		return fmt.Errorf("%w: %s", host.ErrEntryNotFound, id)
	}
	return nil
}

var _ host.Host = (*PageHost)(nil)
