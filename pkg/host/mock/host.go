// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/host"
)

// Command names recorded in Calls.
const (
	CallRevealHidden   = "RevealHidden"
	CallSetEntering    = "SetEntering"
	CallTriggerVisit   = "TriggerVisit"
	CallVideoWatched   = "VideoWatched"
	CallSaveAnswer     = "SaveAnswer"
	CallValidateAnswer = "ValidateAnswer"
	CallChooseImage    = "ChooseImage"
	CallSelectMedia    = "SelectMedia"
	CallMarkEntered    = "MarkEntered"
	CallVerify         = "Verify"
)

// Call tracks one command invocation.
type Call struct {
	Method  string
	EntryID string
	Value   any
}

// Fixture is the JSON document accepted by LoadFixture.
type Fixture struct {
	Campaign        entry.Campaign           `json:"campaign"`
	Authentications entry.Authentications    `json:"authentications"`
	Entries         []*entry.Entry           `json:"entries"`
	PendingMedia    map[string][]entry.Media `json:"pending_media,omitempty"`
}

// Host is an in-memory host.Host. Verify records an entry as entered once
// MarkEntered was called for it, optionally after VerifyDelay.
type Host struct {
	mu sync.Mutex

	campaign *entry.Campaign
	auth     entry.Authentications
	order    []string
	entries  map[string]*entry.Entry
	answers  map[string]any
	marked   map[string]bool

	// PendingMedia is moved into an entry's media list on its first visit.
	PendingMedia map[string][]entry.Media
	// RejectVerify sets the entry error instead of recording it.
	RejectVerify map[string]string
	// VerifyDelay postpones recording an entry after Verify.
	VerifyDelay time.Duration
	// LoadedAfter makes Loaded report false for that many calls.
	LoadedAfter int
	// OnCommand runs after every command, outside the lock.
	OnCommand func(call Call)

	// ErrorFunc lets a test fail individual commands.
	ErrorFunc func(call Call) error

	Calls []Call

	loadedCalls int
}

// New creates an empty host for the given campaign.
func New(campaign entry.Campaign) *Host {
	return &Host{
		campaign:     &campaign,
		auth:         entry.Authentications{},
		entries:      make(map[string]*entry.Entry),
		answers:      make(map[string]any),
		marked:       make(map[string]bool),
		PendingMedia: make(map[string][]entry.Media),
		RejectVerify: make(map[string]string),
	}
}

// LoadFixture builds a host from a JSON fixture.
func LoadFixture(r io.Reader) (*Host, error) {
	var f Fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	h := New(f.Campaign)
	for provider, linked := range f.Authentications {
		h.auth[provider] = linked
	}
	for _, e := range f.Entries {
		h.AddEntry(e)
	}
	for id, media := range f.PendingMedia {
		h.PendingMedia[id] = media
	}
	return h, nil
}

// AddEntry adds or replaces an entry.
func (h *Host) AddEntry(e *entry.Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.entries[e.ID]; !exists {
		h.order = append(h.order, e.ID)
	}
	h.entries[e.ID] = e.Clone()
}

// SetAuthentication links or unlinks a provider.
func (h *Host) SetAuthentication(provider string, linked bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.auth[provider] = linked
}

// UpdateCampaign mutates the campaign under the lock.
func (h *Host) UpdateCampaign(fn func(c *entry.Campaign)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.campaign)
}

// UpdateEntry mutates an entry under the lock.
func (h *Host) UpdateEntry(id string, fn func(e *entry.Entry)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.entries[id]; ok {
		fn(e)
	}
}

// Answer returns the saved form value of an entry.
func (h *Host) Answer(id string) any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.answers[id]
}

// CallsFor returns the recorded command names for an entry, in order.
func (h *Host) CallsFor(id string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var methods []string
	for _, c := range h.Calls {
		if c.EntryID == id {
			methods = append(methods, c.Method)
		}
	}
	return methods
}

// Count returns how many times method was called for an entry.
// An empty id counts calls for every entry.
func (h *Host) Count(method, id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, c := range h.Calls {
		if c.Method == method && (id == "" || c.EntryID == id) {
			n++
		}
	}
	return n
}

func (h *Host) Loaded(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.loadedCalls++
	return h.loadedCalls > h.LoadedAfter, nil
}

func (h *Host) Campaign(ctx context.Context) (*entry.Campaign, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := *h.campaign
	return &c, nil
}

func (h *Host) Authentications(ctx context.Context) (entry.Authentications, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	auth := make(entry.Authentications, len(h.auth))
	for k, v := range h.auth {
		auth[k] = v
	}
	return auth, nil
}

func (h *Host) Entries(ctx context.Context) ([]*entry.Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]*entry.Entry, 0, len(h.order))
	for _, id := range h.order {
		entries = append(entries, h.entries[id].Clone())
	}
	return entries, nil
}

func (h *Host) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrEntryNotFound, id)
	}
	return e.Clone(), nil
}

func (h *Host) RevealHidden(ctx context.Context) error {
	return h.command(Call{Method: CallRevealHidden}, func() {
		for _, e := range h.entries {
			e.Mandatory = true
		}
	})
}

func (h *Host) SetEntering(ctx context.Context, id string, entering bool) error {
	return h.entryCommand(Call{Method: CallSetEntering, EntryID: id, Value: entering}, func(e *entry.Entry) {
		e.Entering = entering
	})
}

func (h *Host) TriggerVisit(ctx context.Context, id string) error {
	return h.entryCommand(Call{Method: CallTriggerVisit, EntryID: id}, func(e *entry.Entry) {
		if media, ok := h.PendingMedia[id]; ok && len(e.Media) == 0 {
			e.Media = append([]entry.Media(nil), media...)
		}
	})
}

func (h *Host) VideoWatched(ctx context.Context, id string) error {
	return h.entryCommand(Call{Method: CallVideoWatched, EntryID: id}, func(e *entry.Entry) {
		e.Watched = true
	})
}

func (h *Host) SaveAnswer(ctx context.Context, id string, value any) error {
	return h.entryCommand(Call{Method: CallSaveAnswer, EntryID: id, Value: value}, func(e *entry.Entry) {
		h.answers[id] = value
		e.AnswerValid = false
	})
}

func (h *Host) ValidateAnswer(ctx context.Context, id string) error {
	return h.entryCommand(Call{Method: CallValidateAnswer, EntryID: id}, func(e *entry.Entry) {
		s, ok := h.answers[id].(string)
		if !ok || s == "" {
			return
		}
		if p := e.AnswerPattern(); p != "" {
			re, err := regexp.Compile(`^(?:` + p + `)$`)
			if err != nil || !re.MatchString(s) {
				return
			}
		}
		e.AnswerValid = true
	})
}

func (h *Host) ChooseImage(ctx context.Context, id string, choice string) error {
	return h.entryCommand(Call{Method: CallChooseImage, EntryID: id, Value: choice}, func(e *entry.Entry) {
		h.answers[id] = choice
	})
}

func (h *Host) SelectMedia(ctx context.Context, id string, mediaID string) error {
	return h.entryCommand(Call{Method: CallSelectMedia, EntryID: id, Value: mediaID}, func(e *entry.Entry) {
		e.Selected = mediaID
	})
}

func (h *Host) MarkEntered(ctx context.Context, id string) error {
	return h.entryCommand(Call{Method: CallMarkEntered, EntryID: id}, func(e *entry.Entry) {
		h.marked[id] = true
	})
}

func (h *Host) Verify(ctx context.Context, id string) error {
	return h.entryCommand(Call{Method: CallVerify, EntryID: id}, func(e *entry.Entry) {
		if msg, ok := h.RejectVerify[id]; ok {
			e.Error = msg
			return
		}
		if !h.marked[id] {
			return
		}
		if h.VerifyDelay <= 0 {
			e.Entered = true
			return
		}
		time.AfterFunc(h.VerifyDelay, func() {
			h.UpdateEntry(id, func(e *entry.Entry) { e.Entered = true })
		})
	})
}

func (h *Host) entryCommand(call Call, fn func(e *entry.Entry)) error {
	var missing bool
	err := h.command(call, func() {
		e, ok := h.entries[call.EntryID]
		if !ok {
			missing = true
			return
		}
		fn(e)
	})
	if err != nil {
		return err
	}
	if missing {
		return fmt.Errorf("%w: %s", host.ErrEntryNotFound, call.EntryID)
	}
	return nil
}

func (h *Host) command(call Call, fn func()) error {
	if h.ErrorFunc != nil {
		if err := h.ErrorFunc(call); err != nil {
			return err
		}
	}

	h.mu.Lock()
	h.Calls = append(h.Calls, call)
	fn()
	h.mu.Unlock()

	if h.OnCommand != nil {
		h.OnCommand(call)
	}
	return nil
}

var _ host.Host = (*Host)(nil)
