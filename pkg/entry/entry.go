// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package entry

import (
	"strings"
)

// Entry is one completable entry method as exposed by the widget.
// Entries are owned by the host; the engine only reads snapshots of them
// and mutates them through host commands.
type Entry struct {
	ID                     string `json:"id"`
	Type                   Type   `json:"entry_type"`
	MethodType             string `json:"method_type,omitempty"`
	Template               string `json:"template,omitempty"`
	RequiresAuthentication bool   `json:"requires_authentication"`
	Provider               string `json:"provider,omitempty"`

	// Free-form per-type parameters.
	// Config3/Config4 carry the group name and id for group entries,
	// Config5 the server-validated answer pattern, Config6 the
	// newline-delimited choice list.
	Config3 string `json:"config3,omitempty"`
	Config4 string `json:"config4,omitempty"`
	Config5 string `json:"config5,omitempty"`
	Config6 string `json:"config6,omitempty"`

	Mandatory   bool    `json:"mandatory"`
	Entering    bool    `json:"entering"`
	Watched     bool    `json:"watched"`
	Error       string  `json:"error,omitempty"`
	Media       []Media `json:"media,omitempty"`
	Selected    string  `json:"selected,omitempty"`
	AnswerValid bool    `json:"answer_valid"`

	// Supplied by the host's campaign state.
	CanEnter bool `json:"can_enter"`
	Entered  bool `json:"entered"`
}

// Media is one selectable item of a media-share entry.
type Media struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// Eligible reports whether the host still accepts a completion for the entry.
func (e *Entry) Eligible() bool {
	return e.CanEnter && !e.Entered
}

// Settled reports whether the host stopped offering the entry, either
// because it was recorded or because it reported an error.
func (e *Entry) Settled() bool {
	return !e.Eligible() || e.Error != ""
}

// GroupName returns the group identifier used in URLs.
func (e *Entry) GroupName() string {
	return strings.TrimSpace(e.Config3)
}

// GroupID returns the numeric group identifier.
func (e *Entry) GroupID() string {
	return strings.TrimSpace(e.Config4)
}

// AnswerPattern returns the server-validated answer pattern, if any.
func (e *Entry) AnswerPattern() string {
	return strings.TrimSpace(e.Config5)
}

// Choices splits the newline-delimited choice list, dropping blank lines.
func (e *Entry) Choices() []string {
	if e.Config6 == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(e.Config6, "\r\n", "\n"), "\n")
	choices := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			choices = append(choices, line)
		}
	}
	return choices
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	if e.Media != nil {
		c.Media = append([]Media(nil), e.Media...)
	}
	return &c
}
