// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package policy

import (
	"errors"
	"fmt"
	"sync"

	"github.com/babooppa6/gleamSolver/pkg/entry"
)

// Mode controls which entry tiers are automated and whether retractable
// actions are undone afterwards.
type Mode string

const (
	// UndoAll leaves no trace on the user's social accounts: irretractable
	// actions are skipped and retractable ones are undone.
	UndoAll Mode = "undo_all"
	// UndoNone keeps every action and never retracts group membership.
	UndoNone Mode = "undo_none"
	// UndoSome performs everything and retracts what can be retracted.
	UndoSome Mode = "undo_some"
)

// ErrUnknownMode is returned for mode names other than the three modes.
var ErrUnknownMode = errors.New("unknown mode")

// Tier groups entry types by the consequence of automating them.
type Tier int

const (
	// TierSafe actions leave no persistent public trace, or a fully retractable one.
	TierSafe Tier = iota
	// TierRisky actions could flag the account in a raffle.
	TierRisky
	// TierIrretractable actions cannot be undone.
	TierIrretractable
)

func (t Tier) String() string {
	switch t {
	case TierSafe:
		return "safe"
	case TierRisky:
		return "risky"
	case TierIrretractable:
		return "irretractable"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case UndoAll, UndoNone, UndoSome:
		return m, nil
	}
	return "", fmt.Errorf("%w %q (want undo_all, undo_none or undo_some)", ErrUnknownMode, s)
}

// DefaultMode selects the mode for a campaign type.
// Instant-win campaigns leave no trace; raffles keep everything.
func DefaultMode(campaignType string) Mode {
	switch campaignType {
	case entry.CampaignReward:
		return UndoAll
	case entry.CampaignCompetition:
		return UndoNone
	default:
		return UndoAll
	}
}

// Allows reports whether entries of the given tier may be automated.
func (m Mode) Allows(t Tier) bool {
	switch t {
	case TierRisky:
		return m != UndoNone
	case TierIrretractable:
		return m != UndoAll
	default:
		return true
	}
}

// Retracts reports whether retractable actions are undone after completion.
func (m Mode) Retracts() bool {
	return m != UndoNone
}

// Selector resolves the active mode. A runtime override wins over the
// campaign default and is read again on every Resolve call.
type Selector struct {
	mu       sync.RWMutex
	override Mode
}

// NewSelector creates a selector without an override.
func NewSelector() *Selector {
	return &Selector{}
}

// Override sets the runtime override.
func (s *Selector) Override(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = m
}

// Clear removes the runtime override.
func (s *Selector) Clear() {
	s.Override("")
}

// Overridden returns the current override and whether one is set.
func (s *Selector) Overridden() (Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override, s.override != ""
}

// Resolve returns the override if set, otherwise the campaign default.
func (s *Selector) Resolve(campaignType string) Mode {
	if m, ok := s.Overridden(); ok {
		return m
	}
	return DefaultMode(campaignType)
}
