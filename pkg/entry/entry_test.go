// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package entry

import (
	"testing"
)

func TestEntry_Choices(t *testing.T) {
	tests := []struct {
		name     string
		config6  string
		expected []string
	}{
		{name: "empty", config6: "", expected: nil},
		{name: "single", config6: "Red", expected: []string{"Red"}},
		{name: "blank lines dropped", config6: "Red\n\n  Blue \r\nGreen\n", expected: []string{"Red", "Blue", "Green"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Config6: tt.config6}
			got := e.Choices()
			if len(got) != len(tt.expected) {
				t.Fatalf("Choices() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Choices()[%d] = %q, expected %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestEntry_EligibleAndSettled(t *testing.T) {
	e := &Entry{CanEnter: true}
	if !e.Eligible() || e.Settled() {
		t.Fatal("expected fresh entry to be eligible and unsettled")
	}

	e.Entered = true
	if e.Eligible() || !e.Settled() {
		t.Error("expected entered entry to be settled")
	}

	e = &Entry{CanEnter: true, Error: "nope"}
	if !e.Settled() {
		t.Error("expected entry with error to be settled")
	}
}

func TestCampaign_Terminal(t *testing.T) {
	tests := []struct {
		name     string
		campaign *Campaign
		terminal bool
	}{
		{name: "nil", campaign: nil, terminal: false},
		{name: "running", campaign: &Campaign{Type: CampaignCompetition}, terminal: false},
		{name: "ended", campaign: &Campaign{Type: CampaignCompetition, Ended: true}, terminal: true},
		{name: "reward claimed", campaign: &Campaign{Type: CampaignReward, RewardClaimed: true}, terminal: true},
		{name: "claim flag ignored for raffles", campaign: &Campaign{Type: CampaignCompetition, RewardClaimed: true}, terminal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := tt.campaign.Terminal()
			if got != tt.terminal {
				t.Errorf("Terminal() = %v (%s), expected %v", got, reason, tt.terminal)
			}
			if got && reason == "" {
				t.Error("expected a reason for terminal campaign")
			}
		})
	}
}

func TestAuthentications_Satisfies(t *testing.T) {
	auth := Authentications{"steam": true, "twitter": false}

	if !auth.Satisfies(&Entry{}) {
		t.Error("entry without requirement should be satisfied")
	}
	if !auth.Satisfies(&Entry{RequiresAuthentication: true, Provider: "steam"}) {
		t.Error("linked provider should satisfy requirement")
	}
	if auth.Satisfies(&Entry{RequiresAuthentication: true, Provider: "twitter"}) {
		t.Error("expired provider should not satisfy requirement")
	}
	if auth.Satisfies(&Entry{RequiresAuthentication: true, Provider: "twitchtv"}) {
		t.Error("missing provider should not satisfy requirement")
	}
}
