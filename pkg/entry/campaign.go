// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package entry

// Campaign types reported by the widget.
const (
	CampaignReward      = "Reward"
	CampaignCompetition = "Competition"
)

// Campaign is the contest hosting the entries.
type Campaign struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Type          string `json:"campaign_type"`
	Ended         bool   `json:"ended"`
	RewardClaimed bool   `json:"reward_claimed"`
}

// Terminal reports whether no further entries should be processed, and why.
func (c *Campaign) Terminal() (bool, string) {
	switch {
	case c == nil:
		return false, ""
	case c.Ended:
		return true, "campaign has ended"
	case c.Type == CampaignReward && c.RewardClaimed:
		return true, "reward already claimed"
	}
	return false, ""
}

// Authentications maps a provider key to whether the user has a linked,
// non-expired account for it.
type Authentications map[string]bool

// Satisfies reports whether the entry's authentication requirement is met.
func (a Authentications) Satisfies(e *Entry) bool {
	if !e.RequiresAuthentication {
		return true
	}
	return a[e.Provider]
}
