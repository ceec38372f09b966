package score

import (
	"sort"

	"github.com/JSmilg/veracity/internal/match"
	"github.com/JSmilg/veracity/internal/model"
)

// Story is a distinct (player, destination club) transfer that at least one
// claim was confirmed for
type Story struct {
	Player string
	Club   string
}

// Covers reports whether claim c is about this story
func (s Story) Covers(c model.Claim) bool {
	if !match.Players(s.Player, c.PlayerName) {
		return false
	}
	if s.Club == "" {
		return true
	}
	return c.ToClub != "" && match.Clubs(s.Club, c.ToClub)
}

func (s Story) sameAs(player, club string) bool {
	if !match.Players(s.Player, player) {
		return false
	}
	if s.Club != "" && club != "" {
		return match.Clubs(s.Club, club)
	}
	return true
}

// Stories groups confirmed claims into distinct stories. Claims without a
// player are ignored; a claim joins the first story whose player and club
// match fuzzily.
func Stories(claims []model.Claim) []Story {
	var stories []Story
	for _, c := range claims {
		if c.Status != model.StatusConfirmedTrue || c.PlayerName == "" {
			continue
		}
		found := false
		for _, s := range stories {
			if s.sameAs(c.PlayerName, c.ToClub) {
				found = true
				break
			}
		}
		if !found {
			stories = append(stories, Story{Player: c.PlayerName, Club: c.ToClub})
		}
	}
	return stories
}

// claimIndex buckets claims by the player's last name so each story only
// scans claims that can plausibly match it
type claimIndex map[string][]model.Claim

func newClaimIndex(claims []model.Claim) claimIndex {
	idx := make(claimIndex)
	for _, c := range claims {
		if c.PlayerName == "" {
			continue
		}
		last := match.LastName(c.PlayerName)
		idx[last] = append(idx[last], c)
	}
	return idx
}

func (idx claimIndex) covering(s Story) []model.Claim {
	var out []model.Claim
	for _, c := range idx[match.LastName(s.Player)] {
		if s.Covers(c) {
			out = append(out, c)
		}
	}
	return out
}

// Earliness ranks, for every story with at least two distinct reporters, each
// reporter's earliest claim by date and returns the earliness values
// (N-1-rank)/(N-1) collected per reporter. key extracts the reporter from a
// claim; claims for which it returns false are not ranked.
func Earliness[K comparable](stories []Story, claims []model.Claim, key func(model.Claim) (K, bool)) map[K][]float64 {
	idx := newClaimIndex(claims)
	out := make(map[K][]float64)

	for _, s := range stories {
		covering := idx.covering(s)
		sort.SliceStable(covering, func(i, j int) bool {
			if !covering[i].ClaimDate.Equal(covering[j].ClaimDate) {
				return covering[i].ClaimDate.Before(covering[j].ClaimDate)
			}
			return covering[i].ID < covering[j].ID
		})

		var order []K
		seen := make(map[K]bool)
		for _, c := range covering {
			k, ok := key(c)
			if !ok || seen[k] {
				continue
			}
			seen[k] = true
			order = append(order, k)
		}

		n := len(order)
		if n < 2 {
			continue
		}
		for rank, k := range order {
			out[k] = append(out[k], float64(n-1-rank)/float64(n-1))
		}
	}
	return out
}

// ByJournalist keys claims by journalist ID
func ByJournalist(c model.Claim) (int64, bool) {
	return c.JournalistID, c.JournalistID != 0
}

// ByPublication keys claims by publication, skipping claims without one
func ByPublication(c model.Claim) (string, bool) {
	return c.Publication, c.Publication != ""
}
