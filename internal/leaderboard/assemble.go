package leaderboard

import (
	"sort"

	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/stats"
)

// Filter applies the country or friends view to a fetched entry list.
// Filtering happens strictly before the current-user merge.
func Filter(entries []model.LeaderboardEntry, country string, friends []string) []model.LeaderboardEntry {
	if country == "" && friends == nil {
		return entries
	}

	allow := map[string]bool{}
	for _, id := range friends {
		allow[id] = true
	}

	out := make([]model.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if country != "" && e.Country != country {
			continue
		}
		if friends != nil && !allow[e.UserID] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MergeCurrentUser guarantees the requesting user appears in their own
// leaderboard view: if absent, an entry is synthesized from locally computed
// stats. The merge respects an active country filter — the user is not
// injected into a view their country does not match unless the list is
// otherwise empty.
func MergeCurrentUser(entries []model.LeaderboardEntry, user model.User, local model.UserStats, frame string, country string) []model.LeaderboardEntry {
	if user.ID == "" {
		return entries
	}
	for _, e := range entries {
		if e.UserID == user.ID {
			return entries
		}
	}
	if country != "" && user.Country != country && len(entries) > 0 {
		return entries
	}

	return append(entries, model.LeaderboardEntry{
		UserID:         user.ID,
		DisplayName:    user.Name,
		PhotoURL:       user.PhotoURL,
		Points:         local.TotalPoints,
		TasksCompleted: local.TotalCompleted,
		Country:        user.Country,
		Tier:           stats.TierFor(local.Level).Name,
		AvatarFrame:    frame,
	})
}

// Rank stable-sorts by points descending and reassigns 1-based ranks. Rank
// is purely a presentation value; whatever was stored is discarded.
func Rank(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
