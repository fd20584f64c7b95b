package serverapp

import (
	"time"

	"github.com/sagarzoci/orbitgoals/internal/leaderboard"
	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/player"
	"github.com/sagarzoci/orbitgoals/internal/telemetry"
)

// deltaFanout feeds completion deltas to the remote leaderboard syncer, the
// local activity feed, and the coin wallet. It runs on the toggle handler's
// background path and must never block or fail that path. It also satisfies
// player.FeedRecorder so shop and spin outcomes land in the same feed.
type deltaFanout struct {
	syncer  *leaderboard.Syncer
	feed    telemetry.Repository
	players *player.FileRepo

	now func() time.Time
}

func (d *deltaFanout) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func (d *deltaFanout) RecordDelta(user model.User, points, tasks int) {
	if d.feed != nil && user.ID != "" {
		evt := telemetry.EventHabitCompleted
		if points < 0 {
			evt = telemetry.EventHabitReverted
		}
		_ = d.feed.RecordEvent(user.ID, evt, telemetry.EventMetadata{
			"points": points,
			"tasks":  tasks,
		})
	}
	// Completions drop coins; reversions claw them back at the same rate.
	if d.players != nil && user.ID != "" && tasks != 0 {
		_, _ = d.players.ForUser(user.ID).EarnCoins(tasks*player.CoinsPerCompletion, d.clock())
	}
	if d.syncer != nil {
		d.syncer.RecordDelta(user, points, tasks)
	}
}

func (d *deltaFanout) RecordPurchase(userID string, item player.ShopItem) {
	if d.feed == nil || userID == "" {
		return
	}
	_ = d.feed.RecordEvent(userID, telemetry.EventItemPurchased, telemetry.EventMetadata{
		"itemId": item.ID,
		"cost":   item.Cost,
	})
}

func (d *deltaFanout) RecordSpin(userID string, res player.SpinResult) {
	if d.feed == nil || userID == "" {
		return
	}
	_ = d.feed.RecordEvent(userID, telemetry.EventSpinWon, telemetry.EventMetadata{
		"coins":   res.Coins,
		"points":  res.BonusPoints,
		"segment": res.Segment,
	})
}
