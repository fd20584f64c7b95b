package serverapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/player"
	"github.com/sagarzoci/orbitgoals/internal/telemetry"
)

func newTestFanout(t *testing.T) (*deltaFanout, *player.FileRepo, *telemetry.MemoryRepository) {
	t.Helper()
	players, err := player.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	feed := telemetry.NewMemoryRepository()
	return &deltaFanout{feed: feed, players: players}, players, feed
}

func TestDeltaFanout_CompletionAwardsCoins(t *testing.T) {
	fanout, players, feed := newTestFanout(t)
	user := model.User{ID: "u1", Name: "Nova"}

	fanout.RecordDelta(user, 10, 1)

	us, err := players.ForUser("u1").State()
	require.NoError(t, err)
	require.Equal(t, player.CoinsPerCompletion, us.Coins)

	events, err := feed.GetEvents("u1", time.Time{}, []telemetry.EventType{telemetry.EventHabitCompleted})
	require.NoError(t, err)
	require.Len(t, events, 1)

	// Reverting the completion takes the coins back.
	fanout.RecordDelta(user, -10, -1)
	us, err = players.ForUser("u1").State()
	require.NoError(t, err)
	require.Zero(t, us.Coins)
}

func TestDeltaFanout_BoosterDoublesCompletionAward(t *testing.T) {
	fanout, players, _ := newTestFanout(t)
	now := time.Now()
	fanout.now = func() time.Time { return now }

	wallet := players.ForUser("u1")
	require.NoError(t, wallet.AddCoins(400))
	_, err := wallet.Purchase(player.ItemBooster2x, now)
	require.NoError(t, err)

	fanout.RecordDelta(model.User{ID: "u1"}, 10, 1)

	us, err := wallet.State()
	require.NoError(t, err)
	require.Equal(t, 2*player.CoinsPerCompletion, us.Coins)
}

func TestDeltaFanout_ShopAndSpinReachFeed(t *testing.T) {
	fanout, _, feed := newTestFanout(t)

	fanout.RecordPurchase("u1", player.ShopItem{ID: player.ItemThemeNebula, Cost: 300})
	fanout.RecordSpin("u1", player.SpinResult{Coins: 20, Segment: 2})

	events, err := feed.GetEvents("u1", time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, events, 2)

	summary, err := telemetry.CalculateStats(events, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 20, summary.CoinsWon)
	require.Equal(t, 1, summary.EventCounts[telemetry.EventItemPurchased])
}
