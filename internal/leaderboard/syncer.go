package leaderboard

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/stats"
)

const (
	defaultFetchLimit  = 20
	defaultCallTimeout = 5 * time.Second
)

// Syncer propagates score deltas to the remote aggregate store and fetches
// ranked snapshots, degrading to the demo dataset behind a one-way circuit
// breaker when the backend is unusable. The local UI never depends on a
// sync call succeeding.
type Syncer struct {
	store   RemoteStore
	breaker *Breaker
	logger  *log.Logger

	fetchLimit   int
	callTimeout  time.Duration
	demoFallback bool
	now          func() time.Time
}

func NewSyncer(store RemoteStore, breaker *Breaker, logger *log.Logger) *Syncer {
	if breaker == nil {
		breaker = NewBreaker()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		store:        store,
		breaker:      breaker,
		logger:       logger,
		fetchLimit:   defaultFetchLimit,
		callTimeout:  defaultCallTimeout,
		demoFallback: true,
		now:          time.Now,
	}
}

// SetDemoFallback controls whether an empty or unreachable remote bucket
// falls back to the demo dataset. Disabled, the ranked view holds only the
// requesting user.
func (s *Syncer) SetDemoFallback(on bool) {
	s.demoFallback = on
}

func (s *Syncer) SetFetchLimit(n int) {
	if n > 0 {
		s.fetchLimit = n
	}
}

// SetNow overrides the clock used for bucket derivation.
func (s *Syncer) SetNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *Syncer) trip(op string, err error) {
	if s.breaker.Available() {
		s.logger.Printf("[leaderboard] %s failed, remote sync disabled for this session: %v", op, err)
	}
	s.breaker.Trip()
}

// RecordDelta applies a signed point/task delta under the daily, weekly and
// monthly buckets. Fire-and-forget: it never returns an error and never
// panics into the caller. Guests are local-only by policy and skip the
// remote path regardless of breaker state.
func (s *Syncer) RecordDelta(user model.User, points, tasks int) {
	if user.IsGuest() || (points == 0 && tasks == 0) {
		return
	}
	if s.store == nil || !s.breaker.Available() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	entry := model.LeaderboardEntry{
		DisplayName: user.Name,
		PhotoURL:    user.PhotoURL,
		Country:     user.Country,
	}

	now := s.now()
	for _, p := range allPeriods {
		if err := s.store.Increment(ctx, BucketID(p, now), user.ID, entry, points, tasks); err != nil {
			if errors.Is(err, ErrUnavailable) {
				s.trip("delta write", err)
				return
			}
			s.logger.Printf("[leaderboard] delta write to %s bucket failed: %v", p, err)
		}
	}
}

// FetchOptions carries the view filters and the requester's locally
// computed standing for the merge step.
type FetchOptions struct {
	User       model.User
	LocalStats model.UserStats
	Frame      string

	Country string   // ISO country filter, empty for global
	Friends []string // allow-listed user IDs, nil for everyone
}

// FetchRanked returns the assembled, filtered, re-ranked view for a period.
// An empty or unreachable remote bucket yields the demo dataset; either way
// the requesting user is merged in and ranks are reassigned 1..N.
func (s *Syncer) FetchRanked(ctx context.Context, period Period, opts FetchOptions) []model.LeaderboardEntry {
	entries := s.fetchRemote(ctx, period)
	if len(entries) == 0 && s.demoFallback {
		entries = DemoLeaderboard()
	}

	entries = Filter(entries, opts.Country, opts.Friends)
	entries = MergeCurrentUser(entries, opts.User, opts.LocalStats, opts.Frame, opts.Country)
	return Rank(entries)
}

func (s *Syncer) fetchRemote(ctx context.Context, period Period) []model.LeaderboardEntry {
	if s.store == nil || !s.breaker.Available() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	entries, err := s.store.Top(ctx, BucketID(period, s.now()), s.fetchLimit)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			s.trip("ranked fetch", err)
		} else {
			s.logger.Printf("[leaderboard] ranked fetch failed: %v", err)
		}
		return nil
	}
	return entries
}

// LocalStanding synthesizes the requester's own entry from local stats, for
// views that need the current user without a full board fetch.
func LocalStanding(user model.User, local model.UserStats, frame string) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		UserID:         user.ID,
		DisplayName:    user.Name,
		PhotoURL:       user.PhotoURL,
		Points:         local.TotalPoints,
		TasksCompleted: local.TotalCompleted,
		Country:        user.Country,
		Tier:           stats.TierFor(local.Level).Name,
		AvatarFrame:    frame,
	}
}
