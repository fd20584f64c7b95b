package leaderboard

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// ErrUnavailable marks the "backend is not usable" error class: missing
// backend, permission denied, not found, network failure. Auth failures are
// deliberately in the same class; from the client's point of view both mean
// the remote store cannot be used right now.
var ErrUnavailable = errors.New("remote store unavailable")

// RemoteStore is the document-style aggregate store addressed by
// (bucketID, userID).
type RemoteStore interface {
	// Increment merge-writes the entry's identity fields and additively
	// increments points and tasksCompleted. The increment must be atomic on
	// the server side; buckets are the one multi-writer resource and are
	// protected solely by this being additive rather than read-modify-write.
	Increment(ctx context.Context, bucket, userID string, entry model.LeaderboardEntry, points, tasks int) error

	// Top returns up to limit entries for the bucket ordered by points
	// descending.
	Top(ctx context.Context, bucket string, limit int) ([]model.LeaderboardEntry, error)
}

// MemoryStore is an in-process RemoteStore used by tests and local dev.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string]model.LeaderboardEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: map[string]map[string]model.LeaderboardEntry{}}
}

func (m *MemoryStore) Increment(_ context.Context, bucket, userID string, entry model.LeaderboardEntry, points, tasks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		b = map[string]model.LeaderboardEntry{}
		m.buckets[bucket] = b
	}
	cur := b[userID]

	cur.UserID = userID
	cur.DisplayName = entry.DisplayName
	cur.PhotoURL = entry.PhotoURL
	cur.Country = entry.Country
	cur.Tier = entry.Tier
	cur.AvatarFrame = entry.AvatarFrame
	cur.Points += points
	cur.TasksCompleted += tasks

	b[userID] = cur
	return nil
}

func (m *MemoryStore) Top(_ context.Context, bucket string, limit int) ([]model.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b := m.buckets[bucket]
	out := make([]model.LeaderboardEntry, 0, len(b))
	for _, e := range b {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
