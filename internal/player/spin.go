package player

import (
	"hash/fnv"
	"time"
)

// Spin wheel segments. The draw is deterministic per (user, date) so a
// reload cannot re-roll the same day's prize.
var wheelSegments = []SpinResult{
	{Coins: 5},
	{BonusPoints: 10},
	{Coins: 20},
	{BonusPoints: 50},
	{}, // better luck tomorrow
	{BonusPoints: 100},
	{Coins: 10},
	{BonusPoints: 25},
}

type SpinResult struct {
	Coins       int `json:"coins"`
	BonusPoints int `json:"bonusPoints"`
	Segment     int `json:"segment"`
}

func spinSegment(userID, date string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID + "|" + date))
	return int(h.Sum32() % uint32(len(wheelSegments)))
}

// Spin draws today's wheel segment and banks the prize. One spin per user
// per calendar day.
func (r *FileRepo) Spin(now time.Time) (SpinResult, error) {
	today := now.Format("2006-01-02")

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	if us.LastSpinDate == today {
		return SpinResult{}, ErrAlreadySpun
	}

	seg := spinSegment(r.userID, today)
	res := wheelSegments[seg]
	res.Segment = seg
	if us.BoosterActive(now) {
		res.Coins *= 2
		res.BonusPoints *= 2
	}

	us.Coins += res.Coins
	us.BonusPoints += res.BonusPoints
	us.LastSpinDate = today
	r.store.s.Users[r.userID] = us

	if err := r.store.saveLocked(); err != nil {
		return SpinResult{}, err
	}
	return res, nil
}
