package stats

import (
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

const (
	PointsPerCompletion = 10
	PointsPerPerfectDay = 50

	// LevelStep is the fixed linear leveling curve: level = points/step + 1.
	LevelStep = 200

	maxStreakDays = 365
)

// Compute derives UserStats from the active goal set, the sparse log map and
// banked bonus points, evaluated relative to "today". Pure and deterministic:
// no I/O, no clock reads, same inputs always yield the same output, so it is
// safe to re-run on every state change.
func Compute(goals []model.Goal, logs model.DailyLogs, bonus int, today time.Time) model.UserStats {
	s := model.UserStats{}

	for _, day := range logs {
		completed := 0
		for _, status := range day {
			if status == model.StatusCompleted {
				completed++
			}
		}
		s.TotalCompleted += completed

		// A day with zero goals can never be perfect; without the guard the
		// zero==zero comparison would count every logged day.
		if len(goals) > 0 && completed == len(goals) {
			s.PerfectDays++
		}
	}

	for _, g := range goals {
		if streak := goalStreak(g.ID, logs, today); streak > s.CurrentStreak {
			s.CurrentStreak = streak
		}
	}

	s.TotalPoints = s.TotalCompleted*PointsPerCompletion + s.PerfectDays*PointsPerPerfectDay + bonus
	s.Level = s.TotalPoints/LevelStep + 1
	return s
}

// goalStreak counts the maximal run of consecutive completed calendar days
// ending at today or yesterday. A still-pending today does not break the
// chain; the walk simply starts from yesterday instead.
func goalStreak(id model.GoalID, logs model.DailyLogs, today time.Time) int {
	d := today
	if logs.StatusOn(model.DateKey(d), id) != model.StatusCompleted {
		d = d.AddDate(0, 0, -1)
	}

	streak := 0
	for streak < maxStreakDays {
		if logs.StatusOn(model.DateKey(d), id) != model.StatusCompleted {
			break
		}
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionDelta returns the signed point and task deltas a status
// transition should propagate to the leaderboard. Only transitions into and
// out of completed carry a delta; pending<->skipped is score-neutral.
func CompletionDelta(oldStatus, newStatus model.CompletionStatus) (points, tasks int) {
	wasDone := oldStatus == model.StatusCompleted
	isDone := newStatus == model.StatusCompleted
	switch {
	case !wasDone && isDone:
		return PointsPerCompletion, 1
	case wasDone && !isDone:
		return -PointsPerCompletion, -1
	default:
		return 0, 0
	}
}
