package model

import "time"

type GoalID string

// Goal is a user-defined recurring habit tracked daily. Goals are never
// mutated after creation except through Patch updates and soft deletion;
// logs keep referencing deleted goal IDs, so a Goal row is retained with
// DeletedAt set instead of being removed.
type Goal struct {
	ID              GoalID     `json:"id"`
	Title           string     `json:"title"`
	Color           string     `json:"color"`
	Icon            string     `json:"icon"`
	CreatedAt       time.Time  `json:"createdAt"`
	Time            *string    `json:"time,omitempty"` // "HH:MM"
	ReminderEnabled bool       `json:"reminderEnabled,omitempty"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

func (g Goal) Deleted() bool {
	return g.DeletedAt != nil
}

// DayLog maps goal IDs to their status for one calendar day.
type DayLog map[GoalID]CompletionStatus

// DailyLogs is a sparse map of local calendar dates ("2006-01-02", no
// timezone normalization) to per-goal statuses.
type DailyLogs map[string]DayLog

// StatusOn returns the logged status for a goal on a date, defaulting to
// StatusPending when no entry exists.
func (l DailyLogs) StatusOn(date string, id GoalID) CompletionStatus {
	day, ok := l[date]
	if !ok {
		return StatusPending
	}
	s, ok := day[id]
	if !ok {
		return StatusPending
	}
	return s
}

// DateKey formats t as a DailyLogs key in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
