package leaderboard

import (
	"fmt"
	"time"
)

// Period is a rolling leaderboard window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

var allPeriods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	}
	return "", fmt.Errorf("unknown leaderboard period %q", s)
}

// BucketID derives the aggregate document key for a period at time t:
// daily_YYYY-MM-DD, weekly_YYYY-Www (ISO week), monthly_YYYY-MM.
func BucketID(p Period, t time.Time) string {
	switch p {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("weekly_%d-W%02d", year, week)
	case PeriodMonthly:
		return "monthly_" + t.Format("2006-01")
	default:
		return "daily_" + t.Format("2006-01-02")
	}
}
