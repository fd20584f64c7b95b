package achievement

import "github.com/sagarzoci/orbitgoals/internal/model"

// Metric names the UserStats field an achievement threshold is compared
// against.
type Metric string

const (
	MetricTotalCompleted Metric = "totalCompleted"
	MetricCurrentStreak  Metric = "currentStreak"
	MetricPerfectDays    Metric = "perfectDays"
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      Metric `json:"metric"`
	Threshold   int    `json:"threshold"`
	Icon        string `json:"icon"`
}

// Catalog is the fixed, ordered badge catalog. Unlocks are recomputed from
// stats on every call, so a badge can relock if totals drop (e.g. after a
// goal deletion).
var Catalog = []Achievement{
	{ID: "rookie", Title: "Rookie Orbit", Description: "Complete your first habit.", Metric: MetricTotalCompleted, Threshold: 1, Icon: "🚀"},
	{ID: "streak_3", Title: "Ignition", Description: "Maintain a 3-day streak.", Metric: MetricCurrentStreak, Threshold: 3, Icon: "🔥"},
	{ID: "streak_7", Title: "Velocity", Description: "Reach a 7-day streak.", Metric: MetricCurrentStreak, Threshold: 7, Icon: "⚡"},
	{ID: "perfect_week", Title: "Perfect Alignment", Description: "Achieve 7 perfect days.", Metric: MetricPerfectDays, Threshold: 7, Icon: "🌟"},
	{ID: "master", Title: "Orbit Master", Description: "Complete 100 habits total.", Metric: MetricTotalCompleted, Threshold: 100, Icon: "👑"},
}

func metricValue(s model.UserStats, m Metric) int {
	switch m {
	case MetricTotalCompleted:
		return s.TotalCompleted
	case MetricCurrentStreak:
		return s.CurrentStreak
	case MetricPerfectDays:
		return s.PerfectDays
	default:
		return 0
	}
}

// Unlocked returns the IDs of all catalog achievements whose threshold the
// stats meet, in catalog order.
func Unlocked(s model.UserStats) []string {
	out := make([]string, 0, len(Catalog))
	for _, a := range Catalog {
		if metricValue(s, a.Metric) >= a.Threshold {
			out = append(out, a.ID)
		}
	}
	return out
}

func IsUnlocked(s model.UserStats, id string) bool {
	for _, a := range Catalog {
		if a.ID == id {
			return metricValue(s, a.Metric) >= a.Threshold
		}
	}
	return false
}
