package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period      string            `json:"period"`
	EventCounts map[EventType]int `json:"event_counts"`
	Completions int               `json:"completions"`
	Reversions  int               `json:"reversions"`
	NetPoints   int               `json:"net_points"`
	CoinsWon    int               `json:"coins_won"`
}

// CalculateStats summarizes a slice of feed events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventHabitCompleted:
			stats.Completions++
			if pts, ok := metadata["points"].(float64); ok {
				stats.NetPoints += int(pts)
			}
		case EventHabitReverted:
			stats.Reversions++
			if pts, ok := metadata["points"].(float64); ok {
				stats.NetPoints += int(pts)
			}
		case EventSpinWon:
			if coins, ok := metadata["coins"].(float64); ok {
				stats.CoinsWon += int(coins)
			}
		}
	}

	return stats, nil
}
