package telemetry

import "time"

type EventType string

const (
	EventHabitCompleted EventType = "habit_completed"
	EventHabitReverted  EventType = "habit_reverted"
	EventGoalCreated    EventType = "goal_created"
	EventItemPurchased  EventType = "item_purchased"
	EventSpinWon        EventType = "spin_won"
	EventProUpgraded    EventType = "pro_upgraded"
)

type Event struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
