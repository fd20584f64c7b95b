package telemetry

import (
	"testing"
	"time"
)

func TestGetEventsFiltersByUserAndType(t *testing.T) {
	repo := NewMemoryRepository()
	if err := repo.RecordEvent("u1", EventHabitCompleted, EventMetadata{"points": 10}); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordEvent("u2", EventHabitCompleted, EventMetadata{"points": 10}); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordEvent("u1", EventSpinWon, EventMetadata{"coins": 50}); err != nil {
		t.Fatal(err)
	}

	all, err := repo.GetEvents("u1", time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	spins, err := repo.GetEvents("u1", time.Time{}, []EventType{EventSpinWon})
	if err != nil {
		t.Fatal(err)
	}
	if len(spins) != 1 || spins[0].Type != EventSpinWon {
		t.Fatalf("spins = %+v", spins)
	}
}

func TestGetEventsSinceCutoff(t *testing.T) {
	repo := NewMemoryRepository()
	if err := repo.RecordEvent("u1", EventHabitCompleted, nil); err != nil {
		t.Fatal(err)
	}

	future := time.Now().Add(time.Hour)
	events, err := repo.GetEvents("u1", future, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("len = %d, want 0", len(events))
	}
}

func TestEventCapRollsOffOldest(t *testing.T) {
	repo := NewMemoryRepository()
	for i := 0; i < maxEvents+5; i++ {
		if err := repo.RecordEvent("u1", EventHabitCompleted, nil); err != nil {
			t.Fatal(err)
		}
	}

	events, err := repo.GetEvents("u1", time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != maxEvents {
		t.Fatalf("len = %d, want %d", len(events), maxEvents)
	}
	if events[0].ID != 6 {
		t.Fatalf("oldest id = %d, want 6", events[0].ID)
	}
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	_ = repo.RecordEvent("u1", EventHabitCompleted, EventMetadata{"points": 10, "tasks": 1})
	_ = repo.RecordEvent("u1", EventHabitCompleted, EventMetadata{"points": 10, "tasks": 1})
	_ = repo.RecordEvent("u1", EventHabitReverted, EventMetadata{"points": -10, "tasks": -1})
	_ = repo.RecordEvent("u1", EventSpinWon, EventMetadata{"coins": 75})

	events, err := repo.GetEvents("u1", time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := CalculateStats(events, time.Now().AddDate(0, 0, -7))
	if err != nil {
		t.Fatal(err)
	}

	if stats.Completions != 2 || stats.Reversions != 1 {
		t.Fatalf("completions=%d reversions=%d", stats.Completions, stats.Reversions)
	}
	if stats.NetPoints != 10 {
		t.Fatalf("netPoints = %d, want 10", stats.NetPoints)
	}
	if stats.CoinsWon != 75 {
		t.Fatalf("coinsWon = %d, want 75", stats.CoinsWon)
	}
}
