package achievement

import (
	"testing"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func TestUnlocked_EmptyStats(t *testing.T) {
	got := Unlocked(model.UserStats{Level: 1})
	if len(got) != 0 {
		t.Fatalf("expected no achievements for empty stats, got %v", got)
	}
}

func TestUnlocked_Thresholds(t *testing.T) {
	s := model.UserStats{TotalCompleted: 1, CurrentStreak: 3, PerfectDays: 6}
	got := Unlocked(s)
	want := []string{"rookie", "streak_3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestUnlocked_RelocksWhenStatsDrop(t *testing.T) {
	if !IsUnlocked(model.UserStats{TotalCompleted: 100}, "master") {
		t.Fatalf("expected master unlocked at 100 completions")
	}
	// Deleting goals can shrink totals; the badge set follows the stats.
	if IsUnlocked(model.UserStats{TotalCompleted: 99}, "master") {
		t.Fatalf("expected master locked at 99 completions")
	}
}

func TestIsUnlocked_UnknownID(t *testing.T) {
	if IsUnlocked(model.UserStats{TotalCompleted: 1000}, "no_such_badge") {
		t.Fatalf("unknown badge must never unlock")
	}
}
