package stats

import (
	"testing"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute_EmptyInputs(t *testing.T) {
	got := Compute(nil, model.DailyLogs{}, 0, day("2024-01-02"))
	want := model.UserStats{Level: 1}
	if got != want {
		t.Fatalf("expected zero stats at level 1, got %+v", got)
	}
}

func TestCompute_TwoPerfectDays(t *testing.T) {
	goals := []model.Goal{{ID: "g1", Title: "Read"}}
	logs := model.DailyLogs{
		"2024-01-01": {"g1": model.StatusCompleted},
		"2024-01-02": {"g1": model.StatusCompleted},
	}

	got := Compute(goals, logs, 0, day("2024-01-02"))

	if got.TotalCompleted != 2 || got.PerfectDays != 2 {
		t.Fatalf("expected 2 completions / 2 perfect days, got %+v", got)
	}
	if got.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", got.CurrentStreak)
	}
	if got.TotalPoints != 2*PointsPerCompletion+2*PointsPerPerfectDay {
		t.Fatalf("expected 120 points, got %d", got.TotalPoints)
	}
	if got.Level != 1 {
		t.Fatalf("expected level 1, got %d", got.Level)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	goals := []model.Goal{{ID: "g1"}, {ID: "g2"}}
	logs := model.DailyLogs{
		"2024-03-01": {"g1": model.StatusCompleted, "g2": model.StatusSkipped},
		"2024-03-02": {"g1": model.StatusCompleted, "g2": model.StatusCompleted},
	}
	today := day("2024-03-02")

	a := Compute(goals, logs, 25, today)
	b := Compute(goals, logs, 25, today)
	if a != b {
		t.Fatalf("same inputs produced different stats: %+v vs %+v", a, b)
	}
}

func TestCompute_CompletingNeverDecreases(t *testing.T) {
	goals := []model.Goal{{ID: "g1"}, {ID: "g2"}}
	logs := model.DailyLogs{
		"2024-03-01": {"g1": model.StatusCompleted},
		"2024-03-02": {"g1": model.StatusSkipped, "g2": model.StatusCompleted},
	}
	today := day("2024-03-02")

	before := Compute(goals, logs, 0, today)
	logs["2024-03-02"]["g1"] = model.StatusCompleted
	after := Compute(goals, logs, 0, today)

	if after.TotalCompleted < before.TotalCompleted {
		t.Fatalf("totalCompleted decreased: %d -> %d", before.TotalCompleted, after.TotalCompleted)
	}
	if after.TotalPoints < before.TotalPoints {
		t.Fatalf("totalPoints decreased: %d -> %d", before.TotalPoints, after.TotalPoints)
	}
	if after.Level < before.Level {
		t.Fatalf("level decreased: %d -> %d", before.Level, after.Level)
	}
}

func TestCompute_NoGoalsMeansNoPerfectDays(t *testing.T) {
	logs := model.DailyLogs{
		"2024-01-01": {"ghost": model.StatusCompleted},
		"2024-01-02": {},
	}
	got := Compute(nil, logs, 0, day("2024-01-02"))
	if got.PerfectDays != 0 {
		t.Fatalf("expected 0 perfect days with no goals, got %d", got.PerfectDays)
	}
}

func TestCompute_PendingTodayKeepsYesterdayStreak(t *testing.T) {
	goals := []model.Goal{{ID: "g1"}}
	logs := model.DailyLogs{
		"2024-05-01": {"g1": model.StatusCompleted},
		"2024-05-02": {"g1": model.StatusCompleted},
		"2024-05-03": {"g1": model.StatusCompleted},
	}

	// Today (May 4th) has no entry yet: the streak counts back from yesterday.
	got := Compute(goals, logs, 0, day("2024-05-04"))
	if got.CurrentStreak != 3 {
		t.Fatalf("expected streak 3 with pending today, got %d", got.CurrentStreak)
	}

	// A skipped today does break the chain at today, but the walk still
	// starts from yesterday, so the result is identical.
	logs["2024-05-04"] = model.DayLog{"g1": model.StatusSkipped}
	got = Compute(goals, logs, 0, day("2024-05-04"))
	if got.CurrentStreak != 3 {
		t.Fatalf("expected streak 3 with skipped today, got %d", got.CurrentStreak)
	}
}

func TestCompute_StreakIsMaxAcrossGoalsNotSum(t *testing.T) {
	goals := []model.Goal{{ID: "g1"}, {ID: "g2"}}
	logs := model.DailyLogs{
		"2024-05-01": {"g1": model.StatusCompleted},
		"2024-05-02": {"g1": model.StatusCompleted, "g2": model.StatusCompleted},
	}
	got := Compute(goals, logs, 0, day("2024-05-02"))
	if got.CurrentStreak != 2 {
		t.Fatalf("expected max streak 2, got %d", got.CurrentStreak)
	}
}

func TestCompute_StreakCappedAt365(t *testing.T) {
	goals := []model.Goal{{ID: "g1"}}
	logs := model.DailyLogs{}
	today := day("2024-12-31")
	for i := 0; i < 500; i++ {
		logs[model.DateKey(today.AddDate(0, 0, -i))] = model.DayLog{"g1": model.StatusCompleted}
	}

	got := Compute(goals, logs, 0, today)
	if got.CurrentStreak != 365 {
		t.Fatalf("expected streak capped at 365, got %d", got.CurrentStreak)
	}
}

func TestCompute_BonusPointsRaiseLevel(t *testing.T) {
	got := Compute(nil, model.DailyLogs{}, 450, day("2024-01-01"))
	if got.TotalPoints != 450 {
		t.Fatalf("expected 450 points, got %d", got.TotalPoints)
	}
	if got.Level != 3 {
		t.Fatalf("expected level 3 at 450 points, got %d", got.Level)
	}
}

func TestCompletionDelta(t *testing.T) {
	cases := []struct {
		from, to      model.CompletionStatus
		points, tasks int
	}{
		{model.StatusPending, model.StatusCompleted, 10, 1},
		{model.StatusSkipped, model.StatusCompleted, 10, 1},
		{model.StatusCompleted, model.StatusPending, -10, -1},
		{model.StatusCompleted, model.StatusSkipped, -10, -1},
		{model.StatusPending, model.StatusSkipped, 0, 0},
		{model.StatusSkipped, model.StatusPending, 0, 0},
		{model.StatusCompleted, model.StatusCompleted, 0, 0},
		{model.StatusPending, model.StatusPending, 0, 0},
	}
	for _, c := range cases {
		p, n := CompletionDelta(c.from, c.to)
		if p != c.points || n != c.tasks {
			t.Fatalf("%s -> %s: expected (%d,%d), got (%d,%d)", c.from, c.to, c.points, c.tasks, p, n)
		}
	}
}

func TestCompletionDelta_RoundTripIsNetZero(t *testing.T) {
	p1, t1 := CompletionDelta(model.StatusPending, model.StatusCompleted)
	p2, t2 := CompletionDelta(model.StatusCompleted, model.StatusPending)
	if p1+p2 != 0 || t1+t2 != 0 {
		t.Fatalf("toggle round trip not net zero: points %d, tasks %d", p1+p2, t1+t2)
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		level int
		name  string
		next  int
	}{
		{1, "Bronze", 5},
		{4, "Bronze", 5},
		{5, "Silver", 10},
		{9, "Silver", 10},
		{10, "Gold", 20},
		{19, "Gold", 20},
		{20, "Diamond", 0},
		{99, "Diamond", 0},
	}
	for _, c := range cases {
		got := TierFor(c.level)
		if got.Name != c.name || got.NextTierLevel != c.next {
			t.Fatalf("level %d: expected %s/next %d, got %s/next %d", c.level, c.name, c.next, got.Name, got.NextTierLevel)
		}
	}
}
