package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

type fakeGen struct {
	text string
	err  error

	lastSystem string
	lastPrompt string
	wantJSON   bool
}

func (f *fakeGen) Generate(_ context.Context, system, prompt string, wantJSON bool) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	f.wantJSON = wantJSON
	return f.text, f.err
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func testService(gen Generator) *Service {
	s := NewService(gen)
	s.now = fixedNow
	return s
}

func TestAnalyzeProgressNoGenerator(t *testing.T) {
	got := testService(nil).AnalyzeProgress(context.Background(), nil, nil, fixedNow())
	if got.Score != 0 {
		t.Fatalf("score = %d, want 0", got.Score)
	}
	if got.Summary == "" || len(got.Tips) == 0 {
		t.Fatal("canned analysis missing fields")
	}
}

func TestAnalyzeProgressParsesModelJSON(t *testing.T) {
	gen := &fakeGen{text: "```json\n{\"summary\":\"Solid month.\",\"score\":140,\"tips\":[\"keep going\"],\"motivationalQuote\":\"onward\"}\n```"}
	got := testService(gen).AnalyzeProgress(context.Background(), []model.Goal{{ID: "g1", Title: "Read"}}, nil, fixedNow())

	if !gen.wantJSON {
		t.Fatal("expected a JSON-mode request")
	}
	if got.Summary != "Solid month." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if got.Score != 100 {
		t.Fatalf("score = %d, want clamped 100", got.Score)
	}
}

func TestAnalyzeProgressFallsBackOnGarbage(t *testing.T) {
	gen := &fakeGen{text: "sorry, I cannot do that"}
	got := testService(gen).AnalyzeProgress(context.Background(), nil, nil, fixedNow())
	if got.Score != 50 {
		t.Fatalf("score = %d, want canned 50", got.Score)
	}
}

func TestAnalyzeProgressFallsBackOnError(t *testing.T) {
	gen := &fakeGen{err: errors.New("boom")}
	got := testService(gen).AnalyzeProgress(context.Background(), nil, nil, fixedNow())
	if got.Summary != fallbackAnalysis().Summary {
		t.Fatalf("summary = %q", got.Summary)
	}
}

func TestSuggestHabitsValidation(t *testing.T) {
	gen := &fakeGen{text: `[{"title":"Stretch","reason":"mobility","icon":"x","color":"bg-teal-500","difficulty":"Impossible"},{"title":"","reason":"dropped"}]`}
	got := testService(gen).SuggestHabits(context.Background(), "desk job", nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Difficulty != "Medium" {
		t.Fatalf("difficulty = %q, want normalized Medium", got[0].Difficulty)
	}
}

func TestSuggestHabitsFallback(t *testing.T) {
	got := testService(nil).SuggestHabits(context.Background(), "", nil)
	if len(got) == 0 {
		t.Fatal("no fallback suggestions")
	}
}

func TestWeeklyReviewScoreComputedLocally(t *testing.T) {
	goals := []model.Goal{{ID: "g1", Title: "Run"}}
	logs := model.DailyLogs{}
	// Complete every day of the trailing week.
	for i := 0; i < 7; i++ {
		key := model.DateKey(fixedNow().AddDate(0, 0, -i))
		logs[key] = model.DayLog{"g1": model.StatusCompleted}
	}

	got := testService(nil).WeeklyReview(context.Background(), goals, logs)
	if got.WeekScore != 100 {
		t.Fatalf("weekScore = %d, want 100", got.WeekScore)
	}
	if got.BestDay == "" {
		t.Fatal("empty bestDay")
	}
}

func TestWeeklyReviewOverridesModelScore(t *testing.T) {
	gen := &fakeGen{text: `{"weekScore":3,"summary":"Nice week","bestDay":"Tuesday","focusArea":"Sleep","actionItem":"Earlier bedtime"}`}
	got := testService(gen).WeeklyReview(context.Background(), nil, nil)
	if got.WeekScore != 0 {
		t.Fatalf("weekScore = %d, want locally computed 0", got.WeekScore)
	}
	if got.Summary != "Nice week" {
		t.Fatalf("summary = %q", got.Summary)
	}
}

func TestReplyBuildsTodayContext(t *testing.T) {
	gen := &fakeGen{text: "Keep it up!"}
	goals := []model.Goal{{ID: "g1", Title: "Meditate"}}
	logs := model.DailyLogs{
		model.DateKey(fixedNow()): {"g1": model.StatusCompleted},
	}

	got := testService(gen).Reply(context.Background(), "how am I doing?", goals, logs)
	if got != "Keep it up!" {
		t.Fatalf("reply = %q", got)
	}
	if gen.wantJSON {
		t.Fatal("chat should not request JSON mode")
	}
	wantLine := "- Meditate: Status today is completed"
	if !strings.Contains(gen.lastSystem, wantLine) {
		t.Fatalf("system prompt missing %q:\n%s", wantLine, gen.lastSystem)
	}
}

func TestReplyNoGenerator(t *testing.T) {
	got := testService(nil).Reply(context.Background(), "hi", nil, nil)
	if got != chatFallback {
		t.Fatalf("reply = %q", got)
	}
}

func TestDailyQuoteDeterministic(t *testing.T) {
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	a := DailyQuote(day)
	b := DailyQuote(day.Add(5 * time.Hour))
	if a != b {
		t.Fatalf("same day gave different quotes: %v vs %v", a, b)
	}
	if a.Text == "" || a.Author == "" {
		t.Fatal("empty quote")
	}
	if DailyQuote(day) == DailyQuote(day.AddDate(0, 0, 1)) {
		t.Fatal("consecutive days should rotate")
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":               `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  \n{\"a\":1}\n  ":       `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
