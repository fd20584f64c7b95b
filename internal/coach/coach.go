package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// Analysis is the structured result of a monthly progress review.
type Analysis struct {
	Summary           string   `json:"summary"`
	Score             int      `json:"score"`
	Tips              []string `json:"tips"`
	MotivationalQuote string   `json:"motivationalQuote"`
}

// Suggestion is a single proposed habit.
type Suggestion struct {
	Title      string `json:"title"`
	Reason     string `json:"reason"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Time       string `json:"time,omitempty"`
	Difficulty string `json:"difficulty"`
}

// WeeklyReview summarizes the last seven days.
type WeeklyReview struct {
	WeekScore  int    `json:"weekScore"`
	Summary    string `json:"summary"`
	BestDay    string `json:"bestDay"`
	FocusArea  string `json:"focusArea"`
	ActionItem string `json:"actionItem"`
}

// Service produces coaching content. With a nil Generator every operation
// returns its canned response; a configured generator that fails or returns
// malformed output falls back the same way.
type Service struct {
	gen Generator
	now func() time.Time
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen, now: time.Now}
}

func missingKeyAnalysis() Analysis {
	return Analysis{
		Summary:           "API Key is missing. Please provide a valid API Key to use the AI Coach.",
		Score:             0,
		Tips:              []string{"Check your environment variables."},
		MotivationalQuote: "The journey of a thousand miles begins with a single step.",
	}
}

func fallbackAnalysis() Analysis {
	return Analysis{
		Summary:           "Unable to analyze data at the moment. Keep going!",
		Score:             50,
		Tips:              []string{"Consistency is key.", "Try setting reminders.", "Reflect on your 'why'."},
		MotivationalQuote: "Fall seven times, stand up eight.",
	}
}

// AnalyzeProgress reviews a month of logs against the user's goals.
func (s *Service) AnalyzeProgress(ctx context.Context, goals []model.Goal, logs model.DailyLogs, month time.Time) Analysis {
	if s.gen == nil {
		return missingKeyAnalysis()
	}

	var summaries []string
	for _, g := range goals {
		var completed, skipped int
		for _, day := range logs {
			switch day[g.ID] {
			case model.StatusCompleted:
				completed++
			case model.StatusSkipped:
				skipped++
			}
		}
		summaries = append(summaries, fmt.Sprintf("%s: %d completed, %d skipped", g.Title, completed, skipped))
	}

	prompt := fmt.Sprintf(`Analyze the following habit tracking data for the month of %s.

Goals Summary:
%s

Total Logged Days: %d

Provide a structured JSON response with:
1. A short summary of performance (max 2 sentences), in a field "summary".
2. A productivity score from 0-100 based on consistency, in a field "score".
3. Three actionable tips for improvement, in a field "tips".
4. A short motivational quote relevant to the user's performance, in a field "motivationalQuote".`,
		month.Format("January 2006"), strings.Join(summaries, "\n"), len(logs))

	text, err := s.gen.Generate(ctx, "", prompt, true)
	if err != nil {
		return fallbackAnalysis()
	}
	var out Analysis
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return fallbackAnalysis()
	}
	if out.Summary == "" || len(out.Tips) == 0 {
		return fallbackAnalysis()
	}
	out.Score = clampScore(out.Score)
	if out.MotivationalQuote == "" {
		out.MotivationalQuote = DailyQuote(s.now()).Text
	}
	return out
}

func fallbackSuggestions() []Suggestion {
	return []Suggestion{
		{Title: "Drink 2L Water", Reason: "Hydration keeps your energy steady through the day.", Icon: "💧", Color: "bg-blue-500", Difficulty: "Easy"},
		{Title: "Read 15 Mins", Reason: "A small daily reading habit compounds fast.", Icon: "📚", Color: "bg-purple-500", Difficulty: "Easy"},
		{Title: "Morning Jog", Reason: "Light cardio in the morning sets the tone.", Icon: "🏃", Color: "bg-emerald-500", Time: "07:00", Difficulty: "Medium"},
		{Title: "Meditate", Reason: "Ten quiet minutes lowers stress and sharpens focus.", Icon: "🧘", Color: "bg-indigo-500", Difficulty: "Medium"},
	}
}

// SuggestHabits proposes new habits from a short bio and the goals the user
// already tracks.
func (s *Service) SuggestHabits(ctx context.Context, bio string, goals []model.Goal) []Suggestion {
	if s.gen == nil {
		return fallbackSuggestions()
	}

	titles := make([]string, 0, len(goals))
	for _, g := range goals {
		titles = append(titles, g.Title)
	}

	prompt := fmt.Sprintf(`Suggest 4 new daily habits for this user.

About the user: %s
Habits they already track: %s

Respond with a JSON array of objects, each with fields:
"title", "reason" (one sentence), "icon" (a single emoji),
"color" (a tailwind class like "bg-blue-500"),
"time" (optional HH:MM), and "difficulty" ("Easy", "Medium" or "Hard").
Do not repeat habits they already track.`,
		bio, strings.Join(titles, ", "))

	text, err := s.gen.Generate(ctx, "", prompt, true)
	if err != nil {
		return fallbackSuggestions()
	}
	var out []Suggestion
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return fallbackSuggestions()
	}
	valid := out[:0]
	for _, sg := range out {
		if sg.Title == "" {
			continue
		}
		switch sg.Difficulty {
		case "Easy", "Medium", "Hard":
		default:
			sg.Difficulty = "Medium"
		}
		valid = append(valid, sg)
	}
	if len(valid) == 0 {
		return fallbackSuggestions()
	}
	return valid
}

// WeeklyReview covers the seven days ending at the service's current day.
// The score is computed locally so it stays meaningful even on fallback.
func (s *Service) WeeklyReview(ctx context.Context, goals []model.Goal, logs model.DailyLogs) WeeklyReview {
	today := s.now()
	score, bestDay := weekScore(goals, logs, today)

	fallback := WeeklyReview{
		WeekScore:  score,
		Summary:    "A steady week. Every completed habit is a point on the board.",
		BestDay:    bestDay,
		FocusArea:  "Consistency",
		ActionItem: "Pick your easiest habit and do it first thing tomorrow.",
	}
	if s.gen == nil {
		return fallback
	}

	var lines []string
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := model.DateKey(day)
		var done int
		for _, g := range goals {
			if logs.StatusOn(key, g.ID) == model.StatusCompleted {
				done++
			}
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %d of %d habits completed", key, day.Weekday(), done, len(goals)))
	}

	prompt := fmt.Sprintf(`Write a short weekly review of this habit log.

%s

The computed week score is %d out of 100.

Respond with a JSON object with fields:
"weekScore" (use the computed score), "summary" (max 2 sentences),
"bestDay" (weekday name), "focusArea" (short phrase),
"actionItem" (one concrete step for next week).`,
		strings.Join(lines, "\n"), score)

	text, err := s.gen.Generate(ctx, "", prompt, true)
	if err != nil {
		return fallback
	}
	var out WeeklyReview
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return fallback
	}
	if out.Summary == "" {
		return fallback
	}
	out.WeekScore = score
	if out.BestDay == "" {
		out.BestDay = bestDay
	}
	return out
}

const chatFallback = "I'm having trouble connecting to my brain (API Key missing). I can't think right now!"
const chatErrorReply = "I'm feeling a bit disconnected. Let's try again later."

// Reply answers one chat message with today's goal statuses as context.
func (s *Service) Reply(ctx context.Context, userText string, goals []model.Goal, logs model.DailyLogs) string {
	if s.gen == nil {
		return chatFallback
	}

	todayKey := model.DateKey(s.now())
	var lines []string
	for _, g := range goals {
		lines = append(lines, fmt.Sprintf("- %s: Status today is %s", g.Title, logs.StatusOn(todayKey, g.ID)))
	}
	goalSummary := strings.Join(lines, "\n")
	if goalSummary == "" {
		goalSummary = "No goals set yet."
	}

	system := fmt.Sprintf(`You are Orbit, a friendly and motivational habit coaching AI.

User Context:
The user has the following goals:
%s

Instructions:
1. Keep responses concise (under 3 sentences usually).
2. Be encouraging but practical.
3. If the user asks about their progress, use the context provided.
4. If the user just says hi, be welcoming.`, goalSummary)

	text, err := s.gen.Generate(ctx, system, userText, false)
	if err != nil {
		return chatErrorReply
	}
	if text == "" {
		return "I'm not sure how to respond to that, but keep crushing your goals!"
	}
	return text
}

// weekScore is the completion rate over the trailing seven days, 0-100,
// plus the weekday with the most completions.
func weekScore(goals []model.Goal, logs model.DailyLogs, today time.Time) (int, string) {
	if len(goals) == 0 {
		return 0, today.Weekday().String()
	}
	var done int
	best, bestDay := -1, today.Weekday().String()
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := model.DateKey(day)
		var dayDone int
		for _, g := range goals {
			if logs.StatusOn(key, g.ID) == model.StatusCompleted {
				dayDone++
			}
		}
		done += dayDone
		if dayDone > best {
			best = dayDone
			bestDay = day.Weekday().String()
		}
	}
	return done * 100 / (len(goals) * 7), bestDay
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
