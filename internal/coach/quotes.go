package coach

import "time"

// Quote is a motivational quote with attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{Text: "Small habits, repeated daily, create massive results.", Author: "James Clear"},
	{Text: "Consistency is the DNA of mastery.", Author: "Robin Sharma"},
	{Text: "Your future is found in your daily routine.", Author: "John C. Maxwell"},
	{Text: "Don't break the chain.", Author: "Jerry Seinfeld"},
	{Text: "Success is the sum of small efforts, repeated day in and day out.", Author: "Robert Collier"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit.", Author: "Aristotle"},
	{Text: "The secret of your future is hidden in your daily routine.", Author: "Mike Murdock"},
	{Text: "Motivation is what gets you started. Habit is what keeps you going.", Author: "Jim Ryun"},
	{Text: "First we make our habits, then our habits make us.", Author: "John Dryden"},
	{Text: "You will never change your life until you change something you do daily.", Author: "John C. Maxwell"},
	{Text: "Discipline is choosing between what you want now and what you want most.", Author: "Abraham Lincoln"},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Text: "Start where you are. Use what you have. Do what you can.", Author: "Arthur Ashe"},
}

// DailyQuote picks a quote by day of year, so everyone sees the same quote
// on the same day.
func DailyQuote(t time.Time) Quote {
	return quotes[t.YearDay()%len(quotes)]
}
