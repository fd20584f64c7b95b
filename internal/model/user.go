package model

// GuestUserID is the sentinel identity used when no external identity is
// present. Guests never sync to the remote leaderboard.
const GuestUserID = "guest-user-123"

// User is the identity-provider view of the active user. The service never
// creates or authenticates users itself.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
	Country  string `json:"country,omitempty"` // ISO code, e.g. "US"
}

func (u User) IsGuest() bool {
	return u.ID == "" || u.ID == GuestUserID
}

// UserStats is derived state, always recomputed from goals and logs plus
// banked bonus points. It is never persisted on its own.
type UserStats struct {
	TotalCompleted int `json:"totalCompleted"`
	CurrentStreak  int `json:"currentStreak"`
	PerfectDays    int `json:"perfectDays"`
	TotalPoints    int `json:"totalPoints"`
	Level          int `json:"level"`
}

// LeaderboardEntry is a ranked row for one period bucket. Rank is assigned
// at read time by sort order and must never be trusted from storage.
type LeaderboardEntry struct {
	UserID         string `json:"userId"`
	DisplayName    string `json:"displayName"`
	PhotoURL       string `json:"photoURL,omitempty"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasksCompleted"`
	Rank           int    `json:"rank,omitempty"`
	Country        string `json:"country,omitempty"`
	Tier           string `json:"tier,omitempty"`
	AvatarFrame    string `json:"avatarFrame,omitempty"`
}
