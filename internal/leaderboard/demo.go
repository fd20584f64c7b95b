package leaderboard

import "github.com/sagarzoci/orbitgoals/internal/model"

var demoEntries = []model.LeaderboardEntry{
	{UserID: "m1", DisplayName: "Cosmic Voyager", Points: 2450, TasksCompleted: 45},
	{UserID: "m2", DisplayName: "Star Walker", Points: 1980, TasksCompleted: 38},
	{UserID: "m3", DisplayName: "Nebula Surfer", Points: 1850, TasksCompleted: 32},
	{UserID: "m4", DisplayName: "Orbit Pilot", Points: 1720, TasksCompleted: 28},
	{UserID: "m5", DisplayName: "Lunar Lander", Points: 1640, TasksCompleted: 25},
	{UserID: "m6", DisplayName: "Solar Sailor", Points: 1500, TasksCompleted: 22},
	{UserID: "m7", DisplayName: "Comet Chaser", Points: 1350, TasksCompleted: 20},
}

// DemoLeaderboard is the fixed demonstration dataset returned when the
// remote bucket is empty or unreachable, so the board is never blank.
func DemoLeaderboard() []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(demoEntries))
	copy(out, demoEntries)
	return out
}
