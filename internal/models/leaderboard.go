package models

// LeaderboardEntry is one row of the top-N ranking
type LeaderboardEntry struct {
	// UserID is the Discord user ID
	UserID string

	// Points is the user's score when the snapshot was taken
	Points int
}
