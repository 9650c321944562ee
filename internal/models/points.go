package models

// PointBalance is a user's accumulated score
type PointBalance struct {
	// UserID is the Discord user ID
	UserID string

	// Points is the cumulative score
	Points int

	// CompletedSessions is the lifetime count of completed pomodoros
	CompletedSessions int
}
