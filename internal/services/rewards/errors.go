package rewards

// RewardsError is a custom error type for point and leaderboard errors
type RewardsError string

// Error implements the error interface
func (e RewardsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidUserID     RewardsError = "user ID cannot be empty"
	ErrInvalidAmount     RewardsError = "amount must be positive"
	ErrNilConfig         RewardsError = "config cannot be nil"
	ErrNilCompletionRepo RewardsError = "completion repository cannot be nil"
	ErrNilPointsRepo     RewardsError = "points repository cannot be nil"
)
