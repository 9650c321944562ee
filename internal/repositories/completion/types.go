package completion

// GetCountInput contains parameters for retrieving a counter
type GetCountInput struct {
	UserID string
}

// GetCountOutput contains a counter value
type GetCountOutput struct {
	Count int
}

// UpdateCountInput contains parameters for updating a counter
type UpdateCountInput struct {
	UserID string

	// Update receives the current count and returns the new one
	Update func(current int) int
}

// UpdateCountOutput contains the counter before and after the update
type UpdateCountOutput struct {
	Previous int
	Count    int
}
