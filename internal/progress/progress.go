// Package progress computes how far a focus session has advanced.
package progress

import (
	"math"
	"time"
)

// Input describes a session at a point in time
type Input struct {
	// Elapsed is the time committed by previous active runs
	Elapsed time.Duration

	// Running indicates the current run is still accruing time
	Running bool

	// StartedAt is the start of the current run, ignored unless Running
	StartedAt time.Time

	// DurationMinutes is the session target
	DurationMinutes int

	// Now is the instant to evaluate at
	Now time.Time
}

// Progress is the derived view of a session
type Progress struct {
	// Percent is the rounded completion percentage, capped at 100
	Percent int

	// MinutesCompleted is the number of whole minutes elapsed
	MinutesCompleted int

	// MinutesRemaining is the number of minutes left, never negative
	MinutesRemaining int

	// Elapsed is the effective elapsed time including the current run
	Elapsed time.Duration
}

// IsComplete returns true once the session reached its target
func (p Progress) IsComplete() bool {
	return p.Percent >= 100
}

// Calculate derives progress from the input
func Calculate(in Input) Progress {
	elapsed := in.Elapsed
	if in.Running && !in.StartedAt.IsZero() {
		elapsed += in.Now.Sub(in.StartedAt)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	elapsedMs := elapsed.Milliseconds()
	totalMs := int64(in.DurationMinutes) * time.Minute.Milliseconds()

	percent := 100
	if totalMs > 0 {
		percent = int(math.Round(float64(elapsedMs) / float64(totalMs) * 100))
		if percent > 100 {
			percent = 100
		}
	}

	minutesCompleted := int(elapsedMs / time.Minute.Milliseconds())
	minutesRemaining := in.DurationMinutes - minutesCompleted
	if minutesRemaining < 0 {
		minutesRemaining = 0
	}

	return Progress{
		Percent:          percent,
		MinutesCompleted: minutesCompleted,
		MinutesRemaining: minutesRemaining,
		Elapsed:          elapsed,
	}
}
