// Package progression implements the adaptive difficulty state machine.
// Levels range 1-3 and are tracked independently for the full-exam mode and
// for each of the 21 task categories.
package progression

import "math"

const (
	// MinLevel is the starting difficulty for every scope.
	MinLevel = 1

	// MaxLevel is the difficulty cap. Levels never exceed it.
	MaxLevel = 3

	// AdvanceThreshold is the accuracy ratio required to level up.
	AdvanceThreshold = 0.8
)

// Advance returns the level after a completed attempt. A score of at least
// 80% raises the level by exactly one, regardless of margin; anything less
// leaves it unchanged. The level never decreases and never exceeds MaxLevel.
// A zero-total attempt is a no-op.
func Advance(current, correct, total int) int {
	if total == 0 {
		return current
	}
	if float64(correct)/float64(total) >= AdvanceThreshold && current < MaxLevel {
		return current + 1
	}
	return current
}

// Clamp forces a level into the valid [MinLevel, MaxLevel] range.
func Clamp(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Percent converts a score to a percentage rounded to one decimal place.
// Exact halves round to even (1/16 is 6.2, not 6.3), matching the rounding
// already present in stored result files. Returns 0 for a zero-total attempt.
func Percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(correct)/float64(total)*1000) / 10
}
