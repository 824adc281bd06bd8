package view

import (
	"errors"
	"math"
	"time"

	"lingo/internal/domain"
)

// ErrGoalCompleted is returned when progress is recorded on a goal that is
// already completed.
var ErrGoalCompleted = errors.New("goal already completed")

// ProgressPercent is the completion of a goal, rounded and capped at 100.
// A goal without a positive target is 0%.
func ProgressPercent(g domain.Goal) int {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := int(math.Round(float64(g.CurrentProgress) / float64(g.TargetValue) * 100))
	return min(max(pct, 0), 100)
}

// DaysRemaining counts whole days from now until end, rounding partial days
// up. It is negative once end has passed.
func DaysRemaining(now, end time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// UpdateGoal applies change to g unless g is already completed.
func UpdateGoal(g domain.Goal, change func(domain.Goal) domain.Goal) (domain.Goal, error) {
	if g.IsCompleted {
		return g, ErrGoalCompleted
	}
	return change(g), nil
}

// IncrementProgress records one more unit towards g, never exceeding the
// target, and marks the goal completed when the target is reached.
func IncrementProgress(g domain.Goal) domain.Goal {
	g.CurrentProgress = min(g.CurrentProgress+1, g.TargetValue)
	g.IsCompleted = g.CurrentProgress >= g.TargetValue
	return g
}

// CompleteGoal fills g up to its target and marks it completed.
func CompleteGoal(g domain.Goal) domain.Goal {
	g.CurrentProgress = max(g.CurrentProgress, g.TargetValue)
	g.IsCompleted = true
	return g
}
