// Package clock holds one run's resource limits (a wall-clock time limit, a
// state-count ceiling) and turns the time limit into the absolute deadline
// pkg/search.Options consumes. It does not report which limit stopped a
// search; search.Result.Status does that.
package clock

import "time"

// Budget is one run's resource limits. Either field may be left at its
// zero value to mean "unbounded" for that dimension.
type Budget struct {
	TimeLimit  time.Duration
	MaxStates  int
}

// Deadline returns the absolute time.Time search.Options.Deadline expects,
// or the zero time if b.TimeLimit is non-positive.
func (b Budget) Deadline(now time.Time) time.Time {
	if b.TimeLimit <= 0 {
		return time.Time{}
	}
	return now.Add(b.TimeLimit)
}
