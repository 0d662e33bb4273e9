package wrapcall

import (
	"cmp"

	"github.com/samber/lo"
)

// StopOn returns a filter matching any of values.
func StopOn[R comparable](values ...R) Filter[R] {
	return func(result R) bool {
		return lo.Contains(values, result)
	}
}

// StopOnNonZero returns a filter matching every non-zero result.
func StopOnNonZero[R comparable]() Filter[R] {
	return func(result R) bool {
		return !lo.IsEmpty(result)
	}
}

// Add returns a reducer summing (or concatenating) results with +.
func Add[R cmp.Ordered]() Reducer[R] {
	return func(acc, next R) (R, error) {
		return acc + next, nil
	}
}

// Last returns a reducer keeping the last collected result.
func Last[R any]() Reducer[R] {
	return func(_, next R) (R, error) {
		return next, nil
	}
}
