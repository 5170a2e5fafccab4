package planner

import "errors"

var (
	// ErrInvalidStart is returned when the start cell is outside the grid or
	// its cost is not in (-1, ValidMax).
	ErrInvalidStart = errors.New("planner: start is not valid")

	// ErrInvalidGoal is the goal counterpart of ErrInvalidStart.
	ErrInvalidGoal = errors.New("planner: goal is not valid")

	// ErrNoPathFound is returned when start and goal cannot be joined.
	ErrNoPathFound = errors.New("planner: no path found")

	// ErrCancelled is returned when the context ends during the search.
	ErrCancelled = errors.New("planner: cancelled")

	// ErrOptionViolation is returned when an invalid Option or Config value is supplied.
	ErrOptionViolation = errors.New("planner: invalid option supplied")
)
