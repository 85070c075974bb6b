package cli

import (
	"errors"
	"fmt"

	"tasktree/internal/view"
)

var (
	errBadDueMode   = errors.New("--due must be one of all|soon|today|future|overdue")
	errBadPriority  = errors.New("--priority must be 0 (any) or 1-3")
	errBadStateMode = errors.New("--state must be one of todo|done|any")
)

func parseTemporal(s string) (view.TemporalMode, error) {
	switch s {
	case "", "all":
		return view.TemporalAll, nil
	case "soon":
		return view.DueSoon, nil
	case "today":
		return view.DueToday, nil
	case "future":
		return view.FutureOnly, nil
	case "overdue":
		return view.Overdue, nil
	default:
		return view.TemporalAll, fmt.Errorf("%w, got %q", errBadDueMode, s)
	}
}

func parsePriority(n int) (view.PriorityMode, error) {
	if n < 0 || n > 3 {
		return view.PriorityAny, fmt.Errorf("%w, got %d", errBadPriority, n)
	}

	return view.PriorityMode(n), nil
}

func parseCompletion(s string) (view.CompletionMode, error) {
	switch s {
	case "", "todo":
		return view.CompletionNotDone, nil
	case "done":
		return view.CompletionDone, nil
	case "any":
		return view.CompletionAny, nil
	default:
		return view.CompletionNotDone, fmt.Errorf("%w, got %q", errBadStateMode, s)
	}
}
