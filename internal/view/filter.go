// Package view turns the raw item set into what the host displays: the
// fixed-order filter pipeline, the due-instant sort, the display records,
// and the controller that owns the current filter selection.
package view

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"tasktree/internal/fs"
	"tasktree/internal/item"
)

// TemporalMode selects the time-window filter, compared at calendar-day
// granularity (midnight to midnight, not a rolling 24-hour window).
type TemporalMode int

const (
	TemporalAll TemporalMode = iota
	DueSoon
	DueToday
	FutureOnly
	Overdue
)

func (m TemporalMode) String() string {
	switch m {
	case DueSoon:
		return "DUE SOON"
	case DueToday:
		return "DUE TODAY"
	case FutureOnly:
		return "FUTURE"
	case Overdue:
		return "OVERDUE"
	default:
		return "ALL"
	}
}

// PriorityMode selects the priority filter. The zero value matches any
// priority.
type PriorityMode int

const (
	PriorityAny PriorityMode = 0
	PriorityP1  PriorityMode = 1
	PriorityP2  PriorityMode = 2
	PriorityP3  PriorityMode = 3
)

func (m PriorityMode) String() string {
	switch m {
	case PriorityP1:
		return "P1"
	case PriorityP2:
		return "P2"
	case PriorityP3:
		return "P3"
	default:
		return "ANY"
	}
}

// CompletionMode selects the completion filter.
type CompletionMode int

const (
	CompletionNotDone CompletionMode = iota
	CompletionDone
	CompletionAny
)

// Selection is the transient filter state applied to the item set. All
// active predicates combine with AND.
type Selection struct {
	Temporal   TemporalMode
	Priority   PriorityMode
	Completion CompletionMode

	// Search is a case-insensitive substring matched against filename and
	// full file content.
	Search string
}

// DefaultSelection is the state after clearing all filters: everything
// visible except completed items.
func DefaultSelection() Selection {
	return Selection{Completion: CompletionNotDone}
}

// dueSoonDays is the DueSoon window: due up to this many calendar days out,
// end of day inclusive. Overdue items are always inside the window.
const dueSoonDays = 3

// farFutureDays is the threshold beyond which an item renders with the
// far-future icon.
const farFutureDays = 365

// Engine applies a filter selection to the item set and renders the
// surviving items as ordered display records. The text filter re-reads file
// content through fsys rather than trusting any cache.
type Engine struct {
	fsys fs.FS
}

// NewEngine returns an engine reading search content through fsys.
func NewEngine(fsys fs.FS) *Engine {
	return &Engine{fsys: fsys}
}

// Apply filters, sorts, and renders items for display. Filters run in fixed
// order: completion, temporal, priority, text. Sorting is ascending by due
// instant with ties broken by path; sentinel-dated items always come last.
func (e *Engine) Apply(items []item.Item, sel Selection, now time.Time) []Record {
	kept := make([]item.Item, 0, len(items))

	for _, it := range items {
		if !matchCompletion(it, sel.Completion) {
			continue
		}

		if !matchTemporal(it, sel.Temporal, now) {
			continue
		}

		if !matchPriority(it, sel.Priority) {
			continue
		}

		if sel.Search != "" && !e.matchSearch(it, sel.Search) {
			continue
		}

		kept = append(kept, it)
	}

	slices.SortFunc(kept, func(a, b item.Item) int {
		if c := a.DueInstant.Compare(b.DueInstant); c != 0 {
			return c
		}

		return strings.Compare(a.Path, b.Path)
	})

	records := make([]Record, 0, len(kept))
	for _, it := range kept {
		records = append(records, render(it, now))
	}

	return records
}

func matchCompletion(it item.Item, mode CompletionMode) bool {
	switch mode {
	case CompletionDone:
		return it.Completed
	case CompletionNotDone:
		return !it.Completed
	default:
		return true
	}
}

func matchTemporal(it item.Item, mode TemporalMode, now time.Time) bool {
	today := item.DayOf(now)

	switch mode {
	case DueSoon:
		return !it.DueDay().After(today.AddDate(0, 0, dueSoonDays))
	case DueToday:
		return it.DueDay().Equal(today)
	case FutureOnly:
		return it.DueDay().After(today)
	case Overdue:
		return it.DueInstant.Before(now)
	default:
		return true
	}
}

func matchPriority(it item.Item, mode PriorityMode) bool {
	return mode == PriorityAny || item.Priority(mode) == it.Priority
}

// matchSearch checks filename and full file content, case-insensitive. The
// content read happens fresh at filter time; a read failure degrades to
// filename-only matching.
func (e *Engine) matchSearch(it item.Item, search string) bool {
	needle := strings.ToLower(search)

	if strings.Contains(strings.ToLower(filepath.Base(it.Path)), needle) {
		return true
	}

	content, err := e.fsys.ReadFile(it.Path)
	if err != nil {
		log.WithFields(log.Fields{"path": it.Path, "cause": err}).Debug("Search cannot read file, matching filename only")

		return false
	}

	return strings.Contains(strings.ToLower(string(content)), needle)
}

// relativeDays is the calendar-day difference between now's day and the
// item's due day. Rounding absorbs DST-shortened days.
func relativeDays(it item.Item, now time.Time) int {
	return int(math.Round(it.DueDay().Sub(item.DayOf(now)).Hours() / 24))
}
