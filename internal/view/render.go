package view

import (
	"fmt"
	"time"

	"tasktree/internal/item"
)

// Icon selects the glyph and color a row renders with. Priority picks the
// base icon; a completed item overrides it; a due day more than a year out
// (the sentinel always is) overrides both.
type Icon int

const (
	IconP1 Icon = iota
	IconP2
	IconP3
	IconDone
	IconFarFuture
)

// Record is one display row. It is a plain data record so hosts with any
// rendering toolkit can consume it; Placeholder marks the single synthetic
// row shown while a scan is in flight.
type Record struct {
	Placeholder bool

	// Path is the open-file action reference.
	Path string

	Label string
	Icon  Icon

	// RelativeDays is the calendar-day distance from today to the due day.
	// Only meaningful when HasDue; without a due date the row renders the
	// "unknown" marker instead of a number.
	RelativeDays int
	HasDue       bool

	// OverdueWarning is set when the due instant is strictly in the past.
	OverdueWarning bool

	// Tooltip shows the raw timestamp token and, when resolvable, the
	// day of week.
	Tooltip string
}

// ScanningRecord is the placeholder row shown while a rescan is in flight.
func ScanningRecord() Record {
	return Record{Placeholder: true, Label: "Scanning..."}
}

func render(it item.Item, now time.Time) Record {
	rec := Record{
		Path:         it.Path,
		Label:        it.DisplayLabel,
		HasDue:       it.HasDue(),
		RelativeDays: relativeDays(it, now),
		Tooltip:      it.RawTimestamp,
	}

	switch it.Priority {
	case item.P2:
		rec.Icon = IconP2
	case item.P3:
		rec.Icon = IconP3
	default:
		rec.Icon = IconP1
	}

	if it.Completed {
		rec.Icon = IconDone
	}

	if !rec.HasDue || rec.RelativeDays > farFutureDays {
		rec.Icon = IconFarFuture
	}

	if rec.HasDue {
		rec.OverdueWarning = it.DueInstant.Before(now)
		rec.Tooltip = fmt.Sprintf("%s (%s)", it.RawTimestamp, it.DueInstant.Weekday())
	}

	return rec
}

// DueLabel is the relative-day annotation for display.
func (r Record) DueLabel() string {
	switch {
	case !r.HasDue:
		return "unknown"
	case r.RelativeDays == 0:
		return "today"
	case r.RelativeDays > 0:
		return fmt.Sprintf("in %dd", r.RelativeDays)
	default:
		return fmt.Sprintf("%dd overdue", -r.RelativeDays)
	}
}
