package view

import (
	"fmt"
	"strings"
	"sync"

	"tasktree/internal/item"
)

// titleSeparator joins the non-empty title parts.
const titleSeparator = " · "

// Controller owns the current filter selection and derives the view title.
// Every mutation other than SetSearch clears the search text, and every
// mutation fires the change callback so the host re-renders.
type Controller struct {
	mu     sync.Mutex
	sel    Selection
	tags   item.TagConfig
	notify func()
}

// NewController returns a controller holding the default selection.
func NewController(tags item.TagConfig) *Controller {
	return &Controller{sel: DefaultSelection(), tags: tags}
}

// OnChange registers the callback invoked after every selection change.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

// Selection returns the current filter selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sel
}

// SetTemporal selects the time-window filter and clears the search text.
func (c *Controller) SetTemporal(m TemporalMode) {
	c.mutate(func(sel *Selection) {
		sel.Temporal = m
		sel.Search = ""
	})
}

// SetPriority selects the priority filter and clears the search text.
func (c *Controller) SetPriority(m PriorityMode) {
	c.mutate(func(sel *Selection) {
		sel.Priority = m
		sel.Search = ""
	})
}

// SetCompletion selects the completion filter and clears the search text.
func (c *Controller) SetCompletion(m CompletionMode) {
	c.mutate(func(sel *Selection) {
		sel.Completion = m
		sel.Search = ""
	})
}

// SetSearch sets (or, with an empty string, clears) the search text. Other
// filters keep their values; all active predicates combine with AND.
func (c *Controller) SetSearch(text string) {
	c.mutate(func(sel *Selection) {
		sel.Search = text
	})
}

// ClearFilters resets the selection to the defaults: every temporal and
// priority mode off, completed items hidden, search cleared.
func (c *Controller) ClearFilters() {
	c.mutate(func(sel *Selection) {
		*sel = DefaultSelection()
	})
}

// Title summarizes the active filters, in fixed order: active tag (omitted
// in wildcard mode), priority mode, temporal mode, completion mode (omitted
// in the default NotDone state), and the quoted search text.
func (c *Controller) Title() string {
	c.mu.Lock()
	sel, tags := c.sel, c.tags
	c.mu.Unlock()

	var parts []string

	if !tags.Wildcard() {
		parts = append(parts, strings.ToUpper(strings.TrimPrefix(tags.Active, "#")))
	}

	if sel.Priority != PriorityAny {
		parts = append(parts, sel.Priority.String())
	}

	if sel.Temporal != TemporalAll {
		parts = append(parts, sel.Temporal.String())
	}

	switch sel.Completion {
	case CompletionDone:
		parts = append(parts, "DONE")
	case CompletionAny:
		parts = append(parts, "DONE + NOT DONE")
	case CompletionNotDone:
		// Default state stays out of the title.
	}

	if sel.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", sel.Search))
	}

	return strings.Join(parts, titleSeparator)
}

func (c *Controller) mutate(apply func(*Selection)) {
	c.mu.Lock()
	apply(&c.sel)
	fn := c.notify
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
