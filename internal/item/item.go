// Package item defines the trackable item record and the shared token
// grammar used to derive it from a document: the bracketed timestamp parser,
// the tag classifier, and the label extractor. Every entry point that
// interprets document text (initial scan, file-watch update, search) goes
// through this package so the grammar cannot drift between call sites.
package item

import (
	"path/filepath"
	"time"
)

// Priority of an item. A document carries at most one priority token;
// absence of a token means P1.
type Priority int

const (
	P1 Priority = 1
	P2 Priority = 2
	P3 Priority = 3
)

func (p Priority) String() string {
	switch p {
	case P2:
		return "P2"
	case P3:
		return "P3"
	default:
		return "P1"
	}
}

// Sentinel is the far-future due instant assigned to items without a
// parsable timestamp. It is never produced by genuine input (parsed years
// must begin with "20") and sorts after every real due date.
var Sentinel = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.Local)

// SentinelToken is the canonical placeholder recorded as the raw timestamp
// when an item has no parsable token.
const SentinelToken = "[none]"

// Item is one trackable document. There is at most one Item per path in the
// index; updates replace the whole record.
type Item struct {
	// Path uniquely identifies the item.
	Path string

	// DisplayLabel is the one-line description, at most 50 cells wide.
	DisplayLabel string

	// DueInstant is the parsed due date, or Sentinel when none was found.
	DueInstant time.Time

	// RawTimestamp is the exact bracketed substring found in the document,
	// or SentinelToken when DueInstant is the sentinel. Preserved for
	// display and for round-trip edits.
	RawTimestamp string

	Priority  Priority
	Completed bool

	// SourceTag is the configured tag that qualified the document. Only
	// meaningful in wildcard mode, where any candidate tag qualifies.
	SourceTag string
}

// HasDue reports whether the item carries a genuine due date.
func (it Item) HasDue() bool {
	return !it.DueInstant.Equal(Sentinel)
}

// DueDay returns the calendar day of the due instant (local midnight).
func (it Item) DueDay() time.Time {
	return DayOf(it.DueInstant)
}

// DayOf truncates an instant to its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Derive builds the Item for a document. It reports false when the document
// does not qualify under cfg. Derive never fails: a missing or unparsable
// timestamp token yields the sentinel instant, matching what a full rescan
// would produce for the same content.
func Derive(path string, content []byte, cfg TagConfig) (Item, bool) {
	text := string(content)

	cls := Classify(text, cfg)
	if !cls.Qualifies {
		return Item{}, false
	}

	due, raw := Sentinel, SentinelToken

	if tok, ok := FindToken(text); ok {
		parsed, err := Parse(tok)
		if err == nil {
			due, raw = parsed, tok
		} else {
			logParseFailure(path, tok, err)
		}
	}

	return Item{
		Path:         path,
		DisplayLabel: Label(text, filepath.Base(path), cfg),
		DueInstant:   due,
		RawTimestamp: raw,
		Priority:     cls.Priority,
		Completed:    cls.Completed,
		SourceTag:    cls.SourceTag,
	}, true
}
