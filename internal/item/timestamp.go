package item

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Timestamp parse failures. Callers must not treat these as fatal: during
// indexing the item keeps the sentinel instant instead of being dropped.
var (
	// ErrMalformedToken means the token is structurally wrong: missing
	// brackets or the wrong number of fields.
	ErrMalformedToken = errors.New("malformed timestamp token")

	// ErrImpossibleDate means all fields are present but do not form a real
	// calendar date or clock time.
	ErrImpossibleDate = errors.New("timestamp is not a possible date")
)

// tokenPattern matches the two literal timestamp grammars:
//
//	[MM/DD/YYYY]
//	[MM/DD/YYYY HH:MM:SS AM/PM]
var tokenPattern = regexp.MustCompile(`\[[0-9]{2}/[0-9]{2}/[0-9]{4}(?: [0-9]{2}:[0-9]{2}:[0-9]{2} [AP]M)?\]`)

// FindToken returns the first bracketed timestamp token in content.
func FindToken(content string) (string, bool) {
	tok := tokenPattern.FindString(content)

	return tok, tok != ""
}

// Parse converts a bracketed timestamp token into a local-time instant.
// A missing time-of-day defaults to 12:00:00 noon. Hours are 1-12 with an
// explicit AM/PM designator; 12 AM is midnight, 12 PM is noon.
func Parse(token string) (time.Time, error) {
	if len(token) < 2 || token[0] != '[' || token[len(token)-1] != ']' {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	parts := strings.Split(token[1:len(token)-1], " ")

	var date, clock, meridiem string

	switch len(parts) {
	case 1:
		date = parts[0]
	case 3:
		date, clock, meridiem = parts[0], parts[1], parts[2]
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	year, month, day, err := parseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", token, err)
	}

	// No time-of-day means local noon.
	hour, minute, second := 12, 0, 0

	if clock != "" {
		hour, minute, second, err = parseClock(clock, meridiem)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", token, err)
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
}

// FormatToken renders an instant back into the bracketed grammar. withClock
// selects the date+time form; otherwise the date-only form is produced.
func FormatToken(t time.Time, withClock bool) string {
	if withClock {
		return t.Format("[01/02/2006 03:04:05 PM]")
	}

	return t.Format("[01/02/2006]")
}

func parseDate(s string) (year, month, day int, err error) {
	fields := strings.Split(s, "/")
	if len(fields) != 3 {
		return 0, 0, 0, ErrMalformedToken
	}

	month, err = parseDigits(fields[0], 2)
	if err != nil {
		return 0, 0, 0, err
	}

	day, err = parseDigits(fields[1], 2)
	if err != nil {
		return 0, 0, 0, err
	}

	year, err = parseDigits(fields[2], 4)
	if err != nil {
		return 0, 0, 0, err
	}

	// Genuine due dates carry 4-digit years beginning with "20". This also
	// keeps the far-future sentinel out of reach of real input.
	if !strings.HasPrefix(fields[2], "20") {
		return 0, 0, 0, ErrImpossibleDate
	}

	// time.Date normalizes out-of-range components (Feb 31 becomes Mar 3),
	// so a round-trip mismatch means the date never existed.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return 0, 0, 0, ErrImpossibleDate
	}

	return year, month, day, nil
}

func parseClock(clock, meridiem string) (hour, minute, second int, err error) {
	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return 0, 0, 0, ErrMalformedToken
	}

	hour, err = parseDigits(fields[0], 2)
	if err != nil {
		return 0, 0, 0, err
	}

	minute, err = parseDigits(fields[1], 2)
	if err != nil {
		return 0, 0, 0, err
	}

	second, err = parseDigits(fields[2], 2)
	if err != nil {
		return 0, 0, 0, err
	}

	if hour < 1 || hour > 12 || minute > 59 || second > 59 {
		return 0, 0, 0, ErrImpossibleDate
	}

	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, 0, ErrImpossibleDate
	}

	return hour, minute, second, nil
}

// parseDigits parses a field that must be exactly width ASCII digits.
func parseDigits(s string, width int) (int, error) {
	if len(s) != width {
		return 0, ErrImpossibleDate
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrImpossibleDate
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrImpossibleDate
	}

	return n, nil
}

func logParseFailure(path, token string, err error) {
	log.WithFields(log.Fields{
		"path":  path,
		"token": token,
		"cause": err,
	}).Warning("Unparsable timestamp token, item keeps no due date")
}
