package item_test

import (
	"errors"
	"testing"
	"time"

	"tasktree/internal/item"
)

func TestParseValidTokens(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		token string
		want  time.Time
	}{
		{
			token: "[02/29/2024]",
			want:  time.Date(2024, time.February, 29, 12, 0, 0, 0, time.Local),
		},
		{
			token: "[09/30/2025 05:00:00 PM]",
			want:  time.Date(2025, time.September, 30, 17, 0, 0, 0, time.Local),
		},
		{
			token: "[01/01/2020 12:00:00 AM]",
			want:  time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local),
		},
		{
			token: "[07/04/2026 12:30:00 PM]",
			want:  time.Date(2026, time.July, 4, 12, 30, 0, 0, time.Local),
		},
		{
			token: "[12/31/2099]",
			want:  time.Date(2099, time.December, 31, 12, 0, 0, 0, time.Local),
		},
	} {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			got, err := item.Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.token, err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		token     string
		withClock bool
	}{
		{"[02/29/2024]", false},
		{"[09/30/2025 05:00:00 PM]", true},
		{"[01/01/2020 12:00:00 AM]", true},
		{"[06/15/2025 12:00:00 PM]", true},
	} {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			parsed, err := item.Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.token, err)
			}

			got := item.FormatToken(parsed, tt.withClock)
			if got != tt.token {
				t.Errorf("round trip of %q = %q", tt.token, got)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		token   string
		wantErr error
	}{
		{"no brackets", "09/30/2025", item.ErrMalformedToken},
		{"empty", "", item.ErrMalformedToken},
		{"empty brackets", "[]", item.ErrMalformedToken},
		{"two space-separated fields", "[09/30/2025 05:00:00]", item.ErrMalformedToken},
		{"date field count", "[09/2025]", item.ErrMalformedToken},
		{"clock field count", "[09/30/2025 05:00 PM]", item.ErrMalformedToken},
		{"feb 29 non-leap", "[02/29/2023]", item.ErrImpossibleDate},
		{"feb 31", "[02/31/2025]", item.ErrImpossibleDate},
		{"month 13", "[13/01/2025]", item.ErrImpossibleDate},
		{"two digit year", "[09/30/25]", item.ErrImpossibleDate},
		{"year before 2000", "[09/30/1999]", item.ErrImpossibleDate},
		{"hour zero", "[09/30/2025 00:10:00 AM]", item.ErrImpossibleDate},
		{"hour 13", "[09/30/2025 13:00:00 PM]", item.ErrImpossibleDate},
		{"minute 60", "[09/30/2025 05:60:00 PM]", item.ErrImpossibleDate},
		{"bad meridiem", "[09/30/2025 05:00:00 XM]", item.ErrImpossibleDate},
		{"non-digit day", "[09/3x/2025]", item.ErrImpossibleDate},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := item.Parse(tt.token)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.token, tt.wantErr)
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.token, err, tt.wantErr)
			}
		})
	}
}

func TestFindToken(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"date only", "#task do it [09/30/2025] soon", "[09/30/2025]", true},
		{"date and clock", "x [09/30/2025 05:00:00 PM] y", "[09/30/2025 05:00:00 PM]", true},
		{"first of two", "[01/01/2025] and [02/02/2025]", "[01/01/2025]", true},
		{"no token", "#task nothing here", "", false},
		{"wrong shape ignored", "[9/30/25]", "", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := item.FindToken(tt.content)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FindToken(%q) = %q, %v; want %q, %v", tt.content, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
