package item

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Label placeholders for degenerate files. Read failures are tolerated,
// never fatal.
const (
	BlankLabel      = "(blank file)"
	UnreadableLabel = "(unable to read file)"
)

// maxLabelWidth is the display budget for a label before ellipsis
// truncation.
const maxLabelWidth = 50

// leadingMarkers are characters stripped from the front of a content-derived
// label (markdown headings, list bullets, quotes).
const leadingMarkers = "#*->– \t"

// Label derives the one-line description for an item.
//
// When the document's only non-blank line is pure markup (it starts with the
// tag marker or the date bracket), the label comes from the filename
// instead: extension stripped, any leading run of digits and underscores
// (ordering prefixes) removed, separators turned into spaces. Otherwise the
// first non-blank line is used with all recognized tokens removed.
func Label(content, filename string, cfg TagConfig) string {
	lines := nonBlankLines(content)
	if len(lines) == 0 {
		return BlankLabel
	}

	if len(lines) == 1 && (strings.HasPrefix(lines[0], "#") || strings.HasPrefix(lines[0], "[")) {
		return labelFromFilename(filename)
	}

	line := stripTokens(lines[0], cfg)
	line = strings.TrimLeft(line, leadingMarkers)
	line = collapseSpace(line)

	if line == "" {
		return labelFromFilename(filename)
	}

	return truncateLabel(line)
}

func nonBlankLines(content string) []string {
	var lines []string

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	return lines
}

// stripTokens removes every recognized token: candidate tags, priority
// markers, the completion marker, and the timestamp token.
func stripTokens(line string, cfg TagConfig) string {
	line = tokenPattern.ReplaceAllString(line, " ")

	for _, tok := range cfg.Tags {
		line = strings.ReplaceAll(line, tok, " ")
	}

	for _, tok := range []string{TokenP1, TokenP2, TokenP3, CompletionToken} {
		line = strings.ReplaceAll(line, tok, " ")
	}

	return line
}

func labelFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.TrimLeft(base, "0123456789_")
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = collapseSpace(base)

	if base == "" {
		return BlankLabel
	}

	runes := []rune(base)
	runes[0] = unicode.ToUpper(runes[0])

	return truncateLabel(string(runes))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateLabel(s string) string {
	if runewidth.StringWidth(s) <= maxLabelWidth {
		return s
	}

	return runewidth.Truncate(s, maxLabelWidth, "…")
}
