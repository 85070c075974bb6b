package item

import "strings"

// Fixed marker tokens. Tags and markers are literal substrings located
// anywhere in document content; no escaping or quoting applies.
const (
	TokenP1 = "#p1"
	TokenP2 = "#p2"
	TokenP3 = "#p3"

	// CompletionToken marks an item as done.
	CompletionToken = "#done"
)

// TagConfig is the tag configuration snapshot passed into every engine
// operation. The engine holds no ambient configuration state; callers
// refresh the snapshot when configuration changes.
type TagConfig struct {
	// Tags are the candidate tags, in configured order.
	Tags []string

	// Active selects one specific tag. Empty means wildcard mode: any
	// candidate tag qualifies a document.
	Active string
}

// Wildcard reports whether any candidate tag qualifies a document.
func (c TagConfig) Wildcard() bool {
	return c.Active == ""
}

// Classification is the result of examining a document's content.
type Classification struct {
	Qualifies bool
	SourceTag string
	Priority  Priority
	Completed bool
}

// Classify decides whether a document qualifies as an item under cfg and
// extracts its priority and completion markers. Pure function of
// (content, cfg).
func Classify(content string, cfg TagConfig) Classification {
	var c Classification

	if cfg.Active != "" {
		if hasToken(content, cfg.Active) {
			c.Qualifies, c.SourceTag = true, cfg.Active
		}
	} else {
		for _, tag := range cfg.Tags {
			if hasToken(content, tag) {
				c.Qualifies, c.SourceTag = true, tag

				break
			}
		}
	}

	if !c.Qualifies {
		return Classification{}
	}

	c.Priority = P1

	for _, m := range []struct {
		token string
		p     Priority
	}{{TokenP1, P1}, {TokenP2, P2}, {TokenP3, P3}} {
		if hasToken(content, m.token) {
			c.Priority = m.p

			break
		}
	}

	c.Completed = hasToken(content, CompletionToken)

	return c
}

// ParseTagList splits a comma-separated tag list, trimming whitespace and
// dropping empty entries.
func ParseTagList(s string) []string {
	var tags []string

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}

	return tags
}

// hasToken reports whether tok occurs in s as a whole token, i.e. not
// immediately followed by a word character ("#p1" does not match "#p10").
func hasToken(s, tok string) bool {
	if tok == "" {
		return false
	}

	for i := 0; ; {
		j := strings.Index(s[i:], tok)
		if j < 0 {
			return false
		}

		end := i + j + len(tok)
		if end >= len(s) || !isWordByte(s[end]) {
			return true
		}

		i = end
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
