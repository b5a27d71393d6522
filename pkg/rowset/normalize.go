package rowset

import (
	"regexp"
	"strings"
)

var (
	// articlePrefixPattern strips the jurisdiction word from article
	// numbers so "Article 52", "Section 5", "Rule 19" and "§ 101" all
	// display as their bare designator.
	articlePrefixPattern = regexp.MustCompile(`(?i)^(?:Section|Article|Rule|§)\s*(.+)$`)

	multiSpacePattern = regexp.MustCompile(` {2,}`)
	spacedBreakPattern = regexp.MustCompile(` *\n *`)
)

// NormalizeArticleID reduces an article number to display form by
// stripping a leading "Section", "Article", "Rule" or "§". The preamble
// sentinel and empty ids pass through unchanged. The operation is
// idempotent: normalizing an already-bare id returns it as is.
func NormalizeArticleID(id string) string {
	s := strings.TrimSpace(id)
	if s == "" || s == PreambleID {
		return id
	}
	if m := articlePrefixPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// FlattenLineBreaks joins lines broken mid-sentence by PDF extraction:
// a single newline becomes a space while runs of two or more newlines
// (real paragraph breaks) are preserved. Runs of spaces collapse to one.
func FlattenLineBreaks(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		if text[i] == '\n' {
			j := i
			for j < len(text) && text[j] == '\n' {
				j++
			}
			if j-i == 1 {
				b.WriteByte(' ')
			} else {
				b.WriteString(text[i:j])
			}
			i = j
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	s := multiSpacePattern.ReplaceAllString(b.String(), " ")
	s = spacedBreakPattern.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// CleanCell removes control characters that spreadsheet applications
// reject, keeping tab and newline.
func CleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n':
			return r
		case r < 0x20 || r == 0x7F:
			return -1
		}
		return r
	}, s)
}
