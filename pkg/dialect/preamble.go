package dialect

import (
	"regexp"
	"strings"
)

// Recital is one preamble paragraph: the introducing keyword
// (CONSIDERING, RECALLING, ...) and its text. Kind is empty for the
// opening formula and paragraphs without a keyword.
type Recital struct {
	Kind string
	Text string
}

var (
	recitalKeywordPattern = regexp.MustCompile(
		`(?i)\b(CONSIDERING|RECALLING|WISHING|HAVING|NOTING|DESIRING|RECOGNIZING|CONVINCED|AWARE)\s+that\s+`)
	haveAgreedLinePattern = regexp.MustCompile(`(?i)HAVE AGREED AS FOLLOWS:?`)
	recitalTrailerPattern = regexp.MustCompile(`[;:]\s*$`)
	blankBlockPattern     = regexp.MustCompile(`\n{2,}`)
	wsRunPattern          = regexp.MustCompile(`\s+`)
)

// SplitPreamble decomposes a treaty preamble into recital paragraphs.
// Text is segmented at the recital keywords; when none are present the
// preamble falls back to blank-line paragraphs.
func SplitPreamble(text string) []Recital {
	matches := recitalKeywordPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		var out []Recital
		for _, block := range blankBlockPattern.Split(text, -1) {
			if b := strings.TrimSpace(block); b != "" {
				out = append(out, Recital{Text: b})
			}
		}
		if len(out) <= 1 {
			return nil
		}
		return out
	}

	var out []Recital
	if head := strings.TrimSpace(text[:matches[0][0]]); head != "" {
		out = append(out, Recital{Text: wsRunPattern.ReplaceAllString(head, " ")})
	}

	for i, m := range matches {
		keyword := strings.ToUpper(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := text[m[1]:end]
		if loc := haveAgreedLinePattern.FindStringIndex(content); loc != nil {
			content = content[:loc[0]]
		}
		content = strings.TrimSpace(content)
		content = recitalTrailerPattern.ReplaceAllString(content, "")
		content = wsRunPattern.ReplaceAllString(content, " ")
		out = append(out, Recital{
			Kind: keyword,
			Text: keyword + " that " + content,
		})
	}

	if loc := haveAgreedLinePattern.FindStringIndex(text); loc != nil {
		out = append(out, Recital{Kind: "AGREED", Text: strings.TrimSpace(text[loc[0]:loc[1]])})
	}
	return out
}
