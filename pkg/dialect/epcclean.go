package dialect

import (
	"regexp"
	"strings"
)

// The EPC PDF prints related-provision references (Art. N, R. N) in the
// page margin and amendment footnotes under the body; text extraction
// folds both into the main column. These patterns peel them back out.
var (
	pageHeaderPattern  = regexp.MustCompile(`\n\d{1,3}\nEuropean Patent Convention[^\n]*`)
	pageFooterPattern  = regexp.MustCompile(`\nEuropean Patent Convention[^\n]*\n\d{1,3}(\n|$)`)
	headingMarginRef   = regexp.MustCompile(`(?m)^((?:Article|Rule)\s+\d+[A-Za-z]*)[ \t]+(?:Art\.|R\.)[ \t]*[\d, \t\-a-zA-Z]+$`)
	loneMarginRef      = regexp.MustCompile(`(?m)^(?:Art\.|R\.)[ ]*[\d, \-a-zA-Z]{1,30}$`)
	titleMarginRef     = regexp.MustCompile(`(?m)^([A-Z][a-zA-Z ]+?)[ ]+R\.[ ]*[\d, \-a-zA-Z]+[, ]*$`)
	titleTrailingRef   = regexp.MustCompile(`(?m)^([A-Z][a-zA-Z ]+?)[ ]+(\d+[a-z])$`)
	bodyTrailingRef    = regexp.MustCompile(`(?m)((?:for|of|under|to):?[ ]*)(\d+[a-z]?(?:,[ ]*\d+[a-z]?)*)[ ]*$`)
	footnoteLine       = regexp.MustCompile(`(?m)^\d{1,3}[ \t]+(?:Amended|Inserted|Deleted|See (?:decision|opinion|notice))[^\n]*$`)
	seeRefLine         = regexp.MustCompile(`(?m)^See (?:opinions?|decisions?|notice|decision)(?:/decisions?)?(?: from| of)[^\n]*$`)
	amendedLine        = regexp.MustCompile(`(?m)^(?:Title )?(?:[Aa]mended|[Ii]nserted|[Dd]eleted)(?: by)[^\n]*$`)
	amendedActLine     = regexp.MustCompile(`(?m)^(?:Title )?(?:Amended|Inserted|Deleted) by the Act[^\n]*$`)
	amendmentBlock     = regexp.MustCompile(`(?m)^(?:(?:Title )?(?:Amended|Inserted|Deleted|See (?:decision|opinion|notice))[^\n]*\n?)+`)
	loneNumberLine     = regexp.MustCompile(`(?m)^\d{1,3}[ \t]*$`)
	hyphenPageBreak    = regexp.MustCompile(`([a-z])-\s+\d{1,3}\s*\n\s*([a-z])`)
	hyphenBreak        = regexp.MustCompile(`([a-z])-\s*\n\s*([a-z])`)
	sentencePageNumber = regexp.MustCompile(`([.!?])\s+\d{1,3}\s*\n`)
	pageBeforeHeading  = regexp.MustCompile(`\b\d{1,3}[ \t]+((?:Article|Rule|Section|Regulation)\s+\d)`)
	pageBreakHeading   = regexp.MustCompile(`\b\d{1,3}[ \t]*\n[ \t]*((?:Article|Rule|Section|Regulation)\s+\d)`)
	pageAfterHeading   = regexp.MustCompile(`((?:Article|Rule|Section|Regulation)\s+\d+[a-z]?)[ \t]+\d{1,3}\b`)
	gluedPageNumber    = regexp.MustCompile(`\b(Article|Rule|Section|Regulation)\s+(\d{2,3})(\d{2,3})(\s|[A-Z])`)
	gluedParaFootnote  = regexp.MustCompile(`\((\d+[a-z]?)\)\d{2,3}\b`)
	gluedItemFootnote  = regexp.MustCompile(`\(([a-z])\)\d{2,3}\b`)
	gluedSubFootnote   = regexp.MustCompile(`\(([ivxlcdm]+)\)\d{2,3}\b`)
	tripleNewline      = regexp.MustCompile(`\n{3,}`)

	marginContinuationLine = regexp.MustCompile(`^\d[\d, \-a-zA-Z]{0,19}$`)
)

// cleanEPCAnnotations strips EPC margin references, amendment history
// and page headers from extracted PDF text.
func cleanEPCAnnotations(text string) string {
	text = pageHeaderPattern.ReplaceAllString(text, "")
	text = pageFooterPattern.ReplaceAllString(text, "$1")
	text = headingMarginRef.ReplaceAllString(text, "$1")
	text = loneMarginRef.ReplaceAllString(text, "")
	text = dropMarginContinuationLines(text)
	text = titleMarginRef.ReplaceAllString(text, "$1")
	text = titleTrailingRef.ReplaceAllString(text, "$1")
	text = bodyTrailingRef.ReplaceAllString(text, "$1")

	text = footnoteLine.ReplaceAllString(text, "")
	text = seeRefLine.ReplaceAllString(text, "")
	text = amendedLine.ReplaceAllString(text, "")
	text = amendedActLine.ReplaceAllString(text, "")
	text = amendmentBlock.ReplaceAllString(text, "")
	text = loneNumberLine.ReplaceAllString(text, "")

	// "pa- 96\ntents" → "pa-\ntents" → "patents"
	text = hyphenPageBreak.ReplaceAllString(text, "$1-\n$2")
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = sentencePageNumber.ReplaceAllString(text, "$1\n")

	text = pageBeforeHeading.ReplaceAllString(text, "$1")
	text = pageBreakHeading.ReplaceAllString(text, "\n$1")
	text = pageAfterHeading.ReplaceAllString(text, "$1")
	// "Article 6353" → "Article 63": the glued tail is a page or
	// footnote number.
	text = gluedPageNumber.ReplaceAllString(text, "$1 $2$4")
	text = gluedParaFootnote.ReplaceAllString(text, "($1)")
	text = gluedItemFootnote.ReplaceAllString(text, "($1)")
	text = gluedSubFootnote.ReplaceAllString(text, "($1)")

	return tripleNewline.ReplaceAllString(text, "\n\n")
}

// dropMarginContinuationLines removes short digit-led lines that are
// wrapped margin references ("12d, 97, 98"), but only when the next
// line resumes body text — a "(" marker or a capitalised word.
func dropMarginContinuationLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0:0]
	for i, line := range lines {
		if marginContinuationLine.MatchString(line) && i+1 < len(lines) {
			next := lines[i+1]
			if len(next) > 0 && (next[0] == '(' || (next[0] >= 'A' && next[0] <= 'Z' &&
				len(next) > 1 && next[1] >= 'a' && next[1] <= 'z')) {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
