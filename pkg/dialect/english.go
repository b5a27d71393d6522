package dialect

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

// EnglishParser handles generic English legislation laid out as
// "Article N" blocks under Part/Chapter/Section headings, including the
// European Patent Convention PDFs whose margin annotations leak into
// the extracted text. It is the registry fallback.
type EnglishParser struct {
	tun Tunables
}

// NewEnglishParser returns the generic English parser.
func NewEnglishParser(tun Tunables) *EnglishParser {
	return &EnglishParser{tun: tun}
}

func (p *EnglishParser) Name() string       { return "epc" }
func (p *EnglishParser) Language() Language { return LangEnglish }

// KeepPreambleWhole reports that the treaty preamble is emitted as one
// row; recital splitting loses the enacting formula's layout.
func (p *EnglishParser) KeepPreambleWhole() bool { return true }

var (
	// articleStartPattern matches article headings at line starts only;
	// in-body references ("pursuant to Article 174") never begin a line.
	// The number is capped at three digits so page-glued ids like
	// "Article 169196" are rejected.
	articleStartPattern = regexp.MustCompile(`(?i)(?:^|\n)[ \t]*((?:Article|Section|Rule|Regulation)\s+\d{1,3}[a-z]?)\b`)

	// epcPreamblePattern captures the PREAMBLE block up to "PART I".
	epcPreamblePattern = regexp.MustCompile(`(?is)\n[ \t]*PREAMBLE[ \t]*\n(.*?)\n[ \t]*PART I\b`)

	haveAgreedPattern = regexp.MustCompile(`(?i)HAVE AGREED[^\n]*`)

	deletedBodyPattern = regexp.MustCompile(`(?i)\(deleted\)|\(repealed\)`)

	// groupDeletePattern matches sentences recording block repeals, e.g.
	// "Articles 159, 160, 161, 162 and 163 were deleted".
	groupDeletePattern = regexp.MustCompile(`(?i)Articles?\s+[\d,\s]+and\s+\d+\s+(?:was|were)\s+deleted`)

	bareNumberPattern = regexp.MustCompile(`\b(\d+)\b`)

	// Two-line headings ("Chapter III\nThe European Patent Office") are
	// stripped before one-line forms so the title line goes with them.
	hierarchyStripPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:PART|Part)[ \t]+[IVX]+[ \t]*\n[ \t]*[A-Za-z ]+$`),
		regexp.MustCompile(`(?m)^[ \t]*(?:CHAPTER|Chapter)[ \t]+[IVX0-9]+[ \t]*\n[ \t]*[A-Za-z ]+$`),
		regexp.MustCompile(`(?m)^[ \t]*(?:SECTION|Section)[ \t]+[IVX]+[ \t]*\n[ \t]*[A-Za-z ]+$`),
		regexp.MustCompile(`(?im)^[ \t]*(?:PART)[ \t]+[IVX]+[^\n]*\n?`),
		regexp.MustCompile(`(?im)^[ \t]*(?:CHAPTER)[ \t]+[IVX0-9]+[^\n]*\n?`),
		regexp.MustCompile(`(?im)^[ \t]*(?:SECTION)[ \t]+[IVX]+[^\n]*\n?`),
		regexp.MustCompile(`(?i)\n[ \t]*(?:PART)[ \t]+[IVX]+[^\n]*`),
		regexp.MustCompile(`(?i)\n[ \t]*(?:CHAPTER)[ \t]+[IVX0-9]+[^\n]*`),
		regexp.MustCompile(`(?i)\n[ \t]*(?:SECTION)[ \t]+[IVX]+[^\n]*`),
	}

	partHeadingPattern = regexp.MustCompile(
		`(?i)(?:^|\n)\s*((?:Part|PART)\s+[IVX]+)(?:\d+)?[ \t]+([A-Z][^\n]{10,70})|(?:^|\n)\s*((?:Part|PART)\s+[IVX]+)(\s*\n[A-Z][A-Z \t]+)`)
	chapterHeadingPattern = regexp.MustCompile(
		`(?i)(?:^|\n)\s*((?:Chapter|CHAPTER)\s+[IVX0-9]+)(?:[ \t]+([A-Za-z][^\n]{5,60}))?`)
	sectionHeadingPattern = regexp.MustCompile(
		`(?i)(?:^|\n)\s*((?:Section|SECTION)\s+[IVX]+)(?:[ \t]+([A-Za-z][^\n]{5,60}))?`)

	trailingDigitsPattern = regexp.MustCompile(`\s+\d+$`)
	revisionTagPattern    = regexp.MustCompile(`\s*<[^>]+>\s*$`)

	paragraphMarkPattern = regexp.MustCompile(`(?:^|\n|[.!?])\s*\((\d+)\)\s+`)
	itemMarkPattern      = regexp.MustCompile(`(?:^|\n)\s*\(([a-hj-uw-z])\)\s+`)
	subitemMarkPattern   = regexp.MustCompile(`(?:^|\n)\s*\(([ivxlcdm]+)\)\s+`)
	meansWordPattern     = regexp.MustCompile(`\bmeans\b`)

	articleHeadLinePattern = regexp.MustCompile(`(?i)^(?:Article|Section|Rule|Regulation)\s+\d{1,3}[a-z]?\b`)

	witnessPattern    = regexp.MustCompile(`(?s)^(.*?)\s+(IN WITNESS WHEREOF.*)$`)
	doneAtPattern     = regexp.MustCompile(`(?s)^(.*?)\s+(Done at Munich.*)$`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunsPattern  = regexp.MustCompile(`[ \t]{2,}`)
	blankOnlyLine     = regexp.MustCompile(`(?m)^[ \t]+$`)
)

// SplitArticles segments English legislation into article units.
// Line-start "Article N" headings begin units; cross-references
// followed by a comma, table-of-contents duplicates (shorter body) and
// chunks below the minimum content length are dropped. Deleted articles
// survive the length filter and block repeals synthesize one deleted
// unit per number.
func (p *EnglishParser) SplitArticles(text string) []ArticleUnit {
	if strings.Contains(text, "European Patent Convention") {
		text = cleanEPCAnnotations(text)
	}

	preambleContent := ""
	if pm := epcPreamblePattern.FindStringSubmatch(text); pm != nil {
		preambleContent = cleanPreamble(pm[1])
	}

	matches := articleStartPattern.FindAllStringSubmatchIndex(text, -1)

	// Cross-reference filter: "Article 54, paragraphs 2 and 3" is a
	// citation, not a heading.
	candidates := matches[:0:0]
	for _, m := range matches {
		end := m[3]
		if end < len(text) && text[end] == ',' {
			continue
		}
		candidates = append(candidates, m)
	}

	if len(candidates) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []ArticleUnit{{ID: rowset.PreambleID, Text: t}}
		}
		return nil
	}

	var raw []ArticleUnit
	for i, m := range candidates {
		start := m[0]
		if start < len(text) && text[start] == '\n' {
			start++
		}
		end := len(text)
		if i+1 < len(candidates) {
			end = candidates[i+1][0]
		}
		chunk := strings.TrimSpace(text[start:end])
		if chunk == "" {
			continue
		}
		id := strings.TrimSpace(text[m[2]:m[3]])
		if n := bareNumberPattern.FindString(id); len(n) > 4 {
			continue
		}
		raw = append(raw, ArticleUnit{ID: id, Text: chunk})
	}

	for i := range raw {
		cleaned := raw[i].Text
		for _, pat := range hierarchyStripPatterns {
			cleaned = pat.ReplaceAllString(cleaned, "")
		}
		raw[i].Text = strings.TrimSpace(cleaned)
		if deletedBodyPattern.MatchString(raw[i].Text) {
			raw[i].Deleted = true
		}
	}

	// Longest body wins per id; TOC entries lose to the real article.
	byID := make(map[string]ArticleUnit)
	for _, a := range raw {
		if prev, ok := byID[a.ID]; !ok || len(a.Text) > len(prev.Text) {
			byID[a.ID] = a
		}
	}

	minLen := p.tun.MinContentLen
	for id, a := range byID {
		if len(a.Text) < minLen && !a.Deleted {
			delete(byID, id)
		}
	}

	for _, gm := range groupDeletePattern.FindAllString(text, -1) {
		for _, num := range bareNumberPattern.FindAllString(gm, -1) {
			id := "Article " + num
			if _, ok := byID[id]; !ok {
				byID[id] = ArticleUnit{ID: id, Text: rowset.DeletedMarker, Deleted: true}
			}
		}
	}

	var order []string
	seenOrder := make(map[string]bool)
	for _, a := range raw {
		if _, kept := byID[a.ID]; kept && !seenOrder[a.ID] {
			order = append(order, a.ID)
			seenOrder[a.ID] = true
		}
	}
	// Synthesized deleted units slot in at their numeric position.
	var missing []string
	for id := range byID {
		if !seenOrder[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return articleNumber(missing[i]) < articleNumber(missing[j])
	})
	for _, id := range missing {
		num := articleNumber(id)
		inserted := false
		for i, existing := range order {
			if articleNumber(existing) > num {
				order = append(order[:i], append([]string{id}, order[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			order = append(order, id)
		}
		seenOrder[id] = true
	}
	var articles []ArticleUnit
	if preambleContent != "" {
		articles = append(articles, ArticleUnit{ID: rowset.PreambleID, Text: preambleContent})
	} else {
		firstStart := candidates[0][0]
		if firstStart < len(text) && text[firstStart] == '\n' {
			firstStart++
		}
		if pre := strings.TrimSpace(text[:firstStart]); pre != "" {
			articles = append(articles, ArticleUnit{ID: rowset.PreambleID, Text: pre})
		}
	}
	for _, id := range order {
		a := byID[id]
		if a.Deleted {
			a.Text = rowset.DeletedMarker
		}
		articles = append(articles, a)
	}
	return articles
}

func articleNumber(id string) int {
	m := bareNumberPattern.FindString(id)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

func cleanPreamble(content string) string {
	content = blankOnlyLine.ReplaceAllString(content, "")
	content = spaceRunsPattern.ReplaceAllString(content, " ")
	content = blankLinesPattern.ReplaceAllString(content, "\n\n")
	if loc := haveAgreedPattern.FindStringIndex(content); loc != nil {
		content = content[:loc[1]]
	}
	return strings.TrimSpace(content)
}

// DetectHierarchy finds Part/Chapter/Section headings with their
// titles. Headings whose title line contains a lower-level keyword are
// artifacts of PDF line merging and are dropped.
func (p *EnglishParser) DetectHierarchy(text string) []HeadingMark {
	var marks []HeadingMark

	for _, m := range partHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		var num, title string
		if m[2] >= 0 {
			num = strings.TrimSpace(text[m[2]:m[3]])
			if m[4] >= 0 {
				title = strings.TrimSpace(text[m[4]:m[5]])
			}
		} else {
			num = strings.TrimSpace(text[m[6]:m[7]])
			if m[8] >= 0 {
				title = strings.TrimSpace(text[m[8]:m[9]])
			}
		}
		full := headingTitle(num, title)
		if !strings.Contains(full, "Chapter") && !strings.Contains(full, "Article") {
			marks = append(marks, HeadingMark{Type: HeadingPart, Title: full, Pos: m[0]})
		}
	}

	for _, m := range chapterHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := ""
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		full := headingTitle(num, title)
		if !strings.Contains(full, "Article") {
			marks = append(marks, HeadingMark{Type: HeadingChapter, Title: full, Pos: m[0]})
		}
	}

	for _, m := range sectionHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := ""
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		full := headingTitle(num, title)
		if !strings.Contains(full, "Article") {
			marks = append(marks, HeadingMark{Type: HeadingSection, Title: full, Pos: m[0]})
		}
	}

	for i := range marks {
		marks[i].Title = strings.TrimSpace(revisionTagPattern.ReplaceAllString(marks[i].Title, ""))
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].Pos < marks[j].Pos })
	return marks
}

// headingTitle joins number and title, collapses whitespace and strips
// a trailing page number.
func headingTitle(num, title string) string {
	full := num
	if title != "" {
		full = num + " " + title
	}
	full = strings.Join(strings.Fields(full), " ")
	return trailingDigitsPattern.ReplaceAllString(full, "")
}

// ParseParagraphs decomposes an English article into (1)/(a)/(i)
// leaves. Definition paragraphs are kept atomic, introductory text
// before the first marker becomes a leaf of its own, and articles with
// no markers at all stay whole (nil result).
func (p *EnglishParser) ParseParagraphs(articleID, text string) []Leaf {
	paras := paragraphMarkPattern.FindAllStringSubmatchIndex(text, -1)

	if len(paras) == 0 {
		items := itemMarkPattern.FindAllStringSubmatchIndex(text, -1)
		if len(items) == 0 {
			return nil
		}
		var leaves []Leaf
		if intro := strings.TrimSpace(text[:items[0][0]]); intro != "" {
			leaves = append(leaves, Leaf{Text: intro})
		}
		for i, m := range items {
			end := len(text)
			if i+1 < len(items) {
				end = items[i+1][0]
			}
			leaves = append(leaves, Leaf{
				Item: text[m[2]:m[3]],
				Text: strings.TrimSpace(text[m[1]:end]),
			})
		}
		return leaves
	}

	var leaves []Leaf
	for i, m := range paras {
		paraNum := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(paras) {
			end = paras[i+1][0]
		}
		paraText := strings.TrimSpace(text[m[1]:end])

		if p.isDefinitionParagraph(paraText) {
			leaves = append(leaves, Leaf{Paragraph: paraNum, Text: paraText})
			continue
		}

		items := itemMarkPattern.FindAllStringSubmatchIndex(paraText, -1)
		if len(items) == 0 {
			leaves = append(leaves, Leaf{Paragraph: paraNum, Text: paraText})
			continue
		}

		if lead := strings.TrimSpace(paraText[:items[0][0]]); lead != "" {
			leaves = append(leaves, Leaf{Paragraph: paraNum, Text: lead})
		}
		for j, im := range items {
			itemLetter := paraText[im[2]:im[3]]
			itemEnd := len(paraText)
			if j+1 < len(items) {
				itemEnd = items[j+1][0]
			}
			itemText := strings.TrimSpace(paraText[im[1]:itemEnd])

			subitems := subitemMarkPattern.FindAllStringSubmatchIndex(itemText, -1)
			if len(subitems) == 0 {
				leaves = append(leaves, Leaf{Paragraph: paraNum, Item: itemLetter, Text: itemText})
				continue
			}
			for k, sm := range subitems {
				subEnd := len(itemText)
				if k+1 < len(subitems) {
					subEnd = subitems[k+1][0]
				}
				leaves = append(leaves, Leaf{
					Paragraph: paraNum,
					Item:      itemLetter,
					Subitem:   itemText[sm[2]:sm[3]],
					Text:      strings.TrimSpace(itemText[sm[1]:subEnd]),
				})
			}
		}
	}
	return leaves
}

// isDefinitionParagraph detects definition clauses, whose internal
// (a)/(b) labels enumerate defined terms rather than items.
func (p *EnglishParser) isDefinitionParagraph(text string) bool {
	if len(meansWordPattern.FindAllString(text, -1)) >= p.tun.DefinitionMeans {
		return true
	}
	return strings.Contains(strings.ToLower(text), "unless the context otherwise requires")
}

// ExtractTitle returns the article title line when the body starts with
// one: a short line that is not a numbered marker, usually directly
// under the article heading.
func (p *EnglishParser) ExtractTitle(text string) string {
	lines := strings.SplitN(text, "\n", 4)
	for i, line := range lines {
		if i >= 3 {
			break
		}
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if articleHeadLinePattern.MatchString(s) {
			rest := strings.TrimSpace(articleHeadLinePattern.ReplaceAllString(s, ""))
			if rest != "" && !startsWithMarker(rest) && len(rest) <= 100 {
				return rest
			}
			continue
		}
		if startsWithMarker(s) || len(s) > 100 {
			return ""
		}
		return s
	}
	return ""
}

func startsWithMarker(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '(' || (c >= '0' && c <= '9')
}

// FormatArticleID reduces "Article 52" to "52" for display.
func (p *EnglishParser) FormatArticleID(id string) string {
	return strings.TrimPrefix(id, "Article ")
}

// LocateArticle finds the article heading position by id pattern with a
// word boundary, so "Article 5" never matches inside "Article 52".
func (p *EnglishParser) LocateArticle(id, text string) int {
	if !strings.Contains(id, "Article") {
		return -1
	}
	pat, err := regexp.Compile(regexp.QuoteMeta(id) + `(?:\s|$)`)
	if err != nil {
		return -1
	}
	if loc := pat.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	return -1
}

var (
	titleRefPattern   = regexp.MustCompile(`^(?:Art\.|R\.|Rule)(?:\s*[\d,\s\-a-zA-Z]*)?$`)
	marginOnlyPattern = regexp.MustCompile(`^(?:Art\.|R\.|Rule|Reg\.)\s*[\d,\s\-a-zA-Z]+$`)

	caselawRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*See decisions?/opinions? of the Enlarged Board of Appeal[^.]*\.?\s*`),
		regexp.MustCompile(`(?i)\s*See information from[^.]*\.\s*`),
		regexp.MustCompile(`(?i)\s*See (?:decision|opinion|notice)(?:s)?(?:/(?:decision|opinion|notice)(?:s)?)?(?: of| from)[^.]*\.\s*`),
		regexp.MustCompile(`(?i)\s*(?:Amended|Inserted|Deleted) by the Act[^.]*\.\s*`),
		regexp.MustCompile(`(?i)\s*(?:Title )?(?:Amended|Inserted|Deleted) by[^.]*\.\s*`),
		regexp.MustCompile(`(?i)\s*\(See (?:decision|opinion|notice)(?:s)?[^)]*\)\s*`),
		regexp.MustCompile(`(?i)\s*\(Annex [IVX]+\)\s*`),
		regexp.MustCompile(`\s*\d{1,2}\.\d{4}\.?\s*(?:\([^)]*\))?\s*`),
		regexp.MustCompile(`(?i)\s*(?:notice|decision|information) from the [^.]*concerning[^.]*\.\s*`),
		regexp.MustCompile(`\s*European Patent Convention\s+(?:April|January|February|March|May|June|July|August|September|October|November|December)\s+\d{4}\s*`),
	}

	lonePageLinePattern   = regexp.MustCompile(`(?m)^\d{1,3}[ \t]*$`)
	pageBeforeParaPattern = regexp.MustCompile(`([.!?])\s*\d{1,3}\s+(\(\d+\))`)
	pageAfterBreakPattern = regexp.MustCompile(`\n\s*\d{1,3}\s+(\(\d+\))`)
	doubleSpacePattern    = regexp.MustCompile(` {2,}`)

	trailingHeadingPattern = regexp.MustCompile(
		`\s*\n[ \t]*(?:Part|PART|Chapter|CHAPTER|Section|SECTION)\s+[IVX0-9]+[^\n]*$`)
	trailingHeading2Pattern = regexp.MustCompile(
		`(?m)\s*\n[ \t]*(?:Part|PART|Chapter|CHAPTER|Section|SECTION)\s+[IVX0-9]+[ \t]*\n[ \t]*[A-Za-z ]+$`)
)

// CleanArticle removes the duplicated heading, margin references and
// amendment history that PDF extraction mixes into an article body. If
// cleaning leaves nothing usable the original text is returned.
func (p *EnglishParser) CleanArticle(id, title, text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for i, line := range lines {
		s := strings.TrimSpace(line)

		if i == 0 && strings.Contains(s, id) {
			continue
		}
		if i < 3 {
			if title != "" && s == title {
				continue
			}
			if title != "" && strings.HasPrefix(s, title) {
				after := strings.TrimSpace(s[len(title):])
				if titleRefPattern.MatchString(after) {
					continue
				}
			}
			if marginOnlyPattern.MatchString(s) {
				continue
			}
		}
		if s != "" {
			kept = append(kept, line)
		}
	}

	clean := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(clean) < 10 {
		return text
	}

	for _, pat := range caselawRefPatterns {
		clean = pat.ReplaceAllString(clean, " ")
	}
	clean = lonePageLinePattern.ReplaceAllString(clean, "")
	clean = pageBeforeParaPattern.ReplaceAllString(clean, "$1\n$2")
	clean = pageAfterBreakPattern.ReplaceAllString(clean, "\n$1")
	clean = doubleSpacePattern.ReplaceAllString(clean, " ")
	clean = trailingHeadingPattern.ReplaceAllString(clean, "")
	clean = trailingHeading2Pattern.ReplaceAllString(clean, "")

	return strings.TrimSpace(clean)
}

// SplitFinalSignature separates the closing formula of the final
// article (signature block and "Done at Munich" date line) into leaves
// of their own so they sort after the numbered paragraphs.
func (p *EnglishParser) SplitFinalSignature(id string, leaves []Leaf) []Leaf {
	if id != "Article 178" || len(leaves) == 0 {
		return leaves
	}
	last := &leaves[len(leaves)-1]
	m := witnessPattern.FindStringSubmatch(last.Text)
	if m == nil {
		return leaves
	}
	last.Text = strings.TrimSpace(m[1])
	signature := strings.TrimSpace(m[2])

	if dm := doneAtPattern.FindStringSubmatch(signature); dm != nil {
		leaves = append(leaves,
			Leaf{Text: strings.TrimSpace(dm[1])},
			Leaf{Text: strings.TrimSpace(dm[2])})
	} else {
		leaves = append(leaves, Leaf{Text: signature})
	}
	return leaves
}
