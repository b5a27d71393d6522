package htmllaw

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lawtab/pkg/dialect"
	"github.com/coolbeans/lawtab/pkg/rowset"
)

var (
	euPreamblePattern = regexp.MustCompile(`(?is)THE CONTRACTING MEMBER STATES.*?HAVE AGREED AS FOLLOWS:`)
	euArticlePattern  = regexp.MustCompile(`(?i)\n(Article[ \t]+\d+[a-z]*)[ \t]*\n`)
	euPartPattern     = regexp.MustCompile(`(?m)^(PART[ \t]+[IVXLCDM]+)[ \t]*\n?[ \t]*([^\n]*)`)
	euChapterPattern  = regexp.MustCompile(`(?m)^(CHAPTER[ \t]+[IVXLCDM0-9]+)[ \t]*\n?[ \t]*([^\n]*)`)
	euParaMark        = regexp.MustCompile(`(?m)^[ \t]*(\d+)\.[ \t]+`)
	euItemMark        = regexp.MustCompile(`\n[ \t]*\(([a-z])\)[ \t]*\n`)
	euLeadingDigit    = regexp.MustCompile(`^[\d(]`)
)

type euHeading struct {
	kind  string // "part" or "chapter"
	title string
	pos   int
}

// ParseEU parses a treaty page in the EU publication style (the UPC
// Agreement and its kin): the DOM is flattened to text, the preamble is
// split into recitals and articles are segmented by their heading
// lines.
func ParseEU(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	text := flattenText(doc)

	rows := euPreambleRows(text)
	heads := euHierarchy(text)

	matches := euArticlePattern.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		id := wsRun.ReplaceAllString(strings.TrimSpace(text[m[2]:m[3]]), " ")
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])

		// The first line is the title unless it already starts the body
		// with a paragraph or item marker.
		title := ""
		if line, rest, ok := strings.Cut(content, "\n"); ok || content != "" {
			first := strings.TrimSpace(line)
			if first != "" && !euLeadingDigit.MatchString(first) {
				title = first
				content = strings.TrimSpace(rest)
			}
		}

		part, chapter := euStateAt(heads, m[0])
		rows = append(rows, euArticleRows(part, chapter, id, title, content)...)
	}
	return rows, nil
}

// euPreambleRows extracts the block between the contracting-states
// formula and the agreement formula and splits it into recital rows.
func euPreambleRows(text string) []rowset.Row {
	loc := euPreamblePattern.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	var rows []rowset.Row
	for _, rc := range dialect.SplitPreamble(text[loc[0]:loc[1]]) {
		rows = append(rows, rowset.Row{
			ArticleID:    rowset.PreambleID,
			ArticleTitle: rc.Kind,
			Text:         rc.Text,
		})
	}
	return rows
}

// euHierarchy finds PART and CHAPTER headings. A heading whose title
// line is itself the next structural heading is dropped: it had no
// title of its own.
func euHierarchy(text string) []euHeading {
	var heads []euHeading
	for _, m := range euPartPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := strings.TrimSpace(text[m[4]:m[5]])
		if chapterOrArticleLead(title) {
			continue
		}
		heads = append(heads, euHeading{kind: "part", title: joinHeading(num, title), pos: m[0]})
	}
	for _, m := range euChapterPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := strings.TrimSpace(text[m[4]:m[5]])
		if articleLead(title) {
			continue
		}
		heads = append(heads, euHeading{kind: "chapter", title: joinHeading(num, title), pos: m[0]})
	}
	sortHeadings(heads)
	return heads
}

func chapterOrArticleLead(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "chapter") || strings.HasPrefix(lower, "article")
}

func articleLead(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "article")
}

func joinHeading(num, title string) string {
	if title == "" {
		return num
	}
	return num + " " + wsRun.ReplaceAllString(title, " ")
}

func sortHeadings(heads []euHeading) {
	sort.SliceStable(heads, func(i, j int) bool { return heads[i].pos < heads[j].pos })
}

// euStateAt replays the headings up to pos. A new part resets the
// chapter.
func euStateAt(heads []euHeading, pos int) (part, chapter string) {
	for _, h := range heads {
		if h.pos > pos {
			break
		}
		if h.kind == "part" {
			part = h.title
			chapter = ""
		} else {
			chapter = h.title
		}
	}
	return part, chapter
}

// euArticleRows decomposes one article: numbered paragraphs first, then
// lettered items within each, items alone when there are no paragraphs,
// the whole body when there is neither.
func euArticleRows(part, chapter, id, title, body string) []rowset.Row {
	base := rowset.Row{Part: part, Chapter: chapter, ArticleID: id, ArticleTitle: title}

	paras := euParaMark.FindAllStringSubmatchIndex(body, -1)
	if len(paras) == 0 {
		rows := euItemRows(base, "", body)
		if rows == nil {
			r := base
			r.Text = strings.TrimSpace(body)
			rows = []rowset.Row{r}
		}
		return rows
	}

	var rows []rowset.Row
	for i, m := range paras {
		num := body[m[2]:m[3]]
		end := len(body)
		if i+1 < len(paras) {
			end = paras[i+1][0]
		}
		paraText := strings.TrimSpace(body[m[1]:end])

		if itemRows := euItemRows(base, num, paraText); itemRows != nil {
			rows = append(rows, itemRows...)
			continue
		}
		r := base
		r.Paragraph = num
		r.Text = paraText
		rows = append(rows, r)
	}
	return rows
}

// euItemRows splits (a)-lettered items out of one paragraph, emitting
// the text before the first item as an unlabelled row. Returns nil when
// there are no items.
func euItemRows(base rowset.Row, paraNum, text string) []rowset.Row {
	items := euItemMark.FindAllStringSubmatchIndex(text, -1)
	if len(items) == 0 {
		return nil
	}

	var rows []rowset.Row
	if intro := strings.TrimSpace(text[:items[0][0]]); intro != "" {
		r := base
		r.Paragraph = paraNum
		r.Text = intro
		rows = append(rows, r)
	}
	for i, m := range items {
		letter := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(items) {
			end = items[i+1][0]
		}
		r := base
		r.Paragraph = paraNum
		r.Item = letter
		r.Text = strings.TrimSpace(text[m[1]:end])
		rows = append(rows, r)
	}
	return rows
}
