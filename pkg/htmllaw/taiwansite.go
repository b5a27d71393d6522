package htmllaw

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

var twSubparaPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)`)

// ParseTaiwanEnglish parses a law.moj.gov.tw English act page:
// div.law-reg-content holds div.h3 chapter and section headings and
// div.row article blocks with the number in col-no and the body lines
// in col-data.
func ParseTaiwanEnglish(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	content := findFirst(doc, func(n *html.Node) bool { return hasClass(n, "law-reg-content") })
	if content == nil {
		return nil, errors.New("no law-reg-content area found")
	}

	var rows []rowset.Row
	var chapter, section string
	for _, child := range childElements(content) {
		if hasClass(child, "h3") {
			heading := collapseText(child)
			if hasClass(child, "char-2") {
				chapter = heading
				section = ""
			} else if hasClass(child, "char-3") {
				section = heading
			}
			continue
		}
		if !hasClass(child, "row") {
			continue
		}

		colNo := findFirst(child, byTagClass("div", "col-no"))
		colData := findFirst(child, byTagClass("div", "col-data"))
		if colNo == nil || colData == nil {
			continue
		}
		id := collapseText(colNo)
		rows = append(rows, taiwanArticleRows(chapter, section, id, dataLines(colData))...)
	}
	return rows, nil
}

// dataLines reads the col-data children as body lines, one per text
// run between <br> separators.
func dataLines(colData *html.Node) []string {
	var lines []string
	for c := colData.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "br" {
			continue
		}
		var text string
		switch c.Type {
		case html.TextNode:
			text = cleanText(c.Data)
		case html.ElementNode:
			text = collapseText(c)
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// taiwanArticleRows decomposes one article's lines. Lines opening with
// "N." are subparagraphs; everything before the first one is the
// article's own paragraph, and continuation lines fold into the
// subparagraph they follow.
func taiwanArticleRows(chapter, section, id string, lines []string) []rowset.Row {
	base := rowset.Row{Chapter: chapter, Section: section, ArticleID: id}

	if len(lines) == 0 {
		return []rowset.Row{base}
	}

	type subpara struct {
		line int
		num  string
		rest string
	}
	var subs []subpara
	for i, line := range lines {
		if m := twSubparaPattern.FindStringSubmatch(line); m != nil {
			subs = append(subs, subpara{line: i, num: m[1], rest: m[2]})
		}
	}

	if len(subs) == 0 {
		r := base
		r.Paragraph = "1"
		r.Text = strings.Join(lines, " ")
		return []rowset.Row{r}
	}

	var rows []rowset.Row
	if subs[0].line > 0 {
		r := base
		r.Paragraph = "1"
		r.Text = strings.Join(lines[:subs[0].line], " ")
		rows = append(rows, r)
	}
	for i, sub := range subs {
		end := len(lines)
		if i+1 < len(subs) {
			end = subs[i+1].line
		}
		parts := append([]string{sub.rest}, lines[sub.line+1:end]...)
		r := base
		r.Paragraph = "1"
		r.Item = sub.num
		r.Text = strings.Join(parts, " ")
		rows = append(rows, r)
	}
	return rows
}
