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

var (
	ruArticlePattern = regexp.MustCompile(`^(Article\s+\d+[.\s]*)\s*(.*)`)
	ruParaPattern    = regexp.MustCompile(`^(\d+)\.\s*(.*)`)
	ruSubPattern     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\)\s*(.*)`)
)

// ParseRussia parses the rospatent.gov.ru English rendition of Civil
// Code Part IV. Headings and body share flat <p> markup: chapters are
// h2, §-sections are unclassed h2, articles open with a
// strong "Article NNNN." run, and paragraphs vs subparagraphs are told
// apart by their "N." and "N)" lead-ins.
func ParseRussia(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	content := findFirst(doc, byTagClass("div", "col-dm-69"))
	if content == nil {
		return nil, errors.New("no content area (col-dm-69) found")
	}

	var rows []rowset.Row
	var chapter, section, artID, artTitle, paraNum string

	elems := findAll(content, func(n *html.Node) bool {
		return n.Data == "h2" || n.Data == "p"
	})
	for _, elem := range elems {
		text := collapseText(elem)
		if elem.Data == "h2" {
			switch {
			case hasClass(elem, "h2"):
				chapter = text
				section = ""
			case strings.HasPrefix(text, "§"):
				section = text
			case strings.HasPrefix(text, "Section"):
				chapter = text
				section = ""
			}
			continue
		}
		if text == "" {
			continue
		}

		if strong := findFirst(elem, byTag("strong")); strong != nil && strings.Contains(nodeText(strong), "Article") {
			if m := ruArticlePattern.FindStringSubmatch(collapseText(strong)); m != nil {
				artID = strings.TrimRight(m[1], ". ")
				artTitle = strings.TrimSpace(m[2])
				paraNum = ""
			}
			continue
		}
		if artID == "" {
			continue
		}

		base := rowset.Row{Chapter: chapter, Section: section, ArticleID: artID, ArticleTitle: artTitle}
		switch {
		case ruSubPattern.MatchString(text):
			// Subparagraph "N)": attached under the last seen paragraph.
			m := ruSubPattern.FindStringSubmatch(text)
			base.Paragraph = paraNum
			base.Item = m[1]
			base.Text = strings.TrimSpace(m[2])
		case ruParaPattern.MatchString(text):
			m := ruParaPattern.FindStringSubmatch(text)
			paraNum = m[1]
			base.Paragraph = paraNum
			base.Text = strings.TrimSpace(m[2])
		default:
			base.Text = text
		}
		rows = append(rows, base)
	}
	return rows, nil
}
