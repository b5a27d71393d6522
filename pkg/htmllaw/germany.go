package htmllaw

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

var (
	deOrdinalPattern = regexp.MustCompile(`^(Erster|Zweiter|Dritter|Vierter|Fünfter|Sechster|Siebenter|Achter|Neunter|Zehnter|Elfter|Zwölfter)\s`)
	deAbsatzPrefix   = regexp.MustCompile(`^\(\d+[a-z]?\)\s*`)
)

// ParseGermany parses a gesetze-im-internet.de act page: one
// div.jnnorm per section or heading block, h2 headings classified into
// Teil (part) and Abschnitt (chapter), § numbers in span.jnenbez,
// div.jurAbsatz paragraphs and dl/dt/dd item lists.
func ParseGermany(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	norms := findAll(doc, byTagClass("div", "jnnorm"))
	if len(norms) == 0 {
		return nil, errors.New("no jnnorm blocks found")
	}

	var rows []rowset.Row
	var teil, abschnitt string
	for _, norm := range norms {
		if h2 := findFirst(norm, byTag("h2")); h2 != nil {
			heading, first := deHeading(h2)
			if heading == "" {
				continue
			}
			if strings.HasPrefix(first, "Teil") || deOrdinalPattern.MatchString(first) {
				teil = heading
				abschnitt = ""
			} else {
				abschnitt = heading
			}
			continue
		}

		h3 := findFirst(norm, byTag("h3"))
		if h3 == nil {
			continue
		}
		enbez := findFirst(h3, byTagClass("span", "jnenbez"))
		if enbez == nil {
			continue
		}
		id := collapseText(enbez)

		title := ""
		if entitel := findFirst(h3, byTagClass("span", "jnentitel")); entitel != nil {
			title = collapseText(entitel)
		}
		if strings.Contains(title, "(weggefallen)") {
			continue
		}

		base := rowset.Row{Part: teil, Chapter: abschnitt, ArticleID: id, ArticleTitle: title}

		absaetze := findAll(norm, byTagClass("div", "jurAbsatz"))
		if len(absaetze) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, absatz := range absaetze {
			rows = append(rows, deAbsatzRows(base, strconv.Itoa(i+1), absatz)...)
		}
	}
	return rows, nil
}

// deHeading joins the h2's span texts (the number span and the title
// span) and returns the joined heading plus the first span's text for
// Teil/Abschnitt classification.
func deHeading(h2 *html.Node) (heading, first string) {
	spans := findAll(h2, byTag("span"))
	if len(spans) == 0 {
		t := collapseText(h2)
		return t, t
	}
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		parts = append(parts, collapseText(s))
	}
	return strings.TrimSpace(strings.Join(parts, " ")), collapseText(spans[0])
}

// deAbsatzRows emits one Absatz: its chapeau, the dl item list when
// present, and any closing text after the list.
func deAbsatzRows(base rowset.Row, absNum string, absatz *html.Node) []rowset.Row {
	base.Paragraph = absNum

	dl := findFirst(absatz, byTag("dl"))
	if dl == nil {
		text := deAbsatzPrefix.ReplaceAllString(collapseText(absatz), "")
		if text == "" {
			return nil
		}
		r := base
		r.Text = text
		return []rowset.Row{r}
	}

	var rows []rowset.Row

	var before, after []string
	seen := false
	for c := absatz.FirstChild; c != nil; c = c.NextSibling {
		if c == dl {
			seen = true
			continue
		}
		var text string
		if c.Type == html.TextNode {
			text = cleanText(wsRun.ReplaceAllString(c.Data, " "))
		} else if c.Type == html.ElementNode {
			text = collapseText(c)
		}
		if text == "" {
			continue
		}
		if seen {
			after = append(after, text)
		} else {
			before = append(before, text)
		}
	}

	if intro := deAbsatzPrefix.ReplaceAllString(strings.Join(before, " "), ""); intro != "" {
		r := base
		r.Text = intro
		rows = append(rows, r)
	}

	dts := findAll(dl, byTag("dt"))
	dds := findAll(dl, byTag("dd"))
	for i := 0; i < len(dts) && i < len(dds); i++ {
		r := base
		r.Item = strings.TrimRight(collapseText(dts[i]), ".")
		r.Text = collapseText(dds[i])
		rows = append(rows, r)
	}

	if len(after) > 0 {
		r := base
		r.Text = strings.Join(after, " ")
		rows = append(rows, r)
	}
	return rows
}
