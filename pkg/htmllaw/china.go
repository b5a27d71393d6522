package htmllaw

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

var (
	cnArticlePattern = regexp.MustCompile(`第([一二三四五六七八九十百千\d]+)条`)
	cnChapterPattern = regexp.MustCompile(`第([一二三四五六七八九十百千\d]+)章\s+([^\n第]+)`)
	cnItemPattern    = regexp.MustCompile(`[（(]([一二三四五六七八九十]+)[）)]\s*`)
)

// ParseChina parses a CNIPA statute page. The markup carries no
// structure, so the page is flattened to text and segmented on the
// 第X条 article and 第X章 chapter markers; （一）-numbered items become
// item rows.
func ParseChina(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return chinaRows(flattenText(doc)), nil
}

type cnChapter struct {
	pos   int
	title string
}

func chinaRows(text string) []rowset.Row {
	chapters := chinaChapters(text)

	var rows []rowset.Row
	matches := cnArticlePattern.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		id := "第" + text[m[2]:m[3]] + "条"
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		chapter := chinaChapterAt(chapters, m[0])

		base := rowset.Row{Chapter: chapter, ArticleID: id}

		items := cnItemPattern.FindAllStringSubmatchIndex(content, -1)
		if len(items) == 0 {
			r := base
			r.Text = content
			rows = append(rows, r)
			continue
		}
		for j, im := range items {
			itemEnd := len(content)
			if j+1 < len(items) {
				itemEnd = items[j+1][0]
			}
			r := base
			r.Paragraph = content[im[2]:im[3]]
			r.Text = strings.TrimSpace(content[im[1]:itemEnd])
			rows = append(rows, r)
		}
	}
	return rows
}

func chinaChapters(text string) []cnChapter {
	var chapters []cnChapter
	for _, m := range cnChapterPattern.FindAllStringSubmatchIndex(text, -1) {
		num := text[m[2]:m[3]]
		title := strings.TrimSpace(wsRun.ReplaceAllString(text[m[4]:m[5]], " "))
		chapters = append(chapters, cnChapter{
			pos:   m[0],
			title: "第" + num + "章 " + title,
		})
	}
	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].pos < chapters[j].pos })
	return chapters
}

func chinaChapterAt(chapters []cnChapter, pos int) string {
	current := ""
	for _, c := range chapters {
		if c.pos > pos {
			break
		}
		current = c.title
	}
	return current
}
