package dialect

import (
	"regexp"
	"strings"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

// TaiwanParser handles Chinese-language Taiwanese statutes: 第N條
// article headings under 編/章/節 hierarchy. Paragraph decomposition is
// deliberately absent — the downstream comparison keeps each Chinese
// article whole.
type TaiwanParser struct {
	tun Tunables
}

// NewTaiwanParser returns the Chinese-text statute parser.
func NewTaiwanParser(tun Tunables) *TaiwanParser {
	return &TaiwanParser{tun: tun}
}

func (p *TaiwanParser) Name() string       { return "taiwan" }
func (p *TaiwanParser) Language() Language { return LangChinese }

var (
	chineseArticlePattern = regexp.MustCompile(`(?m)^[ \t]*(第[一二三四五六七八九十百千〇\d]+條(?:之[一二三四五六七八九十\d]+)?)`)
	chinesePartPattern    = regexp.MustCompile(`(?m)^[ \t]*(第[一二三四五六七八九十\d]+編[^\n]*)`)
	chineseChapterPattern = regexp.MustCompile(`(?m)^[ \t]*(第[一二三四五六七八九十\d]+章[^\n]*)`)
	chineseSectionPattern = regexp.MustCompile(`(?m)^[ \t]*(第[一二三四五六七八九十\d]+節[^\n]*)`)

	chineseDeletedBody = regexp.MustCompile(`[（(]刪除[）)]`)
)

// SplitArticles segments at 第N條 headings; text before the first one
// becomes the preamble unit.
func (p *TaiwanParser) SplitArticles(text string) []ArticleUnit {
	matches := chineseArticlePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []ArticleUnit{{ID: rowset.PreambleID, Text: t}}
		}
		return nil
	}

	var units []ArticleUnit
	if pre := strings.TrimSpace(text[:matches[0][0]]); pre != "" {
		units = append(units, ArticleUnit{ID: rowset.PreambleID, Text: pre})
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		id := text[m[2]:m[3]]
		body := strings.TrimSpace(text[m[0]:end])
		units = append(units, ArticleUnit{
			ID:      id,
			Text:    body,
			Deleted: chineseDeletedBody.MatchString(body),
		})
	}
	return units
}

// DetectHierarchy finds 編/章/節 headings.
func (p *TaiwanParser) DetectHierarchy(text string) []HeadingMark {
	var marks []HeadingMark
	collect := func(pat *regexp.Regexp, typ HeadingType) {
		for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
			title := strings.Join(strings.Fields(text[m[2]:m[3]]), " ")
			marks = append(marks, HeadingMark{Type: typ, Title: title, Pos: m[0]})
		}
	}
	collect(chinesePartPattern, HeadingPart)
	collect(chineseChapterPattern, HeadingChapter)
	collect(chineseSectionPattern, HeadingSection)
	sortMarks(marks)
	return marks
}

// ParseParagraphs returns nil: Chinese article bodies are not
// decomposed.
func (p *TaiwanParser) ParseParagraphs(articleID, text string) []Leaf {
	return nil
}

// LocateArticle finds the article heading by exact id.
func (p *TaiwanParser) LocateArticle(id, text string) int {
	return strings.Index(text, id)
}
