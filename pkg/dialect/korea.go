package dialect

import (
	"regexp"
	"strings"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

// KoreaParser handles Korean statutes: 제N조 article headings with the
// title in parentheses, circled-digit paragraphs (①②③), numbered items
// (1. 2.) and lettered subitems (가. 나.).
type KoreaParser struct {
	tun Tunables
}

// NewKoreaParser returns the Korean statute parser.
func NewKoreaParser(tun Tunables) *KoreaParser {
	return &KoreaParser{tun: tun}
}

func (p *KoreaParser) Name() string       { return "korea" }
func (p *KoreaParser) Language() Language { return LangKorean }

var (
	// koreanArticlePattern matches 제N조 and subdivided 제N조의M headings
	// with an optional parenthesised title.
	koreanArticlePattern = regexp.MustCompile(`(?m)^[ \t]*(제\d+조(?:의\d+)?)(?:\(([^)\n]*)\))?`)

	koreanPartPattern    = regexp.MustCompile(`(?m)^[ \t]*(제\d+편[ \t]*[^\n]*)`)
	koreanChapterPattern = regexp.MustCompile(`(?m)^[ \t]*(제\d+장[ \t]*[^\n]*)`)
	koreanSectionPattern = regexp.MustCompile(`(?m)^[ \t]*(제\d+절[ \t]*[^\n]*)`)

	koreanItemPattern    = regexp.MustCompile(`(?m)^[ \t]*(\d+)\.[ \t]+`)
	koreanSubitemPattern = regexp.MustCompile(`(?m)^[ \t]*([가나다라마바사아자차카타파하])\.[ \t]+`)

	// koreanRevisionTag matches amendment history tags <개정 2021.4.20.>.
	koreanRevisionTag = regexp.MustCompile(`\s*<[^>]*>`)

	koreanDeletedBody = regexp.MustCompile(`^\s*삭제\s*(?:<[^>]*>)?\s*$`)
)

// circledDigits maps the circled-number paragraph markers to their
// decimal labels.
var circledDigits = map[rune]string{
	'①': "1", '②': "2", '③': "3", '④': "4", '⑤': "5",
	'⑥': "6", '⑦': "7", '⑧': "8", '⑨': "9", '⑩': "10",
	'⑪': "11", '⑫': "12", '⑬': "13", '⑭': "14", '⑮': "15",
	'⑯': "16", '⑰': "17", '⑱': "18", '⑲': "19", '⑳': "20",
}

// SplitArticles segments a Korean statute at 제N조 headings. Articles
// whose body is only 삭제 (with an optional amendment tag) are marked
// deleted; text before the first heading becomes the preamble unit.
func (p *KoreaParser) SplitArticles(text string) []ArticleUnit {
	matches := koreanArticlePattern.FindAllStringSubmatchIndex(text, -1)
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
		title := ""
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		body := strings.TrimSpace(text[m[0]:end])

		u := ArticleUnit{ID: id, Title: title, Text: body}
		if rest := strings.TrimSpace(strings.TrimPrefix(body, text[m[0]:m[1]])); koreanDeletedBody.MatchString(rest) {
			u.Deleted = true
		}
		// Longest body wins when the table of contents repeats an id.
		replaced := false
		for j := range units {
			if units[j].ID == id {
				if len(u.Text) > len(units[j].Text) {
					units[j] = u
				}
				replaced = true
				break
			}
		}
		if !replaced {
			units = append(units, u)
		}
	}
	return units
}

// DetectHierarchy finds 편/장/절 headings.
func (p *KoreaParser) DetectHierarchy(text string) []HeadingMark {
	var marks []HeadingMark
	collect := func(pat *regexp.Regexp, typ HeadingType) {
		for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
			title := strings.TrimSpace(text[m[2]:m[3]])
			title = strings.TrimSpace(koreanRevisionTag.ReplaceAllString(title, ""))
			title = strings.Join(strings.Fields(title), " ")
			marks = append(marks, HeadingMark{Type: typ, Title: title, Pos: m[0]})
		}
	}
	collect(koreanPartPattern, HeadingPart)
	collect(koreanChapterPattern, HeadingChapter)
	collect(koreanSectionPattern, HeadingSection)
	sortMarks(marks)
	return marks
}

// ParseParagraphs decomposes 항 (circled digits), 호 (1. 2.) and 목
// (가. 나.) levels.
func (p *KoreaParser) ParseParagraphs(articleID, text string) []Leaf {
	type mark struct {
		pos, end int
		label    string
	}
	var paraMarks []mark
	for i, r := range text {
		if label, ok := circledDigits[r]; ok {
			paraMarks = append(paraMarks, mark{pos: i, end: i + len(string(r)), label: label})
		}
	}

	if len(paraMarks) == 0 {
		return p.parseItems("", text)
	}

	var leaves []Leaf
	if intro := strings.TrimSpace(text[:paraMarks[0].pos]); intro != "" && koreanItemPattern.MatchString(intro) {
		leaves = append(leaves, p.parseItems("", intro)...)
	}
	for i, pm := range paraMarks {
		end := len(text)
		if i+1 < len(paraMarks) {
			end = paraMarks[i+1].pos
		}
		paraText := strings.TrimSpace(text[pm.end:end])
		leaves = append(leaves, p.parseItems(pm.label, paraText)...)
	}
	return leaves
}

// parseItems splits 호 and nested 목 under one paragraph. Without item
// markers the paragraph stays a single leaf; called with an empty label
// and no markers it reports nil so the article stays whole.
func (p *KoreaParser) parseItems(paraLabel, text string) []Leaf {
	items := koreanItemPattern.FindAllStringSubmatchIndex(text, -1)
	if len(items) == 0 {
		if paraLabel == "" {
			return nil
		}
		return []Leaf{{Paragraph: paraLabel, Text: text}}
	}

	var leaves []Leaf
	if intro := strings.TrimSpace(text[:items[0][0]]); intro != "" {
		leaves = append(leaves, Leaf{Paragraph: paraLabel, Text: intro})
	}
	for i, im := range items {
		end := len(text)
		if i+1 < len(items) {
			end = items[i+1][0]
		}
		itemLabel := text[im[2]:im[3]]
		itemText := strings.TrimSpace(text[im[1]:end])

		subs := koreanSubitemPattern.FindAllStringSubmatchIndex(itemText, -1)
		if len(subs) == 0 {
			leaves = append(leaves, Leaf{Paragraph: paraLabel, Item: itemLabel, Text: itemText})
			continue
		}
		if lead := strings.TrimSpace(itemText[:subs[0][0]]); lead != "" {
			leaves = append(leaves, Leaf{Paragraph: paraLabel, Item: itemLabel, Text: lead})
		}
		for j, sm := range subs {
			subEnd := len(itemText)
			if j+1 < len(subs) {
				subEnd = subs[j+1][0]
			}
			leaves = append(leaves, Leaf{
				Paragraph: paraLabel,
				Item:      itemLabel,
				Subitem:   itemText[sm[2]:sm[3]],
				Text:      strings.TrimSpace(itemText[sm[1]:subEnd]),
			})
		}
	}
	return leaves
}

// RefineArticle separates the 제N조(제목) heading line into id, title
// and body, and strips amendment tags from the body.
func (p *KoreaParser) RefineArticle(id, text string) (string, string, string) {
	title := ""
	body := text

	if m := koreanArticlePattern.FindStringSubmatchIndex(text); m != nil && m[0] == 0 {
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		body = strings.TrimSpace(text[m[1]:])
	}

	body = koreanRevisionTag.ReplaceAllString(body, "")
	return id, title, strings.TrimSpace(body)
}

// LocateArticle finds 제N조 headings with a boundary so 제1조 does not
// match inside 제1조의2 or 제11조.
func (p *KoreaParser) LocateArticle(id, text string) int {
	pat, err := regexp.Compile(regexp.QuoteMeta(id) + `(?:\(|<|\s|$)`)
	if err != nil {
		return -1
	}
	if loc := pat.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	return -1
}
