package dialect

import (
	"regexp"
	"strings"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

// USParser handles US Code titles: "§ N." section headings under
// PART/CHAPTER hierarchy with the (a)/(1)/(A) nesting convention.
type USParser struct {
	tun Tunables
}

// NewUSParser returns the US Code parser.
func NewUSParser(tun Tunables) *USParser {
	return &USParser{tun: tun}
}

func (p *USParser) Name() string       { return "usa" }
func (p *USParser) Language() Language { return LangEnglish }

var (
	usSectionPattern = regexp.MustCompile(`(?m)^§\s*(\d+[a-z]?)\.[ \t]+([^\n]*)`)
	usPartPattern    = regexp.MustCompile(`(?m)^[ \t]*(PART\s+[IVX]+[^\n]*)`)
	usChapterPattern = regexp.MustCompile(`(?m)^[ \t]*(CHAPTER\s+\d+[^\n]*)`)

	usRepealedPattern = regexp.MustCompile(`(?i)[\[(]\s*repealed`)

	usSubsectionMark = regexp.MustCompile(`(?:^|\n)\s*\(([a-z])\)\s+`)
	usParagraphMark  = regexp.MustCompile(`(?:^|\n)\s*\((\d+)\)\s+`)
	usSubparaMark    = regexp.MustCompile(`(?:^|\n)\s*\(([A-Z])\)\s+`)
)

// SplitArticles segments at "§ N." headings. The id is the bare section
// number; the heading remainder is the title. Duplicate ids keep the
// longest body and short table-of-contents chunks are dropped.
func (p *USParser) SplitArticles(text string) []ArticleUnit {
	matches := usSectionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []ArticleUnit{{ID: rowset.PreambleID, Text: t}}
		}
		return nil
	}

	byID := make(map[string]ArticleUnit)
	var order []string
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		id := text[m[2]:m[3]]
		title := strings.TrimSpace(text[m[4]:m[5]])
		body := strings.TrimSpace(text[m[5]:end])

		u := ArticleUnit{ID: id, Title: title, Text: body}
		if usRepealedPattern.MatchString(title) || usRepealedPattern.MatchString(body) {
			u.Deleted = true
		}
		if prev, ok := byID[id]; ok {
			if len(u.Text) > len(prev.Text) {
				byID[id] = u
			}
			continue
		}
		byID[id] = u
		order = append(order, id)
	}

	var units []ArticleUnit
	if pre := strings.TrimSpace(text[:matches[0][0]]); pre != "" {
		units = append(units, ArticleUnit{ID: rowset.PreambleID, Text: pre})
	}
	for _, id := range order {
		u := byID[id]
		if len(u.Text) < p.tun.MinContentLen && !u.Deleted {
			continue
		}
		if u.Deleted {
			u.Text = rowset.DeletedMarker
		}
		units = append(units, u)
	}
	return units
}

// DetectHierarchy finds PART and CHAPTER headings.
func (p *USParser) DetectHierarchy(text string) []HeadingMark {
	var marks []HeadingMark
	collect := func(pat *regexp.Regexp, typ HeadingType) {
		for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
			title := strings.Join(strings.Fields(text[m[2]:m[3]]), " ")
			title = trailingDigitsPattern.ReplaceAllString(title, "")
			marks = append(marks, HeadingMark{Type: typ, Title: title, Pos: m[0]})
		}
	}
	collect(usPartPattern, HeadingPart)
	collect(usChapterPattern, HeadingChapter)
	sortMarks(marks)
	return marks
}

// ParseParagraphs decomposes the (a)/(1)/(A) cascade. Subsection
// letters land in the paragraph column, numbered paragraphs in the item
// column and capital subparagraphs in the subitem column. Definition
// sections stay atomic per subsection.
func (p *USParser) ParseParagraphs(articleID, text string) []Leaf {
	subs := usSubsectionMark.FindAllStringSubmatchIndex(text, -1)
	if len(subs) == 0 {
		nums := usParagraphMark.FindAllStringSubmatchIndex(text, -1)
		if len(nums) == 0 {
			return nil
		}
		var leaves []Leaf
		if intro := strings.TrimSpace(text[:nums[0][0]]); intro != "" {
			leaves = append(leaves, Leaf{Text: intro})
		}
		for i, m := range nums {
			end := len(text)
			if i+1 < len(nums) {
				end = nums[i+1][0]
			}
			leaves = append(leaves, Leaf{
				Item: text[m[2]:m[3]],
				Text: strings.TrimSpace(text[m[1]:end]),
			})
		}
		return leaves
	}

	var leaves []Leaf
	if intro := strings.TrimSpace(text[:subs[0][0]]); intro != "" {
		leaves = append(leaves, Leaf{Text: intro})
	}
	for i, m := range subs {
		subLetter := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(subs) {
			end = subs[i+1][0]
		}
		subText := strings.TrimSpace(text[m[1]:end])

		if len(meansWordPattern.FindAllString(subText, -1)) >= p.tun.DefinitionMeans {
			leaves = append(leaves, Leaf{Paragraph: subLetter, Text: subText})
			continue
		}

		nums := usParagraphMark.FindAllStringSubmatchIndex(subText, -1)
		if len(nums) == 0 {
			leaves = append(leaves, Leaf{Paragraph: subLetter, Text: subText})
			continue
		}
		if lead := strings.TrimSpace(subText[:nums[0][0]]); lead != "" {
			leaves = append(leaves, Leaf{Paragraph: subLetter, Text: lead})
		}
		for j, nm := range nums {
			numLabel := subText[nm[2]:nm[3]]
			numEnd := len(subText)
			if j+1 < len(nums) {
				numEnd = nums[j+1][0]
			}
			numText := strings.TrimSpace(subText[nm[1]:numEnd])

			caps := usSubparaMark.FindAllStringSubmatchIndex(numText, -1)
			if len(caps) == 0 {
				leaves = append(leaves, Leaf{Paragraph: subLetter, Item: numLabel, Text: numText})
				continue
			}
			if lead := strings.TrimSpace(numText[:caps[0][0]]); lead != "" {
				leaves = append(leaves, Leaf{Paragraph: subLetter, Item: numLabel, Text: lead})
			}
			for k, cm := range caps {
				capEnd := len(numText)
				if k+1 < len(caps) {
					capEnd = caps[k+1][0]
				}
				leaves = append(leaves, Leaf{
					Paragraph: subLetter,
					Item:      numLabel,
					Subitem:   numText[cm[2]:cm[3]],
					Text:      strings.TrimSpace(numText[cm[1]:capEnd]),
				})
			}
		}
	}
	return leaves
}

// LocateArticle finds the last "§ N." heading for the id; the body
// follows the table-of-contents occurrence.
func (p *USParser) LocateArticle(id, text string) int {
	pat, err := regexp.Compile(`(?m)^§\s*` + regexp.QuoteMeta(id) + `\.[ \t]+`)
	if err != nil {
		return -1
	}
	locs := pat.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][0]
}
