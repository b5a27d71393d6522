package dialect

import (
	"regexp"
	"sort"
	"strings"
)

// HongKongParser handles Hong Kong ordinances extracted from RTF:
// tab-delimited "N.\ttitle" sections under Part/Division/Subdivision
// headings, with schedules at the end. The tab after every label is
// what distinguishes real markers from parenthesised references in
// running text.
type HongKongParser struct {
	tun Tunables
}

// NewHongKongParser returns the Hong Kong ordinance parser.
func NewHongKongParser(tun Tunables) *HongKongParser {
	return &HongKongParser{tun: tun}
}

func (p *HongKongParser) Name() string       { return "hongkong" }
func (p *HongKongParser) Language() Language { return LangEnglish }

var (
	hkSectionPattern = regexp.MustCompile(`\n(\d+[A-Z]*)\.\t+([^\n]+)`)

	hkPartPattern = regexp.MustCompile(`(?i)\n(Part (?:\d+|[IVX]+)[A-Z]?)\n([^\n]+)`)

	// hkSchedulePattern matches real schedule headers only: a rule of
	// five or more underscores within 200 characters before the
	// "Schedule" line filters out cross-references in section bodies.
	hkSchedulePattern = regexp.MustCompile(`(?is)_{5,}.{0,200}?\n(Schedule(?:\s+\d+[A-Z]?)?)[ \t]*\n`)

	hkDivisionPattern    = regexp.MustCompile(`\nDivision (\d+[A-Z]?)—([^\n]+)`)
	hkSubdivisionPattern = regexp.MustCompile(`\nSubdivision (\d+[A-Z]?)—([^\n]+)`)
	hkSubheadingPattern  = regexp.MustCompile(`(?m)^([A-Z][^\n\t]{9,79})$`)
	hkSectionLead        = regexp.MustCompile(`^\d+\.\t`)

	hkTrailingSubheading = regexp.MustCompile(`\n([A-Z][^\n\t]{9,79})\s*$`)

	hkSubsectionMark = regexp.MustCompile(`(?:^|[\n\t])\((\d+[a-zA-Z]?)\)\t+`)
	hkItemMark       = regexp.MustCompile(`(?:^|[\n\t])\(([a-hj-uwyz])\)\t+`)
	hkSubitemMark    = regexp.MustCompile(`(?:^|[\n\t])\(([ivxlcdm]+)\)\t+`)
	hkSubsubMark     = regexp.MustCompile(`(?:^|[\n\t])\(([A-HJ-UW-Z])\)\t+`)

	hkScheduleIDPattern = regexp.MustCompile(`Schedule\s*(?:\d+[A-Z]?)?`)
)

// hkExcludedStarts are sentence openers that disqualify a line from
// being a subheading.
var hkExcludedStarts = []string{
	"The ", "Any ", "A ", "An ", "If ", "Where ", "Subject ", "In ", "For ",
}

func hkStartsExcluded(s string) bool {
	for _, pre := range hkExcludedStarts {
		if strings.HasPrefix(s, pre) {
			return true
		}
	}
	return false
}

// hkBoundary is a Part or Schedule heading position.
type hkBoundary struct {
	name     string
	pos      int
	schedule bool
}

// hkRange is the span of one schedule.
type hkRange struct {
	name       string
	start, end int
}

// hkBoundaries collects Part and Schedule positions in order. Parts
// appearing after the first schedule belong to a schedule's internal
// structure and are dropped.
func hkBoundaries(text string) ([]hkBoundary, []hkRange) {
	var bounds []hkBoundary
	for _, m := range hkPartPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := strings.TrimSpace(text[m[4]:m[5]])
		bounds = append(bounds, hkBoundary{name: num + ": " + title, pos: m[0]})
	}

	firstSchedule := -1
	for _, m := range hkSchedulePattern.FindAllStringSubmatchIndex(text, -1) {
		name := strings.TrimSpace(text[m[2]:m[3]])
		if firstSchedule < 0 {
			firstSchedule = m[0]
		}
		bounds = append(bounds, hkBoundary{name: name, pos: m[0], schedule: true})
	}

	sort.SliceStable(bounds, func(i, j int) bool { return bounds[i].pos < bounds[j].pos })

	if firstSchedule >= 0 {
		kept := bounds[:0]
		for _, b := range bounds {
			if b.pos < firstSchedule || b.schedule {
				kept = append(kept, b)
			}
		}
		bounds = kept
	}

	var ranges []hkRange
	for i, b := range bounds {
		if !b.schedule {
			continue
		}
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1].pos
		}
		ranges = append(ranges, hkRange{name: b.name, start: b.pos, end: end})
	}
	return bounds, ranges
}

// SplitArticles extracts "N.\ttitle" sections and sectionless
// schedules. Each section carries the Part or Schedule it belongs to.
// Only Schedule 1 keeps its internal sections; the other schedules hold
// tables, repeal lists or nested parts and are taken whole.
func (p *HongKongParser) SplitArticles(text string) []ArticleUnit {
	bounds, ranges := hkBoundaries(text)

	firstSchedule := -1
	if len(ranges) > 0 {
		firstSchedule = ranges[0].start
	}

	type sectionPos struct {
		num, title string
		start      int // body start, after the heading line
		matchPos   int // position of the heading's leading newline
	}
	var sections []sectionPos
	for _, m := range hkSectionPattern.FindAllStringSubmatchIndex(text, -1) {
		matchPos := m[0]
		if firstSchedule >= 0 && matchPos >= firstSchedule {
			inSchedule := false
			for _, r := range ranges {
				if r.start <= matchPos && matchPos < r.end {
					inSchedule = strings.Contains(r.name, "Schedule 1")
					break
				}
			}
			if !inSchedule {
				continue
			}
		}
		start := m[1]
		if start < len(text) && text[start] == '\n' {
			start++
		}
		sections = append(sections, sectionPos{
			num:      text[m[2]:m[3]],
			title:    strings.TrimSpace(text[m[4]:m[5]]),
			start:    start,
			matchPos: matchPos,
		})
	}

	var units []ArticleUnit
	for i, sec := range sections {
		end := len(text)
		if i+1 < len(sections) {
			end = sections[i+1].matchPos
		}
		// A Part or Schedule heading ends the section early.
		for _, b := range bounds {
			if b.pos > sec.matchPos && b.pos < end {
				end = b.pos
				break
			}
		}
		content := strings.TrimSpace(text[sec.start:end])

		// A subheading for the next group of sections can trail the
		// body; drop it.
		if m := hkTrailingSubheading.FindStringSubmatchIndex(content); m != nil {
			candidate := strings.TrimSpace(content[m[2]:m[3]])
			if !strings.HasSuffix(candidate, ".") && !strings.HasSuffix(candidate, "|") &&
				!strings.HasSuffix(candidate, ",") && !hkStartsExcluded(candidate) {
				content = strings.TrimSpace(content[:m[0]])
			}
		}

		part := ""
		for _, b := range bounds {
			if b.pos >= sec.matchPos {
				break
			}
			part = b.name
		}

		units = append(units, ArticleUnit{
			ID:    sec.num,
			Title: sec.title,
			Text:  content,
			Part:  part,
		})
	}

	for _, r := range ranges {
		hasSections := false
		for _, sec := range sections {
			if r.start <= sec.matchPos && sec.matchPos < r.end {
				hasSections = true
				break
			}
		}
		if hasSections {
			continue
		}
		body := strings.TrimSpace(text[r.start:r.end])
		id := "Schedule"
		if m := hkScheduleIDPattern.FindString(r.name); m != "" {
			id = strings.TrimSpace(m)
		}
		units = append(units, ArticleUnit{
			ID:    id,
			Title: hkScheduleTitle(body),
			Text:  body,
			Part:  r.name,
		})
	}
	return units
}

// hkScheduleTitle finds the title line after the Schedule keyword,
// skipping rules, margin notes and editorial markers.
func hkScheduleTitle(body string) string {
	pos := strings.Index(body, "Schedule")
	if pos < 0 {
		return ""
	}
	lines := strings.Split(body[pos:], "\n")
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}
	for _, line := range lines[1:limit] {
		line = strings.TrimSpace(line)
		if line == "" || len(line) <= 5 {
			continue
		}
		switch line[0] {
		case '_', '|', '[', '(':
			continue
		}
		if strings.Contains(line, "Editorial Note") {
			continue
		}
		return line
	}
	return ""
}

// DetectHierarchy finds Part, Division and Subdivision headings, plus
// the unnumbered subheadings some ordinances use in place of divisions:
// a capitalised noun-phrase line directly above a section number.
func (p *HongKongParser) DetectHierarchy(text string) []HeadingMark {
	var marks []HeadingMark
	partTitles := make(map[string]bool)

	for _, m := range hkPartPattern.FindAllStringSubmatchIndex(text, -1) {
		num := strings.TrimSpace(text[m[2]:m[3]])
		title := strings.TrimSpace(text[m[4]:m[5]])
		partTitles[title] = true
		marks = append(marks, HeadingMark{Type: HeadingPart, Title: num + ": " + title, Pos: m[0]})
	}
	for _, m := range hkDivisionPattern.FindAllStringSubmatchIndex(text, -1) {
		marks = append(marks, HeadingMark{
			Type:  HeadingDivision,
			Title: "Division " + text[m[2]:m[3]] + "—" + strings.TrimSpace(text[m[4]:m[5]]),
			Pos:   m[0],
		})
	}
	for _, m := range hkSubdivisionPattern.FindAllStringSubmatchIndex(text, -1) {
		marks = append(marks, HeadingMark{
			Type:  HeadingSubdivision,
			Title: "Subdivision " + text[m[2]:m[3]] + "—" + strings.TrimSpace(text[m[4]:m[5]]),
			Pos:   m[0],
		})
	}

	for _, m := range hkSubheadingPattern.FindAllStringSubmatchIndex(text, -1) {
		// Only a line sitting directly above a section number counts.
		if m[1] >= len(text) || text[m[1]] != '\n' || !hkSectionLead.MatchString(text[m[1]+1:]) {
			continue
		}
		title := strings.TrimSpace(text[m[2]:m[3]])
		if partTitles[title] || strings.HasSuffix(title, ".") || strings.HasSuffix(title, "|") {
			continue
		}
		if title[0] == '(' || hkStartsExcluded(title) {
			continue
		}
		marks = append(marks, HeadingMark{Type: HeadingDivision, Title: title, Pos: m[2]})
	}

	sortMarks(marks)
	return marks
}

// hkSegment is one labelled span between tab-delimited markers.
type hkSegment struct {
	label string
	text  string
}

// hkSplitMarks cuts text at tab-delimited markers, returning the intro
// before the first marker and the labelled segments.
func hkSplitMarks(pat *regexp.Regexp, text string) (string, []hkSegment) {
	ms := pat.FindAllStringSubmatchIndex(text, -1)
	if len(ms) == 0 {
		return "", nil
	}
	intro := strings.TrimSpace(text[:ms[0][0]])
	segs := make([]hkSegment, 0, len(ms))
	for i, m := range ms {
		end := len(text)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		segs = append(segs, hkSegment{
			label: text[m[2]:m[3]],
			text:  strings.TrimSpace(text[m[1]:end]),
		})
	}
	return intro, segs
}

// hkIsDefinition reports whether a subsection is a definition clause
// whose lettered markers enumerate meanings, not paragraphs. Applied to
// the interpretation section only.
func hkIsDefinition(text string) bool {
	for _, marker := range []string{
		"means—", "includes—", "means -", "requires—", "requires -",
		"context otherwise requires",
	} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ParseParagraphs decomposes the tab-delimited cascade: (1) subsection,
// (a) paragraph, (i) subparagraph, (A) further division. Single-letter
// romans i, v, x are excluded from the paragraph class and the roman
// capitals I, V, X from the deepest one.
func (p *HongKongParser) ParseParagraphs(articleID, text string) []Leaf {
	intro, subsections := hkSplitMarks(hkSubsectionMark, text)
	if len(subsections) == 0 {
		return p.parseHKItems("", text, false)
	}

	var leaves []Leaf
	if intro != "" {
		leaves = append(leaves, Leaf{Text: intro})
	}
	for _, sub := range subsections {
		definition := articleID == "2" && hkIsDefinition(sub.text)
		got := p.parseHKItems(sub.label, sub.text, definition)
		if got == nil {
			leaves = append(leaves, Leaf{Paragraph: sub.label, Text: sub.text})
			continue
		}
		leaves = append(leaves, got...)
	}
	return leaves
}

// parseHKItems splits one subsection (or a sectionless body) into
// lettered paragraphs and their nested levels. Returns nil when no
// markers are found and no label was given, so the body stays whole.
func (p *HongKongParser) parseHKItems(paraLabel, text string, definition bool) []Leaf {
	var items []hkSegment
	var intro string
	if !definition {
		intro, items = hkSplitMarks(hkItemMark, text)
	}
	if len(items) == 0 {
		return nil
	}

	var leaves []Leaf
	if intro != "" {
		leaves = append(leaves, Leaf{Paragraph: paraLabel, Text: intro})
	}
	for _, item := range items {
		subIntro, subitems := hkSplitMarks(hkSubitemMark, item.text)
		if len(subitems) == 0 {
			leaves = append(leaves, Leaf{Paragraph: paraLabel, Item: item.label, Text: item.text})
			continue
		}
		if subIntro != "" {
			leaves = append(leaves, Leaf{Paragraph: paraLabel, Item: item.label, Text: subIntro})
		}
		for _, sub := range subitems {
			ssIntro, subsubs := hkSplitMarks(hkSubsubMark, sub.text)
			if len(subsubs) == 0 {
				leaves = append(leaves, Leaf{
					Paragraph: paraLabel, Item: item.label, Subitem: sub.label, Text: sub.text,
				})
				continue
			}
			if ssIntro != "" {
				leaves = append(leaves, Leaf{
					Paragraph: paraLabel, Item: item.label, Subitem: sub.label, Text: ssIntro,
				})
			}
			for _, ss := range subsubs {
				leaves = append(leaves, Leaf{
					Paragraph:  paraLabel,
					Item:       item.label,
					Subitem:    sub.label,
					Subsubitem: ss.label,
					Text:       ss.text,
				})
			}
		}
	}
	return leaves
}

// LocateArticle finds the last "N.\t" heading for the id; the first
// occurrence is usually the table of contents.
func (p *HongKongParser) LocateArticle(id, text string) int {
	pat, err := regexp.Compile(`\n` + regexp.QuoteMeta(id) + `\.\t`)
	if err != nil {
		return -1
	}
	locs := pat.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][0]
}
