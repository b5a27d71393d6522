// Package assemble turns parsed article units into the final row
// table: it locates each article in the source text, attaches the
// hierarchy labels in force at that position, decomposes paragraphs,
// normalizes ids and orders the result.
package assemble

import (
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/lawtab/pkg/dialect"
	"github.com/coolbeans/lawtab/pkg/rowset"
)

// hierState is the hierarchy in force at a text position. Part, book
// and title compose into the part column; chapter and section map
// directly.
type hierState struct {
	part    string
	book    string
	title   string
	chapter string
	section string
}

// partLabel joins part, book and title the way French codes nest them.
func (s hierState) partLabel() string {
	var parts []string
	for _, v := range []string{s.part, s.book, s.title} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " / ")
}

// Structure runs the assembly stage for one document: hierarchy
// detection and article segmentation through the parser, then
// per-article decomposition into ordered rows.
func Structure(p dialect.Parser, text string, tun dialect.Tunables) []rowset.Row {
	marks := p.DetectHierarchy(text)
	units := p.SplitArticles(text)

	english := p.Language() == dialect.LangEnglish

	// Parsers that attach a part to each unit (Hong Kong) override the
	// positional part and switch the sort to part-major order.
	partByArticle := false
	for _, u := range units {
		if u.Part != "" {
			partByArticle = true
			break
		}
	}

	var rows []rowset.Row
	var prev hierState
	for _, u := range units {
		if u.ID == rowset.PreambleID {
			rows = append(rows, preambleRows(p, u.Text)...)
			continue
		}

		pos := locateUnit(p, u, text)

		var st hierState
		switch {
		case pos < 0:
			// Unlocatable articles inherit the previous article's
			// hierarchy rather than resetting to nothing.
			st = prev
		case u.Part != "":
			st = partScopedState(marks, pos, u.Part)
		default:
			st = walkMarks(marks, pos)
			prev = st
		}

		id, title, body := u.ID, u.Title, u.Text
		if r, ok := p.(dialect.ArticleRefiner); ok {
			id, title, body = r.RefineArticle(id, body)
		} else {
			if title == "" {
				if te, ok := p.(dialect.TitleExtractor); ok {
					title = te.ExtractTitle(body)
				}
			}
			if english && !u.Deleted {
				if c, ok := p.(dialect.ArticleCleaner); ok {
					body = c.CleanArticle(id, title, body)
				}
			}
		}

		displayID := id
		if f, ok := p.(dialect.IDFormatter); ok {
			displayID = f.FormatArticleID(id)
		}

		base := rowset.Row{
			Part:         st.partLabel(),
			Chapter:      st.chapter,
			Section:      st.section,
			ArticleID:    displayID,
			ArticleTitle: title,
		}

		if u.Deleted {
			r := base
			r.ArticleID += rowset.DeletedSuffix
			r.Text = rowset.DeletedMarker
			rows = append(rows, r)
			continue
		}

		leaves := p.ParseParagraphs(id, body)
		if s, ok := p.(dialect.SignatureSplitter); ok {
			leaves = s.SplitFinalSignature(id, leaves)
		}

		if len(leaves) == 0 {
			r := base
			r.Text = flatten(body, english)
			rows = append(rows, r)
			continue
		}
		for _, lf := range leaves {
			r := base
			r.Paragraph = lf.Paragraph
			r.Item = lf.Item
			r.Subitem = lf.Subitem
			r.Subsubitem = lf.Subsubitem
			r.Text = flatten(lf.Text, english)
			rows = append(rows, r)
		}
	}

	for i := range rows {
		rows[i].ArticleID = rowset.NormalizeArticleID(rows[i].ArticleID)
	}
	rowset.Sort(rows, rowset.SortOptions{ByPart: partByArticle})
	rowset.Backfill(rows, tun.BackfillRadius)
	return dropDegenerate(rows)
}

// preambleRows emits the preamble: one row when the parser keeps it
// whole, one row per recital otherwise, whole again when recital
// splitting finds nothing.
func preambleRows(p dialect.Parser, text string) []rowset.Row {
	if k, ok := p.(dialect.WholePreambleKeeper); ok && k.KeepPreambleWhole() {
		return []rowset.Row{{ArticleID: rowset.PreambleID, Text: text}}
	}
	recitals := dialect.SplitPreamble(text)
	if len(recitals) == 0 {
		return []rowset.Row{{ArticleID: rowset.PreambleID, Text: text}}
	}
	rows := make([]rowset.Row, 0, len(recitals))
	for _, rc := range recitals {
		rows = append(rows, rowset.Row{
			ArticleID:    rowset.PreambleID,
			ArticleTitle: rc.Kind,
			Text:         rc.Text,
		})
	}
	return rows
}

// locateUnit finds the article's position in the full text: body
// substring first, then the dialect's id pattern, then the body's first
// hundred bytes (truncated bodies still start identically).
func locateUnit(p dialect.Parser, u dialect.ArticleUnit, text string) int {
	if pos := strings.Index(text, u.Text); pos >= 0 {
		return pos
	}
	if loc, ok := p.(dialect.Locator); ok {
		if pos := loc.LocateArticle(u.ID, text); pos >= 0 {
			return pos
		}
	}
	if len(u.Text) > 100 {
		n := 100
		for n > 0 && !utf8.RuneStart(u.Text[n]) {
			n--
		}
		if pos := strings.Index(text, u.Text[:n]); pos >= 0 {
			return pos
		}
	}
	return -1
}

// walkMarks replays the heading marks up to pos with the parent-reset
// rule: a new part clears everything below it, a new chapter or
// division clears the section, books and titles replace in place.
func walkMarks(marks []dialect.HeadingMark, pos int) hierState {
	var s hierState
	for _, m := range marks {
		if m.Pos > pos {
			break
		}
		switch m.Type {
		case dialect.HeadingPart:
			s = hierState{part: m.Title}
		case dialect.HeadingBook:
			s.book = m.Title
		case dialect.HeadingTitle:
			s.title = m.Title
		case dialect.HeadingChapter, dialect.HeadingDivision:
			s.chapter = m.Title
			s.section = ""
		case dialect.HeadingSection, dialect.HeadingSubdivision:
			s.section = m.Title
		case dialect.HeadingSubsection:
			if s.section != "" && strings.Contains(m.Title, "Sous-section") {
				s.section = s.section + " / " + m.Title
			} else {
				s.section = m.Title
			}
		}
	}
	return s
}

// partScopedState builds the hierarchy for a unit that carries its own
// part label. Divisions and subdivisions from the marks apply only
// while the positional part matches the unit's, so a division from one
// part never leaks into a section numbered under the next.
func partScopedState(marks []dialect.HeadingMark, pos int, part string) hierState {
	s := hierState{part: part}
	hierPart := ""
	for _, m := range marks {
		if m.Pos > pos {
			break
		}
		switch m.Type {
		case dialect.HeadingPart:
			hierPart = m.Title
			s.chapter = ""
			s.section = ""
		case dialect.HeadingDivision:
			if hierPart == part {
				s.chapter = m.Title
				s.section = ""
			}
		case dialect.HeadingSubdivision:
			if hierPart == part {
				s.section = m.Title
			}
		}
	}
	return s
}

func flatten(text string, english bool) string {
	if english {
		return rowset.FlattenLineBreaks(text)
	}
	return text
}

// dropDegenerate removes rows whose nesting labels are set but whose
// text is empty: marker-only fragments left over from decomposition.
func dropDegenerate(rows []rowset.Row) []rowset.Row {
	kept := rows[:0]
	for _, r := range rows {
		nested := r.Paragraph != "" || r.Item != "" || r.Subitem != "" || r.Subsubitem != ""
		if nested && strings.TrimSpace(r.Text) == "" {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
