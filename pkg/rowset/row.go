// Package rowset defines the tabular output model for structured
// legislation: one row per minimal text unit, addressed by a nine-level
// hierarchy (part, chapter, section, article, paragraph, item, subitem,
// subsubitem) plus the source text itself.
package rowset

// PreambleID is the sentinel article number assigned to preamble rows.
// The value follows the column convention of the downstream comparison
// sheets, which label the preamble 전문.
const PreambleID = "전문"

// DeletedSuffix is appended to the article number of deleted or
// repealed articles.
const DeletedSuffix = " (deleted)"

// DeletedMarker is the body text used for deleted articles.
const DeletedMarker = "(deleted)"

// Row is one unit of structured legislation text. Empty string means
// the level is absent, not unknown.
type Row struct {
	Part         string
	Chapter      string
	Section      string
	ArticleID    string
	ArticleTitle string
	Paragraph    string
	Item         string
	Subitem      string
	Subsubitem   string
	Text         string
}

// Columns is the canonical column order for exported tables. The header
// names match the Korean comparison-sheet convention used downstream.
var Columns = []string{"편", "장", "절", "조문번호", "조문제목", "항", "호", "목", "세목", "원문"}

// Values returns the row's cells in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Part, r.Chapter, r.Section,
		r.ArticleID, r.ArticleTitle,
		r.Paragraph, r.Item, r.Subitem, r.Subsubitem,
		r.Text,
	}
}

// FromValues builds a Row from cells in Columns order. Short slices
// fill the remaining fields with empty strings.
func FromValues(vals []string) Row {
	get := func(i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}
	return Row{
		Part: get(0), Chapter: get(1), Section: get(2),
		ArticleID: get(3), ArticleTitle: get(4),
		Paragraph: get(5), Item: get(6), Subitem: get(7), Subsubitem: get(8),
		Text: get(9),
	}
}
