package rowset

import "strings"

// Backfill fills empty part and chapter cells from neighbouring rows.
// Article bodies sometimes start before the heading that governs them
// is located, leaving the first rows of a part unlabelled. For each row
// with an empty part, the nearest labelled row within radius is copied:
// forward first (the following rows usually share the part), then
// backward. Preamble and deleted rows are left alone.
func Backfill(rows []Row, radius int) {
	if radius <= 0 {
		return
	}
	for i := range rows {
		if rows[i].ArticleID == PreambleID || strings.Contains(rows[i].ArticleID, "삭제") ||
			strings.Contains(rows[i].ArticleID, DeletedMarker) {
			continue
		}
		if rows[i].Part != "" {
			continue
		}
		filled := false
		for j := i + 1; j < len(rows) && j <= i+radius; j++ {
			if rows[j].Part != "" {
				rows[i].Part = rows[j].Part
				rows[i].Chapter = rows[j].Chapter
				filled = true
				break
			}
		}
		if filled {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-radius; j-- {
			if rows[j].Part != "" {
				rows[i].Part = rows[j].Part
				rows[i].Chapter = rows[j].Chapter
				break
			}
		}
	}
}
