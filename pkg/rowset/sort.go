package rowset

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SortOptions controls the composite ordering of a row table.
type SortOptions struct {
	// ByPart orders rows by the numeric part label before the article
	// number. Used for statutes whose section numbering restarts or
	// continues across parts (Hong Kong style); schedules sort last.
	ByPart bool
}

var (
	partNumPattern    = regexp.MustCompile(`Part (\d+)`)
	articleNumPattern = regexp.MustCompile(`^(\d+)([A-Z]*)`)
	paraNumPattern    = regexp.MustCompile(`\(?(\d+)([a-zA-Z]?)\)?`)
	itemPattern       = regexp.MustCompile(`\(?([a-z])\)?`)
	subitemPattern    = regexp.MustCompile(`(?i)\(?([ivxlcdm]+)\)?`)
	subsubPattern     = regexp.MustCompile(`\(?([A-Z])\)?`)
)

// romanValues holds the symbol values for RomanToInt.
var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// RomanToInt converts a lowercase roman numeral to its integer value
// using subtractive notation (iv=4, ix=9). Unknown characters count as
// zero, so malformed input degrades instead of failing.
func RomanToInt(s string) int {
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v := romanValues[s[i]]
		if v < prev {
			total -= v
		} else {
			total += v
		}
		prev = v
	}
	return total
}

// sortKey is the composite ordering key of a row. Fields compare in
// declaration order.
type sortKey struct {
	group      int // -1 preamble, 0 numbered article, 1 everything else
	partNum    int
	artNum     int
	artLetter  string
	paraNum    int
	paraLetter string
	itemLetter string
	subitemNum int
	subitem    string
	subsub     string
	fallbackID string
}

// emptyParaOrder places rows without a paragraph label (signatures,
// closing formulas) after all numbered paragraphs of the same article.
const emptyParaOrder = 999999

func keyFor(r Row, opts SortOptions) sortKey {
	if r.ArticleID == PreambleID {
		return sortKey{group: -1}
	}

	k := sortKey{}

	if opts.ByPart && r.Part != "" {
		if strings.HasPrefix(r.Part, "Schedule") || strings.HasPrefix(r.Part, "부칙") {
			k.partNum = 9999
		} else if m := partNumPattern.FindStringSubmatch(r.Part); m != nil {
			k.partNum, _ = strconv.Atoi(m[1])
		}
	}

	m := articleNumPattern.FindStringSubmatch(strings.TrimSpace(r.ArticleID))
	if m == nil {
		k.group = 1
		k.fallbackID = r.ArticleID
		return k
	}
	k.artNum, _ = strconv.Atoi(m[1])
	k.artLetter = m[2]

	k.paraNum = emptyParaOrder
	if para := strings.TrimSpace(r.Paragraph); para != "" {
		if pm := paraNumPattern.FindStringSubmatch(para); pm != nil {
			k.paraNum, _ = strconv.Atoi(pm[1])
			k.paraLetter = pm[2]
		}
	}

	if r.Item != "" {
		if im := itemPattern.FindStringSubmatch(r.Item); im != nil {
			k.itemLetter = im[1]
		}
	}

	if r.Subitem != "" {
		if sm := subitemPattern.FindStringSubmatch(r.Subitem); sm != nil {
			k.subitem = strings.ToLower(sm[1])
			k.subitemNum = RomanToInt(k.subitem)
		}
	}

	if r.Subsubitem != "" {
		if sm := subsubPattern.FindStringSubmatch(r.Subsubitem); sm != nil {
			k.subsub = sm[1]
		}
	}

	return k
}

func (a sortKey) less(b sortKey) bool {
	switch {
	case a.group != b.group:
		return a.group < b.group
	case a.partNum != b.partNum:
		return a.partNum < b.partNum
	case a.artNum != b.artNum:
		return a.artNum < b.artNum
	case a.artLetter != b.artLetter:
		return a.artLetter < b.artLetter
	case a.paraNum != b.paraNum:
		return a.paraNum < b.paraNum
	case a.paraLetter != b.paraLetter:
		return a.paraLetter < b.paraLetter
	case a.itemLetter != b.itemLetter:
		return a.itemLetter < b.itemLetter
	case a.subitemNum != b.subitemNum:
		return a.subitemNum < b.subitemNum
	case a.subitem != b.subitem:
		return a.subitem < b.subitem
	case a.subsub != b.subsub:
		return a.subsub < b.subsub
	}
	return a.fallbackID < b.fallbackID
}

// Sort orders rows in natural reading order: preamble first, then
// articles by number and letter suffix, then paragraph, item, subitem
// (roman value), subsubitem. The sort is stable so rows with equal keys
// keep their emission order.
func Sort(rows []Row, opts SortOptions) {
	keys := make([]sortKey, len(rows))
	for i, r := range rows {
		keys[i] = keyFor(r, opts)
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]].less(keys[idx[j]])
	})
	out := make([]Row, len(rows))
	for i, j := range idx {
		out[i] = rows[j]
	}
	copy(rows, out)
}
