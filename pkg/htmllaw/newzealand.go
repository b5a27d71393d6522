package htmllaw

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

var (
	nzTocClassPattern = regexp.MustCompile(`(?i)toc`)
	nzParaLabel       = regexp.MustCompile(`^\((\d+)\)`)
	nzAlphaLabel      = regexp.MustCompile(`^\(([a-z]+)\)`)
	nzRomanLabel      = regexp.MustCompile(`^\(([ivxlc]+)\)`)
	nzUpperLabel      = regexp.MustCompile(`^\(([A-Z])\)`)
	nzRomanOnly       = regexp.MustCompile(`^[ivxlc]+$`)
	nzParaPrefix      = regexp.MustCompile(`^\(\d+\)\s*`)
	nzRomanPrefix     = regexp.MustCompile(`^\([ivxlc]+\)\s*`)
	nzUpperPrefix     = regexp.MustCompile(`^\([A-Z]\)\s*`)
)

// Single letters that label items, not roman subitems. i, v and x are
// absent: alone they are read as roman numerals.
var nzItemLetters = map[string]bool{
	"a": true, "b": true, "c": true, "d": true, "e": true, "f": true,
	"g": true, "h": true, "j": true, "k": true, "l": true, "m": true,
	"n": true, "o": true, "p": true, "q": true, "r": true, "s": true,
	"t": true, "u": true, "w": true, "y": true, "z": true,
}

// nzState is the walker state for one legislation.govt.nz page.
type nzState struct {
	rows     []rowset.Row
	part     string
	subpart  string
	schedule string
	heading  string
}

// ParseNewZealand parses a legislation.govt.nz act page. The DOM
// carries the full hierarchy: h2.part and h2.schedule for parts,
// h3.subpart for subparts, plain h3/h4 for crossheadings, h5.prov for
// sections, and nested div.subprov / div.label-para blocks for up to
// four levels of provisions.
func ParseNewZealand(r io.Reader) ([]rowset.Row, error) {
	doc, err := parseDoc(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	st := &nzState{}
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		// Tables of contents and amendment-history notes repeat heading
		// text; drop those subtrees.
		if nzTocClassPattern.MatchString(attrVal(n, "class")) || hasClass(n, "history") {
			return false
		}
		switch {
		case n.Data == "h2" && hasClass(n, "schedule"):
			st.enterSchedule(n)
		case n.Data == "h2" && hasClass(n, "part"):
			st.enterPart(n)
		case n.Data == "h3" && hasClass(n, "subpart"):
			st.subpart = collapseText(n)
			st.heading = ""
		case (n.Data == "h3" || n.Data == "h4") && !hasClass(n, "part"):
			if t := collapseText(n); len(t) > 5 && !leadingDigit(t) {
				st.heading = t
			}
		case n.Data == "h5" && hasClass(n, "prov"):
			st.emitSection(n)
		}
		return true
	})
	return st.rows, nil
}

func leadingDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// labelAndRest splits a heading into its span.label text and the
// remainder.
func labelAndRest(n *html.Node) (label, rest string, ok bool) {
	span := findFirst(n, byTagClass("span", "label"))
	if span == nil {
		return "", "", false
	}
	label = collapseText(span)
	rest = strings.TrimSpace(strings.TrimPrefix(collapseText(n), label))
	return label, rest, true
}

func (st *nzState) enterSchedule(n *html.Node) {
	if num, rest, ok := labelAndRest(n); ok {
		st.schedule = strings.TrimSpace("[Schedule] " + num + " " + rest)
	} else {
		st.schedule = "[Schedule] " + collapseText(n)
	}
	st.part = st.schedule
	st.subpart = ""
	st.heading = ""
}

func (st *nzState) enterPart(n *html.Node) {
	title := collapseText(n)
	if num, rest, ok := labelAndRest(n); ok {
		title = strings.TrimSpace(num + " " + rest)
	}
	if st.schedule != "" {
		st.part = st.schedule + " > " + title
	} else {
		st.part = title
	}
	st.subpart = ""
	st.heading = ""
}

// emitSection parses one h5.prov heading and its sibling div.prov-body.
func (st *nzState) emitSection(h5 *html.Node) {
	num, title, ok := labelAndRest(h5)
	if !ok {
		return
	}
	id := "Section " + num

	chapter := st.subpart
	if chapter == "" {
		chapter = st.heading
	}
	base := rowset.Row{Part: st.part, Chapter: chapter, ArticleID: id, ArticleTitle: title}

	body := nextSiblingElement(h5)
	if body == nil || !(body.Data == "div" && hasClass(body, "prov-body")) {
		st.rows = append(st.rows, base)
		return
	}

	var subprovs []*html.Node
	for _, c := range childElements(body) {
		if c.Data == "div" && hasClass(c, "subprov") {
			subprovs = append(subprovs, c)
		}
	}
	if len(subprovs) == 0 {
		r := base
		r.Text = collapseText(body)
		st.rows = append(st.rows, r)
		return
	}

	for _, sp := range subprovs {
		paraNum := ""
		if p := findFirst(sp, byTagClass("p", "subprov")); p != nil {
			if span := findFirst(p, byTagClass("span", "label")); span != nil {
				if m := nzParaLabel.FindStringSubmatch(collapseText(span)); m != nil {
					paraNum = m[1]
				}
			}
		}

		var paraDiv *html.Node
		for _, c := range childElements(sp) {
			if c.Data == "div" && hasClass(c, "para") {
				paraDiv = c
				break
			}
		}
		if paraDiv == nil {
			r := base
			r.Paragraph = paraNum
			r.Text = nzParaPrefix.ReplaceAllString(collapseText(sp), "")
			st.rows = append(st.rows, r)
			continue
		}
		st.emitPara(base, paraNum, paraDiv)
	}
}

// directLabelParas returns the div.label-para children of n.
func directLabelParas(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range childElements(n) {
		if c.Data == "div" && hasClass(c, "label-para") {
			out = append(out, c)
		}
	}
	return out
}

// introText gathers the p.text children before the first label-para:
// the paragraph's chapeau.
func introText(n *html.Node) string {
	var parts []string
	for _, c := range childElements(n) {
		if c.Data == "div" && hasClass(c, "label-para") {
			break
		}
		if c.Data == "p" && hasClass(c, "text") {
			parts = append(parts, collapseText(c))
		}
	}
	return strings.Join(parts, " ")
}

// emitPara decomposes one div.para: items (a), subitems (i), and
// sub-subitems (A), each with its chapeau row.
func (st *nzState) emitPara(base rowset.Row, paraNum string, paraDiv *html.Node) {
	base.Paragraph = paraNum

	labelParas := directLabelParas(paraDiv)
	if len(labelParas) == 0 {
		var parts []string
		for _, c := range childElements(paraDiv) {
			switch {
			case c.Data == "p" && hasClass(c, "text"):
				parts = append(parts, collapseText(c))
			case c.Data == "div" && hasClass(c, "def-para"):
				// Definition blocks hold their term in inline markup.
				if t := collapseText(c); t != "" {
					parts = append(parts, t)
				}
			}
		}
		text := strings.Join(parts, " ")
		if text == "" {
			text = collapseText(paraDiv)
		}
		if text != "" {
			r := base
			r.Text = text
			st.rows = append(st.rows, r)
		}
		return
	}

	if intro := introText(paraDiv); intro != "" {
		r := base
		r.Text = intro
		st.rows = append(st.rows, r)
	}

	for _, lp := range labelParas {
		letter, inner := labelParaParts(lp, nzAlphaLabel)
		if letter == "" || inner == nil {
			continue
		}
		isRoman := nzRomanOnly.MatchString(letter) && !nzItemLetters[letter]

		subLPs := directLabelParas(inner)
		if len(subLPs) == 0 || isRoman {
			r := base
			r.Item = letter
			r.Text = collapseText(inner)
			st.rows = append(st.rows, r)
			continue
		}

		if intro := introText(inner); intro != "" {
			r := base
			r.Item = letter
			r.Text = intro
			st.rows = append(st.rows, r)
		}
		for _, sub := range subLPs {
			st.emitSubitem(base, letter, sub)
		}
	}
}

// labelParaParts reads a div.label-para's label letter and its inner
// div.para.
func labelParaParts(lp *html.Node, labelPat *regexp.Regexp) (string, *html.Node) {
	h5 := findFirst(lp, byTagClass("h5", "label-para"))
	if h5 == nil {
		return "", nil
	}
	span := findFirst(h5, byTagClass("span", "label"))
	if span == nil {
		return "", nil
	}
	m := labelPat.FindStringSubmatch(collapseText(span))
	if m == nil {
		return "", nil
	}
	return m[1], findFirst(lp, byTagClass("div", "para"))
}

// emitSubitem handles one roman subitem, including nested (A) levels.
func (st *nzState) emitSubitem(base rowset.Row, item string, lp *html.Node) {
	base.Item = item

	subLetter, inner := labelParaParts(lp, nzRomanLabel)
	if subLetter == "" {
		return
	}
	base.Subitem = subLetter

	if inner == nil {
		r := base
		r.Text = nzRomanPrefix.ReplaceAllString(collapseText(lp), "")
		st.rows = append(st.rows, r)
		return
	}

	subsubLPs := directLabelParas(inner)
	if len(subsubLPs) == 0 {
		r := base
		r.Text = nzRomanPrefix.ReplaceAllString(collapseText(inner), "")
		st.rows = append(st.rows, r)
		return
	}

	if intro := introText(inner); intro != "" {
		r := base
		r.Text = intro
		st.rows = append(st.rows, r)
	}
	for _, ssp := range subsubLPs {
		letter, ssInner := labelParaParts(ssp, nzUpperLabel)
		if letter == "" {
			continue
		}
		text := collapseText(ssp)
		if ssInner != nil {
			text = collapseText(ssInner)
		}
		r := base
		r.Subsubitem = "(" + letter + ")"
		r.Text = nzUpperPrefix.ReplaceAllString(text, "")
		st.rows = append(st.rows, r)
	}
}
