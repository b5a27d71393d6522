// Package legixml parses French LEGI article directories into the row
// table. LEGI ships one XML file per article version; the hierarchy
// lives in each file's CONTEXTE block and the body in BLOC_TEXTUEL, so
// assembly here is per-file rather than positional.
package legixml

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/lawtab/pkg/rowset"
)

// headingKind classifies one TITRE_TM heading by its French leading
// word.
type headingKind string

const (
	kindPart       headingKind = "part"
	kindBook       headingKind = "book"
	kindTitle      headingKind = "title"
	kindChapter    headingKind = "chapter"
	kindSection    headingKind = "section"
	kindSubsection headingKind = "subsection"
	kindUnknown    headingKind = "unknown"
)

var (
	partiePattern     = regexp.MustCompile(`^(première|deuxième|troisième|quatrième|cinquième)\s+partie`)
	livrePattern      = regexp.MustCompile(`^livre\s+([ivxlcdm]+)`)
	titrePattern      = regexp.MustCompile(`^titre\s+([ivxlcdm]+)`)
	chapitrePattern   = regexp.MustCompile(`^chapitre\s+([ivxlcdm]+)`)
	sectionPattern    = regexp.MustCompile(`^section\s+(\d+)`)
	subsectionPattern = regexp.MustCompile(`^sous-section\s+(\d+)`)

	wsPattern = regexp.MustCompile(`\s+`)

	degreeItemPattern = regexp.MustCompile(`^\s*(\d+)°\s+(.+)`)
	romanItemPattern  = regexp.MustCompile(`^\s*(I{1,3}|IV|V|VI{0,3}|IX|X)[\s.\-]+(.+)`)
	alphaItemPattern  = regexp.MustCompile(`^\s*([a-z])\)\s+(.+)`)

	articleNumPattern = regexp.MustCompile(`^([LR])(\*?)(\d+)-(\d+)`)
)

var partieOrdinals = map[string]string{
	"première":  "1",
	"deuxième":  "2",
	"troisième": "3",
	"quatrième": "4",
	"cinquième": "5",
}

// classifyHeading maps a TITRE_TM heading to its structural kind and
// number.
func classifyHeading(title string) (headingKind, string) {
	lower := strings.ToLower(title)

	if strings.Contains(lower, "partie législative") || strings.Contains(lower, "partie réglementaire") {
		return kindPart, ""
	}
	if m := partiePattern.FindStringSubmatch(lower); m != nil {
		return kindPart, partieOrdinals[m[1]]
	}
	if m := livrePattern.FindStringSubmatch(lower); m != nil {
		return kindBook, strings.ToUpper(m[1])
	}
	if m := titrePattern.FindStringSubmatch(lower); m != nil {
		return kindTitle, strings.ToUpper(m[1])
	}
	if m := chapitrePattern.FindStringSubmatch(lower); m != nil {
		return kindChapter, strings.ToUpper(m[1])
	}
	if m := sectionPattern.FindStringSubmatch(lower); m != nil {
		return kindSection, m[1]
	}
	if m := subsectionPattern.FindStringSubmatch(lower); m != nil {
		return kindSubsection, m[1]
	}
	return kindUnknown, ""
}

// heading is one entry of an article's CONTEXTE chain.
type heading struct {
	kind  headingKind
	title string
}

// article is one in-force LEGI article with its hierarchy columns
// resolved and its body split into source paragraphs.
type article struct {
	num     string
	part    string
	chapter string
	section string
	paras   []string
}

// Parse reads a LEGI directory (the LEGITEXT root holding
// article/LEGI/ARTI) and returns the structured rows for every article
// in force. filter restricts articles by number prefix: "L" for the
// legislative part, "R" for the regulatory part, "" for both.
// Malformed article files are skipped, not fatal.
func Parse(legiDir, filter string) ([]rowset.Row, error) {
	articleDir := filepath.Join(legiDir, "article", "LEGI", "ARTI")
	if _, err := os.Stat(articleDir); err != nil {
		return nil, fmt.Errorf("no LEGI article directory under %s: %w", legiDir, err)
	}

	var articles []article
	err := filepath.WalkDir(articleDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		a, ok := parseArticleFile(path, filter)
		if ok {
			articles = append(articles, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", articleDir, err)
	}

	sortArticles(articles)

	var rows []rowset.Row
	for _, a := range articles {
		for _, item := range expandItems(a.paras) {
			rows = append(rows, rowset.Row{
				Part:      a.part,
				Chapter:   a.chapter,
				Section:   a.section,
				ArticleID: a.num,
				Paragraph: item.roman,
				Item:      item.degree,
				Subitem:   item.alpha,
				Text:      item.text,
			})
		}
	}
	return rows, nil
}

// parseArticleFile reads one ARTI XML file. The second return is false
// for out-of-force versions, filtered numbers and anything malformed.
func parseArticleFile(path, filter string) (article, bool) {
	f, err := os.Open(path)
	if err != nil {
		return article{}, false
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return article{}, false
	}

	if innerText(doc, "//ETAT") != "VIGUEUR" {
		return article{}, false
	}
	num := innerText(doc, "//NUM")
	if num == "" {
		return article{}, false
	}
	if filter != "" && !strings.HasPrefix(num, filter) {
		return article{}, false
	}

	content := xmlquery.FindOne(doc, "//BLOC_TEXTUEL/CONTENU")
	if content == nil {
		return article{}, false
	}

	a := article{num: num, paras: contentParagraphs(content)}
	a.part, a.chapter, a.section = resolveHierarchy(contextHeadings(doc))
	return a, true
}

func innerText(doc *xmlquery.Node, expr string) string {
	n := xmlquery.FindOne(doc, expr)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.InnerText())
}

// contextHeadings flattens the nested TM chain of the CONTEXTE block in
// document order, outermost first.
func contextHeadings(doc *xmlquery.Node) []heading {
	var chain []heading
	var walk func(tm *xmlquery.Node)
	walk = func(tm *xmlquery.Node) {
		if titre := xmlquery.FindOne(tm, "TITRE_TM"); titre != nil {
			title := strings.TrimSpace(titre.InnerText())
			if title != "" {
				kind, _ := classifyHeading(title)
				chain = append(chain, heading{kind: kind, title: title})
			}
		}
		for _, nested := range xmlquery.Find(tm, "TM") {
			walk(nested)
		}
	}
	for _, tm := range xmlquery.Find(doc, "//CONTEXTE/TEXTE/TM") {
		walk(tm)
	}
	return chain
}

// resolveHierarchy maps the heading chain onto the three hierarchy
// columns. Parts and books compose the part column; titres prepend to
// the section column, sections and sous-sections append to it.
func resolveHierarchy(chain []heading) (part, chapter, section string) {
	var partParts []string
	for _, h := range chain {
		switch h.kind {
		case kindPart, kindBook:
			partParts = append(partParts, h.title)
		case kindTitle:
			if section != "" {
				section = h.title + " / " + section
			} else {
				section = h.title
			}
		case kindChapter:
			chapter = h.title
		case kindSection, kindSubsection:
			if section != "" {
				section += " / " + h.title
			} else {
				section = h.title
			}
		}
	}
	return strings.Join(partParts, " / "), chapter, section
}

// contentParagraphs extracts the body as one string per <p> element,
// whitespace-collapsed. A CONTENU without <p> children yields its whole
// text as a single paragraph.
func contentParagraphs(content *xmlquery.Node) []string {
	var paras []string
	for _, p := range xmlquery.Find(content, ".//p") {
		if text := collapse(p.InnerText()); text != "" {
			paras = append(paras, text)
		}
	}
	if len(paras) == 0 {
		if text := collapse(content.InnerText()); text != "" {
			paras = append(paras, text)
		}
	}
	return paras
}

func collapse(s string) string {
	return strings.TrimSpace(wsPattern.ReplaceAllString(s, " "))
}

// itemRow is one body paragraph with its resolved item labels.
type itemRow struct {
	roman  string
	degree string
	alpha  string
	text   string
}

// findItem matches the item marker opening a paragraph: a numbered
// degree item (1°), a roman paragraph (I.) or an alpha subitem (a)).
func findItem(para string) (kind, label, rest string) {
	if m := degreeItemPattern.FindStringSubmatch(para); m != nil {
		return "degree", m[1] + "°", m[2]
	}
	if m := romanItemPattern.FindStringSubmatch(para); m != nil {
		return "roman", m[1], m[2]
	}
	if m := alphaItemPattern.FindStringSubmatch(para); m != nil {
		return "alpha", m[1] + ")", m[2]
	}
	return "none", "", para
}

// expandItems labels each paragraph, carrying the enclosing roman
// paragraph and degree item across subordinate entries. A new roman
// paragraph resets the carried degree.
func expandItems(paras []string) []itemRow {
	var rows []itemRow
	var curRoman, curDegree string
	for _, para := range paras {
		kind, label, rest := findItem(para)
		switch kind {
		case "roman":
			curRoman = label
			curDegree = ""
			rows = append(rows, itemRow{roman: curRoman, text: rest})
		case "degree":
			curDegree = label
			rows = append(rows, itemRow{roman: curRoman, degree: curDegree, text: rest})
		case "alpha":
			rows = append(rows, itemRow{roman: curRoman, degree: curDegree, alpha: label, text: rest})
		default:
			rows = append(rows, itemRow{text: para})
		}
	}
	return rows
}

// articleKey orders article numbers L611-1, L611-2, ... R811-1: the L
// part before the R part, starred numbers after the unstarred ones of
// the same series, anything unparsable after everything else in input
// order.
type articleKey struct {
	prefix int
	first  int
	star   int
	second int
}

func numKey(num string) articleKey {
	m := articleNumPattern.FindStringSubmatch(num)
	if m == nil {
		return articleKey{prefix: 3}
	}
	k := articleKey{prefix: 1}
	if m[1] == "R" {
		k.prefix = 2
	}
	if m[2] == "*" {
		k.star = 1
	}
	k.first, _ = strconv.Atoi(m[3])
	k.second, _ = strconv.Atoi(m[4])
	return k
}

func sortArticles(articles []article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := numKey(articles[i].num), numKey(articles[j].num)
		if a.prefix != b.prefix {
			return a.prefix < b.prefix
		}
		if a.first != b.first {
			return a.first < b.first
		}
		if a.star != b.star {
			return a.star < b.star
		}
		return a.second < b.second
	})
}
