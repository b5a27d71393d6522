// Package dialect implements per-jurisdiction parsing of patent
// legislation text: article segmentation, part/chapter/section heading
// detection and paragraph/item decomposition. Each jurisdiction is a
// Parser selected through a path-predicate registry; the generic
// English parser doubles as the fallback.
package dialect

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Language is the working language of a document.
type Language string

const (
	LangEnglish Language = "english"
	LangKorean  Language = "korean"
	LangChinese Language = "chinese"
	LangFrench  Language = "french"
)

// HeadingType classifies a structural heading mark.
type HeadingType string

const (
	HeadingPart        HeadingType = "part"
	HeadingBook        HeadingType = "book"
	HeadingTitle       HeadingType = "title"
	HeadingChapter     HeadingType = "chapter"
	HeadingSection     HeadingType = "section"
	HeadingSubsection  HeadingType = "subsection"
	HeadingDivision    HeadingType = "division"
	HeadingSubdivision HeadingType = "subdivision"
)

// HeadingMark is a structural heading found in the source text, located
// by byte offset so articles can be matched against it.
type HeadingMark struct {
	Type  HeadingType
	Title string
	Pos   int
}

// sortMarks orders heading marks by position, keeping detection order
// for equal offsets.
func sortMarks(marks []HeadingMark) {
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].Pos < marks[j].Pos })
}

// ArticleUnit is one segmented article: its identifier, optional title,
// body text, and for statutes that attach it at segmentation time, the
// part the article belongs to.
type ArticleUnit struct {
	ID      string
	Title   string
	Text    string
	Part    string
	Deleted bool
}

// Leaf is one decomposed unit of an article body: paragraph, item,
// subitem and subsubitem labels plus the text at that level. Empty
// labels mean the level is absent.
type Leaf struct {
	Paragraph  string
	Item       string
	Subitem    string
	Subsubitem string
	Text       string
}

// Parser is the capability surface a jurisdiction must provide.
type Parser interface {
	// Name identifies the dialect (epc, korea, hongkong, usa, taiwan).
	Name() string
	// Language reports the working language of documents this parser
	// handles.
	Language() Language
	// SplitArticles segments the full document text into ordered
	// article units, including the preamble sentinel when present.
	SplitArticles(text string) []ArticleUnit
	// DetectHierarchy finds part/chapter/section headings, sorted by
	// position.
	DetectHierarchy(text string) []HeadingMark
	// ParseParagraphs decomposes one article body into leaves. A nil
	// result means the body stays whole.
	ParseParagraphs(articleID, text string) []Leaf
}

// IDFormatter is implemented by parsers whose article ids need a
// display transformation before normalization.
type IDFormatter interface {
	FormatArticleID(id string) string
}

// ArticleCleaner strips duplicated headings, margin references and
// amendment history from an article body.
type ArticleCleaner interface {
	CleanArticle(id, title, text string) string
}

// TitleExtractor pulls the article title out of a body when the
// segmenter could not capture it.
type TitleExtractor interface {
	ExtractTitle(text string) string
}

// ArticleRefiner rewrites id, title and body together. Used by the
// Korean parser, where the heading line carries both id and title.
type ArticleRefiner interface {
	RefineArticle(id, text string) (string, string, string)
}

// SignatureSplitter separates a treaty's closing signature block into
// rows of their own.
type SignatureSplitter interface {
	SplitFinalSignature(id string, leaves []Leaf) []Leaf
}

// Locator finds the position of an article heading in the full text
// when substring search fails. Returns -1 when not found.
type Locator interface {
	LocateArticle(id, text string) int
}

// WholePreambleKeeper marks parsers whose preamble is emitted as a
// single row instead of being split into recitals.
type WholePreambleKeeper interface {
	KeepPreambleWhole() bool
}

// Tunables are the tuned constants of the segmentation heuristics. They
// are defaults calibrated on the source corpus, not invariants.
type Tunables struct {
	// MinContentLen is the minimum article body length; shorter chunks
	// are table-of-contents or cross-reference noise. Deleted articles
	// are exempt.
	MinContentLen int `yaml:"min_content_len"`
	// DefinitionMeans is the number of occurrences of "means" above
	// which a paragraph is treated as a definition clause and kept
	// atomic.
	DefinitionMeans int `yaml:"definition_means"`
	// BackfillRadius is how many neighbouring rows are searched when
	// filling empty part/chapter cells.
	BackfillRadius int `yaml:"backfill_radius"`
}

// DefaultTunables returns the corpus-calibrated defaults.
func DefaultTunables() Tunables {
	return Tunables{
		MinContentLen:   80,
		DefinitionMeans: 3,
		BackfillRadius:  4,
	}
}

// LoadTunables reads a YAML tunables file. Missing fields keep their
// defaults.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tunables: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse tunables: %w", err)
	}
	return t, nil
}
