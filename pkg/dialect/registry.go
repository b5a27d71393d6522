package dialect

import (
	"strings"
	"sync"
)

// MatchFunc reports whether a parser should handle the given path.
type MatchFunc func(path string) bool

type registration struct {
	match  MatchFunc
	parser Parser
}

// Registry maps file paths to parsers through an ordered predicate
// list: the first registration whose predicate matches wins, and the
// fallback parser handles everything else. Registration order therefore
// runs from the most specific path keyword to the most general.
type Registry struct {
	mu       sync.RWMutex
	entries  []registration
	fallback Parser
}

// NewRegistry creates an empty registry with the given fallback parser.
func NewRegistry(fallback Parser) *Registry {
	return &Registry{fallback: fallback}
}

// Register appends a (predicate, parser) pair. Later registrations are
// consulted only when all earlier predicates decline.
func (r *Registry) Register(match MatchFunc, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registration{match: match, parser: p})
}

// ForPath returns the parser for the given file path, falling back to
// the registry's default when no predicate matches.
func (r *Registry) ForPath(path string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.match(path) {
			return e.parser
		}
	}
	return r.fallback
}

// pathContains builds a predicate matching any of the given keywords in
// the folded path.
func pathContains(keywords ...string) MatchFunc {
	return func(path string) bool {
		p := foldPath(path)
		for _, kw := range keywords {
			if strings.Contains(p, kw) {
				return true
			}
		}
		return false
	}
}

// NewDefaultRegistry wires the built-in dialects, most specific first,
// with the generic English parser as fallback. The France parser is not
// registered: LEGI XML trees are batch-parsed through their own entry
// point, not routed by path.
func NewDefaultRegistry(tun Tunables) *Registry {
	r := NewRegistry(NewEnglishParser(tun))
	r.Register(pathContains("korea"), NewKoreaParser(tun))
	r.Register(pathContains("hongkong", "hong kong", "cap "), NewHongKongParser(tun))
	r.Register(pathContains("usa"), NewUSParser(tun))
	r.Register(func(path string) bool {
		return DetectLanguage(path) == LangChinese
	}, NewTaiwanParser(tun))
	return r
}
