package assemble

import "context"

// Translator is the downstream contract for translating row text into
// the comparison language. The assembly stage produces rows in source
// order; translation happens in a separate service and is out of scope
// here.
type Translator interface {
	// Translate renders text from the source language into the target
	// language. Labels such as (1) or (a) must survive untouched.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Matcher is the downstream contract for cross-jurisdiction article
// matching. Implementations score similarity between two row texts;
// the row table carries no scores itself.
type Matcher interface {
	Score(ctx context.Context, a, b string) (float64, error)
}
