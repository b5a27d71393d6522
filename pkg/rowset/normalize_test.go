package rowset

import "testing"

func TestNormalizeArticleID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"article prefix", "Article 52", "52"},
		{"article with letter", "Article 4a", "4a"},
		{"section prefix", "Section 31ZC", "31ZC"},
		{"rule prefix", "Rule 19", "19"},
		{"silcrow prefix", "§ 101", "101"},
		{"silcrow no space", "§101", "101"},
		{"already bare", "52", "52"},
		{"korean id kept", "제12조의2", "제12조의2"},
		{"chinese id kept", "第5條", "第5條"},
		{"preamble kept", PreambleID, PreambleID},
		{"empty kept", "", ""},
		{"deleted suffix kept", "Article 61 (deleted)", "61 (deleted)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArticleID(tt.id); got != tt.want {
				t.Errorf("NormalizeArticleID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeArticleIDIdempotent(t *testing.T) {
	ids := []string{"Article 52", "Section 5", "§ 101", "31ZC", PreambleID, "제1조"}
	for _, id := range ids {
		once := NormalizeArticleID(id)
		twice := NormalizeArticleID(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q then %q", id, once, twice)
		}
	}
}

func TestFlattenLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single break to space", "European patents\nshall be granted", "European patents shall be granted"},
		{"double break kept", "First paragraph.\n\nSecond paragraph.", "First paragraph.\n\nSecond paragraph."},
		{"multi space collapsed", "too   many    spaces", "too many spaces"},
		{"trimmed", "  padded  \n", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenLineBreaks(tt.in); got != tt.want {
				t.Errorf("FlattenLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	in := "text\x00with\x1Fcontrol\x7Fchars\tand\ntab"
	want := "textwithcontrolchars\tand\ntab"
	if got := CleanCell(in); got != want {
		t.Errorf("CleanCell = %q, want %q", got, want)
	}
}
