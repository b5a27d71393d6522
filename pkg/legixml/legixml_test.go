package legixml

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyHeading(t *testing.T) {
	tests := []struct {
		title string
		kind  headingKind
		num   string
	}{
		{"Partie législative", kindPart, ""},
		{"Première partie : Dispositions communes", kindPart, "1"},
		{"Livre VI : La propriété industrielle", kindBook, "VI"},
		{"Titre Ier : Dispositions générales", kindTitle, "I"},
		{"Chapitre II : Organisation administrative", kindChapter, "II"},
		{"Section 1 : Généralités", kindSection, "1"},
		{"Sous-section 2 : Procédure", kindSubsection, "2"},
		{"Annexes", kindUnknown, ""},
	}
	for _, tt := range tests {
		kind, num := classifyHeading(tt.title)
		if kind != tt.kind || num != tt.num {
			t.Errorf("classifyHeading(%q) = (%q, %q), want (%q, %q)",
				tt.title, kind, num, tt.kind, tt.num)
		}
	}
}

func TestFindItem(t *testing.T) {
	tests := []struct {
		para  string
		kind  string
		label string
		rest  string
	}{
		{"1° Les brevets d'invention ;", "degree", "1°", "Les brevets d'invention ;"},
		{"I. - L'autorité délivre les titres.", "roman", "I", "L'autorité délivre les titres."},
		{"IV. - Les recours sont suspensifs.", "roman", "IV", "Les recours sont suspensifs."},
		{"a) Les certificats d'utilité ;", "alpha", "a)", "Les certificats d'utilité ;"},
		{"Il est institué un registre national.", "none", "", "Il est institué un registre national."},
		{"Les dispositions du présent livre s'appliquent.", "none", "", "Les dispositions du présent livre s'appliquent."},
	}
	for _, tt := range tests {
		kind, label, rest := findItem(tt.para)
		if kind != tt.kind || label != tt.label || rest != tt.rest {
			t.Errorf("findItem(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.para, kind, label, rest, tt.kind, tt.label, tt.rest)
		}
	}
}

func TestExpandItems(t *testing.T) {
	paras := []string{
		"I. - Intro.",
		"1° First ;",
		"a) Nested ;",
		"2° Second.",
		"II. - Next.",
		"Closing paragraph.",
	}
	rows := expandItems(paras)
	want := []itemRow{
		{roman: "I", text: "Intro."},
		{roman: "I", degree: "1°", text: "First ;"},
		{roman: "I", degree: "1°", alpha: "a)", text: "Nested ;"},
		{roman: "I", degree: "2°", text: "Second."},
		{roman: "II", text: "Next."},
		{text: "Closing paragraph."},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestSortArticles(t *testing.T) {
	articles := []article{
		{num: "R611-1"},
		{num: "Annexe"},
		{num: "L611-10"},
		{num: "L*611-2"},
		{num: "L611-2"},
		{num: "L611-1"},
	}
	sortArticles(articles)

	want := []string{"L611-1", "L611-2", "L611-10", "L*611-2", "R611-1", "Annexe"}
	for i, w := range want {
		if articles[i].num != w {
			t.Errorf("articles[%d].num = %q, want %q", i, articles[i].num, w)
		}
	}
}

func writeArticle(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	root := t.TempDir()
	artiDir := filepath.Join(root, "article", "LEGI", "ARTI", "00", "06")
	if err := os.MkdirAll(artiDir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeArticle(t, artiDir, "LEGIARTI000006279370.xml", `<?xml version="1.0" encoding="UTF-8"?>
<ARTICLE>
  <META>
    <META_SPEC><META_ARTICLE>
      <NUM>L611-1</NUM>
      <ETAT>VIGUEUR</ETAT>
    </META_ARTICLE></META_SPEC>
  </META>
  <CONTEXTE><TEXTE>
    <TM><TITRE_TM>Partie législative</TITRE_TM>
      <TM><TITRE_TM>Livre VI : La propriété industrielle</TITRE_TM>
        <TM><TITRE_TM>Titre Ier : Dispositions générales</TITRE_TM>
          <TM><TITRE_TM>Chapitre Ier : Champ d'application</TITRE_TM>
            <TM><TITRE_TM>Section 1 : Généralités</TITRE_TM></TM>
          </TM>
        </TM>
      </TM>
    </TM>
  </TEXTE></CONTEXTE>
  <BLOC_TEXTUEL><CONTENU>
    <p>I. - L'autorité administrative délivre les titres de propriété industrielle.</p>
    <p>1° Les brevets d'invention ;</p>
    <p>a) Les certificats d'utilité ;</p>
    <p>II. - Les recours sont portés devant la cour.</p>
  </CONTENU></BLOC_TEXTUEL>
</ARTICLE>`)

	writeArticle(t, artiDir, "LEGIARTI000006279999.xml", `<?xml version="1.0" encoding="UTF-8"?>
<ARTICLE>
  <META><META_SPEC><META_ARTICLE>
    <NUM>R611-1</NUM>
    <ETAT>VIGUEUR</ETAT>
  </META_ARTICLE></META_SPEC></META>
  <BLOC_TEXTUEL><CONTENU>Les demandes sont présentées au directeur.</CONTENU></BLOC_TEXTUEL>
</ARTICLE>`)

	// Out of force, must be skipped.
	writeArticle(t, artiDir, "LEGIARTI000006280000.xml", `<?xml version="1.0" encoding="UTF-8"?>
<ARTICLE>
  <META><META_SPEC><META_ARTICLE>
    <NUM>L611-9</NUM>
    <ETAT>ABROGE</ETAT>
  </META_ARTICLE></META_SPEC></META>
  <BLOC_TEXTUEL><CONTENU>Texte abrogé.</CONTENU></BLOC_TEXTUEL>
</ARTICLE>`)

	t.Run("legislative filter", func(t *testing.T) {
		rows, err := Parse(root, "L")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 4 {
			t.Fatalf("got %d rows, want 4: %+v", len(rows), rows)
		}

		r := rows[0]
		if r.ArticleID != "L611-1" {
			t.Errorf("article id = %q", r.ArticleID)
		}
		if r.Part != "Partie législative / Livre VI : La propriété industrielle" {
			t.Errorf("part = %q", r.Part)
		}
		if r.Chapter != "Chapitre Ier : Champ d'application" {
			t.Errorf("chapter = %q", r.Chapter)
		}
		if r.Section != "Titre Ier : Dispositions générales / Section 1 : Généralités" {
			t.Errorf("section = %q", r.Section)
		}
		if r.Paragraph != "I" || r.Item != "" {
			t.Errorf("labels = %+v", r)
		}

		if rows[1].Paragraph != "I" || rows[1].Item != "1°" {
			t.Errorf("rows[1] = %+v", rows[1])
		}
		if rows[2].Item != "1°" || rows[2].Subitem != "a)" {
			t.Errorf("rows[2] = %+v", rows[2])
		}
		if rows[3].Paragraph != "II" || rows[3].Item != "" {
			t.Errorf("rows[3] = %+v", rows[3])
		}
	})

	t.Run("both parts sorted", func(t *testing.T) {
		rows, err := Parse(root, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 5 {
			t.Fatalf("got %d rows, want 5: %+v", len(rows), rows)
		}
		last := rows[4]
		if last.ArticleID != "R611-1" {
			t.Errorf("last article = %q, want R611-1", last.ArticleID)
		}
		if last.Text != "Les demandes sont présentées au directeur." {
			t.Errorf("text = %q", last.Text)
		}
		if last.Paragraph != "" || last.Item != "" {
			t.Errorf("unlabeled body grew labels: %+v", last)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := Parse(t.TempDir(), ""); err == nil {
			t.Error("expected error for missing article directory")
		}
	})
}
