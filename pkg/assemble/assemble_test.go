package assemble

import (
	"strings"
	"testing"

	"github.com/coolbeans/lawtab/pkg/dialect"
	"github.com/coolbeans/lawtab/pkg/rowset"
)

func TestStructureEnglish(t *testing.T) {
	p := dialect.NewEnglishParser(dialect.DefaultTunables())

	text := "\nPART I\nGENERAL AND INSTITUTIONAL PROVISIONS\n" +
		"Article 1\nEstablishment\n" +
		"A system of law, common to the Contracting States, for the grant of patents for invention, is established by this Convention.\n" +
		"Article 2\nEffect\n" +
		"Patents granted under this Convention shall have in each Contracting State the effect of a national patent granted by that State.\n"

	rows := Structure(p, text, dialect.DefaultTunables())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(rows), rows)
	}
	if rows[0].ArticleID != rowset.PreambleID {
		t.Errorf("first row id = %q, want preamble", rows[0].ArticleID)
	}

	r := rows[1]
	if r.ArticleID != "1" || r.ArticleTitle != "Establishment" {
		t.Errorf("row = %+v", r)
	}
	if r.Part != "PART I GENERAL AND INSTITUTIONAL PROVISIONS" {
		t.Errorf("part = %q", r.Part)
	}
	if !strings.HasPrefix(r.Text, "A system of law") || strings.Contains(r.Text, "Article 1") {
		t.Errorf("body not cleaned: %q", r.Text)
	}
	if rows[2].ArticleID != "2" || rows[2].ArticleTitle != "Effect" {
		t.Errorf("row = %+v", rows[2])
	}
}

func TestStructureKorean(t *testing.T) {
	p := dialect.NewKoreaParser(dialect.DefaultTunables())

	text := "제1장 총칙\n제1조(목적) 이 법은 발명을 보호한다.\n제2조 삭제 <2001.2.3.>\n"

	rows := Structure(p, text, dialect.DefaultTunables())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(rows), rows)
	}
	if rows[0].ArticleID != rowset.PreambleID {
		t.Errorf("first row = %+v", rows[0])
	}

	r := rows[1]
	if r.ArticleID != "제1조" || r.ArticleTitle != "목적" || r.Chapter != "제1장 총칙" {
		t.Errorf("row = %+v", r)
	}
	if r.Text != "이 법은 발명을 보호한다." {
		t.Errorf("text = %q", r.Text)
	}

	del := rows[2]
	if del.ArticleID != "제2조"+rowset.DeletedSuffix || del.Text != rowset.DeletedMarker {
		t.Errorf("deleted row = %+v", del)
	}
}

func TestStructureHongKongParts(t *testing.T) {
	p := dialect.NewHongKongParser(dialect.DefaultTunables())

	text := "\nPart 1\nPreliminary\nDivision 1—Introductory\n" +
		"1.\tShort title\n" +
		"This Ordinance may be cited as the Patents Ordinance and shall come into operation on a day to be appointed.\n" +
		"Part 2\nPatentability\n" +
		"2.\tPatentable inventions\n" +
		"(1)\tAn invention is patentable if it is new and involves an inventive step over the prior art base.\n"

	rows := Structure(p, text, dialect.DefaultTunables())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	r := rows[0]
	if r.ArticleID != "1" || r.Part != "Part 1: Preliminary" || r.Chapter != "Division 1—Introductory" {
		t.Errorf("row = %+v", r)
	}

	r = rows[1]
	if r.ArticleID != "2" || r.Part != "Part 2: Patentability" {
		t.Errorf("row = %+v", r)
	}
	// The division belongs to Part 1 and must not leak across the
	// boundary.
	if r.Chapter != "" {
		t.Errorf("division leaked into part 2: %q", r.Chapter)
	}
	if r.Paragraph != "1" {
		t.Errorf("paragraph = %q", r.Paragraph)
	}
}

func TestStructureUnlocatableInheritsHierarchy(t *testing.T) {
	p := dialect.NewEnglishParser(dialect.DefaultTunables())

	text := "\nPART I\nGENERAL AND INSTITUTIONAL PROVISIONS\n" +
		"Article 158\nTransitional provision\n" +
		"The provisions of this Part shall remain applicable to applications pending on the date of entry into force of the revision.\n" +
		"Article 164\nImplementing Regulations\n" +
		"The Implementing Regulations and the Protocols shall be integral parts of this Convention as revised from time to time.\n" +
		"Articles 159, 160, 161, 162 and 163 were deleted by the revision of 29 November 2000.\n"

	rows := Structure(p, text, dialect.DefaultTunables())

	var deleted *rowset.Row
	for i := range rows {
		if rows[i].ArticleID == "159"+rowset.DeletedSuffix {
			deleted = &rows[i]
			break
		}
	}
	if deleted == nil {
		t.Fatalf("synthesized deleted row missing: %+v", rows)
	}
	if deleted.Part != "PART I GENERAL AND INSTITUTIONAL PROVISIONS" {
		t.Errorf("deleted row part = %q", deleted.Part)
	}
	if deleted.Text != rowset.DeletedMarker {
		t.Errorf("deleted row text = %q", deleted.Text)
	}

	// Numeric order: 158 before the synthesized block before 164.
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ArticleID)
	}
	want := []string{
		"158", "159 (deleted)", "160 (deleted)", "161 (deleted)",
		"162 (deleted)", "163 (deleted)", "164",
	}
	if len(ids) != len(want)+1 { // plus preamble
		t.Fatalf("ids = %v", ids)
	}
	for i, w := range want {
		if ids[i+1] != w {
			t.Errorf("ids[%d] = %q, want %q", i+1, ids[i+1], w)
		}
	}
}

func TestPreambleRows(t *testing.T) {
	text := "The Governments of the Contracting States,\n\n" +
		"CONSIDERING that co-operation should be strengthened;\n\n" +
		"HAVE AGREED AS FOLLOWS:"

	t.Run("recital split", func(t *testing.T) {
		rows := preambleRows(dialect.NewUSParser(dialect.DefaultTunables()), text)
		if len(rows) != 3 {
			t.Fatalf("got %d rows, want 3: %+v", len(rows), rows)
		}
		if rows[1].ArticleTitle != "CONSIDERING" || rows[2].ArticleTitle != "AGREED" {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("kept whole", func(t *testing.T) {
		rows := preambleRows(dialect.NewEnglishParser(dialect.DefaultTunables()), text)
		if len(rows) != 1 {
			t.Fatalf("got %d rows, want 1: %+v", len(rows), rows)
		}
		if rows[0].Text != text {
			t.Errorf("preamble rewritten: %q", rows[0].Text)
		}
	})
}

func TestDropDegenerate(t *testing.T) {
	rows := []rowset.Row{
		{ArticleID: "1", Text: "body"},
		{ArticleID: "2", Paragraph: "1", Text: "  "},
		{ArticleID: "3", Text: ""},
	}
	got := dropDegenerate(rows)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(got), got)
	}
	if got[0].ArticleID != "1" || got[1].ArticleID != "3" {
		t.Errorf("rows = %+v", got)
	}
}
