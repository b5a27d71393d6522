package dialect

import (
	"strings"
	"testing"
)

func TestKoreaSplitArticles(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())

	text := "특허법\n제1편 총칙\n" +
		"제1조(목적) 이 법은 발명을 보호ㆍ장려하고 그 이용을 도모함으로써 기술의 발전을 촉진하여 산업발전에 이바지함을 목적으로 한다.\n" +
		"제2조(정의) 이 법에서 사용하는 용어의 뜻은 다음과 같다.\n" +
		"제3조 삭제 <2001.2.3.>\n"

	units := p.SplitArticles(text)
	if len(units) != 4 {
		t.Fatalf("got %d units, want 4: %+v", len(units), units)
	}
	if units[0].ID != "전문" {
		t.Errorf("first unit id = %q", units[0].ID)
	}
	if units[1].ID != "제1조" || units[1].Title != "목적" {
		t.Errorf("unit = %+v", units[1])
	}
	if units[2].ID != "제2조" || units[2].Title != "정의" {
		t.Errorf("unit = %+v", units[2])
	}
	if units[3].ID != "제3조" || !units[3].Deleted {
		t.Errorf("unit = %+v, want deleted 제3조", units[3])
	}
}

func TestKoreaSplitSubdividedArticle(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())
	text := "제12조의2(국어 사용) 심판 절차에서는 국어를 사용한다.\n"
	units := p.SplitArticles(text)
	if len(units) != 1 || units[0].ID != "제12조의2" || units[0].Title != "국어 사용" {
		t.Fatalf("units = %+v", units)
	}
}

func TestKoreaParseParagraphs(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())

	text := "① 이 법에서 사용하는 용어의 뜻은 다음과 같다.\n" +
		"1. 발명이란 자연법칙을 이용한 기술적 사상의 창작을 말한다.\n" +
		"가. 물건의 발명\n" +
		"나. 방법의 발명\n" +
		"② 제1항은 다음 각 호의 경우에 적용한다.\n"

	leaves := p.ParseParagraphs("제2조", text)
	want := []Leaf{
		{Paragraph: "1", Text: "이 법에서 사용하는 용어의 뜻은 다음과 같다."},
		{Paragraph: "1", Item: "1", Text: "발명이란 자연법칙을 이용한 기술적 사상의 창작을 말한다."},
		{Paragraph: "1", Item: "1", Subitem: "가", Text: "물건의 발명"},
		{Paragraph: "1", Item: "1", Subitem: "나", Text: "방법의 발명"},
		{Paragraph: "2", Text: "제1항은 다음 각 호의 경우에 적용한다."},
	}
	if len(leaves) != len(want) {
		t.Fatalf("got %d leaves, want %d: %+v", len(leaves), len(want), leaves)
	}
	for i, w := range want {
		if leaves[i] != w {
			t.Errorf("leaves[%d] = %+v, want %+v", i, leaves[i], w)
		}
	}
}

func TestKoreaParseParagraphsWhole(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())
	if leaves := p.ParseParagraphs("제1조", "항이나 호 표지가 없는 조문 본문."); leaves != nil {
		t.Errorf("got %+v, want nil", leaves)
	}
}

func TestKoreaDetectHierarchy(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())

	text := "제1편 총칙\n제1장 통칙\n제1절 심사 <개정 2006.3.3.>\n제1조(목적) 본문.\n"
	marks := p.DetectHierarchy(text)
	if len(marks) != 3 {
		t.Fatalf("got %d marks, want 3: %+v", len(marks), marks)
	}
	wantTypes := []HeadingType{HeadingPart, HeadingChapter, HeadingSection}
	wantTitles := []string{"제1편 총칙", "제1장 통칙", "제1절 심사"}
	for i := range marks {
		if marks[i].Type != wantTypes[i] || marks[i].Title != wantTitles[i] {
			t.Errorf("marks[%d] = %+v", i, marks[i])
		}
	}
}

func TestKoreaRefineArticle(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())

	id, title, body := p.RefineArticle("제1조", "제1조(목적) 이 법은 발명을 보호한다. <개정 2021.4.20.>")
	if id != "제1조" || title != "목적" {
		t.Errorf("id=%q title=%q", id, title)
	}
	if body != "이 법은 발명을 보호한다." {
		t.Errorf("body = %q", body)
	}
}

func TestKoreaLocateArticle(t *testing.T) {
	p := NewKoreaParser(DefaultTunables())
	text := "제1조의2(정의) 일부 내용\n제1조(목적) 본문"
	pos := p.LocateArticle("제1조", text)
	if pos != strings.Index(text, "제1조(목적)") {
		t.Errorf("pos = %d", pos)
	}
}
