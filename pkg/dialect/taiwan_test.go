package dialect

import "testing"

func TestTaiwanSplitArticles(t *testing.T) {
	p := NewTaiwanParser(DefaultTunables())

	text := "專利法\n第一編 總則\n" +
		"第一條 為鼓勵、保護、利用發明、新型及設計之創作,以促進產業發展,特制定本法。\n" +
		"第二條 （刪除）\n" +
		"第二條之一 本法主管機關為經濟部。\n"

	units := p.SplitArticles(text)
	if len(units) != 4 {
		t.Fatalf("got %d units, want 4: %+v", len(units), units)
	}
	if units[0].ID != "전문" {
		t.Errorf("first unit id = %q", units[0].ID)
	}
	if units[1].ID != "第一條" {
		t.Errorf("unit id = %q", units[1].ID)
	}
	if units[2].ID != "第二條" || !units[2].Deleted {
		t.Errorf("unit = %+v, want deleted 第二條", units[2])
	}
	if units[3].ID != "第二條之一" {
		t.Errorf("unit id = %q", units[3].ID)
	}
}

func TestTaiwanDetectHierarchy(t *testing.T) {
	p := NewTaiwanParser(DefaultTunables())

	text := "第一編 總則\n第一章 專利要件\n第一節 發明專利\n第一條 本文。\n"
	marks := p.DetectHierarchy(text)
	if len(marks) != 3 {
		t.Fatalf("got %d marks, want 3: %+v", len(marks), marks)
	}
	wantTypes := []HeadingType{HeadingPart, HeadingChapter, HeadingSection}
	for i := range marks {
		if marks[i].Type != wantTypes[i] {
			t.Errorf("marks[%d].Type = %q, want %q", i, marks[i].Type, wantTypes[i])
		}
	}
}

func TestTaiwanParseParagraphsStaysWhole(t *testing.T) {
	p := NewTaiwanParser(DefaultTunables())
	if leaves := p.ParseParagraphs("第一條", "本文內容。"); leaves != nil {
		t.Errorf("got %+v, want nil", leaves)
	}
}
