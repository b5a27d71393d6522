package dialect

import (
	"strings"
	"testing"
)

func TestUSSplitArticles(t *testing.T) {
	p := NewUSParser(DefaultTunables())

	text := "PART II—PATENTABILITY OF INVENTIONS AND GRANT OF PATENTS\n" +
		"CHAPTER 10—PATENTABILITY OF INVENTIONS\n" +
		"§ 101. Inventions patentable\n" +
		"Whoever invents or discovers any new and useful process, machine, manufacture, or composition of matter, or any new and useful improvement thereof, may obtain a patent therefor, subject to the conditions and requirements of this title.\n" +
		"§ 102. Conditions for patentability; novelty\n" +
		"(a) Novelty; Prior Art.—A person shall be entitled to a patent unless the claimed invention was patented or described in a printed publication before the effective filing date.\n"

	units := p.SplitArticles(text)
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3: %+v", len(units), units)
	}
	if units[0].ID != "전문" {
		t.Errorf("first unit id = %q", units[0].ID)
	}
	if units[1].ID != "101" || units[1].Title != "Inventions patentable" {
		t.Errorf("unit = %+v", units[1])
	}
	if units[2].ID != "102" || units[2].Title != "Conditions for patentability; novelty" {
		t.Errorf("unit = %+v", units[2])
	}
}

func TestUSSplitRepealedSection(t *testing.T) {
	p := NewUSParser(DefaultTunables())

	text := "§ 21. [Repealed]\n(Repealed by Pub. L. 106-113.)\n" +
		"§ 22. Printing of papers filed\n" +
		"The Director may require papers filed in the Patent and Trademark Office to be printed, typewritten, or on an electronic medium.\n"

	units := p.SplitArticles(text)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2: %+v", len(units), units)
	}
	if !units[0].Deleted || units[0].Text != "(deleted)" {
		t.Errorf("unit = %+v, want deleted", units[0])
	}
	if units[1].ID != "22" || units[1].Deleted {
		t.Errorf("unit = %+v", units[1])
	}
}

func TestUSDetectHierarchy(t *testing.T) {
	p := NewUSParser(DefaultTunables())

	text := "PART II—PATENTABILITY OF INVENTIONS AND GRANT OF PATENTS\n" +
		"CHAPTER 10—PATENTABILITY OF INVENTIONS\n§ 101. Inventions patentable\n"
	marks := p.DetectHierarchy(text)
	if len(marks) != 2 {
		t.Fatalf("got %d marks, want 2: %+v", len(marks), marks)
	}
	if marks[0].Type != HeadingPart || !strings.HasPrefix(marks[0].Title, "PART II") {
		t.Errorf("part mark = %+v", marks[0])
	}
	if marks[1].Type != HeadingChapter || !strings.HasPrefix(marks[1].Title, "CHAPTER 10") {
		t.Errorf("chapter mark = %+v", marks[1])
	}
}

func TestUSParseParagraphs(t *testing.T) {
	p := NewUSParser(DefaultTunables())

	text := "(a) In General.—The Director shall collect fees.\n" +
		"(1) The fee for filing shall be set.\n" +
		"(A) For a large entity.\n" +
		"(B) For a small entity.\n" +
		"(2) The fee for issue.\n" +
		"(b) Adjustment.—Fees may be adjusted."

	leaves := p.ParseParagraphs("41", text)
	want := []Leaf{
		{Paragraph: "a", Text: "In General.—The Director shall collect fees."},
		{Paragraph: "a", Item: "1", Text: "The fee for filing shall be set."},
		{Paragraph: "a", Item: "1", Subitem: "A", Text: "For a large entity."},
		{Paragraph: "a", Item: "1", Subitem: "B", Text: "For a small entity."},
		{Paragraph: "a", Item: "2", Text: "The fee for issue."},
		{Paragraph: "b", Text: "Adjustment.—Fees may be adjusted."},
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

func TestUSParseParagraphsDefinition(t *testing.T) {
	p := NewUSParser(DefaultTunables())

	text := "(a) In this title, invention means invention or discovery, " +
		"process means process, art, or method, and Director means the " +
		"Under Secretary of Commerce for Intellectual Property.\n(1) should not split.\n"

	leaves := p.ParseParagraphs("100", text)
	if len(leaves) != 1 {
		t.Fatalf("definition subsection split into %d leaves: %+v", len(leaves), leaves)
	}
	if leaves[0].Paragraph != "a" || !strings.Contains(leaves[0].Text, "(1)") {
		t.Errorf("leaf = %+v", leaves[0])
	}
}

func TestUSLocateArticle(t *testing.T) {
	p := NewUSParser(DefaultTunables())
	text := "§ 101. Inventions patentable\nsee chapter 10\n§ 101. Inventions patentable\nWhoever invents..."
	pos := p.LocateArticle("101", text)
	if pos != strings.LastIndex(text, "§ 101.") {
		t.Errorf("pos = %d", pos)
	}
	if p.LocateArticle("999", text) != -1 {
		t.Error("missing id should report -1")
	}
}
