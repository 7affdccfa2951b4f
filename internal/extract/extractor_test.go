package extract

import (
	"reflect"
	"strings"
	"testing"
)

// pageOfLines builds one page where every line is a single fragment.
func pageOfLines(num int, texts []string) PageFragments {
	page := PageFragments{Number: num, Height: 842}
	y := 800.0
	for _, t := range texts {
		page.Fragments = append(page.Fragments, frag(t, 72, y, float64(len(t))*5, 10))
		y -= 11
	}
	return page
}

func TestFromPages_EmptyDocument(t *testing.T) {
	doc := FromPages(nil, SideBase, DefaultOptions(), nil)
	if len(doc.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(doc.Sections))
	}
	if len(doc.Issues) != 0 {
		t.Errorf("expected no issues, got %d", len(doc.Issues))
	}
}

func TestFromPages_FooterPhraseRemovedAcrossPages(t *testing.T) {
	mkPage := func(num int, clause string) PageFragments {
		page := PageFragments{Number: num, Height: 842}
		page.Fragments = append(page.Fragments, frag(clause, 72, 800, 200, 10))
		page.Fragments = append(page.Fragments, frag("IFRS Foundation  Page 3 of 42", 72, 50, 150, 8))
		return page
	}
	doc := FromPages([]PageFragments{
		mkPage(1, "1. First clause body."),
		mkPage(2, "2. Second clause body."),
	}, SideBase, DefaultOptions(), nil)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected one virtual section, got %d", len(doc.Sections))
	}
	for _, c := range doc.Sections[0].Clauses {
		if strings.Contains(c.TextPreserved, "IFRS Foundation") {
			t.Errorf("footer text leaked into clause %s: %q", c.ID, c.TextPreserved)
		}
	}
	if len(doc.Issues) != 0 {
		t.Errorf("footer lines must not raise issues, got %#v", doc.Issues)
	}
}

func TestFromPages_AppendixExcluded(t *testing.T) {
	texts := []string{
		"Metrics and targets",
		"1. An entity shall disclose its metrics.",
		"2. Targets shall be quantitative.",
		"3. Baselines shall be stated.",
		"Appendix A Defined terms",
	}
	for i := 0; i < 50; i++ {
		texts = append(texts, "defined term entry")
	}
	doc := FromPages([]PageFragments{pageOfLines(1, texts)}, SideBase, DefaultOptions(), nil)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Header != "Metrics and targets" {
		t.Errorf("unexpected header %q", sec.Header)
	}
	if len(sec.Clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(sec.Clauses))
	}
	for _, c := range sec.Clauses {
		if strings.Contains(c.TextPreserved, "defined term") || strings.Contains(c.TextPreserved, "Appendix") {
			t.Errorf("appendix content leaked into clause %s", c.ID)
		}
	}
}

func TestFromPages_SectionHeadersSplitDocument(t *testing.T) {
	doc := FromPages([]PageFragments{pageOfLines(1, []string{
		"Objective",
		"1. The objective of this Standard is disclosure.",
		"Scope",
		"2. This Standard applies to all entities.",
	})}, SideBase, DefaultOptions(), nil)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Header != "Objective" || doc.Sections[1].Header != "Scope" {
		t.Errorf("unexpected headers %q, %q", doc.Sections[0].Header, doc.Sections[1].Header)
	}
}

func TestFromPages_Deterministic(t *testing.T) {
	pages := []PageFragments{pageOfLines(1, []string{
		"Governance",
		"1. First clause.",
		"(a) with a marker.",
		"stray prose line",
	})}
	a := FromPages(pages, SideBase, DefaultOptions(), nil)
	b := FromPages(pages, SideBase, DefaultOptions(), nil)
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over the same input must be structurally identical")
	}
}

func TestFromPages_SkippedPageDoesNotAffectOthers(t *testing.T) {
	doc := FromPages([]PageFragments{
		pageOfLines(1, []string{"1. Page one clause."}),
		pageOfLines(3, []string{"2. Page three clause."}),
	}, SideBase, DefaultOptions(), nil)

	sec := doc.Sections[0]
	if len(sec.Clauses) != 2 {
		t.Fatalf("expected both surviving pages parsed, got %d clauses", len(sec.Clauses))
	}
	if sec.Clauses[1].PageStart != 3 {
		t.Errorf("page numbering must be preserved, got %d", sec.Clauses[1].PageStart)
	}
}
