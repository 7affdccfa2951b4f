package compare

import (
	"strings"
	"testing"

	"github.com/KrUtHi96/sidebyside/internal/extract"
)

// docFromLines runs the real extraction pipeline over single-fragment lines.
func docFromLines(side extract.Side, texts ...string) *extract.Document {
	page := extract.PageFragments{Number: 1, Height: 842}
	y := 800.0
	for _, t := range texts {
		page.Fragments = append(page.Fragments, extract.PositionedFragment{
			Text: t, X: 72, Y: y, Width: float64(len(t)) * 5, Height: 10,
		})
		y -= 11
	}
	return extract.FromPages([]extract.PageFragments{page}, side, extract.DefaultOptions(), nil)
}

func rowByKey(rows []Row, key string) *Row {
	for i := range rows {
		if rows[i].Key == key {
			return &rows[i]
		}
	}
	return nil
}

func TestCompare_StandardFourChangeScenario(t *testing.T) {
	base := docFromLines(extract.SideBase,
		"1. Base framework applies to consumer credit products.",
		"2(a) Institutions must retain records for five years.",
		"3. Notices must be delivered in writing.",
	)
	compared := docFromLines(extract.SideCompared,
		"1. Base framework applies to consumer lending products.",
		"2(a) Institutions must retain records for seven years.",
		"4. Digital notices are permitted with consent.",
	)

	res := Compare(base, compared)
	if len(res.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(res.Sections))
	}
	rows := res.Sections[0].Rows
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := map[string]RowStatus{
		"1":    StatusChanged,
		"2(a)": StatusChanged,
		"3":    StatusRemoved,
		"4":    StatusAdded,
	}
	for key, status := range want {
		row := rowByKey(rows, key)
		if row == nil {
			t.Errorf("missing row %q", key)
			continue
		}
		if row.Status != status {
			t.Errorf("row %q: expected %s, got %s", key, status, row.Status)
		}
	}

	changed := rowByKey(rows, "1")
	if !strings.Contains(joined(changed.DiffWord, DiffRemoved), "credit") {
		t.Errorf("row 1 should remove %q: %#v", "credit", changed.DiffWord)
	}
	if !strings.Contains(joined(changed.DiffWord, DiffAdded), "lending") {
		t.Errorf("row 1 should add %q: %#v", "lending", changed.DiffWord)
	}
}

func TestCompare_DuplicateRootIsAmbiguous(t *testing.T) {
	base := docFromLines(extract.SideBase, "1. First", "1. Duplicate", "2) Shared")
	compared := docFromLines(extract.SideCompared, "1. Updated", "2) Shared")

	res := Compare(base, compared)
	rows := res.Sections[0].Rows

	row1 := rowByKey(rows, "1")
	if row1 == nil || row1.Status != StatusAmbiguous {
		t.Fatalf("row 1 must be ambiguous, got %#v", row1)
	}
	if len(row1.DiffWord) != 1 || row1.DiffWord[0].Value != ambiguousExplanation {
		t.Errorf("ambiguous rows carry the fixed explanation, got %#v", row1.DiffWord)
	}
	if row1.Base == nil || row1.Base.TextPreserved != "1. First" {
		t.Errorf("ambiguous row points at the first occurrence, got %#v", row1.Base)
	}

	row2 := rowByKey(rows, "2")
	if row2 == nil || row2.Status != StatusUnchanged {
		t.Fatalf("row 2 must be unchanged, got %#v", row2)
	}
}

func TestCompare_UnchangedRequiresTrimEquality(t *testing.T) {
	base := docFromLines(extract.SideBase, "1. Shared clause text.")
	compared := docFromLines(extract.SideCompared, "1. Shared clause text.")

	res := Compare(base, compared)
	row := rowByKey(res.Sections[0].Rows, "1")
	if row.Status != StatusUnchanged {
		t.Fatalf("expected unchanged, got %s", row.Status)
	}
	if strings.TrimSpace(row.Base.TextPreserved) != strings.TrimSpace(row.Compared.TextPreserved) {
		t.Error("unchanged rows must be trim-equal")
	}
}

func TestAlignSections_OrderIsBaseThenComparedOnly(t *testing.T) {
	base := docFromLines(extract.SideBase,
		"Objective",
		"1. The objective is set out here.",
		"Scope",
		"2. The scope is set out here.",
	)
	compared := docFromLines(extract.SideCompared,
		"Scope",
		"2. The scope is set out here.",
		"Governance",
		"3. The governance body is named.",
	)

	res := Compare(base, compared)
	var headers []string
	var statuses []SectionStatus
	for _, sc := range res.Sections {
		headers = append(headers, sc.Header)
		statuses = append(statuses, sc.Status)
	}

	wantHeaders := []string{"Objective", "Scope", "Governance"}
	wantStatuses := []SectionStatus{SectionMissingInCompared, SectionMatched, SectionMissingInBase}
	for i := range wantHeaders {
		if headers[i] != wantHeaders[i] {
			t.Errorf("section %d: expected %q, got %q", i, wantHeaders[i], headers[i])
		}
		if statuses[i] != wantStatuses[i] {
			t.Errorf("section %d: expected %s, got %s", i, wantStatuses[i], statuses[i])
		}
	}
}

func TestDisplayLabel_Variants(t *testing.T) {
	a := &extract.ClauseNode{RawLabel: "25"}
	b := &extract.ClauseNode{RawLabel: "25."}

	if got := displayLabel(a, a); got != "25" {
		t.Errorf("matching labels: got %q", got)
	}
	if got := displayLabel(a, b); got != "25 | 25." {
		t.Errorf("differing labels: got %q", got)
	}
	if got := displayLabel(a, nil); got != "25" {
		t.Errorf("base only: got %q", got)
	}
	if got := displayLabel(nil, nil); got != "Unknown" {
		t.Errorf("both absent: got %q", got)
	}
}

func TestMergeCoverage_SumsBothSides(t *testing.T) {
	base := &extract.Section{Coverage: extract.NewCoverage(10, 9)}
	compared := &extract.Section{Coverage: extract.NewCoverage(10, 6)}
	cov := mergeCoverage(base, compared)
	if cov.TotalLines != 20 || cov.MappedLines != 15 || cov.UnmatchedLines != 5 {
		t.Errorf("unexpected merged coverage: %+v", cov)
	}
	if cov.Percent != 75 {
		t.Errorf("expected 75%%, got %v", cov.Percent)
	}
}
