package compare

import (
	"strings"

	"github.com/KrUtHi96/sidebyside/internal/extract"
)

const (
	snippetMaxLen = 180
	// fallbackAnchorY approximates the top of the body area when an added
	// row has no compared clause anywhere near it.
	fallbackAnchorY = 780
)

// Compare aligns two extracted documents and assembles the full comparison
// result. It is pure: identical inputs produce identical output.
func Compare(base, compared *extract.Document) *Result {
	sections := alignSections(base, compared)

	// Sections contributing nothing on either side are dropped entirely.
	kept := sections[:0:0]
	for _, sc := range sections {
		if sectionIsEmpty(sc.Base) && sectionIsEmpty(sc.Compared) {
			continue
		}
		kept = append(kept, sc)
	}

	res := &Result{
		Sections:       kept,
		BaseIssues:     base.Issues,
		ComparedIssues: compared.Issues,
	}

	for _, sc := range kept {
		res.SectionPageMap = append(res.SectionPageMap, SectionPages{
			Header:   sc.Header,
			Base:     sectionPageRange(sc.Base),
			Compared: sectionPageRange(sc.Compared),
		})
		res.SectionAnchors = append(res.SectionAnchors, sectionAnchors(sc)...)

		for _, row := range sc.Rows {
			flat := row
			flat.Key = sc.Header + "::" + row.Key
			res.Rows = append(res.Rows, flat)
		}

		if res.SelectedSectionDefault == "" && sc.Status == SectionMatched {
			res.SelectedSectionDefault = sc.Header
		}
	}
	if res.SelectedSectionDefault == "" && len(kept) > 0 {
		res.SelectedSectionDefault = kept[0].Header
	}
	return res
}

func sectionIsEmpty(sec *extract.Section) bool {
	if sec == nil {
		return true
	}
	if len(sec.Clauses) > 0 {
		return false
	}
	return sec.Coverage.TotalLines == 0
}

func sectionPageRange(sec *extract.Section) *PageRange {
	if sec == nil || len(sec.Clauses) == 0 {
		return nil
	}
	pr := &PageRange{PageStart: sec.Clauses[0].PageStart, PageEnd: sec.Clauses[0].PageEnd}
	for _, c := range sec.Clauses[1:] {
		if c.PageStart < pr.PageStart {
			pr.PageStart = c.PageStart
		}
		if c.PageEnd > pr.PageEnd {
			pr.PageEnd = c.PageEnd
		}
	}
	return pr
}

func sectionAnchors(sc SectionComparison) []Anchor {
	anchors := make([]Anchor, 0, len(sc.Rows))
	for i, row := range sc.Rows {
		a := Anchor{
			SectionHeader: sc.Header,
			AnchorID:      sc.Header + "::" + row.Key,
			Label:         row.DisplayLabel,
			Status:        row.Status,
		}
		if row.Base != nil {
			a.Base = &AnchorPoint{Page: row.Base.AnchorPage, Y: row.Base.AnchorY}
		}
		if row.Compared != nil {
			a.Compared = &AnchorPoint{Page: row.Compared.AnchorPage, Y: row.Compared.AnchorY}
		} else if row.Status == StatusAdded {
			a.Compared = nearestComparedAnchor(sc, i)
		}
		switch row.Status {
		case StatusChanged:
			a.RemovedSnippet = snippet(row.DiffWord, DiffRemoved)
			a.AddedSnippet = snippet(row.DiffWord, DiffAdded)
		case StatusRemoved:
			a.RemovedSnippet = snippet(row.DiffWord, DiffRemoved)
		case StatusAdded:
			a.AddedSnippet = snippet(row.DiffWord, DiffAdded)
		}
		anchors = append(anchors, a)
	}
	return anchors
}

// nearestComparedAnchor scans outward from row i for the closest row that
// has a compared clause, falling back to the section's compared page range.
func nearestComparedAnchor(sc SectionComparison, i int) *AnchorPoint {
	for dist := 1; dist < len(sc.Rows); dist++ {
		for _, j := range []int{i - dist, i + dist} {
			if j < 0 || j >= len(sc.Rows) {
				continue
			}
			if c := sc.Rows[j].Compared; c != nil {
				return &AnchorPoint{Page: c.AnchorPage, Y: c.AnchorY}
			}
		}
	}
	if pr := sectionPageRange(sc.Compared); pr != nil {
		return &AnchorPoint{Page: pr.PageStart, Y: fallbackAnchorY}
	}
	return nil
}

// snippet concatenates the values of tokens of one kind, collapses
// whitespace and truncates for display.
func snippet(tokens []DiffToken, kind DiffKind) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind == kind {
			b.WriteString(t.Value)
		}
	}
	s := strings.Join(strings.Fields(b.String()), " ")
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) > snippetMaxLen {
		s = string(runes[:snippetMaxLen]) + "…"
	}
	return s
}
