package compare

import (
	"strings"

	"github.com/KrUtHi96/sidebyside/internal/extract"
)

// ambiguousExplanation replaces the diff body for rows whose identifier maps
// to more than one clause on a side; rendering a real diff there would be
// misleading.
const ambiguousExplanation = "This clause identifier appears more than once in at least one document, so a reliable comparison is not possible."

// alignSections pairs the two documents' sections by normalized header.
// Appendix sections are discarded; the order is base-first, then headers
// that only the compared document has, in their own order.
func alignSections(base, compared *extract.Document) []SectionComparison {
	type pair struct {
		base     *extract.Section
		compared *extract.Section
	}
	byHeader := make(map[string]*pair)
	var order []string

	add := func(sec *extract.Section, isBase bool) {
		if strings.HasPrefix(sec.NormalizedHeader, "appendix") {
			return
		}
		p, ok := byHeader[sec.NormalizedHeader]
		if !ok {
			p = &pair{}
			byHeader[sec.NormalizedHeader] = p
			order = append(order, sec.NormalizedHeader)
		}
		if isBase {
			if p.base == nil {
				p.base = sec
			}
		} else if p.compared == nil {
			p.compared = sec
		}
	}
	for _, sec := range base.Sections {
		add(sec, true)
	}
	for _, sec := range compared.Sections {
		add(sec, false)
	}

	out := make([]SectionComparison, 0, len(order))
	for _, h := range order {
		p := byHeader[h]
		sc := SectionComparison{}
		switch {
		case p.base != nil && p.compared != nil:
			sc.Status = SectionMatched
			sc.Header = p.base.Header
		case p.base != nil:
			sc.Status = SectionMissingInCompared
			sc.Header = p.base.Header
		default:
			sc.Status = SectionMissingInBase
			sc.Header = p.compared.Header
		}
		sc.Base = p.base
		sc.Compared = p.compared
		sc.Rows = alignClauses(p.base, p.compared)
		sc.Coverage = mergeCoverage(p.base, p.compared)
		out = append(out, sc)
	}
	return out
}

// alignClauses builds the row list for one aligned section: ids from base in
// order, compared-only ids appended, each id classified and diffed.
func alignClauses(base, compared *extract.Section) []Row {
	baseByID, baseOrder := groupClauses(base)
	compByID, compOrder := groupClauses(compared)

	ids := append([]string{}, baseOrder...)
	inBase := make(map[string]bool, len(baseOrder))
	for _, id := range baseOrder {
		inBase[id] = true
	}
	for _, id := range compOrder {
		if !inBase[id] {
			ids = append(ids, id)
		}
	}

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		b := baseByID[id]
		c := compByID[id]
		rows = append(rows, buildRow(id, b, c))
	}
	return rows
}

func groupClauses(sec *extract.Section) (map[string][]*extract.ClauseNode, []string) {
	byID := make(map[string][]*extract.ClauseNode)
	var order []string
	if sec == nil {
		return byID, order
	}
	for _, c := range sec.Clauses {
		if _, ok := byID[c.ID]; !ok {
			order = append(order, c.ID)
		}
		byID[c.ID] = append(byID[c.ID], c)
	}
	return byID, order
}

func buildRow(id string, baseGroup, compGroup []*extract.ClauseNode) Row {
	row := Row{
		Key:        id,
		InBase:     len(baseGroup) > 0,
		InCompared: len(compGroup) > 0,
	}
	if row.InBase {
		row.Base = baseGroup[0]
	}
	if row.InCompared {
		row.Compared = compGroup[0]
	}
	row.DisplayLabel = displayLabel(row.Base, row.Compared)

	switch {
	case len(baseGroup) > 1 || len(compGroup) > 1:
		row.Status = StatusAmbiguous
		note := []DiffToken{{Value: ambiguousExplanation, Kind: DiffEqual}}
		row.DiffWord = note
		row.DiffSentence = note
		row.DiffParagraph = note

	case row.InBase && row.InCompared:
		baseText := row.Base.TextPreserved
		compText := row.Compared.TextPreserved
		if strings.TrimSpace(baseText) == strings.TrimSpace(compText) {
			row.Status = StatusUnchanged
		} else {
			row.Status = StatusChanged
		}
		row.DiffWord = WordDiff(baseText, compText)
		row.DiffSentence = SentenceDiff(baseText, compText)
		row.DiffParagraph = ParagraphDiff(baseText, compText)

	case row.InBase:
		row.Status = StatusRemoved
		tok := []DiffToken{{Value: row.Base.TextPreserved, Kind: DiffRemoved}}
		row.DiffWord = tok
		row.DiffSentence = tok
		row.DiffParagraph = tok

	default:
		row.Status = StatusAdded
		tok := []DiffToken{{Value: row.Compared.TextPreserved, Kind: DiffAdded}}
		row.DiffWord = tok
		row.DiffSentence = tok
		row.DiffParagraph = tok
	}
	return row
}

func displayLabel(base, compared *extract.ClauseNode) string {
	switch {
	case base != nil && compared != nil:
		if base.RawLabel == compared.RawLabel {
			return base.RawLabel
		}
		return base.RawLabel + " | " + compared.RawLabel
	case base != nil:
		return base.RawLabel
	case compared != nil:
		return compared.RawLabel
	}
	return "Unknown"
}

// mergeCoverage sums the two sides' coverage and recomputes the percentage.
func mergeCoverage(base, compared *extract.Section) *extract.SectionCoverage {
	if base == nil && compared == nil {
		return nil
	}
	var total, mapped int
	if base != nil {
		total += base.Coverage.TotalLines
		mapped += base.Coverage.MappedLines
	}
	if compared != nil {
		total += compared.Coverage.TotalLines
		mapped += compared.Coverage.MappedLines
	}
	cov := extract.NewCoverage(total, mapped)
	return &cov
}
