package extract

import (
	"regexp"
	"strings"
)

// Canonical section headers, in their standard order.
var canonicalHeaders = []string{
	"Objective",
	"Scope",
	"Core content",
	"Governance",
	"Strategy",
	"Risk management",
	"Metrics and targets",
}

var canonicalHeaderSet = func() map[string]string {
	m := make(map[string]string, len(canonicalHeaders))
	for _, h := range canonicalHeaders {
		m[normalizeLine(h)] = h
	}
	return m
}()

func isCanonicalHeader(norm string) bool {
	_, ok := canonicalHeaderSet[norm]
	return ok
}

var appendixRe = regexp.MustCompile(`(?i)^appendix(?:es)?\b`)

// UnsectionedHeader names the virtual section used when a document carries
// none of the canonical headers.
const UnsectionedHeader = "Unsectioned"

// sectionSpan is a header plus the lines it owns, before clause parsing.
type sectionSpan struct {
	header string
	lines  []PageLine
}

// cutAppendix drops the appendix header line and everything after it.
// The cut is accepted only when it follows the last section boundary, or,
// with no boundaries present, when at least three root clauses precede it.
func cutAppendix(lines []PageLine, boundaries []int) []PageLine {
	lastBoundary := -1
	if len(boundaries) > 0 {
		lastBoundary = boundaries[len(boundaries)-1]
	}
	rootsSeen := 0
	for i, ln := range lines {
		t := strings.TrimSpace(ln.Text)
		if isRootClauseStart(t) {
			rootsSeen++
		}
		if !isAppendixHeading(t) {
			continue
		}
		if lastBoundary >= 0 {
			if i > lastBoundary {
				return lines[:i]
			}
			continue
		}
		if rootsSeen >= 3 {
			return lines[:i]
		}
	}
	return lines
}

func isAppendixHeading(t string) bool {
	if !appendixRe.MatchString(t) {
		return false
	}
	if len(t) > 90 || len(strings.Fields(t)) > 10 {
		return false
	}
	if strings.HasSuffix(t, ".") || strings.HasSuffix(t, "!") || strings.HasSuffix(t, "?") {
		return false
	}
	return true
}

// findBoundaries returns the indices of qualifying section header lines,
// in line order. A header qualifies only when a root-clause-looking line
// follows within the next 20 lines; a bare header with no clauses under it
// is treated as body text.
func findBoundaries(lines []PageLine) []int {
	seen := make(map[string]bool)
	var out []int
	for i, ln := range lines {
		norm := normalizeLine(ln.Text)
		header, ok := canonicalHeaderSet[norm]
		if !ok || seen[header] {
			continue
		}
		if !rootClauseWithin(lines, i+1, 20) {
			continue
		}
		seen[header] = true
		out = append(out, i)
	}
	return out
}

func rootClauseWithin(lines []PageLine, start, window int) bool {
	end := start + window
	if end > len(lines) {
		end = len(lines)
	}
	for _, ln := range lines[start:end] {
		if isRootClauseStart(strings.TrimSpace(ln.Text)) {
			return true
		}
	}
	return false
}

// splitSections carves the line stream into section spans. With no
// boundaries the whole document becomes one virtual section.
func splitSections(lines []PageLine) []sectionSpan {
	boundaries := findBoundaries(lines)
	lines = cutAppendix(lines, boundaries)

	if len(boundaries) == 0 {
		if len(lines) == 0 {
			return nil
		}
		return []sectionSpan{{header: UnsectionedHeader, lines: lines}}
	}

	var spans []sectionSpan
	for bi, start := range boundaries {
		if start >= len(lines) {
			break
		}
		end := len(lines)
		if bi+1 < len(boundaries) && boundaries[bi+1] < end {
			end = boundaries[bi+1]
		}
		header := canonicalHeaderSet[normalizeLine(lines[start].Text)]
		spans = append(spans, sectionSpan{header: header, lines: lines[start+1 : end]})
	}
	return spans
}
