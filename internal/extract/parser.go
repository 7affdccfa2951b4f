package extract

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const rootNumPat = `\d+(?:\.\d+)*(?:\([A-Za-z0-9]+\))*`

var (
	rootWithTextRe    = regexp.MustCompile(`^(` + rootNumPat + `)[.)]?\s+(\S.*)$`)
	rootLabelOnlyRe   = regexp.MustCompile(`^(` + rootNumPat + `)[.)]?$`)
	markerWithTextRe  = regexp.MustCompile(`^\(([A-Za-z0-9]+)\)\s+(\S.*)$`)
	markerLabelOnlyRe = regexp.MustCompile(`^\(([A-Za-z0-9]+)\)$`)
	romanTokenRe      = regexp.MustCompile(`^[ivxlcdm]+$`)
	numericTokenRe    = regexp.MustCompile(`^\d+$`)
	rootLabelSplitRe  = regexp.MustCompile(`^(\d+(?:\.\d+)*)((?:\([a-z0-9]+\))*)$`)
	markerGroupRe     = regexp.MustCompile(`\(([a-z0-9]+)\)`)
)

func isRootClauseStart(t string) bool {
	return rootWithTextRe.MatchString(t) || rootLabelOnlyRe.MatchString(t)
}

func isClauseStart(t string) bool {
	return isRootClauseStart(t) || markerWithTextRe.MatchString(t) || markerLabelOnlyRe.MatchString(t)
}

// clauseParser carries the per-section parse state: the active parent chain
// (root, level-2, level-3), the clause under construction, and the buffer of
// lines that never attached to a label.
type clauseParser struct {
	opts    Options
	side    Side
	spacing map[int]float64

	clauses []*ClauseNode
	seen    map[string]int
	issues  []Issue

	rootID   string
	level2ID string
	level3ID string

	cur      *ClauseNode
	curBaseX float64
	curLast  PageLine

	unmatched []PageLine
	mapped    int
	synthN    int
}

// parseSection builds the clause list for one section span.
func parseSection(span sectionSpan, side Side, opts Options, spacing map[int]float64) (*Section, []Issue) {
	p := &clauseParser{
		opts:    opts,
		side:    side,
		spacing: spacing,
		seen:    make(map[string]int),
	}

	for _, ln := range span.lines {
		p.consume(ln)
	}
	p.finishClause()
	p.flushUnmatched()

	sec := &Section{
		Header:           span.header,
		NormalizedHeader: normalizeLine(span.header),
		Clauses:          p.clauses,
		Coverage:         NewCoverage(len(span.lines), p.mapped),
	}
	for _, c := range sec.Clauses {
		if c.Synthetic || c.Level != 1 {
			continue
		}
		if sec.StartParagraph == "" {
			sec.StartParagraph = c.ID
		}
		sec.EndParagraph = c.ID
	}
	return sec, p.issues
}

func (p *clauseParser) consume(ln PageLine) {
	t := strings.TrimSpace(ln.Text)

	if m := rootWithTextRe.FindStringSubmatch(t); m != nil {
		p.startRootClause(m[1], t, ln)
		return
	}
	if m := rootLabelOnlyRe.FindStringSubmatch(t); m != nil {
		p.startRootClause(m[1], t, ln)
		return
	}
	if p.rootID != "" {
		if m := markerWithTextRe.FindStringSubmatch(t); m != nil {
			p.startMarkerClause(m[1], t, ln)
			return
		}
		if m := markerLabelOnlyRe.FindStringSubmatch(t); m != nil {
			p.startMarkerClause(m[1], t, ln)
			return
		}
	}

	if p.cur != nil {
		p.appendLine(ln)
		return
	}
	p.unmatched = append(p.unmatched, ln)
}

func (p *clauseParser) startRootClause(rawLabel, lineText string, ln PageLine) {
	norm := normalizeLabel(rawLabel)
	m := rootLabelSplitRe.FindStringSubmatch(norm)
	if m == nil {
		// The label survived the line regex but not normalization; divert
		// the whole line to the unmatched buffer.
		p.issue(Issue{
			Side:          p.side,
			Key:           norm,
			OriginalLabel: rawLabel,
			Text:          lineText,
			PageStart:     ln.Page,
			PageEnd:       ln.Page,
			Flags:         []Flag{FlagMalformed},
		})
		p.unmatched = append(p.unmatched, ln)
		return
	}

	rootPart := m[1]
	tokens := markerGroupRe.FindAllStringSubmatch(m[2], -1)

	id := rootPart
	for _, tok := range tokens {
		id += "(" + tok[1] + ")"
	}

	p.rootID = rootPart
	p.level2ID = ""
	p.level3ID = ""
	if len(tokens) >= 1 {
		p.level2ID = rootPart + "(" + tokens[0][1] + ")"
	}
	if len(tokens) >= 2 {
		p.level3ID = p.level2ID + "(" + tokens[1][1] + ")"
	}

	level := 1 + len(tokens)
	if level > 4 {
		level = 4
	}
	parent := ""
	if len(tokens) > 0 {
		candidate := strings.TrimSuffix(id, "("+tokens[len(tokens)-1][1]+")")
		if p.seen[candidate] > 0 {
			parent = candidate
		}
	}
	p.openClause(id, rawLabel, parent, level, lineText, ln)
}

func (p *clauseParser) startMarkerClause(token, lineText string, ln PageLine) {
	tok := strings.ToLower(token)

	var level int
	var parent string
	switch {
	case numericTokenRe.MatchString(tok) && p.level3ID != "":
		level, parent = 4, p.level3ID
	case romanTokenRe.MatchString(tok) && p.level2ID != "":
		level, parent = 3, p.level2ID
	default:
		level, parent = 2, p.rootID
	}
	id := parent + "(" + tok + ")"
	switch level {
	case 2:
		p.level2ID = id
		p.level3ID = ""
	case 3:
		p.level3ID = id
	}

	parentID := ""
	if p.seen[parent] > 0 {
		parentID = parent
	}
	p.openClause(id, "("+token+")", parentID, level, lineText, ln)
}

func (p *clauseParser) openClause(id, rawLabel, parentID string, level int, lineText string, ln PageLine) {
	p.finishClause()
	p.flushUnmatched()

	p.seen[id]++
	if p.seen[id] >= 2 {
		p.issue(Issue{
			Side:          p.side,
			Key:           id,
			OriginalLabel: rawLabel,
			Text:          lineText,
			PageStart:     ln.Page,
			PageEnd:       ln.Page,
			Flags:         []Flag{FlagDuplicate},
		})
	}

	p.cur = &ClauseNode{
		ID:              id,
		RawLabel:        rawLabel,
		ParentID:        parentID,
		Level:           level,
		TextPreserved:   lineText,
		PageStart:       ln.Page,
		PageEnd:         ln.Page,
		AnchorPage:      ln.Page,
		AnchorY:         ln.Y,
		SourceLineCount: 1,
	}
	p.curBaseX = ln.X
	p.curLast = ln
	p.mapped++
}

// appendLine attaches a continuation line to the clause under construction,
// deciding between a soft join and a paragraph break from page, label and
// spatial evidence.
func (p *clauseParser) appendLine(ln PageLine) {
	prev := p.curLast
	next := ln
	nextText := strings.TrimSpace(next.Text)
	prevText := strings.TrimSpace(prev.Text)

	newline := false
	switch {
	case prev.Page != next.Page:
		newline = true
	case rootLabelOnlyRe.MatchString(prevText) || markerLabelOnlyRe.MatchString(prevText):
		newline = true
	case rootWithTextRe.MatchString(prevText) || markerWithTextRe.MatchString(prevText):
		newline = false
	case prev.Y-next.Y > p.opts.ParagraphGap*p.lineSpacing(next.Page):
		newline = true
	case math.Abs(next.X-prev.X) >= 1.5*p.opts.IndentStep:
		newline = true
	}

	if newline {
		indent := int(math.Round((next.X - p.curBaseX) / p.opts.IndentStep))
		if indent < 0 {
			indent = 0
		}
		if indent > 24 {
			indent = 24
		}
		p.cur.TextPreserved += "\n" + strings.Repeat(" ", indent) + nextText
	} else if r, ok := trailingSoftHyphen(p.cur.TextPreserved); ok {
		p.cur.TextPreserved = r + nextText
	} else {
		p.cur.TextPreserved += " " + nextText
	}

	if next.Page > p.cur.PageEnd {
		p.cur.PageEnd = next.Page
	}
	p.cur.SourceLineCount++
	p.curLast = next
	p.mapped++
}

// lineSpacing is the median Δy between consecutive same-page lines, 11 when
// the page offered no pairs.
func (p *clauseParser) lineSpacing(page int) float64 {
	if s, ok := p.spacing[page]; ok && s > 0 {
		return s
	}
	return 11
}

// trailingSoftHyphen reports whether text ends in a hyphen-like rune and, if
// so, returns the text with the hyphen removed so the next word can be joined
// directly.
func trailingSoftHyphen(text string) (string, bool) {
	r, size := utf8.DecodeLastRuneInString(text)
	switch r {
	case '-', '‐', '‑', '‒', '–', '—':
		return text[:len(text)-size], true
	}
	return "", false
}

func (p *clauseParser) finishClause() {
	if p.cur == nil {
		return
	}
	p.clauses = append(p.clauses, p.cur)
	p.cur = nil
}

// flushUnmatched wraps any buffered label-less lines in one synthetic clause
// and surfaces them as an issue.
func (p *clauseParser) flushUnmatched() {
	if len(p.unmatched) == 0 {
		return
	}
	p.synthN++
	id := fmt.Sprintf("__unmatched_%d", p.synthN)

	first := p.unmatched[0]
	node := &ClauseNode{
		ID:              id,
		RawLabel:        "",
		Level:           1,
		PageStart:       first.Page,
		PageEnd:         first.Page,
		AnchorPage:      first.Page,
		AnchorY:         first.Y,
		Synthetic:       true,
		SourceLineCount: len(p.unmatched),
	}
	var parts []string
	for _, ln := range p.unmatched {
		parts = append(parts, strings.TrimSpace(ln.Text))
		if ln.Page > node.PageEnd {
			node.PageEnd = ln.Page
		}
	}
	node.TextPreserved = strings.Join(parts, "\n")
	p.mapped += len(p.unmatched)
	p.clauses = append(p.clauses, node)

	p.issue(Issue{
		Side:      p.side,
		Key:       id,
		Text:      node.TextPreserved,
		PageStart: node.PageStart,
		PageEnd:   node.PageEnd,
		Flags:     []Flag{FlagUnmatched},
	})
	p.unmatched = nil
}

func (p *clauseParser) issue(is Issue) {
	p.issues = append(p.issues, is)
}

// pageSpacings computes, per page, the median Δy between consecutive lines.
func pageSpacings(lines []PageLine) map[int]float64 {
	deltas := make(map[int][]float64)
	for i := 1; i < len(lines); i++ {
		if lines[i].Page != lines[i-1].Page {
			continue
		}
		d := lines[i-1].Y - lines[i].Y
		if d > 0 {
			deltas[lines[i].Page] = append(deltas[lines[i].Page], d)
		}
	}
	out := make(map[int]float64, len(deltas))
	for page, ds := range deltas {
		sort.Float64s(ds)
		mid := len(ds) / 2
		if len(ds)%2 == 1 {
			out[page] = ds[mid]
		} else {
			out[page] = (ds[mid-1] + ds[mid]) / 2
		}
	}
	return out
}
