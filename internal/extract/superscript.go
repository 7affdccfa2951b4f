package extract

import (
	"math"
	"sort"
	"strings"
)

var superscriptGlyphs = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'(': '⁽', ')': '⁾', '+': '⁺', '−': '⁻', '-': '⁻', '=': '⁼',
	'n': 'ⁿ', 'i': 'ⁱ',
}

const superscriptChars = "0123456789()+−-=ni"

// attachSuperscripts folds superscript-sized lines into their nearest host
// line and removes them from the stream. Candidates are identified by height
// relative to the per-page median; hosts are picked from nearby indices by
// spatial distance, Y dominating X.
func attachSuperscripts(lines []PageLine, opts Options) []PageLine {
	byPage := make(map[int][]int)
	for i, ln := range lines {
		byPage[ln.Page] = append(byPage[ln.Page], i)
	}

	candidate := make(map[int]bool)
	for _, idxs := range byPage {
		h := medianLineHeight(lines, idxs)
		if h <= 0 {
			continue
		}
		for _, i := range idxs {
			if isSuperscriptCandidate(lines[i], h, opts) {
				candidate[i] = true
			}
		}
	}
	if len(candidate) == 0 {
		return lines
	}

	attached := make(map[int]string) // host index -> appended superscript text
	drop := make(map[int]bool)
	for i := range lines {
		if !candidate[i] {
			continue
		}
		host := findHostLine(lines, i, candidate)
		if host < 0 {
			continue // no neighbour close enough; keep the line as-is
		}
		attached[host] += superscriptText(strings.TrimSpace(lines[i].Text))
		drop[i] = true
	}

	out := lines[:0:0]
	for i, ln := range lines {
		if drop[i] {
			continue
		}
		if s, ok := attached[i]; ok {
			ln.Text += s
		}
		out = append(out, ln)
	}
	return out
}

func isSuperscriptCandidate(ln PageLine, medianHeight float64, opts Options) bool {
	if ln.Height <= 0 || ln.Height >= opts.SuperscriptHeight*medianHeight {
		return false
	}
	t := strings.Join(strings.Fields(ln.Text), "")
	if t == "" || len([]rune(t)) > 2 {
		return false
	}
	for _, r := range t {
		if !strings.ContainsRune(superscriptChars, r) {
			return false
		}
	}
	return true
}

// findHostLine searches indices ±1, ±2 on the same page for the closest
// non-candidate neighbour within 9 units of vertical distance. Ties on the
// combined score go to the smaller Δy.
func findHostLine(lines []PageLine, i int, candidate map[int]bool) int {
	best := -1
	bestScore := math.Inf(1)
	bestDy := math.Inf(1)
	for _, off := range []int{-2, -1, 1, 2} {
		j := i + off
		if j < 0 || j >= len(lines) || candidate[j] || lines[j].Page != lines[i].Page {
			continue
		}
		dy := math.Abs(lines[i].Y - lines[j].Y)
		if dy > 9 {
			continue
		}
		score := dy + math.Abs(lines[i].X-lines[j].X)/140
		if score < bestScore || (score == bestScore && dy < bestDy) {
			best, bestScore, bestDy = j, score, dy
		}
	}
	return best
}

func superscriptText(s string) string {
	var b strings.Builder
	for _, r := range s {
		g, ok := superscriptGlyphs[r]
		if !ok {
			return "^" + s
		}
		b.WriteRune(g)
	}
	return b.String()
}

func medianLineHeight(lines []PageLine, idxs []int) float64 {
	heights := make([]float64, 0, len(idxs))
	for _, i := range idxs {
		if lines[i].Height > 0 {
			heights = append(heights, lines[i].Height)
		}
	}
	if len(heights) == 0 {
		return 0
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 1 {
		return heights[mid]
	}
	return (heights[mid-1] + heights[mid]) / 2
}
