package extract

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// assembleLines groups a page's fragments into visual lines.
//
// Fragments are bucketed by Y (bucket size = Options.YBucket), buckets are
// emitted top of page first, and within a bucket fragments are joined left
// to right with spacing inferred from the horizontal gaps between runs.
func assembleLines(page PageFragments, opts Options) []PageLine {
	type bucket struct {
		key   int
		frags []PositionedFragment
	}

	byKey := make(map[int]*bucket)
	for _, f := range page.Fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		key := int(math.Round(f.Y / opts.YBucket))
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key}
			byKey[key] = b
		}
		b.frags = append(b.frags, f)
	}

	buckets := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	// Top of page first: PDF user space has Y increasing upward.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key > buckets[j].key })

	lines := make([]PageLine, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.frags, func(i, j int) bool { return b.frags[i].X < b.frags[j].X })
		lines = append(lines, composeLine(page, b.frags))
	}
	return lines
}

func composeLine(page PageFragments, frags []PositionedFragment) PageLine {
	var b strings.Builder
	var prevRight float64
	var maxHeight float64

	for _, f := range frags {
		t := strings.TrimSpace(f.Text)
		if f.Height > maxHeight {
			maxHeight = f.Height
		}
		if b.Len() == 0 {
			b.WriteString(t)
			prevRight = f.X + f.Width
			continue
		}
		gap := f.X - prevRight
		b.WriteString(separatorFor(b.String(), t, gap))
		b.WriteString(t)
		prevRight = f.X + f.Width
	}

	return PageLine{
		Page:       page.Number,
		Text:       b.String(),
		X:          frags[0].X,
		Y:          frags[0].Y,
		Height:     maxHeight,
		PageHeight: page.Height,
	}
}

// separatorFor decides what goes between two adjacent runs on a line.
// Punctuation and hyphen adjacency attach with no space; otherwise the
// horizontal gap decides how many spaces the layout implied.
func separatorFor(prev, next string, gap float64) string {
	if next == "" {
		return ""
	}
	if attachRuns(prev, next) {
		return ""
	}
	if gap <= 1.2 {
		return ""
	}
	n := int(math.Round(gap / 3.4))
	if n < 1 {
		n = 1
	}
	if n == 1 || bothWordChars(prev, next) {
		return " "
	}
	return strings.Repeat(" ", n)
}

func attachRuns(prev, next string) bool {
	first, _ := utf8.DecodeRuneInString(next)
	last, _ := utf8.DecodeLastRuneInString(prev)
	if strings.ContainsRune(",.;:!?)]}%", first) {
		return true
	}
	if isHyphenLike(first) || isHyphenLike(last) {
		return true
	}
	if strings.ContainsRune("([{", last) {
		return true
	}
	return false
}

func isHyphenLike(r rune) bool {
	switch r {
	case '-', '‐', '‑', '‒', '–', '—', '/':
		return true
	}
	return false
}

func bothWordChars(prev, next string) bool {
	first, _ := utf8.DecodeRuneInString(next)
	last, _ := utf8.DecodeLastRuneInString(prev)
	return isWordChar(last) && isWordChar(first)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
