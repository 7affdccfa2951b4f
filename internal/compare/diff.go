package compare

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var horizontalWS = regexp.MustCompile(`[ \t]+`)

// wsNormalize collapses runs of horizontal whitespace to a single space.
// Newlines are significant and survive.
func wsNormalize(s string) string {
	return horizontalWS.ReplaceAllString(s, " ")
}

func wsEqual(a, b string) bool {
	return wsNormalize(a) == wsNormalize(b)
}

// WordDiff produces word-granularity tokens with whitespace-noise
// suppression: reflowed but textually identical runs come back as equal.
func WordDiff(base, compared string) []DiffToken {
	tokens := tokenDiff(splitWordsWithSpace(base), splitWordsWithSpace(compared))
	tokens = collapseWhitespaceNoise(tokens)
	return mergeAdjacent(tokens)
}

// SentenceDiff produces sentence-granularity tokens. Inputs differing only
// in horizontal whitespace are reported as a single equal token.
func SentenceDiff(base, compared string) []DiffToken {
	if wsEqual(base, compared) {
		return []DiffToken{{Value: base, Kind: DiffEqual}}
	}
	tokens := tokenDiff(splitSentences(base), splitSentences(compared))
	return mergeAdjacent(tokens)
}

// ParagraphDiff produces line-granularity tokens over trimmed lines.
func ParagraphDiff(base, compared string) []DiffToken {
	if wsEqual(base, compared) || strings.TrimSpace(base) == strings.TrimSpace(compared) {
		return []DiffToken{{Value: base, Kind: DiffEqual}}
	}
	tokens := tokenDiff(splitTrimmedLines(base), splitTrimmedLines(compared))
	tokens = mergeAdjacent(tokens)

	// Indent-only differences can survive both equality guards above while
	// the trimmed-line diff sees nothing; surface the texts whole.
	changed := false
	for _, t := range tokens {
		if t.Kind != DiffEqual {
			changed = true
			break
		}
	}
	if !changed {
		return []DiffToken{
			{Value: base, Kind: DiffRemoved},
			{Value: compared, Kind: DiffAdded},
		}
	}
	return tokens
}

// tokenDiff runs a token-level diff by encoding each distinct token as a
// rune, the same trick diffmatchpatch uses internally for line mode.
func tokenDiff(a, b []string) []DiffToken {
	dict := make(map[string]rune)
	tokens := []string{""}
	encode := func(items []string) []rune {
		out := make([]rune, len(items))
		for i, it := range items {
			r, ok := dict[it]
			if !ok {
				r = indexRune(len(tokens))
				dict[it] = r
				tokens = append(tokens, it)
			}
			out[i] = r
		}
		return out
	}
	ra := encode(a)
	rb := encode(b)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var out []DiffToken
	for _, d := range diffs {
		var b strings.Builder
		for _, r := range d.Text {
			b.WriteString(tokens[runeIndex(r)])
		}
		if b.Len() == 0 {
			continue
		}
		out = append(out, DiffToken{Value: b.String(), Kind: kindOf(d.Type)})
	}
	return out
}

// indexRune maps a dictionary index to a rune, skipping the surrogate range.
func indexRune(i int) rune {
	if i >= 0xD800 {
		i += 0x800
	}
	return rune(i)
}

func runeIndex(r rune) int {
	i := int(r)
	if i >= 0xE000 {
		i -= 0x800
	}
	return i
}

func kindOf(op diffmatchpatch.Operation) DiffKind {
	switch op {
	case diffmatchpatch.DiffInsert:
		return DiffAdded
	case diffmatchpatch.DiffDelete:
		return DiffRemoved
	}
	return DiffEqual
}

// collapseWhitespaceNoise merges removed/added pairs whose values agree
// after horizontal-whitespace normalization, and relabels whitespace-only
// churn as equal.
func collapseWhitespaceNoise(tokens []DiffToken) []DiffToken {
	var out []DiffToken
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if i+1 < len(tokens) && oppositeKinds(t.Kind, tokens[i+1].Kind) &&
			wsNormalize(t.Value) == wsNormalize(tokens[i+1].Value) {
			out = append(out, DiffToken{Value: t.Value, Kind: DiffEqual})
			i++
			continue
		}
		if t.Kind != DiffEqual && strings.TrimSpace(t.Value) == "" {
			t.Kind = DiffEqual
		}
		out = append(out, t)
	}
	return out
}

func oppositeKinds(a, b DiffKind) bool {
	return (a == DiffRemoved && b == DiffAdded) || (a == DiffAdded && b == DiffRemoved)
}

func mergeAdjacent(tokens []DiffToken) []DiffToken {
	var out []DiffToken
	for _, t := range tokens {
		if n := len(out); n > 0 && out[n-1].Kind == t.Kind {
			out[n-1].Value += t.Value
			continue
		}
		out = append(out, t)
	}
	return out
}

// splitWordsWithSpace splits text into alternating word and whitespace runs,
// preserving every byte of the input.
func splitWordsWithSpace(s string) []string {
	var out []string
	var cur strings.Builder
	curSpace := false
	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if cur.Len() > 0 && isSpace != curSpace {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curSpace = isSpace
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitSentences splits on terminal punctuation followed by a space, keeping
// the punctuation with the preceding sentence; the space opens the next one.
func splitSentences(s string) []string {
	var out []string
	var cur strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitTrimmedLines yields each line trimmed, with a trailing newline kept on
// all but the last so reconstructed values stay multi-line.
func splitTrimmedLines(s string) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, ln := range lines {
		ln = strings.TrimSpace(ln)
		if i < len(lines)-1 {
			ln += "\n"
		}
		out[i] = ln
	}
	return out
}
