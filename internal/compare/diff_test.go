package compare

import (
	"strings"
	"testing"
)

func joined(tokens []DiffToken, kind DiffKind) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind == kind {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

func TestWordDiff_SimpleSubstitution(t *testing.T) {
	tokens := WordDiff(
		"Institutions must retain records for five years.",
		"Institutions must retain records for seven years.",
	)
	if !strings.Contains(joined(tokens, DiffRemoved), "five") {
		t.Errorf("expected %q removed: %#v", "five", tokens)
	}
	if !strings.Contains(joined(tokens, DiffAdded), "seven") {
		t.Errorf("expected %q added: %#v", "seven", tokens)
	}
	if !strings.Contains(joined(tokens, DiffEqual), "records") {
		t.Errorf("unchanged words must stay equal: %#v", tokens)
	}
}

func TestWordDiff_WhitespaceNoiseCollapsed(t *testing.T) {
	tokens := WordDiff("retain  records for years", "retain records for years")
	for _, tok := range tokens {
		if tok.Kind != DiffEqual {
			t.Errorf("whitespace-only churn must collapse to equal: %#v", tokens)
		}
	}
}

func TestWordDiff_IdenticalInputs(t *testing.T) {
	tokens := WordDiff("same text", "same text")
	if len(tokens) != 1 || tokens[0].Kind != DiffEqual || tokens[0].Value != "same text" {
		t.Errorf("identical inputs yield one equal token, got %#v", tokens)
	}
}

func TestWordDiff_AdjacentSameKindMerged(t *testing.T) {
	tokens := WordDiff("alpha beta gamma", "alpha delta epsilon gamma")
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Kind == tokens[i-1].Kind {
			t.Errorf("adjacent tokens of the same kind should be merged: %#v", tokens)
		}
	}
}

func TestSentenceDiff_WhitespaceOnlyDifference(t *testing.T) {
	tokens := SentenceDiff("One sentence.  Another one.", "One sentence. Another one.")
	if len(tokens) != 1 || tokens[0].Kind != DiffEqual {
		t.Errorf("horizontal-whitespace-only inputs are a single equal token, got %#v", tokens)
	}
}

func TestSentenceDiff_ChangedSentenceIsolated(t *testing.T) {
	tokens := SentenceDiff(
		"The first rule holds. The second rule applies. The third stands.",
		"The first rule holds. The second rule is repealed. The third stands.",
	)
	if !strings.Contains(joined(tokens, DiffRemoved), "second rule applies") {
		t.Errorf("changed sentence should be removed as a unit: %#v", tokens)
	}
	if !strings.Contains(joined(tokens, DiffEqual), "first rule holds") {
		t.Errorf("unchanged sentences stay equal: %#v", tokens)
	}
}

func TestParagraphDiff_TrimEqualInputs(t *testing.T) {
	tokens := ParagraphDiff("  text body  ", "text body")
	if len(tokens) != 1 || tokens[0].Kind != DiffEqual {
		t.Errorf("trim-equal inputs are a single equal token, got %#v", tokens)
	}
}

func TestParagraphDiff_IndentOnlyChangeDegenerates(t *testing.T) {
	tokens := ParagraphDiff("first \nsecond", "first\nsecond")
	if len(tokens) != 2 {
		t.Fatalf("expected removed+added pair, got %#v", tokens)
	}
	if tokens[0].Kind != DiffRemoved || tokens[1].Kind != DiffAdded {
		t.Errorf("degenerate line diff must surface whole texts: %#v", tokens)
	}
}

func TestParagraphDiff_LineChange(t *testing.T) {
	tokens := ParagraphDiff("keep\nold line\nkeep too", "keep\nnew line\nkeep too")
	if !strings.Contains(joined(tokens, DiffRemoved), "old line") {
		t.Errorf("expected old line removed: %#v", tokens)
	}
	if !strings.Contains(joined(tokens, DiffAdded), "new line") {
		t.Errorf("expected new line added: %#v", tokens)
	}
}

func TestSplitWordsWithSpace_RoundTrips(t *testing.T) {
	in := "  leading and\ttrailing  "
	if got := strings.Join(splitWordsWithSpace(in), ""); got != in {
		t.Errorf("tokenization must preserve every byte: %q != %q", got, in)
	}
}
