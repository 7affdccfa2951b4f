package extract

import (
	"testing"
)

func sizedLine(page int, text string, x, y, height float64) PageLine {
	return PageLine{Page: page, Text: text, X: x, Y: y, Height: height, PageHeight: 842}
}

func TestAttachSuperscripts_FoldsDigitIntoHost(t *testing.T) {
	lines := []PageLine{
		sizedLine(1, "greenhouse gas emissions in CO", 72, 700, 10),
		sizedLine(1, "2", 210, 698, 5),
		sizedLine(1, "are reported per scope.", 72, 689, 10),
		sizedLine(1, "filler body text", 72, 678, 10),
	}
	out := attachSuperscripts(lines, DefaultOptions())

	if len(out) != 3 {
		t.Fatalf("candidate line should be removed, got %d lines", len(out))
	}
	if out[0].Text != "greenhouse gas emissions in CO²" {
		t.Errorf("expected superscript appended to host, got %q", out[0].Text)
	}
}

func TestAttachSuperscripts_TieGoesToSmallerDeltaY(t *testing.T) {
	// Host A: dy=4, dx=0 (score 4). Host B: dy=3, dx=140 (score 4).
	lines := []PageLine{
		sizedLine(1, "host above", 72, 704, 10),
		sizedLine(1, "2", 72, 700, 5),
		sizedLine(1, "host below", 212, 697, 10),
		sizedLine(1, "more body", 72, 686, 10),
	}
	out := attachSuperscripts(lines, DefaultOptions())

	var above, below string
	for _, ln := range out {
		switch {
		case ln.Y == 704:
			above = ln.Text
		case ln.Y == 697:
			below = ln.Text
		}
	}
	if above != "host above" {
		t.Errorf("host with larger Δy should not receive the superscript, got %q", above)
	}
	if below != "host below²" {
		t.Errorf("host with smaller Δy should win the tie, got %q", below)
	}
}

func TestAttachSuperscripts_TooTallLineIgnored(t *testing.T) {
	lines := []PageLine{
		sizedLine(1, "body text one", 72, 700, 10),
		sizedLine(1, "2", 72, 695, 9.5),
		sizedLine(1, "body text two", 72, 689, 10),
	}
	out := attachSuperscripts(lines, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("a near-full-height line is not a superscript, got %d lines", len(out))
	}
}

func TestAttachSuperscripts_NoNearbyHostKeepsLine(t *testing.T) {
	lines := []PageLine{
		sizedLine(1, "body text", 72, 700, 10),
		sizedLine(1, "2", 72, 500, 5),
		sizedLine(1, "body text two", 72, 680, 10),
	}
	out := attachSuperscripts(lines, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("candidate without a close host must survive, got %d lines", len(out))
	}
}

func TestSuperscriptText_GlyphMappingAndFallback(t *testing.T) {
	if got := superscriptText("42"); got != "⁴²" {
		t.Errorf("expected mapped glyphs, got %q", got)
	}
	if got := superscriptText("ab"); got != "^ab" {
		t.Errorf("expected caret fallback for unmapped runes, got %q", got)
	}
}
