// Package report renders a comparison result as a redline document:
// removed text struck through, added text emphasised. Markdown is the
// canonical form; HTML and PDF renderers build on the same row walk.
package report

import (
	"fmt"
	"strings"

	"github.com/KrUtHi96/sidebyside/internal/compare"
)

// Markdown renders the result at the given granularity.
func Markdown(res *compare.Result, g compare.Granularity) []byte {
	var b strings.Builder
	b.WriteString("# Comparison report\n\n")
	fmt.Fprintf(&b, "Granularity: %s\n\n", g)

	for _, sec := range res.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Header)
		if sec.Status != compare.SectionMatched {
			fmt.Fprintf(&b, "_%s_\n\n", strings.ReplaceAll(string(sec.Status), "_", " "))
		}
		if cov := sec.Coverage; cov != nil {
			fmt.Fprintf(&b, "Coverage: %.1f%% (%d of %d lines mapped)\n\n",
				cov.Percent, cov.MappedLines, cov.TotalLines)
		}
		for _, row := range sec.Rows {
			fmt.Fprintf(&b, "### %s — %s\n\n", row.DisplayLabel, row.Status)
			b.WriteString(redline(tokensFor(row, g)))
			b.WriteString("\n\n")
		}
	}
	return []byte(b.String())
}

func tokensFor(row compare.Row, g compare.Granularity) []compare.DiffToken {
	switch g {
	case compare.GranularitySentence:
		return row.DiffSentence
	case compare.GranularityParagraph:
		return row.DiffParagraph
	}
	return row.DiffWord
}

func redline(tokens []compare.DiffToken) string {
	var b strings.Builder
	for _, t := range tokens {
		v := strings.TrimSpace(flatten(t.Value))
		if v == "" {
			b.WriteString(t.Value)
			continue
		}
		switch t.Kind {
		case compare.DiffRemoved:
			fmt.Fprintf(&b, "~~%s~~ ", v)
		case compare.DiffAdded:
			fmt.Fprintf(&b, "**%s** ", v)
		default:
			b.WriteString(v)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// flatten folds a preserved-layout value onto one line for inline markup.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
