package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quoteDashReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-",
	" ", " ",
)

// normalizeLine produces the canonical comparison form of a line:
// NFKC, unified quotes and dashes, lowercased, whitespace collapsed.
func normalizeLine(s string) string {
	s = norm.NFKC.String(s)
	s = quoteDashReplacer.Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLabel canonicalizes a clause label: trimmed, internal whitespace
// stripped, trailing dot removed, lowercased.
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimSuffix(s, ".")
	return strings.ToLower(s)
}
