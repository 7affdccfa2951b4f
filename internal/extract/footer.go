package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Known page furniture. Matching happens against the normalized line form.
var footerPhrases = []string{
	"copyright",
	"all rights reserved",
	"ifrs foundation",
	"issb",
	"ifrs s2",
	"climate-related disclosures",
	"australian accounting standards board",
	"aasb",
	"aasb s2",
	"exposure draft",
	"issued",
}

var (
	bareNumberRe = regexp.MustCompile(`^\d{1,4}$`)
	pageOfRe     = regexp.MustCompile(`^(?:page \d{1,4}(?: of \d{1,4})?|p\.? ?\d{1,4}|\d{1,4} of \d{1,4}|\d{1,4}\s*/\s*\d{1,4})$`)
	pageTokenRe  = regexp.MustCompile(`(?i)\bpage\b|\bof\b|\d+`)
)

// filterFooters removes repeated page furniture from the bottom band of each
// page. A line is dropped only when it sits in the footer band and either is
// a known footer phrase or carries a signature seen on at least two pages.
// Section headers and everything above the band always survive.
func filterFooters(lines []PageLine, opts Options) []PageLine {
	// Pass 1: signatures that repeat across pages.
	sigPages := make(map[string]map[int]bool)
	for _, ln := range lines {
		if !inFooterBand(ln, opts) {
			continue
		}
		sig, ok := footerSignature(ln.Text)
		if !ok {
			continue
		}
		if sigPages[sig] == nil {
			sigPages[sig] = make(map[int]bool)
		}
		sigPages[sig][ln.Page] = true
	}
	repeated := make(map[string]bool)
	for sig, pages := range sigPages {
		if len(pages) >= 2 {
			repeated[sig] = true
		}
	}

	// Pass 2: drop.
	out := lines[:0:0]
	for _, ln := range lines {
		if !inFooterBand(ln, opts) {
			out = append(out, ln)
			continue
		}
		norm := normalizeLine(ln.Text)
		if isCanonicalHeader(norm) {
			out = append(out, ln)
			continue
		}
		if isKnownFooterPhrase(norm) {
			continue
		}
		if sig, ok := footerSignature(ln.Text); ok && repeated[sig] {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func inFooterBand(ln PageLine, opts Options) bool {
	return ln.PageHeight > 0 && ln.Y <= opts.FooterBand*ln.PageHeight
}

func isKnownFooterPhrase(norm string) bool {
	if bareNumberRe.MatchString(norm) || pageOfRe.MatchString(norm) {
		return true
	}
	for _, p := range footerPhrases {
		if strings.Contains(norm, p) {
			return true
		}
	}
	return false
}

// footerSignature reduces a candidate line to a page-number-insensitive
// fingerprint. Short or single-token lines are not candidates: they are too
// likely to be legitimate body text.
func footerSignature(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 140 || isClauseStart(trimmed) {
		return "", false
	}
	stripped := pageTokenRe.ReplaceAllString(strings.ToLower(trimmed), " ")
	tokens := strings.Fields(stripped)
	var sig strings.Builder
	for _, tok := range tokens {
		for _, r := range tok {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				sig.WriteRune(r)
			}
		}
	}
	if sig.Len() < 12 || len(tokens) < 2 {
		return "", false
	}
	return sig.String(), true
}
