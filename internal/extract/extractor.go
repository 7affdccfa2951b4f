package extract

import (
	"log/slog"
)

// FromPages runs the extraction pipeline over already-extracted page
// fragments: line assembly, footer filtering, superscript attachment,
// section boundary detection, appendix cutoff and clause parsing.
//
// It is pure and deterministic; Extract in the pdfsource package wires it
// to real PDF bytes.
func FromPages(pages []PageFragments, side Side, opts Options, log *slog.Logger) *Document {
	opts = opts.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	var lines []PageLine
	for _, page := range pages {
		lines = append(lines, assembleLines(page, opts)...)
	}
	log.Debug("lines assembled", "side", side, "pages", len(pages), "lines", len(lines))

	lines = filterFooters(lines, opts)
	lines = attachSuperscripts(lines, opts)

	spans := splitSections(lines)
	spacing := pageSpacings(lines)

	doc := &Document{Side: side, Sections: make([]*Section, 0, len(spans))}
	for _, span := range spans {
		sec, issues := parseSection(span, side, opts, spacing)
		doc.Sections = append(doc.Sections, sec)
		doc.Issues = append(doc.Issues, issues...)
	}
	log.Info("document extracted",
		"side", side,
		"sections", len(doc.Sections),
		"issues", len(doc.Issues),
	)
	return doc
}
