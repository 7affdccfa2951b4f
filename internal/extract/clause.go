package extract

import "math"

// ClauseNode is one numbered unit of a section, e.g. "2(a)(i)".
type ClauseNode struct {
	// ID is the canonical hierarchical identifier, unique within a section
	// except where duplicate labels were detected.
	ID       string `json:"id"`
	RawLabel string `json:"rawLabel"`
	// ParentID is the id of the immediate parent clause, empty for roots
	// and for clauses whose parent was never seen.
	ParentID string `json:"parentId,omitempty"`
	// Level: 1=root numeric, 2=letter marker, 3=roman, 4=numeric.
	Level int `json:"level"`
	// TextPreserved keeps newlines and indentation significant.
	TextPreserved string `json:"textPreserved"`
	PageStart     int    `json:"pageStart"`
	PageEnd       int    `json:"pageEnd"`
	AnchorPage    int    `json:"anchorPage"`
	AnchorY       float64 `json:"anchorY"`
	// Synthetic marks a placeholder clause wrapping text that had no
	// recognisable label.
	Synthetic       bool `json:"synthetic,omitempty"`
	SourceLineCount int  `json:"sourceLineCount"`
}

// SectionCoverage reports how much of a section's text was mapped to clauses.
type SectionCoverage struct {
	TotalLines     int     `json:"totalLines"`
	MappedLines    int     `json:"mappedLines"`
	UnmatchedLines int     `json:"unmatchedLines"`
	Percent        float64 `json:"percent"`
}

// NewCoverage computes a coverage record from line counts; the percentage
// is rounded to one decimal place.
func NewCoverage(total, mapped int) SectionCoverage {
	c := SectionCoverage{
		TotalLines:     total,
		MappedLines:    mapped,
		UnmatchedLines: total - mapped,
	}
	if total > 0 {
		c.Percent = math.Round(float64(mapped)/float64(total)*1000) / 10
	}
	return c
}

// Section is a named top-level division with its parsed clauses.
type Section struct {
	Header           string          `json:"header"`
	NormalizedHeader string          `json:"normalizedHeader"`
	Clauses          []*ClauseNode   `json:"clauses"`
	Coverage         SectionCoverage `json:"coverage"`
	// StartParagraph and EndParagraph are the first and last non-synthetic
	// root clause ids, used by viewers for range display.
	StartParagraph string `json:"startParagraph,omitempty"`
	EndParagraph   string `json:"endParagraph,omitempty"`
}

// Flag classifies an extraction issue.
type Flag string

const (
	FlagDuplicate     Flag = "duplicate"
	FlagMalformed     Flag = "malformed"
	FlagUnextractable Flag = "unextractable"
	FlagUnmatched     Flag = "unmatched"
)

// Issue is a recoverable extraction problem surfaced in the result instead
// of failing the pipeline.
type Issue struct {
	Side          Side   `json:"side"`
	Key           string `json:"key"`
	OriginalLabel string `json:"originalLabel,omitempty"`
	Text          string `json:"text,omitempty"`
	PageStart     int    `json:"pageStart,omitempty"`
	PageEnd       int    `json:"pageEnd,omitempty"`
	Flags         []Flag `json:"extractionFlags"`
}

// Document is the full extraction result for one side.
type Document struct {
	Side     Side       `json:"side"`
	Sections []*Section `json:"sections"`
	Issues   []Issue    `json:"issues"`
}
