package compare

import (
	"github.com/KrUtHi96/sidebyside/internal/extract"
)

// Granularity selects which diff a consumer renders.
type Granularity string

const (
	GranularityWord      Granularity = "word"
	GranularitySentence  Granularity = "sentence"
	GranularityParagraph Granularity = "paragraph"
)

// ParseGranularity maps a request parameter to a Granularity, defaulting
// to word.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityWord, GranularitySentence, GranularityParagraph:
		return Granularity(s), true
	case "":
		return GranularityWord, true
	}
	return GranularityWord, false
}

// DiffKind tags a diff token.
type DiffKind string

const (
	DiffEqual   DiffKind = "equal"
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
)

// DiffToken is one run of diff output. Adjacent tokens of the same kind may
// be merged but are not required to be.
type DiffToken struct {
	Value string   `json:"value"`
	Kind  DiffKind `json:"kind"`
}

// RowStatus classifies a clause-level comparison row.
type RowStatus string

const (
	StatusUnchanged RowStatus = "unchanged"
	StatusChanged   RowStatus = "changed"
	StatusAdded     RowStatus = "added"
	StatusRemoved   RowStatus = "removed"
	StatusAmbiguous RowStatus = "ambiguous"
)

// Row pairs the two sides' clauses for one identifier and carries the
// three-granularity diffs.
type Row struct {
	Key           string              `json:"key"`
	DisplayLabel  string              `json:"displayLabel"`
	InBase        bool                `json:"inBase"`
	InCompared    bool                `json:"inCompared"`
	Base          *extract.ClauseNode `json:"base,omitempty"`
	Compared      *extract.ClauseNode `json:"compared,omitempty"`
	Status        RowStatus           `json:"status"`
	DiffWord      []DiffToken         `json:"diffWord"`
	DiffSentence  []DiffToken         `json:"diffSentence"`
	DiffParagraph []DiffToken         `json:"diffParagraph"`
}

// SectionStatus classifies section presence across the two documents.
type SectionStatus string

const (
	SectionMatched           SectionStatus = "matched"
	SectionMissingInBase     SectionStatus = "missing_in_base"
	SectionMissingInCompared SectionStatus = "missing_in_compared"
)

// SectionComparison is one aligned section with its rows and the coverage
// merged across both sides.
type SectionComparison struct {
	Header   string                   `json:"header"`
	Status   SectionStatus            `json:"status"`
	Base     *extract.Section         `json:"base,omitempty"`
	Compared *extract.Section         `json:"compared,omitempty"`
	Rows     []Row                    `json:"rows"`
	Coverage *extract.SectionCoverage `json:"coverage,omitempty"`
}

// PageRange is a 1-based inclusive page interval.
type PageRange struct {
	PageStart int `json:"pageStart"`
	PageEnd   int `json:"pageEnd"`
}

// SectionPages locates a section in each source document.
type SectionPages struct {
	Header   string     `json:"header"`
	Base     *PageRange `json:"base,omitempty"`
	Compared *PageRange `json:"compared,omitempty"`
}

// AnchorPoint is a value copy of a scroll target inside a document.
type AnchorPoint struct {
	Page int     `json:"page"`
	Y    float64 `json:"y"`
}

// Anchor is a navigation entry for one row.
type Anchor struct {
	SectionHeader  string       `json:"sectionHeader"`
	AnchorID       string       `json:"anchorId"`
	Label          string       `json:"label"`
	Status         RowStatus    `json:"status"`
	Base           *AnchorPoint `json:"base,omitempty"`
	Compared       *AnchorPoint `json:"compared,omitempty"`
	RemovedSnippet string       `json:"removedSnippet,omitempty"`
	AddedSnippet   string       `json:"addedSnippet,omitempty"`
}

// Result is the full comparison output.
type Result struct {
	Sections               []SectionComparison `json:"sections"`
	SectionPageMap         []SectionPages      `json:"sectionPageMap"`
	SectionAnchors         []Anchor            `json:"sectionAnchors"`
	Rows                   []Row               `json:"rows"`
	SelectedSectionDefault string              `json:"selectedSectionDefault,omitempty"`
	BaseIssues             []extract.Issue     `json:"baseIssues"`
	ComparedIssues         []extract.Issue     `json:"comparedIssues"`
}
