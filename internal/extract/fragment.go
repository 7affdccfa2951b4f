package extract

// Side tags which document an extraction belongs to.
type Side string

const (
	SideBase     Side = "base"
	SideCompared Side = "compared"
)

// PositionedFragment is a single text run emitted by the PDF extractor,
// in PDF user space (origin bottom-left, Y increasing upward).
type PositionedFragment struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PageFragments is the raw extraction result for one page.
type PageFragments struct {
	Number    int // 1-based
	Height    float64
	Fragments []PositionedFragment
}

// PageLine is a visual line assembled from fragments sharing a Y bucket.
type PageLine struct {
	Page       int
	Text       string
	X          float64
	Y          float64
	Height     float64
	PageHeight float64
}

// Options are the extraction tunables. The defaults are calibrated to
// IFRS/AASB-style standards documents; all of them shift heuristics only,
// never the shape of the output.
type Options struct {
	// YBucket is the line merge radius: fragments whose Y coordinates land
	// in the same bucket of this size form one visual line.
	YBucket float64
	// FooterBand is the fraction of the page height scanned for repeated
	// page furniture.
	FooterBand float64
	// ParagraphGap is the ratio of line gap to median line spacing above
	// which a paragraph break is inserted.
	ParagraphGap float64
	// SuperscriptHeight is the fraction of the median line height below
	// which a short line is considered a superscript candidate.
	SuperscriptHeight float64
	// IndentStep is the horizontal distance, in user-space units, of one
	// indent level.
	IndentStep float64
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{
		YBucket:           2,
		FooterBand:        0.14,
		ParagraphGap:      1.55,
		SuperscriptHeight: 0.82,
		IndentStep:        8,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.YBucket <= 0 {
		o.YBucket = d.YBucket
	}
	if o.FooterBand <= 0 {
		o.FooterBand = d.FooterBand
	}
	if o.ParagraphGap <= 0 {
		o.ParagraphGap = d.ParagraphGap
	}
	if o.SuperscriptHeight <= 0 {
		o.SuperscriptHeight = d.SuperscriptHeight
	}
	if o.IndentStep <= 0 {
		o.IndentStep = d.IndentStep
	}
	return o
}
