package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/KrUtHi96/sidebyside/internal/compare"
)

// PDF renders the redline report as a PDF document. Removed text is printed
// struck through in red, added text bold in green.
func PDF(res *compare.Result, g compare.Granularity) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(18, 16, 18)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Write(8, "Comparison report")
	doc.Ln(10)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(90, 90, 90)
	doc.Write(5, tr(fmt.Sprintf("Granularity: %s", g)))
	doc.Ln(10)

	for _, sec := range res.Sections {
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "B", 13)
		doc.Write(7, tr(sec.Header))
		doc.Ln(8)

		if cov := sec.Coverage; cov != nil {
			doc.SetFont("Helvetica", "", 9)
			doc.SetTextColor(90, 90, 90)
			doc.Write(4.5, tr(fmt.Sprintf("Coverage: %.1f%% (%d of %d lines mapped)",
				cov.Percent, cov.MappedLines, cov.TotalLines)))
			doc.Ln(7)
		}

		for _, row := range sec.Rows {
			doc.SetTextColor(0, 0, 0)
			doc.SetFont("Helvetica", "B", 11)
			doc.Write(5.5, tr(fmt.Sprintf("%s  [%s]", row.DisplayLabel, row.Status)))
			doc.Ln(6)

			for _, t := range tokensFor(row, g) {
				v := flatten(t.Value)
				if v == "" {
					continue
				}
				switch t.Kind {
				case compare.DiffRemoved:
					doc.SetTextColor(170, 20, 20)
					doc.SetFont("Helvetica", "S", 10)
				case compare.DiffAdded:
					doc.SetTextColor(20, 110, 40)
					doc.SetFont("Helvetica", "B", 10)
				default:
					doc.SetTextColor(40, 40, 40)
					doc.SetFont("Helvetica", "", 10)
				}
				doc.Write(5, tr(v+" "))
			}
			doc.Ln(8)
		}
		doc.Ln(4)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
