// Package pdfsource turns raw PDF bytes into per-page positioned text
// fragments for the extraction pipeline. It leans on ledongthuc/pdf for the
// content streams and on pdfcpu for cheap upfront validation.
package pdfsource

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/KrUtHi96/sidebyside/internal/extract"
)

// defaultPageHeight is A4 in PDF user-space units, used when a page carries
// no resolvable MediaBox.
const defaultPageHeight = 842

// Validate checks that the bytes are a structurally sound PDF before any
// extraction work is spent on them.
func Validate(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("validate pdf: %w", err)
	}
	return nil
}

// ReadPages extracts positioned fragments for every page. Individual page
// failures are logged and reported as skipped page numbers; only a document
// that cannot be opened at all, or a context cancelled between pages, is an
// error.
func ReadPages(ctx context.Context, data []byte, log *slog.Logger) ([]extract.PageFragments, []int, error) {
	if log == nil {
		log = slog.Default()
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []extract.PageFragments
	var skipped []int
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		page, err := readPage(reader, i)
		if err != nil {
			log.Warn("page extraction failed", "page", i, "error", err)
			skipped = append(skipped, i)
			continue
		}
		if page != nil {
			pages = append(pages, *page)
		}
	}
	return pages, skipped, nil
}

// readPage isolates the panic-prone content stream walk of one page.
func readPage(reader *pdflib.Reader, num int) (page *extract.PageFragments, err error) {
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("page %d content: %v", num, r)
		}
	}()

	p := reader.Page(num)
	if p.V.IsNull() {
		return nil, nil
	}
	content := p.Content()

	out := extract.PageFragments{
		Number: num,
		Height: pageHeight(p),
	}
	for _, t := range content.Text {
		out.Fragments = append(out.Fragments, extract.PositionedFragment{
			Text:   t.S,
			X:      t.X,
			Y:      t.Y,
			Width:  t.W,
			Height: t.FontSize,
		})
	}
	return &out, nil
}

// pageHeight resolves the page's MediaBox height, walking up the page tree
// when the box is inherited.
func pageHeight(p pdflib.Page) float64 {
	v := p.V
	for depth := 0; depth < 16 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if !mb.IsNull() && mb.Len() == 4 {
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// Extract runs the whole pipeline on raw PDF bytes: page reading, line
// assembly, noise filtering and clause parsing. Pages that failed to yield
// text surface as unextractable issues on the returned document.
func Extract(ctx context.Context, data []byte, side extract.Side, opts extract.Options, log *slog.Logger) (*extract.Document, error) {
	pages, skipped, err := ReadPages(ctx, data, log)
	if err != nil {
		return nil, err
	}
	doc := extract.FromPages(pages, side, opts, log)
	for _, pageNum := range skipped {
		doc.Issues = append(doc.Issues, extract.Issue{
			Side:      side,
			Key:       fmt.Sprintf("__page_%d", pageNum),
			PageStart: pageNum,
			PageEnd:   pageNum,
			Flags:     []extract.Flag{extract.FlagUnextractable},
		})
	}
	return doc, nil
}
