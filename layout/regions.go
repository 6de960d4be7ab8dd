package layout

import (
	"fmt"

	"github.com/doclayer/anchor/geometry"
	"github.com/doclayer/anchor/model"
	"github.com/doclayer/anchor/search"
)

// Preprocess computes per-page paragraph regions for the whole document and
// returns a new document carrying them; the input is never mutated. The
// transform is deterministic and idempotent, so recomputing it for the same
// input yields identical regions.
func Preprocess(doc *model.Document) (*model.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("preprocess: nil document")
	}

	out := &model.Document{
		Pages:      make([]*model.Page, len(doc.Pages)),
		Paragraphs: doc.Paragraphs,
	}
	for i, page := range doc.Pages {
		if page == nil {
			return nil, fmt.Errorf("preprocess: page %d is nil", i+1)
		}
		annotated := *page
		annotated.Regions = ComputeRegions(page, doc.Paragraphs)
		out.Pages[i] = &annotated
	}
	return out, nil
}

// ComputeRegions determines, for every paragraph contributing to the page,
// the inclusive line and word index ranges whose offsets fall inside the
// paragraph's on-page span. The paragraph's own bounding polygon is reused
// as the region polygon rather than recomputed from its lines.
//
// Regions are emitted in paragraph order. A paragraph without a bounding
// region on this page contributes nothing, which is a normal outcome, not an
// error. A paragraph whose on-page text is entirely whitespace or
// punctuation between word spans still receives a region with a valid,
// possibly empty index range.
func ComputeRegions(page *model.Page, paragraphs []model.Paragraph) []model.Region {
	// Non-nil even when no paragraph touches the page: a nil Regions slice
	// is how callers detect a page that was never preprocessed.
	regions := make([]model.Region, 0, len(paragraphs))
	for idx, para := range paragraphs {
		polygon, onPage := pagePolygon(para, page.Number)
		if !onPage {
			continue
		}
		start, end, ok := para.Extent()
		if !ok {
			continue
		}

		region := model.Region{
			Polygon:        polygon,
			LineRange:      emptyRange(),
			WordRange:      emptyRange(),
			ParagraphIndex: idx,
		}
		query := search.OffsetRange{Start: start, End: end}
		if r, ok := search.Words(page.Words, query); ok {
			region.WordRange = model.IndexRange{First: r.First, Last: r.Last}
		}
		if r, ok := lineRange(page.Lines, query); ok {
			region.LineRange = model.IndexRange{First: r.First, Last: r.Last}
		}
		regions = append(regions, region)
	}
	return regions
}

// pagePolygon returns the paragraph's bounding polygon on the given page.
func pagePolygon(para model.Paragraph, pageNumber int) (model.Polygon, bool) {
	for _, br := range para.BoundingRegions {
		if br.PageNumber == pageNumber {
			return br.Polygon, true
		}
	}
	return model.Polygon{}, false
}

// lineRange finds the contiguous run of lines whose span extents overlap the
// offset interval. Lines are offset-sorted within a page, the precondition
// for bisection.
func lineRange(lines []model.Line, query search.OffsetRange) (search.Range, bool) {
	return search.Contiguous(lines, query, func(q search.OffsetRange, l model.Line) int {
		start, end, ok := l.Extent()
		if !ok {
			// A span-less line carries no offsets and can never match.
			return 1
		}
		if geometry.CompareOffsets(q.Start, q.End, start) < 0 {
			return -1
		}
		if geometry.CompareOffsets(q.Start, q.End, end) > 0 {
			return 1
		}
		return 0
	})
}

func emptyRange() model.IndexRange {
	return model.IndexRange{First: 0, Last: -1}
}
