package anchor

import (
	"github.com/doclayer/anchor/layout"
	"github.com/doclayer/anchor/model"
	"github.com/doclayer/anchor/search"
)

// Hit describes what lies under a page-space point. Indices are into the
// page's line and word sequences; an index is -1 when that level of
// structure does not cover the point.
type Hit struct {
	ParagraphIndex int
	LineIndex      int
	WordIndex      int
	Word           string
}

// HitTest finds the paragraph region, line, and word under a page-space
// point. The page's lines are partitioned into columns first, because
// reading order is only binary-searchable within one column; the matching
// column is then bisected for the line, and the line's offset extent narrows
// the word lookup. The boolean result is false when the point touches no
// paragraph region.
func (e *Engine) HitTest(pageNumber int, x, y float64) (Hit, bool, error) {
	page, err := e.doc.PageByNumber(pageNumber)
	if err != nil {
		return Hit{}, false, err
	}

	hit := Hit{ParagraphIndex: -1, LineIndex: -1, WordIndex: -1}
	for _, region := range page.Regions {
		if region.Polygon.Contains(x, y) {
			hit.ParagraphIndex = region.ParagraphIndex
			break
		}
	}
	if hit.ParagraphIndex < 0 {
		return Hit{}, false, nil
	}

	probe := model.NewPolygonFromRect(x, y, x, y)
	for _, column := range layout.SplitIntoColumns(page.Lines) {
		if !column.Polygon.Contains(x, y) {
			continue
		}
		r, ok := search.Lines(column.Lines, probe)
		if !ok {
			continue
		}
		for i := r.First; i <= r.Last; i++ {
			if column.Lines[i].Polygon.Contains(x, y) {
				hit.LineIndex = column.FirstLine + i
				break
			}
		}
		if hit.LineIndex >= 0 {
			break
		}
	}

	if hit.LineIndex >= 0 {
		line := page.Lines[hit.LineIndex]
		if start, end, ok := line.Extent(); ok {
			if r, ok := search.Words(page.Words, search.OffsetRange{Start: start, End: end}); ok {
				for i := r.First; i <= r.Last; i++ {
					if page.Words[i].Polygon.Contains(x, y) {
						hit.WordIndex = i
						hit.Word = page.Words[i].Content
						break
					}
				}
			}
		}
	}

	return hit, true, nil
}
