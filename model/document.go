package model

import "fmt"

// Word is one recognized token on a page. Its span length should equal the
// content length, though the extraction service may fold boundary
// punctuation in. Words within a page are sorted by span offset ascending,
// which equals reading order.
type Word struct {
	Content string
	Polygon Polygon
	Span    Span
}

// Line is a visual line of text. A line may aggregate several words and may
// itself be discontiguous (multiple spans) when the extraction service
// merges visually adjacent but non-contiguous text.
type Line struct {
	Content string
	Polygon Polygon
	Spans   []Span
}

// Extent returns the inclusive offset range covered by the line's spans.
func (l Line) Extent() (start, end int, ok bool) {
	return SpanExtent(l.Spans)
}

// BoundingRegion is one page's share of a paragraph's geometry.
type BoundingRegion struct {
	PageNumber int
	Polygon    Polygon
}

// Paragraph is a semantic block of text. A paragraph may span pages or
// columns; each page's contribution is handled independently through its
// bounding regions.
type Paragraph struct {
	Content         string
	Spans           []Span
	BoundingRegions []BoundingRegion
}

// Extent returns the inclusive offset range covered by the paragraph.
func (p Paragraph) Extent() (start, end int, ok bool) {
	return SpanExtent(p.Spans)
}

// Page holds one page's recognized content. Words and Lines arrive sorted in
// reading order (top to bottom within a column, columns left to right).
// Regions is derived, attached once by the layout preprocessor.
type Page struct {
	Number int // 1-indexed page number
	Width  float64
	Height float64
	Unit   string // page-space unit, "inch" for AI layout output

	Words []Word
	Lines []Line

	// Regions are the per-paragraph footprints on this page, in paragraph
	// order. Nil until the document has been preprocessed.
	Regions []Region
}

// Document is the full extraction result for one loaded document. It is
// immutable after load; the engine never re-serializes it.
type Document struct {
	Pages      []*Page
	Paragraphs []Paragraph
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageByNumber returns the page with the given 1-indexed number, or an error
// when the number is out of range. Mapping entry points use this as their
// checked precondition rather than risking a silent wrong answer.
func (d *Document) PageByNumber(number int) (*Page, error) {
	if number < 1 || number > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", number, len(d.Pages))
	}
	return d.Pages[number-1], nil
}
