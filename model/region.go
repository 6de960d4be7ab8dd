package model

// IndexRange is an inclusive [First, Last] index range into a page's word or
// line sequence. First > Last denotes an empty range, which a degenerate
// paragraph (whitespace-only text between word spans) can legitimately
// produce.
type IndexRange struct {
	First int
	Last  int
}

// IsEmpty reports whether the range covers no indices.
func (r IndexRange) IsEmpty() bool {
	return r.First > r.Last
}

// Len returns the number of indices covered.
func (r IndexRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Region is one paragraph's precomputed footprint on one page: the inclusive
// index ranges into the page's lines and words whose offsets fall inside the
// paragraph's span on that page, plus the paragraph's own bounding polygon.
//
// Ranges are contiguous and never overlap across regions on the same page.
type Region struct {
	Polygon        Polygon
	LineRange      IndexRange
	WordRange      IndexRange
	ParagraphIndex int // position in the document's paragraph sequence
}
