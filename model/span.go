package model

// Span is a half-open range in the document's linear text-offset space,
// measured in UTF-16 code units as reported by the extraction service.
// Offsets are page-global and increase monotonically with reading order.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// End returns the exclusive end offset.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Offset && offset < s.End()
}

// SpanExtent returns the inclusive start and end offsets covered by a
// sequence of spans. Discontiguous spans collapse to their overall extent.
// Returns ok=false for an empty sequence.
func SpanExtent(spans []Span) (start, end int, ok bool) {
	if len(spans) == 0 {
		return 0, 0, false
	}
	start = spans[0].Offset
	end = spans[0].End() - 1
	for _, s := range spans[1:] {
		if s.Offset < start {
			start = s.Offset
		}
		if s.End()-1 > end {
			end = s.End() - 1
		}
	}
	return start, end, true
}
