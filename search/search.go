// Package search implements contiguous-range binary search over a
// reading-order-sorted sequence. The same routine drives both the geometric
// line lookup (via the polygon reading-order comparator) and the word offset
// lookup (via the interval comparator); only the comparator differs.
package search

import (
	"github.com/doclayer/anchor/geometry"
	"github.com/doclayer/anchor/model"
)

// Range is an inclusive [First, Last] index range into the searched
// sequence.
type Range struct {
	First int
	Last  int
}

// Len returns the number of matched indices.
func (r Range) Len() int {
	return r.Last - r.First + 1
}

// Compare is a three-way comparator between a query and one element of the
// searched sequence. It returns a negative value when the query lies
// entirely before the element, a positive value when entirely after, and
// zero when the query overlaps the element.
type Compare[Q, E any] func(query Q, elem E) int

// Contiguous finds the contiguous run of elements in s that a query
// overlaps. The sequence must be sorted such that, relative to the query,
// all elements comparing negative precede all comparing zero, which precede
// all comparing positive; reading-order geometry within one column and
// offset-sorted words within one page both satisfy this.
//
// It probes by bisection, then expands linearly outward from the first hit.
// The boolean result is false when s is empty or nothing overlaps; the
// zero Range is never returned as a disguised miss.
func Contiguous[Q, E any](s []E, query Q, cmp Compare[Q, E]) (Range, bool) {
	lo, hi := 0, len(s)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch sign := cmp(query, s[mid]); {
		case sign < 0:
			hi = mid - 1
		case sign > 0:
			lo = mid + 1
		default:
			first, last := mid, mid
			for first > 0 && cmp(query, s[first-1]) == 0 {
				first--
			}
			for last < len(s)-1 && cmp(query, s[last+1]) == 0 {
				last++
			}
			return Range{First: first, Last: last}, true
		}
	}
	return Range{}, false
}

// Lines finds the contiguous run of lines whose polygons overlap the query
// polygon in reading order. The left/right distinction of the reading-order
// comparator collapses to before/after for bisection purposes.
func Lines(lines []model.Line, query model.Polygon) (Range, bool) {
	return Contiguous(lines, query, func(q model.Polygon, l model.Line) int {
		switch geometry.ComparePolygons(q, l.Polygon) {
		case geometry.StrictlyLeft, geometry.Above:
			return -1
		case geometry.StrictlyRight, geometry.Below:
			return 1
		default:
			return 0
		}
	})
}

// OffsetRange is an inclusive character-offset interval used to query
// offset-sorted words.
type OffsetRange struct {
	Start int
	End   int
}

// Words finds the contiguous run of words whose span offsets fall inside the
// query offset interval.
func Words(words []model.Word, query OffsetRange) (Range, bool) {
	return Contiguous(words, query, func(q OffsetRange, w model.Word) int {
		return geometry.CompareOffsets(q.Start, q.End, w.Span.Offset)
	})
}
