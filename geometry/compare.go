// Package geometry provides the axis-aligned quadrilateral comparisons the
// anchor engine is built on: adjacency and same-line tests with numeric
// tolerances, a reading-order comparator for polygons, and an interval
// comparator for character offsets.
//
// All tests read only the four axis-aligned edges of a polygon (see
// model.Polygon) and are tolerant of the small jitter AI layout extraction
// introduces between neighboring word and line boxes.
package geometry

import (
	"math"

	"github.com/doclayer/anchor/model"
)

// DefaultAdjacencyDelta is the gap, in page-space units, within which two
// rectangles are still considered adjacent.
const DefaultAdjacencyDelta = 0.2

// Relative position values returned by ComparePolygons.
const (
	StrictlyLeft  = -2
	Above         = -1
	Overlapping   = 0
	Below         = 1
	StrictlyRight = 2
)

// roundEdge quantizes an edge coordinate to one decimal so that sub-tenth
// extraction jitter does not flip an adjacency decision.
func roundEdge(v float64) float64 {
	return math.Round(v*10) / 10
}

// Adjacent reports whether the two rectangles' projections overlap, or are
// separated by at most delta page-space units, on both axes. Edge
// coordinates are rounded to one decimal before comparison. A negative delta
// requires genuine overlap beyond a margin, which is how callers reject a
// neighboring but distinct line. Adjacent is symmetric in a and b.
func Adjacent(a, b model.Polygon, delta float64) bool {
	overlapX := roundEdge(a.Left()) <= roundEdge(b.Right())+delta &&
		roundEdge(b.Left()) <= roundEdge(a.Right())+delta
	overlapY := roundEdge(a.Top()) <= roundEdge(b.Bottom())+delta &&
		roundEdge(b.Top()) <= roundEdge(a.Bottom())+delta
	return overlapX && overlapY
}

// OnSameLine reports whether the vertical extents of the two rectangles
// overlap by at least minOverlap of the smaller rectangle's height. It
// rejects boxes that are horizontally adjacent but sit on a different text
// line, the classic two-column false adjacency.
func OnSameLine(a, b model.Polygon, minOverlap float64) bool {
	overlap := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
	minHeight := math.Min(a.Height(), b.Height())
	return overlap >= minOverlap*minHeight
}

// ComparePolygons orders p against ref in reading order. It returns Above or
// Below when the vertical extents are disjoint, StrictlyLeft or
// StrictlyRight when the polygons share a vertical band but are horizontally
// disjoint, and Overlapping otherwise.
//
// The comparator is only meaningful against a sequence that is itself sorted
// in reading order; that is the correctness precondition for the binary
// search built on top of it.
func ComparePolygons(p, ref model.Polygon) int {
	if p.Bottom() < ref.Top() {
		return Above
	}
	if p.Top() > ref.Bottom() {
		return Below
	}
	if p.Right() < ref.Left() {
		return StrictlyLeft
	}
	if p.Left() > ref.Right() {
		return StrictlyRight
	}
	return Overlapping
}

// CompareOffsets compares the inclusive offset range [lo, hi] against a
// reference offset: -1 when the range ends before ref, +1 when it starts
// after ref, and 0 when it contains or touches it.
func CompareOffsets(lo, hi, ref int) int {
	if hi < ref {
		return -1
	}
	if lo > ref {
		return 1
	}
	return 0
}
