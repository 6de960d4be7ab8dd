package model

import "math"

// Polygon is a quadrilateral in page-space units, stored as four (x,y)
// corners in reading order: top-left, top-right, bottom-right, bottom-left.
//
// The engine treats every polygon as axis-aligned: only the corner indices
// carrying the top edge Y, bottom edge Y, left edge X, and right edge X are
// ever read. Skewed OCR quadrilaterals therefore collapse to their dominant
// rectangle, which is the behavior the adjacency tolerances are tuned for.
type Polygon [8]float64

// NewPolygonFromRect builds an axis-aligned polygon from two opposite
// corners. The corners may be given in any order.
func NewPolygonFromRect(x0, y0, x1, y1 float64) Polygon {
	left := math.Min(x0, x1)
	right := math.Max(x0, x1)
	top := math.Min(y0, y1)
	bottom := math.Max(y0, y1)
	return Polygon{left, top, right, top, right, bottom, left, bottom}
}

// Left returns the left edge X coordinate (top-left corner).
func (p Polygon) Left() float64 {
	return p[0]
}

// Top returns the top edge Y coordinate (top-left corner).
func (p Polygon) Top() float64 {
	return p[1]
}

// Right returns the right edge X coordinate (top-right corner).
func (p Polygon) Right() float64 {
	return p[2]
}

// Bottom returns the bottom edge Y coordinate (bottom-right corner).
func (p Polygon) Bottom() float64 {
	return p[5]
}

// Width returns the horizontal extent.
func (p Polygon) Width() float64 {
	return p.Right() - p.Left()
}

// Height returns the vertical extent.
func (p Polygon) Height() float64 {
	return p.Bottom() - p.Top()
}

// IsZero reports whether the polygon is the zero value. A zero polygon is
// used throughout the engine to mean "absent".
func (p Polygon) IsZero() bool {
	return p == Polygon{}
}

// Contains reports whether the point (x, y) lies inside the polygon's
// axis-aligned extent, edges inclusive.
func (p Polygon) Contains(x, y float64) bool {
	return x >= p.Left() && x <= p.Right() && y >= p.Top() && y <= p.Bottom()
}

// Union returns the smallest axis-aligned polygon covering both p and other.
// A zero polygon is treated as absent rather than as a point at the origin.
func (p Polygon) Union(other Polygon) Polygon {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}
	return NewPolygonFromRect(
		math.Min(p.Left(), other.Left()),
		math.Min(p.Top(), other.Top()),
		math.Max(p.Right(), other.Right()),
		math.Max(p.Bottom(), other.Bottom()),
	)
}

// Flattened returns the axis-aligned rectangle form of the polygon, with any
// skew in the stored corners removed.
func (p Polygon) Flattened() Polygon {
	return NewPolygonFromRect(p.Left(), p.Top(), p.Right(), p.Bottom())
}

// WithTop returns a copy of the polygon with its top edge moved to y.
func (p Polygon) WithTop(y float64) Polygon {
	p[1] = y
	p[3] = y
	return p
}

// WithBottom returns a copy of the polygon with its bottom edge moved to y.
func (p Polygon) WithBottom(y float64) Polygon {
	p[5] = y
	p[7] = y
	return p
}

// ComplexPolygon is the head/body/tail decomposition of a selection or
// citation spanning multiple text lines of unequal width: Head is the first
// partial line, Body the full-width middle lines, Tail the last partial line.
// Any subset may be absent (zero); a single-line selection typically has only
// a Head.
type ComplexPolygon struct {
	Head Polygon
	Body Polygon
	Tail Polygon
}

// Parts returns the non-zero sub-polygons in head, body, tail order.
func (c ComplexPolygon) Parts() []Polygon {
	parts := make([]Polygon, 0, 3)
	for _, p := range [3]Polygon{c.Head, c.Body, c.Tail} {
		if !p.IsZero() {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsZero reports whether all three sub-polygons are absent.
func (c ComplexPolygon) IsZero() bool {
	return c.Head.IsZero() && c.Body.IsZero() && c.Tail.IsZero()
}

// Union returns the bounding polygon of all non-zero parts.
func (c ComplexPolygon) Union() Polygon {
	return c.Head.Union(c.Body).Union(c.Tail)
}

// Bounds is a page-scoped rectangle, the unit exchanged with the rendering
// layer.
type Bounds struct {
	PageNumber int
	Polygon    Polygon
}

// CitationRegions groups the complex polygons belonging to one page. One
// excerpt may have been split into several contiguous pieces, each with its
// own head/body/tail decomposition.
type CitationRegions struct {
	PageNumber int
	Regions    []ComplexPolygon
}
