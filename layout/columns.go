// Package layout derives structure from a page's recognized content: it
// partitions reading-order lines into visual columns and precomputes the
// per-paragraph regions every spatial query resolves against.
package layout

import (
	"github.com/doclayer/anchor/geometry"
	"github.com/doclayer/anchor/model"
)

// Column is a contiguous reading-order run of a page's lines sharing one
// visual column. Polygon is the union bounding box of the member lines.
// Columns are recomputed per query, never persisted.
type Column struct {
	Polygon model.Polygon
	Lines   []model.Line

	// FirstLine is the index of Lines[0] within the page's line sequence,
	// so matches inside a column can be mapped back to page line indices.
	FirstLine int
}

// SplitIntoColumns partitions reading-order lines into column groups. A new
// column starts whenever a line is not adjacent to its predecessor: once a
// page has multiple visual columns, reading order degrades from one sorted
// sequence to several interleaved ones, and every spatial query must pick
// its column(s) before binary-searching inside each.
//
// The column polygon is the union of all member lines, not just the first
// and last, so a short header or footer line cannot produce an accidentally
// tight box. Zero lines yield one empty column.
func SplitIntoColumns(lines []model.Line) []Column {
	if len(lines) == 0 {
		return []Column{{}}
	}

	var columns []Column
	current := Column{Polygon: lines[0].Polygon, Lines: lines[:1], FirstLine: 0}
	for i := 1; i < len(lines); i++ {
		if geometry.Adjacent(lines[i].Polygon, lines[i-1].Polygon, geometry.DefaultAdjacencyDelta) {
			current.Lines = lines[current.FirstLine : i+1]
			current.Polygon = current.Polygon.Union(lines[i].Polygon)
			continue
		}
		columns = append(columns, current)
		current = Column{Polygon: lines[i].Polygon, Lines: lines[i : i+1], FirstLine: i}
	}
	return append(columns, current)
}
