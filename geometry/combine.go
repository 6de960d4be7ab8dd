package geometry

import (
	"sort"

	"github.com/doclayer/anchor/model"
)

// Combine groups raw page-space rectangles into complex polygons by vertical
// stacking. Rectangles sharing a visual line are unioned into one row; a run
// of vertically adjacent rows becomes a single ComplexPolygon with the first
// row as head, the last as tail, and the unioned middle rows as body. A row
// separated from its predecessor by more than the adjacency delta starts a
// new ComplexPolygon.
//
// Zero rectangles are dropped. An empty input yields an empty result.
func Combine(rects []model.Polygon) []model.ComplexPolygon {
	rows := groupIntoRows(rects)
	if len(rows) == 0 {
		return nil
	}

	var groups []model.ComplexPolygon
	run := []model.Polygon{rows[0]}
	for _, row := range rows[1:] {
		if Adjacent(row, run[len(run)-1], DefaultAdjacencyDelta) {
			run = append(run, row)
			continue
		}
		groups = append(groups, foldRun(run))
		run = []model.Polygon{row}
	}
	groups = append(groups, foldRun(run))
	return groups
}

// groupIntoRows unions rectangles sharing a visual line and returns the
// resulting rows sorted top to bottom.
func groupIntoRows(rects []model.Polygon) []model.Polygon {
	var rows []model.Polygon
	for _, r := range rects {
		if r.IsZero() {
			continue
		}
		merged := false
		for i := range rows {
			if OnSameLine(r, rows[i], 0.5) {
				rows[i] = rows[i].Union(r)
				merged = true
				break
			}
		}
		if !merged {
			rows = append(rows, r.Flattened())
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Top() < rows[j].Top()
	})
	return rows
}

// foldRun collapses a top-to-bottom run of rows into a head/body/tail
// triple. One row is head only; two rows are head and tail; three or more
// union the middle rows into the body.
func foldRun(run []model.Polygon) model.ComplexPolygon {
	switch len(run) {
	case 1:
		return model.ComplexPolygon{Head: run[0]}
	case 2:
		return model.ComplexPolygon{Head: run[0], Tail: run[1]}
	default:
		var body model.Polygon
		for _, row := range run[1 : len(run)-1] {
			body = body.Union(row)
		}
		return model.ComplexPolygon{Head: run[0], Body: body, Tail: run[len(run)-1]}
	}
}
