package geometry

import (
	"testing"

	"github.com/doclayer/anchor/model"
)

func TestCombine_Empty(t *testing.T) {
	if got := Combine(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := Combine([]model.Polygon{{}}); got != nil {
		t.Errorf("expected zero polygons to be dropped, got %v", got)
	}
}

func TestCombine_SingleRect(t *testing.T) {
	rect := model.NewPolygonFromRect(1, 1, 3, 1.2)

	groups := Combine([]model.Polygon{rect})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Head != rect {
		t.Errorf("expected single rect as head, got %v", groups[0].Head)
	}
	if !groups[0].Body.IsZero() || !groups[0].Tail.IsZero() {
		t.Error("single rect should produce head only")
	}
}

func TestCombine_StackedRows(t *testing.T) {
	head := model.NewPolygonFromRect(2, 1.0, 3, 1.2)
	middle := model.NewPolygonFromRect(1, 1.25, 3, 1.45)
	tail := model.NewPolygonFromRect(1, 1.5, 1.8, 1.7)

	groups := Combine([]model.Polygon{head, middle, tail})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group for stacked rows, got %d", len(groups))
	}
	cp := groups[0]
	if cp.Head != head {
		t.Errorf("head = %v, want %v", cp.Head, head)
	}
	if cp.Body != middle {
		t.Errorf("body = %v, want %v", cp.Body, middle)
	}
	if cp.Tail != tail {
		t.Errorf("tail = %v, want %v", cp.Tail, tail)
	}
}

func TestCombine_SameLineRectsUnion(t *testing.T) {
	left := model.NewPolygonFromRect(1, 1.0, 2, 1.2)
	right := model.NewPolygonFromRect(2.1, 1.0, 3, 1.2)

	groups := Combine([]model.Polygon{left, right})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	want := model.NewPolygonFromRect(1, 1.0, 3, 1.2)
	if groups[0].Head != want {
		t.Errorf("same-line rects should union into one row, got %v", groups[0].Head)
	}
}

func TestCombine_DistantRunsSplit(t *testing.T) {
	top := model.NewPolygonFromRect(1, 1.0, 3, 1.2)
	farBelow := model.NewPolygonFromRect(1, 5.0, 3, 5.2)

	groups := Combine([]model.Polygon{top, farBelow})
	if len(groups) != 2 {
		t.Fatalf("expected rows far apart to form separate groups, got %d", len(groups))
	}
	if groups[0].Head != top || groups[1].Head != farBelow {
		t.Error("groups should preserve top-to-bottom order")
	}
}
