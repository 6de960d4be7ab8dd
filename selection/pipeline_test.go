package selection

import (
	"strings"
	"testing"

	"github.com/doclayer/anchor/locate"
	"github.com/doclayer/anchor/model"
)

func newTestResolver() *Resolver {
	forward := locate.NewMapper(locate.NewDocumentLocator())
	return NewResolver(NewReverseMapper(), forward, nil)
}

func TestResolve_PixelSelectionToExcerpt(t *testing.T) {
	doc := preprocessedDoc(t)
	resolver := newTestResolver()

	// A drag over the first line, expressed in screen pixels with a 10px
	// horizontal and 20px vertical chrome offset at 72 pixels per inch.
	viewport := ViewportContext{OffsetX: 10, OffsetY: 20, PixelsPerUnit: 72}
	rects := []ScreenRect{
		{X: 1.0*72 + 10, Y: 1.0*72 + 20, Width: 1.9 * 72, Height: 0.2 * 72},
	}

	sel, err := resolver.Resolve(doc, 1, rects, viewport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Excerpt != "While maps of paper" {
		t.Errorf("excerpt = %q, want %q", sel.Excerpt, "While maps of paper")
	}
	if len(sel.Bounds) == 0 {
		t.Fatal("expected snapped bounds")
	}

	// The snapped bounds come from recognized glyph geometry, so their
	// union must still overlap the drawn region.
	union := sel.Bounds[0].Polygon
	for _, b := range sel.Bounds[1:] {
		union = union.Union(b.Polygon)
	}
	drawn := model.NewPolygonFromRect(1.0, 1.0, 2.9, 1.2)
	if union.Right() < drawn.Left() || union.Left() > drawn.Right() ||
		union.Bottom() < drawn.Top() || union.Top() > drawn.Bottom() {
		t.Errorf("snapped bounds %v do not overlap the drawn region %v", union, drawn)
	}
}

func TestResolve_DegenerateRectsDropped(t *testing.T) {
	doc := preprocessedDoc(t)
	resolver := newTestResolver()

	rects := []ScreenRect{
		{X: 100, Y: 100, Width: 0, Height: 20},
		{X: 100, Y: 100, Width: -5, Height: 20},
	}
	sel, err := resolver.Resolve(doc, 1, rects, ViewportContext{PixelsPerUnit: 72})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Excerpt != "" || sel.Bounds != nil {
		t.Errorf("zero-width rects must resolve to nothing, got %+v", sel)
	}
}

func TestResolve_EmptyPageSpace(t *testing.T) {
	doc := preprocessedDoc(t)
	resolver := newTestResolver()

	// A selection over blank page space resolves to the empty state, not
	// an error.
	rects := []ScreenRect{{X: 6 * 72, Y: 9 * 72, Width: 72, Height: 14}}
	sel, err := resolver.Resolve(doc, 1, rects, ViewportContext{PixelsPerUnit: 72})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Excerpt != "" {
		t.Errorf("expected empty excerpt, got %q", sel.Excerpt)
	}
}

func TestResolve_PageOutOfRange(t *testing.T) {
	doc := preprocessedDoc(t)
	resolver := newTestResolver()

	_, err := resolver.Resolve(doc, 9, nil, ViewportContext{})
	if err == nil {
		t.Fatal("expected an error for a page out of range")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error should name the failure, got %v", err)
	}
}

func TestResolve_RequiresPreprocessing(t *testing.T) {
	doc := preprocessedDoc(t)
	// Strip the precomputed regions to simulate a raw document.
	raw := *doc.Pages[0]
	raw.Regions = nil
	rawDoc := &model.Document{Pages: []*model.Page{&raw}, Paragraphs: doc.Paragraphs}

	_, err := newTestResolver().Resolve(rawDoc, 1, nil, ViewportContext{})
	if err == nil {
		t.Fatal("expected an error for an unpreprocessed page")
	}
}

func TestToPagePolygons_Conversion(t *testing.T) {
	viewport := ViewportContext{OffsetX: 10, OffsetY: 20, PixelsPerUnit: 72}
	rects := []ScreenRect{{X: 82, Y: 92, Width: 144, Height: 36}}

	polygons := toPagePolygons(rects, viewport)
	if len(polygons) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(polygons))
	}
	want := model.NewPolygonFromRect(1.0, 1.0, 3.0, 1.5)
	if polygons[0] != want {
		t.Errorf("polygon = %v, want %v", polygons[0], want)
	}
}

func TestToPagePolygons_DefaultMultiplier(t *testing.T) {
	rects := []ScreenRect{{X: 72, Y: 72, Width: 72, Height: 72}}

	polygons := toPagePolygons(rects, ViewportContext{})
	want := model.NewPolygonFromRect(1, 1, 2, 2)
	if polygons[0] != want {
		t.Errorf("zero multiplier must fall back to %d, got %v", DefaultPixelsPerUnit, polygons[0])
	}
}
