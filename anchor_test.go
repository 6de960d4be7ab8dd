package anchor

import (
	"testing"

	"github.com/doclayer/anchor/model"
	"github.com/doclayer/anchor/selection"
)

func makeWord(content string, offset int, x0, y0, x1, y1 float64) model.Word {
	return model.Word{
		Content: content,
		Polygon: model.NewPolygonFromRect(x0, y0, x1, y1),
		Span:    model.Span{Offset: offset, Length: len(content)},
	}
}

// sampleDocument is one page, one paragraph over two lines.
func sampleDocument() *model.Document {
	page := &model.Page{
		Number: 1,
		Width:  8.5,
		Height: 11,
		Unit:   "inch",
		Words: []model.Word{
			makeWord("While", 0, 1.0, 1.0, 1.5, 1.2),
			makeWord("maps", 6, 1.6, 1.0, 2.0, 1.2),
			makeWord("of", 11, 2.1, 1.0, 2.3, 1.2),
			makeWord("paper", 14, 2.4, 1.0, 2.9, 1.2),
			makeWord("folded", 20, 1.0, 1.25, 1.6, 1.45),
			makeWord("maps", 27, 1.7, 1.25, 2.1, 1.45),
			makeWord("in", 32, 2.2, 1.25, 2.4, 1.45),
			makeWord("half", 35, 2.5, 1.25, 2.9, 1.45),
		},
		Lines: []model.Line{
			{
				Content: "While maps of paper",
				Polygon: model.NewPolygonFromRect(1.0, 1.0, 2.9, 1.2),
				Spans:   []model.Span{{Offset: 0, Length: 19}},
			},
			{
				Content: "folded maps in half",
				Polygon: model.NewPolygonFromRect(1.0, 1.25, 2.9, 1.45),
				Spans:   []model.Span{{Offset: 20, Length: 19}},
			},
		},
	}
	return &model.Document{
		Pages: []*model.Page{page},
		Paragraphs: []model.Paragraph{
			{
				Content: "While maps of paper folded maps in half",
				Spans:   []model.Span{{Offset: 0, Length: 39}},
				BoundingRegions: []model.BoundingRegion{
					{PageNumber: 1, Polygon: model.NewPolygonFromRect(1.0, 1.0, 2.9, 1.45)},
				},
			},
		},
	}
}

func TestNew_PreprocessesRegions(t *testing.T) {
	doc := sampleDocument()

	engine, err := New(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	regions, err := engine.Regions(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	if doc.Pages[0].Regions != nil {
		t.Error("the caller's document must stay unannotated")
	}
}

func TestEngine_LocateText(t *testing.T) {
	engine, err := New(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bounds := engine.LocateText("folded maps in half")
	if len(bounds) != 1 {
		t.Fatalf("expected 1 bounds, got %d", len(bounds))
	}
	if bounds[0].PageNumber != 1 {
		t.Errorf("page = %d, want 1", bounds[0].PageNumber)
	}
	want := model.NewPolygonFromRect(1.0, 1.25, 2.9, 1.45)
	if bounds[0].Polygon != want {
		t.Errorf("polygon = %v, want %v", bounds[0].Polygon, want)
	}

	if got := engine.LocateText("never appears"); got != nil {
		t.Errorf("missing text should locate nothing, got %v", got)
	}
}

func TestEngine_SelectionRoundTrip(t *testing.T) {
	engine, err := New(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Draw across both lines and confirm selection → text → bounds is
	// stable up to geometric snapping.
	viewport := selection.ViewportContext{PixelsPerUnit: 72}
	rects := []selection.ScreenRect{
		{X: 1.0 * 72, Y: 1.0 * 72, Width: 1.9 * 72, Height: 0.2 * 72},
		{X: 1.0 * 72, Y: 1.25 * 72, Width: 1.9 * 72, Height: 0.2 * 72},
	}

	sel, err := engine.ResolveSelection(1, rects, viewport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Excerpt != "While maps of paper folded maps in half" {
		t.Errorf("excerpt = %q", sel.Excerpt)
	}
	if len(sel.Bounds) == 0 {
		t.Fatal("expected snapped bounds")
	}

	snapped := engine.LocateText(sel.Excerpt)
	if len(snapped) != len(sel.Bounds) {
		t.Errorf("re-locating the excerpt should reproduce the bounds: %d vs %d", len(snapped), len(sel.Bounds))
	}
}

func TestEngine_CitationRegions(t *testing.T) {
	engine, err := New(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups := engine.CitationRegions("paper folded")
	if len(groups) != 1 {
		t.Fatalf("expected 1 page group, got %d", len(groups))
	}
	if groups[0].PageNumber != 1 || len(groups[0].Regions) != 1 {
		t.Errorf("unexpected grouping: %+v", groups)
	}
	cp := groups[0].Regions[0]
	if cp.Head.IsZero() || cp.Tail.IsZero() {
		t.Error("a two-line citation should carry head and tail")
	}
}

func TestEngine_HitTest(t *testing.T) {
	engine, err := New(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hit, ok, err := engine.HitTest(1, 1.8, 1.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit inside the paragraph")
	}
	if hit.ParagraphIndex != 0 || hit.LineIndex != 1 {
		t.Errorf("hit = %+v, want paragraph 0 line 1", hit)
	}
	if hit.Word != "maps" {
		t.Errorf("word = %q, want %q", hit.Word, "maps")
	}

	if _, ok, _ := engine.HitTest(1, 7.0, 9.0); ok {
		t.Error("expected no hit in blank page space")
	}

	if _, _, err := engine.HitTest(5, 1, 1); err == nil {
		t.Error("expected error for page out of range")
	}
}

func TestEngine_Options(t *testing.T) {
	_, err := New(sampleDocument(),
		WithForceOverlap(false),
		WithTolerances(selection.DefaultTolerances()),
		WithLogger(nil),
		WithLocator(nil),
	)
	if err != nil {
		t.Fatalf("options must tolerate nil collaborators: %v", err)
	}

	if _, err := New(nil); err == nil {
		t.Error("expected error for a nil document")
	}
}
