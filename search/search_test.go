package search

import (
	"testing"

	"github.com/doclayer/anchor/model"
)

// makeWords builds offset-sorted words with the given offsets, each of
// length 4 and with a polygon advancing left to right.
func makeWords(offsets ...int) []model.Word {
	words := make([]model.Word, len(offsets))
	for i, off := range offsets {
		x := 1.0 + float64(i)*0.5
		words[i] = model.Word{
			Content: "w",
			Polygon: model.NewPolygonFromRect(x, 1.0, x+0.4, 1.2),
			Span:    model.Span{Offset: off, Length: 4},
		}
	}
	return words
}

func TestContiguous_Empty(t *testing.T) {
	_, ok := Words(nil, OffsetRange{Start: 0, End: 10})
	if ok {
		t.Error("expected no match on empty sequence")
	}
}

func TestContiguous_QueryOutsideRange(t *testing.T) {
	words := makeWords(10, 20, 30)

	if _, ok := Words(words, OffsetRange{Start: 0, End: 5}); ok {
		t.Error("expected no match for query before all entries")
	}
	if _, ok := Words(words, OffsetRange{Start: 40, End: 50}); ok {
		t.Error("expected no match for query after all entries")
	}
}

func TestContiguous_ExactSlice(t *testing.T) {
	words := makeWords(0, 10, 20, 30, 40, 50, 60, 70)

	r, ok := Words(words, OffsetRange{Start: 20, End: 45})
	if !ok {
		t.Fatal("expected a match")
	}
	if r.First != 2 || r.Last != 4 {
		t.Errorf("expected [2,4], got [%d,%d]", r.First, r.Last)
	}
}

func TestContiguous_MatchIndependentOfProbe(t *testing.T) {
	// The same matching slice must come back whichever midpoint the search
	// probes first, so vary the sequence length around a fixed match.
	for extra := 0; extra < 5; extra++ {
		offsets := []int{0, 10, 20, 30, 40}
		for i := 0; i < extra; i++ {
			offsets = append(offsets, 100+i*10)
		}
		words := makeWords(offsets...)

		r, ok := Words(words, OffsetRange{Start: 10, End: 35})
		if !ok {
			t.Fatalf("extra=%d: expected a match", extra)
		}
		if r.First != 1 || r.Last != 3 {
			t.Errorf("extra=%d: expected [1,3], got [%d,%d]", extra, r.First, r.Last)
		}
	}
}

func TestContiguous_FullCoverage(t *testing.T) {
	words := makeWords(0, 10, 20)

	r, ok := Words(words, OffsetRange{Start: 0, End: 25})
	if !ok {
		t.Fatal("expected a match")
	}
	if r.First != 0 || r.Last != 2 || r.Len() != 3 {
		t.Errorf("expected the whole sequence, got [%d,%d]", r.First, r.Last)
	}
}

func TestLines_ReadingOrderSearch(t *testing.T) {
	lines := []model.Line{
		{Polygon: model.NewPolygonFromRect(1, 1.0, 3, 1.2)},
		{Polygon: model.NewPolygonFromRect(1, 1.25, 3, 1.45)},
		{Polygon: model.NewPolygonFromRect(1, 1.5, 3, 1.7)},
		{Polygon: model.NewPolygonFromRect(1, 1.75, 3, 1.95)},
	}

	// A query polygon covering the middle two lines.
	query := model.NewPolygonFromRect(1.2, 1.3, 2.5, 1.65)

	r, ok := Lines(lines, query)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.First != 1 || r.Last != 2 {
		t.Errorf("expected [1,2], got [%d,%d]", r.First, r.Last)
	}
}

func TestLines_QueryAboveAll(t *testing.T) {
	lines := []model.Line{
		{Polygon: model.NewPolygonFromRect(1, 2.0, 3, 2.2)},
	}
	query := model.NewPolygonFromRect(1, 0.5, 3, 0.7)

	if _, ok := Lines(lines, query); ok {
		t.Error("expected no match for query above all lines")
	}
}
