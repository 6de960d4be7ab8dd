package locate

import (
	"sort"

	"github.com/doclayer/anchor/model"
)

// MapperConfig holds configuration for the forward mapper.
type MapperConfig struct {
	// ForceOverlap stitches a fragment's head, body, and tail so no visual
	// gap remains between consecutive highlight lines. Already-overlapping
	// edges are never shrunk, and the tail is never stretched.
	ForceOverlap bool
}

// DefaultMapperConfig returns the default forward-mapper configuration.
func DefaultMapperConfig() MapperConfig {
	return MapperConfig{ForceOverlap: true}
}

// Mapper resolves excerpt text to per-page bounding polygons for highlight
// rendering.
type Mapper struct {
	locator Locator
	config  MapperConfig
}

// NewMapper creates a forward mapper over the given locator with default
// configuration.
func NewMapper(locator Locator) *Mapper {
	return &Mapper{locator: locator, config: DefaultMapperConfig()}
}

// NewMapperWithConfig creates a forward mapper with custom configuration.
func NewMapperWithConfig(locator Locator, config MapperConfig) *Mapper {
	return &Mapper{locator: locator, config: config}
}

// LocateText resolves excerpt text to bounds, one per non-empty head, body,
// or tail of every located fragment. Fragments are grouped by page, arrival
// order preserved within a page and pages sorted ascending. An empty result
// means the text does not occur in the document; that is a valid "nothing to
// highlight" state, not an error.
func (m *Mapper) LocateText(text string, doc *model.Document) []model.Bounds {
	result, found := m.locator.Locate(text, doc)
	if !found {
		return nil
	}

	var bounds []model.Bounds
	for _, group := range GroupByPage(result.Fragments) {
		for _, cp := range group.Regions {
			if m.config.ForceOverlap {
				cp = stitch(cp)
			}
			for _, part := range cp.Parts() {
				bounds = append(bounds, model.Bounds{
					PageNumber: group.PageNumber,
					Polygon:    part.Flattened(),
				})
			}
		}
	}
	return bounds
}

// GroupByPage buckets located fragments per page, preserving arrival order
// within a page, with the page groups sorted by page number ascending.
func GroupByPage(fragments []Fragment) []model.CitationRegions {
	byPage := make(map[int]*model.CitationRegions)
	var pages []int
	for _, f := range fragments {
		group, ok := byPage[f.PageNumber]
		if !ok {
			group = &model.CitationRegions{PageNumber: f.PageNumber}
			byPage[f.PageNumber] = group
			pages = append(pages, f.PageNumber)
		}
		group.Regions = append(group.Regions, f.Polygon)
	}

	sort.Ints(pages)
	groups := make([]model.CitationRegions, 0, len(pages))
	for _, page := range pages {
		groups = append(groups, *byPage[page])
	}
	return groups
}

// stitch closes the vertical gaps between a fragment's head, body, and tail.
// With no body, the head's bottom edge is extended down to the tail's top;
// with a body, the body's top is clamped up to the head's bottom and its
// bottom down to the tail's top. Edges move only when a gap exists, so an
// already-overlapping pair is left alone, and the tail is never modified
// beyond flattening.
func stitch(cp model.ComplexPolygon) model.ComplexPolygon {
	head, body, tail := cp.Head.Flattened(), cp.Body.Flattened(), cp.Tail.Flattened()

	if cp.Body.IsZero() {
		if !cp.Head.IsZero() && !cp.Tail.IsZero() && head.Bottom() < tail.Top() {
			head = head.WithBottom(tail.Top())
		}
		return model.ComplexPolygon{Head: head, Tail: tail}
	}

	if !cp.Head.IsZero() && body.Top() > head.Bottom() {
		body = body.WithTop(head.Bottom())
	}
	if !cp.Tail.IsZero() && body.Bottom() < tail.Top() {
		body = body.WithBottom(tail.Top())
	}
	return model.ComplexPolygon{Head: head, Body: body, Tail: tail}
}
