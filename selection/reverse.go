// Package selection maps a user's free-form selection back to document
// text: it resolves a drawn polygon to its owning paragraph region, extracts
// the exact words the selection covers, and orchestrates the full
// pixel-to-excerpt pipeline including the canonical geometry snap.
package selection

import (
	"strings"

	"go.uber.org/zap"

	"github.com/doclayer/anchor/geometry"
	"github.com/doclayer/anchor/model"
)

// Tolerances holds the adjacency margins used when testing words against a
// selection. The values are empirically tuned: partial lines (head/tail) use
// a tighter margin than full-width body lines, since a partial line's edge
// sits close to words that are not selected.
type Tolerances struct {
	// Head is the adjacency delta for words tested against the head part.
	Head float64
	// Body is the adjacency delta for words tested against the body part.
	Body float64
	// Tail is the adjacency delta for words tested against the tail part.
	Tail float64
	// RegionLineOverlap is the minimum same-line overlap fraction when
	// matching a selection part against a paragraph region or word.
	RegionLineOverlap float64
	// RegionAdjacency is the adjacency delta when matching a selection part
	// against a paragraph region.
	RegionAdjacency float64
}

// DefaultTolerances returns the tuned default margins.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Head:              -0.05,
		Body:              -0.1,
		Tail:              -0.05,
		RegionLineOverlap: 0.9,
		RegionAdjacency:   0.1,
	}
}

// ReverseMapper resolves selection geometry back to paragraph regions and
// excerpt text.
type ReverseMapper struct {
	tolerances Tolerances
	logger     *zap.Logger
}

// NewReverseMapper creates a reverse mapper with default tolerances and no
// diagnostics output.
func NewReverseMapper() *ReverseMapper {
	return &ReverseMapper{tolerances: DefaultTolerances(), logger: zap.NewNop()}
}

// NewReverseMapperWithConfig creates a reverse mapper with custom tolerances
// and a logger for anomaly diagnostics. A nil logger disables diagnostics.
func NewReverseMapperWithConfig(tolerances Tolerances, logger *zap.Logger) *ReverseMapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReverseMapper{tolerances: tolerances, logger: logger}
}

// ResolveParagraph finds the paragraph region on the page that owns the
// selection. Each non-empty part of the complex polygon is tested against
// every precomputed region with the same-line and adjacency tolerances.
// Exactly one region is expected to match; zero or several matches are
// logged as an anomaly, and the match with the smallest paragraph index is
// returned as the deterministic tie-break. The boolean result is false when
// no region matches.
func (rm *ReverseMapper) ResolveParagraph(page *model.Page, cp model.ComplexPolygon) (int, bool) {
	var matches []int
	for _, region := range page.Regions {
		for _, part := range cp.Parts() {
			if geometry.OnSameLine(part, region.Polygon, rm.tolerances.RegionLineOverlap) &&
				geometry.Adjacent(part, region.Polygon, rm.tolerances.RegionAdjacency) {
				matches = append(matches, region.ParagraphIndex)
				break
			}
		}
	}

	if len(matches) != 1 {
		rm.logger.Warn("selection did not resolve to exactly one paragraph region",
			zap.Int("page", page.Number),
			zap.Int("matches", len(matches)),
		)
	}
	if len(matches) == 0 {
		return 0, false
	}
	// Regions are stored in paragraph order, so the first match is the
	// smallest paragraph index.
	return matches[0], true
}

// ExtractWords reconstructs the excerpt covered by the selection within the
// given paragraph. Candidates are the words of the paragraph's precomputed
// region; a candidate is accepted when it is adjacent to and on the same
// line as any non-empty part of the selection. Accepted words are joined
// with single spaces in their original offset order.
func (rm *ReverseMapper) ExtractWords(page *model.Page, paragraphIndex int, cp model.ComplexPolygon) string {
	region, ok := regionForParagraph(page, paragraphIndex)
	if !ok || region.WordRange.IsEmpty() {
		return ""
	}

	var parts []string
	for i := region.WordRange.First; i <= region.WordRange.Last && i < len(page.Words); i++ {
		word := page.Words[i]
		if rm.covers(cp, word.Polygon) {
			parts = append(parts, word.Content)
		}
	}
	return strings.Join(parts, " ")
}

// covers reports whether any part of the selection covers the word box,
// using the part-specific adjacency margin.
func (rm *ReverseMapper) covers(cp model.ComplexPolygon, word model.Polygon) bool {
	type probe struct {
		part  model.Polygon
		delta float64
	}
	for _, p := range []probe{
		{cp.Head, rm.tolerances.Head},
		{cp.Body, rm.tolerances.Body},
		{cp.Tail, rm.tolerances.Tail},
	} {
		if p.part.IsZero() {
			continue
		}
		if geometry.Adjacent(word, p.part, p.delta) &&
			geometry.OnSameLine(word, p.part, rm.tolerances.RegionLineOverlap) {
			return true
		}
	}
	return false
}

// regionForParagraph finds the page region belonging to the paragraph.
func regionForParagraph(page *model.Page, paragraphIndex int) (model.Region, bool) {
	for _, region := range page.Regions {
		if region.ParagraphIndex == paragraphIndex {
			return region, true
		}
	}
	return model.Region{}, false
}
