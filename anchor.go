// Package anchor aligns document geometry with document text. Given the
// layout-extraction result for a document (pages, words, lines, and
// paragraphs with character-offset spans and bounding polygons), it maps in
// both directions: excerpt text to the bounding polygons that highlight it,
// and a free-form selection polygon back to the paragraph and exact words it
// covers.
//
// Basic usage:
//
//	doc, err := schema.Load("report.json")
//	if err != nil {
//	    // handle error
//	}
//	engine, err := anchor.New(doc)
//	if err != nil {
//	    // handle error
//	}
//	bounds := engine.LocateText("the quarterly totals")
//
// Resolving a drawn selection back to text:
//
//	sel, err := engine.ResolveSelection(1, rects, selection.ViewportContext{
//	    OffsetX:       scrollX,
//	    OffsetY:       scrollY,
//	    PixelsPerUnit: 72,
//	})
//
// All operations are synchronous pure functions over the immutable
// preprocessed document, so the engine is safe to call from concurrent
// selection events without locking.
package anchor

import (
	"fmt"

	"github.com/doclayer/anchor/layout"
	"github.com/doclayer/anchor/locate"
	"github.com/doclayer/anchor/model"
	"github.com/doclayer/anchor/selection"
)

// Engine is the geometry-to-text alignment engine for one loaded document.
// It preprocesses paragraph regions once at construction; everything after
// that is a per-query pure computation.
type Engine struct {
	doc      *model.Document
	forward  *locate.Mapper
	reverse  *selection.ReverseMapper
	resolver *selection.Resolver
	locator  locate.Locator
}

// New preprocesses the document and returns an engine bound to it. The
// input document is not mutated; the engine works on an annotated copy.
func New(doc *model.Document, opts ...Option) (*Engine, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	annotated, err := layout.Preprocess(doc)
	if err != nil {
		return nil, fmt.Errorf("anchor: %w", err)
	}

	forward := locate.NewMapperWithConfig(options.locator, locate.MapperConfig{
		ForceOverlap: options.forceOverlap,
	})
	reverse := selection.NewReverseMapperWithConfig(options.tolerances, options.logger)

	return &Engine{
		doc:      annotated,
		forward:  forward,
		reverse:  reverse,
		resolver: selection.NewResolver(reverse, forward, options.logger),
		locator:  options.locator,
	}, nil
}

// Document returns the preprocessed document, including the per-page
// regions available for paragraph-level hit testing.
func (e *Engine) Document() *model.Document {
	return e.doc
}

// Regions returns the precomputed paragraph regions of a page.
func (e *Engine) Regions(pageNumber int) ([]model.Region, error) {
	page, err := e.doc.PageByNumber(pageNumber)
	if err != nil {
		return nil, err
	}
	return page.Regions, nil
}

// LocateText resolves excerpt text to per-page highlight bounds. An empty
// result means the text was not found, a valid outcome.
func (e *Engine) LocateText(text string) []model.Bounds {
	return e.forward.LocateText(text, e.doc)
}

// CitationRegions resolves excerpt text to its per-page groups of complex
// polygons, the shape the citation-review layer consumes.
func (e *Engine) CitationRegions(text string) []model.CitationRegions {
	result, found := e.locator.Locate(text, e.doc)
	if !found {
		return nil
	}
	return locate.GroupByPage(result.Fragments)
}

// ResolveSelection runs the full selection pipeline: raw screen rectangles
// in, canonical excerpt and geometry-snapped bounds out.
func (e *Engine) ResolveSelection(pageNumber int, rects []selection.ScreenRect, viewport selection.ViewportContext) (selection.Selection, error) {
	return e.resolver.Resolve(e.doc, pageNumber, rects, viewport)
}
