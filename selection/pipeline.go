package selection

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/doclayer/anchor/geometry"
	"github.com/doclayer/anchor/locate"
	"github.com/doclayer/anchor/model"
)

// DefaultPixelsPerUnit is the screen-pixel to page-unit multiplier for
// documents measured in inches rendered at CSS pixel density.
const DefaultPixelsPerUnit = 72

// ViewportContext carries the caller-supplied conversion between screen
// pixels and page-space units: the accumulated scroll and fixed-chrome
// offsets of the rendered page, and the pixels-per-unit multiplier. It is an
// explicit value object; the engine never reads ambient viewport state.
type ViewportContext struct {
	OffsetX       float64
	OffsetY       float64
	PixelsPerUnit float64
}

// ScreenRect is a raw selection rectangle in screen pixels, as reported by
// the browser selection API.
type ScreenRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Selection is the canonical outcome of resolving a drawn selection: the
// geometry-snapped excerpt and the bounds to render its highlight with.
type Selection struct {
	Excerpt string
	Bounds  []model.Bounds
}

// Resolver orchestrates the selection pipeline: pixel-to-page conversion,
// reverse mapping to text, and the forward re-resolution that snaps the
// final highlight to the document's own recognized glyph boxes instead of
// the user's imprecise drag.
type Resolver struct {
	reverse *ReverseMapper
	forward *locate.Mapper
	logger  *zap.Logger
}

// NewResolver creates a selection resolver from its two mappers. A nil
// logger disables diagnostics.
func NewResolver(reverse *ReverseMapper, forward *locate.Mapper, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{reverse: reverse, forward: forward, logger: logger}
}

// Resolve converts raw screen rectangles on a page into a canonical excerpt
// and bounds pair. The page must exist and carry precomputed regions; that
// precondition is checked and reported rather than producing a silent wrong
// answer. An empty excerpt with no bounds is the valid outcome of a
// selection that covers no recognized words.
func (r *Resolver) Resolve(doc *model.Document, pageNumber int, rects []ScreenRect, viewport ViewportContext) (Selection, error) {
	page, err := doc.PageByNumber(pageNumber)
	if err != nil {
		return Selection{}, fmt.Errorf("resolve selection: %w", err)
	}
	if page.Regions == nil {
		return Selection{}, fmt.Errorf("resolve selection: page %d has not been preprocessed", pageNumber)
	}

	polygons := toPagePolygons(rects, viewport)
	if len(polygons) == 0 {
		return Selection{}, nil
	}

	var excerpts []string
	for _, cp := range geometry.Combine(polygons) {
		paragraphIndex, ok := r.reverse.ResolveParagraph(page, cp)
		if !ok {
			continue
		}
		if excerpt := r.reverse.ExtractWords(page, paragraphIndex, cp); excerpt != "" {
			excerpts = append(excerpts, excerpt)
		}
	}

	excerpt := strings.Join(excerpts, " ")
	if excerpt == "" {
		return Selection{}, nil
	}

	// The originally drawn polygons are deliberately discarded here: the
	// excerpt is re-resolved through the forward mapper so the highlight
	// aligns with recognized glyph geometry.
	bounds := r.forward.LocateText(excerpt, doc)
	if len(bounds) == 0 {
		r.logger.Warn("extracted excerpt could not be located for snapping",
			zap.Int("page", pageNumber),
			zap.Int("length", len(excerpt)),
		)
	}
	return Selection{Excerpt: excerpt, Bounds: bounds}, nil
}

// toPagePolygons converts non-degenerate screen rectangles into page-space
// polygons: chrome offsets subtracted, pixels divided out, coordinates
// rounded to four decimals.
func toPagePolygons(rects []ScreenRect, viewport ViewportContext) []model.Polygon {
	ppu := viewport.PixelsPerUnit
	if ppu == 0 {
		ppu = DefaultPixelsPerUnit
	}

	var polygons []model.Polygon
	for _, rect := range rects {
		if rect.Width <= 0 {
			continue
		}
		x0 := round4((rect.X - viewport.OffsetX) / ppu)
		y0 := round4((rect.Y - viewport.OffsetY) / ppu)
		x1 := round4((rect.X + rect.Width - viewport.OffsetX) / ppu)
		y1 := round4((rect.Y + rect.Height - viewport.OffsetY) / ppu)
		polygons = append(polygons, model.NewPolygonFromRect(x0, y0, x1, y1))
	}
	return polygons
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
