// Package schema decodes the layout-extraction service's analyze result
// into the engine's document model. The JSON shape is consumed as delivered:
// pages with offset-sorted words and lines, plus document-level paragraphs
// with per-page bounding regions. The engine never writes this format back.
package schema

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/doclayer/anchor/model"
)

// analyzeResult mirrors the extraction service's JSON layout output.
type analyzeResult struct {
	Pages      []pageResult      `json:"pages"`
	Paragraphs []paragraphResult `json:"paragraphs"`
}

type pageResult struct {
	PageNumber int          `json:"pageNumber"`
	Unit       string       `json:"unit"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Words      []wordResult `json:"words"`
	Lines      []lineResult `json:"lines"`
}

type wordResult struct {
	Content string     `json:"content"`
	Polygon []float64  `json:"polygon"`
	Span    model.Span `json:"span"`
}

type lineResult struct {
	Content string       `json:"content"`
	Polygon []float64    `json:"polygon"`
	Spans   []model.Span `json:"spans"`
}

type paragraphResult struct {
	Content         string               `json:"content"`
	Spans           []model.Span         `json:"spans"`
	BoundingRegions []boundingRegionJSON `json:"boundingRegions"`
}

type boundingRegionJSON struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon"`
}

// Decode parses an analyze result from JSON and validates the invariants the
// engine relies on: eight-value polygons and monotonically increasing word
// offsets within each page.
func Decode(data []byte) (*model.Document, error) {
	var raw analyzeResult
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode analyze result: %w", err)
	}
	return build(raw)
}

// DecodeReader decodes an analyze result from a stream.
func DecodeReader(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read analyze result: %w", err)
	}
	return Decode(data)
}

// Load reads and decodes an analyze result file.
func Load(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load analyze result: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func build(raw analyzeResult) (*model.Document, error) {
	doc := &model.Document{
		Pages:      make([]*model.Page, 0, len(raw.Pages)),
		Paragraphs: make([]model.Paragraph, 0, len(raw.Paragraphs)),
	}

	for i, p := range raw.Pages {
		number := p.PageNumber
		if number == 0 {
			number = i + 1
		}
		page := &model.Page{
			Number: number,
			Unit:   p.Unit,
			Width:  p.Width,
			Height: p.Height,
			Words:  make([]model.Word, 0, len(p.Words)),
			Lines:  make([]model.Line, 0, len(p.Lines)),
		}

		lastOffset := -1
		for j, w := range p.Words {
			polygon, err := toPolygon(w.Polygon)
			if err != nil {
				return nil, fmt.Errorf("page %d word %d: %w", number, j, err)
			}
			if w.Span.Offset <= lastOffset {
				return nil, fmt.Errorf("page %d word %d: offset %d not increasing", number, j, w.Span.Offset)
			}
			lastOffset = w.Span.Offset
			page.Words = append(page.Words, model.Word{Content: w.Content, Polygon: polygon, Span: w.Span})
		}

		for j, l := range p.Lines {
			polygon, err := toPolygon(l.Polygon)
			if err != nil {
				return nil, fmt.Errorf("page %d line %d: %w", number, j, err)
			}
			page.Lines = append(page.Lines, model.Line{Content: l.Content, Polygon: polygon, Spans: l.Spans})
		}

		doc.Pages = append(doc.Pages, page)
	}

	for i, para := range raw.Paragraphs {
		out := model.Paragraph{
			Content:         para.Content,
			Spans:           para.Spans,
			BoundingRegions: make([]model.BoundingRegion, 0, len(para.BoundingRegions)),
		}
		for _, br := range para.BoundingRegions {
			polygon, err := toPolygon(br.Polygon)
			if err != nil {
				return nil, fmt.Errorf("paragraph %d: %w", i, err)
			}
			out.BoundingRegions = append(out.BoundingRegions, model.BoundingRegion{
				PageNumber: br.PageNumber,
				Polygon:    polygon,
			})
		}
		doc.Paragraphs = append(doc.Paragraphs, out)
	}

	return doc, nil
}

func toPolygon(values []float64) (model.Polygon, error) {
	if len(values) != 8 {
		return model.Polygon{}, fmt.Errorf("polygon has %d values, want 8", len(values))
	}
	var p model.Polygon
	copy(p[:], values)
	return p, nil
}
