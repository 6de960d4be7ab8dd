// Package locate resolves excerpt text to document geometry. It defines the
// text-locate collaborator contract, a default implementation that aligns
// tolerantly-normalized text against a page's recognized words, and the
// forward mapper that turns located fragments into page-scoped bounds for
// highlight rendering.
package locate

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/doclayer/anchor/model"
	"github.com/doclayer/anchor/search"
)

// Fragment is one contiguous located piece of an excerpt: its head/body/tail
// geometry on a single page.
type Fragment struct {
	PageNumber int
	Polygon    model.ComplexPolygon
}

// Result is a successful text location: the canonical excerpt as recognized
// by the document, and its geometry already split per contiguous region.
type Result struct {
	Excerpt   string
	Fragments []Fragment
}

// Locator finds excerpt text inside a document's text stream. The boolean
// result is false when the text does not occur, which callers must treat as
// a normal "nothing to highlight" outcome.
type Locator interface {
	Locate(text string, doc *model.Document) (Result, bool)
}

// DocumentLocator is the default Locator. It matches the query token by
// token against each page's offset-sorted words, tolerating whitespace,
// punctuation, and compatibility-form differences, and reports the first
// occurrence. The matched word run is split at paragraph-region boundaries
// so each fragment stays inside one contiguous region, then folded into a
// head/body/tail complex polygon per visual line run.
type DocumentLocator struct{}

// NewDocumentLocator creates a locator with default matching behavior.
func NewDocumentLocator() *DocumentLocator {
	return &DocumentLocator{}
}

// Locate implements Locator.
func (dl *DocumentLocator) Locate(text string, doc *model.Document) (Result, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 || doc == nil {
		return Result{}, false
	}

	for _, page := range doc.Pages {
		run, ok := matchWords(page.Words, tokens)
		if !ok {
			continue
		}
		return Result{
			Excerpt:   joinWords(page.Words, run),
			Fragments: buildFragments(page, run),
		}, true
	}
	return Result{}, false
}

// matchWords finds the first run of words whose normalized contents equal
// the token sequence. Words that normalize to nothing (bare punctuation) are
// transparent: they neither match a token nor break a run.
func matchWords(words []model.Word, tokens []string) (model.IndexRange, bool) {
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = normalizeToken(w.Content)
	}

	for start := 0; start < len(words); start++ {
		if normalized[start] != tokens[0] {
			continue
		}
		matched := 1
		last := start
		for i := start + 1; i < len(words) && matched < len(tokens); i++ {
			if normalized[i] == "" {
				continue
			}
			if normalized[i] != tokens[matched] {
				matched = 0
				break
			}
			matched++
			last = i
		}
		if matched == len(tokens) {
			return model.IndexRange{First: start, Last: last}, true
		}
	}
	return model.IndexRange{}, false
}

// buildFragments splits a matched word run at paragraph-region boundaries
// and folds each piece into a complex polygon.
func buildFragments(page *model.Page, run model.IndexRange) []Fragment {
	var fragments []Fragment
	for _, piece := range splitAtRegions(page.Regions, run) {
		cp := foldWords(page, piece)
		if cp.IsZero() {
			continue
		}
		fragments = append(fragments, Fragment{PageNumber: page.Number, Polygon: cp})
	}
	return fragments
}

// splitAtRegions cuts the word index run wherever it crosses from one
// paragraph region into the next. Without precomputed regions the run stays
// whole.
func splitAtRegions(regions []model.Region, run model.IndexRange) []model.IndexRange {
	var pieces []model.IndexRange
	rest := run
	for _, region := range regions {
		wr := region.WordRange
		if wr.IsEmpty() || rest.First > wr.Last || rest.Last < wr.First {
			continue
		}
		last := rest.Last
		if wr.Last < last {
			last = wr.Last
		}
		pieces = append(pieces, model.IndexRange{First: rest.First, Last: last})
		if last == rest.Last {
			return pieces
		}
		rest = model.IndexRange{First: last + 1, Last: rest.Last}
	}
	return append(pieces, rest)
}

// foldWords groups a word run into visual-line rows and folds the rows into
// a head/body/tail triple: the first row becomes the head, the last the
// tail, and the unioned middle rows the body.
func foldWords(page *model.Page, run model.IndexRange) model.ComplexPolygon {
	var rows []model.Polygon
	for _, line := range page.Lines {
		start, end, ok := line.Extent()
		if !ok {
			continue
		}
		r, ok := search.Words(page.Words[run.First:run.Last+1], search.OffsetRange{Start: start, End: end})
		if !ok {
			continue
		}
		var row model.Polygon
		for i := r.First; i <= r.Last; i++ {
			row = row.Union(page.Words[run.First+i].Polygon)
		}
		rows = append(rows, row)
	}

	switch len(rows) {
	case 0:
		return model.ComplexPolygon{}
	case 1:
		return model.ComplexPolygon{Head: rows[0]}
	case 2:
		return model.ComplexPolygon{Head: rows[0], Tail: rows[1]}
	default:
		var body model.Polygon
		for _, row := range rows[1 : len(rows)-1] {
			body = body.Union(row)
		}
		return model.ComplexPolygon{Head: rows[0], Body: body, Tail: rows[len(rows)-1]}
	}
}

// joinWords reassembles the recognized form of a matched run.
func joinWords(words []model.Word, run model.IndexRange) string {
	parts := make([]string, 0, run.Len())
	for i := run.First; i <= run.Last; i++ {
		parts = append(parts, words[i].Content)
	}
	return strings.Join(parts, " ")
}

// tokenize normalizes free-form query text into comparison tokens.
func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		if t := normalizeToken(field); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// normalizeToken lowercases a token, applies NFKC compatibility
// normalization, and strips punctuation, so that quoting and OCR
// punctuation drift do not defeat a match.
func normalizeToken(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
