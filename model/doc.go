// Package model defines the document structures the anchor engine operates
// on: pages, words, lines, and paragraphs as produced by an AI layout
// extraction service, together with the geometric primitives (polygons,
// spans, regions, bounds) shared by every other package.
//
// All geometry is expressed in page-space units (inches), with the origin at
// the top-left corner of the page and Y increasing downward. A Polygon is a
// quadrilateral stored as eight numbers but treated as axis-aligned for every
// comparison the engine performs.
//
// A loaded Document is immutable. The only derived structure, per-page
// Regions, is produced by the layout package as a pure transform; everything
// else (columns, complex polygons, search results) is created and discarded
// per query.
package model
