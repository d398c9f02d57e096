// Package model provides the data types shared by every stage of the
// outline-extraction pipeline.
//
// Data flows strictly forward through these representations:
//
//	Glyph → Line → Candidate → ScoredHeading → Outline
//
// Each stage produces new values; nothing mutates an upstream stage's
// output. A [Glyph] is one positioned character as delivered by the PDF
// glyph source. The layout package clusters glyphs into [Line] values and
// filters those into [Candidate] values. The score package fills in each
// candidate's [SubScores], and the outline package turns accepted
// candidates into [ScoredHeading] values and finally an [Outline].
//
// Geometric primitives ([Point], [BBox]) use the PDF coordinate system:
// the origin is at the bottom-left of the page and Y increases upward, so
// the first line on a page has the largest Top value.
package model
