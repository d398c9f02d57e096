package contour

import (
	"github.com/tsawler/contour/export"
	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/reader"
	"github.com/tsawler/contour/score"
)

// Extractor runs the outline-extraction pipeline for one document. It
// is configured fluently and executed by a terminal operation (Outline,
// Headings, JSON). Extractors are cheap; create one per document.
type Extractor struct {
	filename string
	doc      *model.Document
	options  Options
}

// Outline runs the full pipeline and returns the document outline.
// Identical input always produces an identical outline.
func (e *Extractor) Outline() (model.Outline, error) {
	doc, headings, err := e.run()
	if err != nil {
		return model.Outline{}, err
	}
	return outline.Assemble(doc.Name, headings), nil
}

// Headings runs the pipeline and returns the accepted, leveled headings
// with their sub-score breakdown, for diagnostics and tuning.
func (e *Extractor) Headings() ([]model.ScoredHeading, error) {
	_, headings, err := e.run()
	return headings, err
}

// JSON runs the pipeline and returns the outline as compact JSON.
func (e *Extractor) JSON() ([]byte, error) {
	o, err := e.Outline()
	if err != nil {
		return nil, err
	}
	return export.JSON(o)
}

// run executes glyphs → lines → candidates → scored candidates →
// leveled headings. Each stage produces a new value; nothing upstream
// is modified.
func (e *Extractor) run() (model.Document, []model.ScoredHeading, error) {
	scorer, err := score.NewScorerWithConfig(e.options.Scoring)
	if err != nil {
		return model.Document{}, nil, err
	}

	doc, err := e.document()
	if err != nil {
		return model.Document{}, nil, err
	}

	grouper := layout.NewGrouperWithConfig(e.options.Grouper)
	lines := grouper.GroupDocument(doc)

	candidates := layout.ExtractCandidatesWithConfig(lines, e.options.Candidates)
	scored := scorer.Score(lines, candidates)
	accepted := scorer.Accept(scored)

	assigner := outline.NewAssignerWithConfig(e.options.Levels)
	return doc, assigner.Assign(accepted), nil
}

// document retrieves the glyph stream, from the injected document or
// the PDF reader. Glyph retrieval is a single synchronous call; the
// scoring stages never stream.
func (e *Extractor) document() (model.Document, error) {
	if e.doc != nil {
		return *e.doc, nil
	}

	r, err := reader.Open(e.filename)
	if err != nil {
		return model.Document{}, err
	}
	return r.Document()
}
