// Package contour extracts a structured, leveled outline (heading text,
// hierarchy level, page number) from PDF documents, without relying on
// consistent font metadata.
//
// Basic usage:
//
//	o, err := contour.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	for _, entry := range o.Entries {
//	    fmt.Println(entry.Level, entry.Heading, entry.PageNumber)
//	}
//
// With options:
//
//	o, err := contour.Open("report.pdf").
//	    MinConfidence(0.6).
//	    MaxDepth(3).
//	    Outline()
//
// Glyph streams from sources other than the built-in PDF reader can be
// fed in directly:
//
//	o, err := contour.FromDocument(doc).Outline()
//
// For advanced use the pipeline stages are available individually in
// the layout, score and outline packages.
package contour

import (
	"github.com/tsawler/contour/model"
)

// Open prepares an extractor for a PDF file. The file is not touched
// until a terminal operation such as Outline or Headings runs.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument prepares an extractor for an already-extracted glyph
// stream. Useful for tests and for callers with their own PDF reader.
func FromDocument(doc model.Document) *Extractor {
	return &Extractor{
		doc:     &doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for scripts and
// tests where error handling would be cumbersome.
//
// Example:
//
//	o := contour.Must(contour.Open("document.pdf").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
