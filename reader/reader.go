// Package reader opens PDF files and produces the positioned glyph
// stream consumed by the extraction pipeline.
//
// PDF object parsing and decoding is delegated to pdfcpu; this package
// walks the decoded page content streams and tracks the text state
// (font, size, position) well enough to emit per-character glyphs with
// best-effort geometry. Exotic content (Type 3 fonts, raw hex strings)
// degrades to missing glyphs, never to an error for the page.
package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/contour/model"
)

// ErrExtraction indicates the document could not be opened or decoded
// at all (corrupt, encrypted, unsupported). Callers should skip the
// document and continue their batch.
var ErrExtraction = errors.New("reader: cannot extract glyphs")

// Reader extracts a glyph stream from one PDF document
type Reader struct {
	ctx      *pdfmodel.Context
	filename string
	logger   *slog.Logger
}

// Open opens and validates a PDF file
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, filename, err)
	}

	return &Reader{
		ctx:      ctx,
		filename: filename,
		logger:   slog.Default(),
	}, nil
}

// WithLogger sets the logger used for per-page diagnostics
func (r *Reader) WithLogger(logger *slog.Logger) *Reader {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.ctx.PageCount
}

// Document extracts the full glyph stream, ordered by page. Pages whose
// content cannot be decoded yield zero glyphs and a logged warning; the
// document as a whole still succeeds.
func (r *Reader) Document() (model.Document, error) {
	doc := model.Document{
		Name: stem(r.filename),
	}

	dims, err := r.ctx.PageDims()
	if err != nil {
		dims = nil
	}

	for pageNr := 1; pageNr <= r.ctx.PageCount; pageNr++ {
		page := model.Page{Index: pageNr - 1}
		if len(dims) >= pageNr {
			page.Width = dims[pageNr-1].Width
			page.Height = dims[pageNr-1].Height
		}

		content, err := pdfcpu.ExtractPageContent(r.ctx, pageNr)
		if err != nil {
			r.logger.Warn("page content unavailable", "file", r.filename, "page", pageNr, "error", err)
			doc.Pages = append(doc.Pages, page)
			continue
		}
		data, err := io.ReadAll(content)
		if err != nil {
			r.logger.Warn("page content unreadable", "file", r.filename, "page", pageNr, "error", err)
			doc.Pages = append(doc.Pages, page)
			continue
		}

		page.Glyphs = parseContentStream(data, pageNr-1)
		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}

// textState tracks the subset of the PDF text state needed for glyph
// positioning.
type textState struct {
	x, y         float64 // current glyph origin
	lineX, lineY float64 // origin of the current text line
	fontName     string
	fontSize     float64
	leading      float64
}

// pdfStringRe matches PDF literal strings: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// glyphWidthRatio approximates advance width as a fraction of font
// size; exact widths would require font metrics the pipeline does not
// need for line grouping.
const glyphWidthRatio = 0.5

// parseContentStream walks a decoded content stream and emits glyphs
// for every shown string, tracking Tf, Tm, Td, TD, TL and T* state.
func parseContentStream(data []byte, pageIndex int) []model.Glyph {
	st := textState{fontSize: 12}
	var glyphs []model.Glyph

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasSuffix(line, "Tf"):
			name, size, ok := parseTf(line)
			if ok {
				st.fontName = name
				st.fontSize = size
			}

		case strings.HasSuffix(line, "Tm"):
			if nums := trailingNumbers(line, 6); nums != nil {
				st.lineX, st.lineY = nums[4], nums[5]
				st.x, st.y = st.lineX, st.lineY
			}

		case strings.HasSuffix(line, "TD"):
			if nums := trailingNumbers(line, 2); nums != nil {
				st.leading = -nums[1]
				st.moveLine(nums[0], nums[1])
			}

		case strings.HasSuffix(line, "Td"):
			if nums := trailingNumbers(line, 2); nums != nil {
				st.moveLine(nums[0], nums[1])
			}

		case strings.HasSuffix(line, "TL"):
			if nums := trailingNumbers(line, 1); nums != nil {
				st.leading = nums[0]
			}

		case line == "T*":
			st.nextLine()

		case strings.HasSuffix(line, "Tj"), strings.HasSuffix(line, "TJ"):
			glyphs = append(glyphs, showText(&st, line, pageIndex)...)

		case strings.HasSuffix(line, "'"):
			st.nextLine()
			glyphs = append(glyphs, showText(&st, line, pageIndex)...)
		}
	}

	return glyphs
}

// moveLine applies a Td/TD displacement relative to the current line
// origin.
func (st *textState) moveLine(tx, ty float64) {
	st.lineX += tx
	st.lineY += ty
	st.x, st.y = st.lineX, st.lineY
}

// nextLine advances to the start of the next text line
func (st *textState) nextLine() {
	leading := st.leading
	if leading == 0 {
		leading = st.fontSize * 1.2
	}
	st.lineY -= leading
	st.x, st.y = st.lineX, st.lineY
}

// showText emits one glyph per rune of every string literal on the
// operator line, advancing the X position as it goes.
func showText(st *textState, line string, pageIndex int) []model.Glyph {
	var glyphs []model.Glyph
	bold := boldFont(st.fontName)
	italic := italicFont(st.fontName)

	for _, m := range pdfStringRe.FindAllStringSubmatch(line, -1) {
		for _, r := range decodePDFString(m[1]) {
			w := st.fontSize * glyphWidthRatio
			glyphs = append(glyphs, model.Glyph{
				Text:      string(r),
				PageIndex: pageIndex,
				BBox:      model.NewBBox(st.x, st.y, w, st.fontSize),
				FontName:  st.fontName,
				FontSize:  st.fontSize,
				Bold:      bold,
				Italic:    italic,
			})
			st.x += w
		}
	}
	return glyphs
}

// parseTf parses "/Name size Tf"
func parseTf(line string) (string, float64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", 0, false
	}
	name := strings.TrimPrefix(fields[len(fields)-3], "/")
	size, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	if err != nil || size <= 0 {
		return "", 0, false
	}
	return name, size, true
}

// trailingNumbers parses the n numeric operands preceding the operator
// at the end of the line.
func trailingNumbers(line string, n int) []float64 {
	fields := strings.Fields(line)
	if len(fields) < n+1 {
		return nil
	}
	nums := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[len(fields)-1-n+i], 64)
		if err != nil {
			return nil
		}
		nums[i] = v
	}
	return nums
}

// decodePDFString handles basic PDF escape sequences, including octal
// escapes like \040.
func decodePDFString(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

func boldFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "bold") ||
		strings.Contains(n, "black") ||
		strings.Contains(n, "heavy") ||
		strings.Contains(n, "semibold") ||
		strings.Contains(n, "demibold")
}

func italicFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "italic") || strings.Contains(n, "oblique")
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
