// Package pdfextract turns an uploaded PDF into plain text, a list of
// extracted raster images and heuristically parsed metadata. It owns no
// persistent state: the result is consumed to pre-fill an activity record.
package pdfextract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/observability"
)

// Extractor parses uploaded PDF files
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a document extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractFile extracts a document from a file on disk
func (e *Extractor) ExtractFile(path string) (*models.DocumentoExtraido, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	return e.Extract(f, info.Size())
}

// Extract walks every page in sequence, accumulating text (pages separated by
// newlines) and embedded images. A file that cannot be parsed as a PDF at all
// is the one failure propagated to the caller; individual page or image
// failures are absorbed.
func (e *Extractor) Extract(ra io.ReaderAt, size int64) (doc *models.DocumentoExtraido, err error) {
	// The parser panics on malformed structures
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var text strings.Builder
	var imagens []string

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text.WriteString(e.pageText(page))
		text.WriteString("\n")
		imagens = append(imagens, e.pageImages(page)...)
	}

	full := text.String()
	observability.RecordPDFExtraction()

	return &models.DocumentoExtraido{
		Texto:    full,
		Imagens:  imagens,
		Metadata: parseMetadata(full),
	}, nil
}

// pageText joins the page's text runs with single spaces. A page whose
// content stream cannot be decoded contributes nothing.
func (e *Extractor) pageText(page pdf.Page) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("page text extraction failed", zap.Any("panic", r))
			out = ""
		}
	}()

	content := page.Content()
	parts := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		parts = append(parts, t.S)
	}
	return strings.Join(parts, " ")
}

// pageImages collects the page's image XObjects and inline images
func (e *Extractor) pageImages(page pdf.Page) []string {
	var out []string

	resources := page.Resources()
	if resources.Kind() == pdf.Dict {
		xobjects := resources.Key("XObject")
		if xobjects.Kind() == pdf.Dict {
			for _, name := range xobjects.Keys() {
				obj := xobjects.Key(name)
				if obj.Kind() != pdf.Stream || obj.Key("Subtype").Name() != "Image" {
					continue
				}
				if uri, ok := e.decodeImageObject(obj); ok {
					out = append(out, uri)
				}
			}
		}
	}

	out = append(out, e.inlineImages(page)...)
	return out
}

// decodeImageObject converts an image stream's raw pixel buffer into an
// encoded data URI. Failures (unsupported filter, odd component layout) are
// absorbed per image.
func (e *Extractor) decodeImageObject(obj pdf.Value) (uri string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("image decode failed", zap.Any("panic", r))
			observability.RecordPDFImageSkipped()
			uri, ok = "", false
		}
	}()

	width := int(obj.Key("Width").Int64())
	height := int(obj.Key("Height").Int64())
	if bpc := obj.Key("BitsPerComponent").Int64(); bpc != 0 && bpc != 8 {
		observability.RecordPDFImageSkipped()
		return "", false
	}

	rc := obj.Reader()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		e.logger.Warn("image read failed", zap.Error(err))
		observability.RecordPDFImageSkipped()
		return "", false
	}

	return e.encodePixels(data, width, height)
}

func (e *Extractor) encodePixels(data []byte, width, height int) (string, bool) {
	rgba, ok := ExpandToRGBA(data, width, height)
	if !ok {
		observability.RecordPDFImageSkipped()
		return "", false
	}

	uri, err := encodePNGDataURI(rgba, width, height)
	if err != nil {
		e.logger.Warn("image encode failed", zap.Error(err))
		observability.RecordPDFImageSkipped()
		return "", false
	}
	return uri, true
}
