// Package extract pulls text out of resume and job description files,
// dispatching between single-pass image recognition and a per-page
// document loop.
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/venev-g/resume-jd-matching/internal/ocr"
)

// Kind identifies the source file category.
type Kind string

const (
	// KindDocument is a paginated document (PDF).
	KindDocument Kind = "document"
	// KindImage is a single-image source.
	KindImage Kind = "image"
)

// Result holds the extracted text and provenance of one input file.
type Result struct {
	Text       string
	SourceKind Kind
	PageCount  int
}

// imageExtensions are the recognized single-image formats.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".tif":  true,
	".bmp":  true,
	".gif":  true,
}

// Extractor extracts text from files using an OCR engine.
type Extractor struct {
	engine ocr.Engine
	logger *zap.Logger
}

// New creates an Extractor. A nil logger falls back to a no-op logger.
func New(engine ocr.Engine, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{engine: engine, logger: logger}
}

// Extract returns the text content of the file at path.
// Missing files always fail with *FileNotFoundError before any format
// dispatch; unrecognized extensions fail with *UnsupportedFormatError.
// Empty extracted text is a valid result.
func (x *Extractor) Extract(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &FileNotFoundError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(path))
	x.logger.Info("extracting text",
		zap.String("file", filepath.Base(path)),
		zap.String("extension", ext),
	)

	switch {
	case ext == ".pdf":
		return x.extractPDF(ctx, path)
	case imageExtensions[ext]:
		return x.extractImage(ctx, path)
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// extractImage runs single-pass recognition on an image file.
func (x *Extractor) extractImage(ctx context.Context, path string) (*Result, error) {
	text, err := x.engine.Recognize(ctx, path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		x.logger.Warn("no text detected in image", zap.String("file", filepath.Base(path)))
	}
	return &Result{Text: text, SourceKind: KindImage, PageCount: 1}, nil
}
