package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// extractPDF runs the per-page extraction loop. Each page is processed
// independently: its embedded text layer is tried first, then OCR on the
// page image for scanned pages. A failed page degrades to an inline error
// marker instead of aborting the document.
func (x *Extractor) extractPDF(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, &DocumentError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, &DocumentError{
			Path:    path,
			Message: "failed to read PDF; it might be corrupted or password-protected",
			Cause:   err,
		}
	}

	pageCount := pdfCtx.PageCount
	if pageCount == 0 {
		x.logger.Warn("PDF has 0 pages", zap.String("file", filepath.Base(path)))
		return &Result{Text: "", SourceKind: KindDocument, PageCount: 0}, nil
	}

	var parts []string
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		pageText, err := x.extractPage(ctx, pdfCtx, pageNr)
		if err != nil {
			x.logger.Error("page extraction failed",
				zap.String("file", filepath.Base(path)),
				zap.Int("page", pageNr),
				zap.Error(err),
			)
			parts = append(parts, fmt.Sprintf("\n--- ERROR PROCESSING PAGE %d ---", pageNr))
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			x.logger.Warn("no text detected on page",
				zap.String("file", filepath.Base(path)),
				zap.Int("page", pageNr),
			)
			continue
		}
		parts = append(parts, fmt.Sprintf("\n--- Page %d/%d ---\n%s", pageNr, pageCount, pageText))
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		x.logger.Warn("no text extracted from PDF after processing all pages",
			zap.String("file", filepath.Base(path)))
	}

	return &Result{Text: text, SourceKind: KindDocument, PageCount: pageCount}, nil
}

// extractPage returns the text of a single page: text layer first, then
// OCR of the page image for scanned pages.
func (x *Extractor) extractPage(ctx context.Context, pdfCtx *model.Context, pageNr int) (string, error) {
	if text := extractTextLayer(pdfCtx, pageNr); strings.TrimSpace(text) != "" {
		return text, nil
	}
	return x.recognizePageImage(ctx, pdfCtx, pageNr)
}

// recognizePageImage extracts the page's embedded image to a temp file and
// runs the OCR engine on it. Pages without images yield empty text.
func (x *Extractor) recognizePageImage(ctx context.Context, pdfCtx *model.Context, pageNr int) (string, error) {
	images, err := pdfcpu.ExtractPageImages(pdfCtx, pageNr, false)
	if err != nil {
		return "", fmt.Errorf("extracting page %d images: %w", pageNr, err)
	}
	if len(images) == 0 {
		return "", nil
	}

	var recognized []string
	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil {
			return "", fmt.Errorf("reading page %d image %s: %w", pageNr, img.Name, err)
		}

		ext := img.FileType
		if ext == "" {
			ext = "png"
		}
		tmp, err := os.CreateTemp("", fmt.Sprintf("page-%d-*.%s", pageNr, ext))
		if err != nil {
			return "", fmt.Errorf("creating temp image for page %d: %w", pageNr, err)
		}
		tmpPath := tmp.Name()

		_, writeErr := tmp.Write(data)
		closeErr := tmp.Close()
		if writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("writing temp image for page %d: %w", pageNr, writeErr)
		}

		text, err := x.engine.Recognize(ctx, tmpPath)
		_ = os.Remove(tmpPath)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			recognized = append(recognized, text)
		}
	}

	return strings.Join(recognized, "\n"), nil
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextLayer pulls text from the page's content stream operators.
// Scanned pages have no text operators and return "".
func extractTextLayer(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj / TJ show-text operators carry the visible strings.
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.Write(m[1])
			}
			sb.WriteByte(' ')
		}

		// T* moves to the start of the next text line.
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSpace(sb.String())
}
