// Package ocr provides the recognition engine boundary used by text extraction.
// The production engine shells out to the tesseract CLI; tests supply fakes.
package ocr

import "context"

// Engine recognizes text in a single image file.
type Engine interface {
	// Recognize runs OCR on the image at imagePath and returns the recognized text.
	// Empty output is a valid result.
	Recognize(ctx context.Context, imagePath string) (string, error)
	// Available reports whether the engine can run at all (binary present, etc.).
	Available() error
}
