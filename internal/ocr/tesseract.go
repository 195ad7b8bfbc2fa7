package ocr

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultBinary is the tesseract executable looked up in PATH.
	DefaultBinary = "tesseract"
	// DefaultLanguage is the tesseract language code used when none is configured.
	DefaultLanguage = "eng"
	// RecognitionTimeout bounds a single tesseract invocation.
	RecognitionTimeout = 60 * time.Second
)

// Tesseract runs OCR by invoking the tesseract CLI.
type Tesseract struct {
	Binary   string
	Language string
}

// NewTesseract returns a Tesseract engine. Empty binary or language
// fall back to the defaults.
func NewTesseract(binary, language string) *Tesseract {
	if binary == "" {
		binary = DefaultBinary
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &Tesseract{Binary: binary, Language: language}
}

// Available checks that the tesseract binary can be resolved.
func (t *Tesseract) Available() error {
	if _, err := exec.LookPath(t.Binary); err != nil {
		return &EngineUnavailableError{Binary: t.Binary, Cause: err}
	}
	return nil
}

// Recognize runs tesseract on a single image and returns the recognized text.
// Output goes to stdout ("-" output target); stderr is kept for diagnostics.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := t.Available(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, RecognitionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.Binary, imagePath, "-", "-l", t.Language)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "tesseract exited with error"
		}
		if strings.Contains(msg, "Failed loading language") {
			msg += ". Ensure the language pack for " + t.Language + " is installed"
		}
		return "", &RecognitionError{Path: imagePath, Message: msg, Cause: err}
	}

	return stdout.String(), nil
}
