package ocr

import "fmt"

// EngineUnavailableError indicates the OCR engine cannot run at all
// (binary missing from PATH or a configured path that does not exist).
type EngineUnavailableError struct {
	Binary string
	Cause  error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("OCR engine %q not found: %v. Ensure tesseract is installed and in PATH", e.Binary, e.Cause)
}

func (e *EngineUnavailableError) Unwrap() error {
	return e.Cause
}

// RecognitionError indicates the engine ran but failed on a specific input.
type RecognitionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RecognitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recognition failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("recognition failed for %s: %s", e.Path, e.Message)
}

func (e *RecognitionError) Unwrap() error {
	return e.Cause
}
