package extract

import "fmt"

// FileNotFoundError indicates the input file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// UnsupportedFormatError indicates the file extension is not recognized.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: use PDF or common image formats", e.Extension, e.Path)
}

// DocumentError indicates a document-level extraction failure
// (unreadable or corrupted PDF, as opposed to a single failed page).
type DocumentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("document extraction failed for %s: %s", e.Path, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
