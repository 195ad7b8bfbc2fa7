package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFileName strips path components and unsafe characters from an
// uploaded file name, keeping the extension intact.
func sanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = unsafeNameRe.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "upload"
	}
	return base
}

// saveUpload writes a multipart file into dir under a unique timestamped
// name and returns the full path. The caller owns the file and must remove
// it when done.
func saveUpload(dir string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8],
		sanitizeFileName(header.Filename),
	)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}
