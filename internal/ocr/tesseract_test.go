package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTesseract_Defaults(t *testing.T) {
	engine := NewTesseract("", "")
	assert.Equal(t, DefaultBinary, engine.Binary)
	assert.Equal(t, DefaultLanguage, engine.Language)
}

func TestNewTesseract_Custom(t *testing.T) {
	engine := NewTesseract("/opt/tesseract/bin/tesseract", "deu")
	assert.Equal(t, "/opt/tesseract/bin/tesseract", engine.Binary)
	assert.Equal(t, "deu", engine.Language)
}

func TestTesseract_Available_MissingBinary(t *testing.T) {
	engine := NewTesseract("definitely-not-a-real-binary-xyz", "eng")
	err := engine.Available()
	require.Error(t, err)

	var unavailable *EngineUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "definitely-not-a-real-binary-xyz")
}

func TestTesseract_Recognize_MissingBinary(t *testing.T) {
	engine := NewTesseract("definitely-not-a-real-binary-xyz", "eng")
	_, err := engine.Recognize(context.Background(), "some.png")
	require.Error(t, err)

	var unavailable *EngineUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestRecognitionError_Message(t *testing.T) {
	err := &RecognitionError{Path: "page.png", Message: "bad input"}
	assert.Contains(t, err.Error(), "page.png")
	assert.Contains(t, err.Error(), "bad input")
}
