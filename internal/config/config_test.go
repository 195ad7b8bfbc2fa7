package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "test-key",
		"model": "gemini-2.5-flash",
		"ocr_language": "eng",
		"session_timeout_seconds": 90,
		"headful": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, 90, cfg.SessionTimeoutSeconds)
	assert.True(t, cfg.Headful)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"api_key": `)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("BROWSER_SESSION_TIMEOUT_SECONDS", "45")

	cfg := FromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 45, cfg.SessionTimeoutSeconds)
}

func TestFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("BROWSER_SESSION_TIMEOUT_SECONDS", "not-a-number")

	cfg := FromEnv()
	assert.Zero(t, cfg.SessionTimeoutSeconds)
}

func TestValidate(t *testing.T) {
	cfg := Config{SessionTimeoutSeconds: -1}
	require.Error(t, cfg.Validate())

	cfg = Config{SessionTimeoutSeconds: 60}
	require.NoError(t, cfg.Validate())
}

func TestValidateUploadDirMustBeDirectory(t *testing.T) {
	file := writeConfigFile(t, "{}")

	cfg := Config{UploadDir: file}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	cfg = Config{UploadDir: t.TempDir()}
	require.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "mine", SessionTimeoutSeconds: 30}
	defaults := Config{
		APIKey:                "default-key",
		Model:                 "gemini-2.5-flash",
		OCRBinary:             "tesseract",
		SessionTimeoutSeconds: 60,
		ListenAddr:            ":8080",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine", merged.APIKey, "set values win over defaults")
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.Equal(t, "tesseract", merged.OCRBinary)
	assert.Equal(t, 30, merged.SessionTimeoutSeconds)
	assert.Equal(t, ":8080", merged.ListenAddr)
}
