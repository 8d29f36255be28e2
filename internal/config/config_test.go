package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_UPLOAD_BYTES", "OCR_PROFILE", "ALLOWED_EXTENSIONS", "ALLOWED_MIME_TYPES", "OCR_PROVIDER", "OCR_CALL_TIMEOUT", "TESSERACT_LANGUAGES", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, ProfileJPEG, cfg.Profile)
	assert.Equal(t, []string{"jpg", "jpeg"}, cfg.AllowedExtensions)
	assert.Equal(t, []string{"image/jpeg", "image/jpg"}, cfg.AllowedMIMETypes)
	assert.Equal(t, ProviderVision, cfg.OCRProvider)
	assert.Equal(t, 30*time.Second, cfg.OCRCallTimeout)
	assert.Equal(t, []string{"eng"}, cfg.TesseractLanguages)
	assert.False(t, cfg.LedgerEnabled())
}

func TestLoadExtendedProfile(t *testing.T) {
	t.Setenv("OCR_PROFILE", "Extended")
	t.Setenv("ALLOWED_EXTENSIONS", "")
	t.Setenv("ALLOWED_MIME_TYPES", "")

	cfg := Load()

	assert.Equal(t, []string{"jpg", "jpeg", "png", "gif", "webp"}, cfg.AllowedExtensions)
	assert.Equal(t, []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}, cfg.AllowedMIMETypes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_EXTENSIONS", " PNG, ,tif ")
	t.Setenv("OCR_CALL_TIMEOUT", "5")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://localhost/ocr")

	cfg := Load()

	require.Equal(t, []string{"png", "tif"}, cfg.AllowedExtensions)
	assert.Equal(t, 5*time.Second, cfg.OCRCallTimeout)
	assert.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
	assert.True(t, cfg.LedgerEnabled())
}

func TestGetListEnvOnlySeparators(t *testing.T) {
	t.Setenv("ALLOWED_MIME_TYPES", " , ,")

	assert.Equal(t, []string{"a"}, getListEnv("ALLOWED_MIME_TYPES", []string{"a"}))
}
