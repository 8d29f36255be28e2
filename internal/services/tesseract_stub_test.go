//go:build !tesseract

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/ocr-gateway/internal/config"
)

func TestNewOCRClientTesseractNeedsBuildTag(t *testing.T) {
	_, err := NewOCRClient(context.Background(), &config.Config{OCRProvider: config.ProviderTesseract})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "-tags tesseract")
}
