//go:build !tesseract

package services

import (
	"context"
	"errors"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

var errTesseractUnavailable = errors.New("tesseract support is not compiled in - rebuild with -tags tesseract")

// TesseractService is a placeholder when the binary is built without cgo
// tesseract support
type TesseractService struct{}

// NewTesseractService always fails in this build
func NewTesseractService(languages []string) (*TesseractService, error) {
	return nil, errTesseractUnavailable
}

func (s *TesseractService) Name() string { return "tesseract" }

func (s *TesseractService) ExtractText(ctx context.Context, content []byte) (*models.OCRResult, error) {
	return nil, errTesseractUnavailable
}

func (s *TesseractService) ExtractMetadata(content []byte) *models.ImageMetadata {
	return ProbeImage(content)
}
