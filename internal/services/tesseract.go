//go:build tesseract

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// TesseractService runs OCR locally through libtesseract. gosseract clients
// are not safe for concurrent use, so every call owns its own client.
type TesseractService struct {
	languages []string
}

// NewTesseractService checks that the engine loads with the given languages
func NewTesseractService(languages []string) (*TesseractService, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(languages...); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	return &TesseractService{languages: languages}, nil
}

func (s *TesseractService) Name() string { return "tesseract" }

// ExtractText recognizes the image. The cgo call cannot be interrupted, so
// the context is only checked before it starts.
func (s *TesseractService) ExtractText(ctx context.Context, content []byte) (*models.OCRResult, error) {
	if len(content) == 0 {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("Tesseract error: %v", err), Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()

	start := time.Now()
	if err := client.SetLanguage(s.languages...); err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("Tesseract error: %v", err), Err: err}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("Tesseract error: %v", err), Err: err}
	}
	if err := client.SetImageFromBytes(content); err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("Tesseract error: failed to set image: %v", err), Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("Tesseract error: failed to extract text: %v", err), Err: err}
	}

	annotation := &TextAnnotation{FullText: text}
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		var paragraph Paragraph
		for _, b := range boxes {
			var word Word
			// tesseract reports 0..100, negative when unknown
			if b.Confidence > 0 {
				word.Confidence = float64Ptr(b.Confidence / 100.0)
			}
			paragraph.Words = append(paragraph.Words, word)
		}
		annotation.Pages = []Page{{Blocks: []Block{{Paragraphs: []Paragraph{paragraph}}}}}
	}

	return resultFromAnnotation(annotation, time.Since(start).Milliseconds()), nil
}

func (s *TesseractService) ExtractMetadata(content []byte) *models.ImageMetadata {
	return ProbeImage(content)
}
