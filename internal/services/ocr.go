package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// ErrEmptyInput is returned when an OCR call receives no bytes
var ErrEmptyInput = errors.New("uploaded file is empty or unreadable")

// ServiceError wraps a failure of the external OCR provider. Its message is
// returned to clients verbatim.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// OCRClient is the contract every OCR backend implements
type OCRClient interface {
	// Name identifies the backend in logs and the usage ledger
	Name() string
	// ExtractText runs one recognition call. It never retries.
	ExtractText(ctx context.Context, content []byte) (*models.OCRResult, error)
	// ExtractMetadata probes the image header and returns nil when the
	// content does not decode.
	ExtractMetadata(content []byte) *models.ImageMetadata
}

// TextAnnotation is the provider-neutral shape of a recognition response
type TextAnnotation struct {
	FullText string
	Pages    []Page
}

// Page holds the text blocks recognized on one page
type Page struct {
	Blocks []Block
}

// Block is a run of paragraphs laid out together
type Block struct {
	Paragraphs []Paragraph
}

// Paragraph groups the words of one paragraph
type Paragraph struct {
	Words []Word
}

// Word confidence is nil when the provider reported none
type Word struct {
	Confidence *float64
}

// AverageConfidence walks pages, blocks, paragraphs and words and returns the
// mean word confidence rounded to two decimals. Words without a confidence
// are skipped; 0 is returned when no word has one.
func (a *TextAnnotation) AverageConfidence() float64 {
	if a == nil {
		return 0
	}

	var total float64
	var count int
	for _, page := range a.Pages {
		for _, block := range page.Blocks {
			for _, paragraph := range block.Paragraphs {
				for _, word := range paragraph.Words {
					if word.Confidence == nil {
						continue
					}
					total += *word.Confidence
					count++
				}
			}
		}
	}

	if count == 0 {
		return 0
	}
	return math.Round(total/float64(count)*100) / 100
}

// Text returns the full text with every whitespace run collapsed to a single
// space and the ends trimmed
func (a *TextAnnotation) Text() string {
	if a == nil {
		return ""
	}
	return NormalizeText(a.FullText)
}

// NormalizeText collapses whitespace, newlines included, to single spaces
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resultFromAnnotation converts an annotation into the public OCR result
func resultFromAnnotation(a *TextAnnotation, elapsedMS int64) *models.OCRResult {
	if elapsedMS < 0 {
		elapsedMS = 0
	}
	return &models.OCRResult{
		Text:             a.Text(),
		Confidence:       a.AverageConfidence(),
		ProcessingTimeMS: elapsedMS,
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
