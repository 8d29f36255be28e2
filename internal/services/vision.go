package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

const documentTextDetection = "DOCUMENT_TEXT_DETECTION"

// VisionService runs document text detection on Google Cloud Vision. The
// underlying REST client is safe for concurrent use.
type VisionService struct {
	svc *vision.Service
}

// NewVisionService creates the Vision client once at startup
func NewVisionService(ctx context.Context, opts ...option.ClientOption) (*VisionService, error) {
	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionService{svc: svc}, nil
}

func (s *VisionService) Name() string { return "vision" }

// ExtractText sends one annotate request and shapes the response
func (s *VisionService) ExtractText(ctx context.Context, content []byte) (*models.OCRResult, error) {
	if len(content) == 0 {
		return nil, ErrEmptyInput
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(content)},
			Features: []*vision.Feature{{Type: documentTextDetection}},
		}},
	}

	start := time.Now()
	resp, err := s.svc.Images.Annotate(req).Context(ctx).Do()
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ServiceError{Message: "Google Vision API error: request timed out", Err: err}
		}
		return nil, &ServiceError{Message: fmt.Sprintf("Google Vision API error: %v", err), Err: err}
	}

	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, &ServiceError{Message: "Vision API error: empty response"}
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return nil, &ServiceError{Message: fmt.Sprintf("Vision API error: %s", r.Error.Message)}
	}

	return resultFromAnnotation(annotationFromVision(r.FullTextAnnotation), elapsed), nil
}

func (s *VisionService) ExtractMetadata(content []byte) *models.ImageMetadata {
	return ProbeImage(content)
}

// annotationFromVision copies the parts of the REST model the gateway uses.
// The REST model drops zero confidences, so 0 means "not reported".
func annotationFromVision(src *vision.TextAnnotation) *TextAnnotation {
	if src == nil {
		return &TextAnnotation{}
	}

	out := &TextAnnotation{FullText: src.Text}
	for _, p := range src.Pages {
		if p == nil {
			continue
		}
		var page Page
		for _, b := range p.Blocks {
			if b == nil {
				continue
			}
			var block Block
			for _, par := range b.Paragraphs {
				if par == nil {
					continue
				}
				var paragraph Paragraph
				for _, w := range par.Words {
					if w == nil {
						continue
					}
					var word Word
					if w.Confidence != 0 {
						word.Confidence = float64Ptr(w.Confidence)
					}
					paragraph.Words = append(paragraph.Words, word)
				}
				block.Paragraphs = append(block.Paragraphs, paragraph)
			}
			page.Blocks = append(page.Blocks, block)
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}
