package services

import (
	"context"
	"sync"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// stubClient answers from a function so tests can script each call
type stubClient struct {
	extract  func(ctx context.Context, content []byte) (*models.OCRResult, error)
	metadata *models.ImageMetadata
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) ExtractText(ctx context.Context, content []byte) (*models.OCRResult, error) {
	return s.extract(ctx, content)
}

func (s *stubClient) ExtractMetadata([]byte) *models.ImageMetadata {
	return s.metadata
}

type memoryRecorder struct {
	mu    sync.Mutex
	calls []*models.OCRCall
	err   error
}

func (m *memoryRecorder) RecordOCRCall(_ context.Context, call *models.OCRCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

func jpegItem(name string) models.UploadItem {
	return models.UploadItem{
		Filename:     name,
		DeclaredMIME: "image/jpeg",
		Content:      []byte{0xff, 0xd8, 0xff, 0xdb, 0x00, 0x43, 0x00},
	}
}
