package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// MaxBatchConcurrency caps simultaneous OCR calls for one batch
const MaxBatchConcurrency = 10

// RunBatch processes every item with at most MaxBatchConcurrency in flight.
// Each item fails or succeeds on its own; the result slice has one entry per
// item, in input order, and is returned once every item has finished.
func (s *ExtractionService) RunBatch(ctx context.Context, items []models.UploadItem) []models.BatchItemResult {
	results := make([]models.BatchItemResult, len(items))

	var g errgroup.Group
	g.SetLimit(MaxBatchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = s.processItem(ctx, item)
			return nil
		})
	}

	// workers never return errors, so Wait only blocks
	_ = g.Wait()

	return results
}

func (s *ExtractionService) processItem(ctx context.Context, item models.UploadItem) (result models.BatchItemResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: OCR of %s panicked: %v", item.Filename, r)
			result = models.NewBatchItemFailure(item.Filename, fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	extraction, err := s.Extract(ctx, item)
	if err != nil {
		return models.NewBatchItemFailure(item.Filename, ClientMessage(err))
	}

	return models.NewBatchItemSuccess(item.Filename, extraction)
}
