package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

const recordTimeout = 5 * time.Second

// UsageRecorder stores one ledger row per OCR call
type UsageRecorder interface {
	RecordOCRCall(ctx context.Context, call *models.OCRCall) error
}

// NopRecorder drops every call; used when the ledger is disabled
type NopRecorder struct{}

func (NopRecorder) RecordOCRCall(context.Context, *models.OCRCall) error { return nil }

type requestIDKey struct{}

// ContextWithRequestID tags OCR calls made under ctx with a request ID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID set by ContextWithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ExtractionService validates uploads and runs them through an OCR client
type ExtractionService struct {
	client    OCRClient
	validator *Validator
	recorder  UsageRecorder
	timeout   time.Duration
}

// NewExtractionService wires the pipeline. A zero timeout disables the
// per-call deadline; a nil recorder disables the ledger.
func NewExtractionService(client OCRClient, validator *Validator, recorder UsageRecorder, timeout time.Duration) *ExtractionService {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ExtractionService{
		client:    client,
		validator: validator,
		recorder:  recorder,
		timeout:   timeout,
	}
}

// Validator returns the validator used for every item
func (s *ExtractionService) Validator() *Validator {
	return s.validator
}

// Extract runs the single-item path. Validation failures return a
// *ValidationError without calling the OCR client.
func (s *ExtractionService) Extract(ctx context.Context, item models.UploadItem) (*models.Extraction, error) {
	if err := s.validator.Validate(item); err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.client.ExtractText(callCtx, item.Content)
	elapsed := time.Since(start)

	var svcErr *ServiceError
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.As(err, &svcErr) {
		err = &ServiceError{Message: fmt.Sprintf("OCR request timed out after %s", s.timeout), Err: err}
	}

	s.record(ctx, item, result, err, elapsed)

	if err != nil {
		return nil, err
	}

	return &models.Extraction{
		OCRResult: *result,
		Metadata:  s.client.ExtractMetadata(item.Content),
	}, nil
}

// record writes the ledger row. Failures are logged and never reach the
// caller.
func (s *ExtractionService) record(ctx context.Context, item models.UploadItem, result *models.OCRResult, callErr error, elapsed time.Duration) {
	call := &models.OCRCall{
		RequestID:        RequestIDFromContext(ctx),
		Filename:         item.Filename,
		SizeBytes:        int64(len(item.Content)),
		ContentDigest:    ContentDigest(item.Content),
		Provider:         s.client.Name(),
		Success:          callErr == nil,
		ProcessingTimeMS: elapsed.Milliseconds(),
	}
	if callErr != nil {
		msg := callErr.Error()
		call.ErrorMessage = &msg
	} else if result != nil {
		call.ProcessingTimeMS = result.ProcessingTimeMS
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.recorder.RecordOCRCall(recordCtx, call); err != nil {
		log.Printf("Warning: Failed to record OCR call for %s: %v", item.Filename, err)
	}
}

// ClientMessage turns an extraction error into the message sent to clients
func ClientMessage(err error) string {
	var validationErr *ValidationError
	var svcErr *ServiceError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, ErrEmptyInput):
		return MsgEmptyContent
	case errors.As(err, &svcErr):
		return svcErr.Message
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
