package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/ocr-gateway/internal/middleware"
	"github.com/foxxcyber/ocr-gateway/internal/models"
	"github.com/foxxcyber/ocr-gateway/internal/services"
)

// uploadField is the multipart field carrying images on both endpoints
const uploadField = "image"

// OCRHandler serves the extraction endpoints
type OCRHandler struct {
	extraction *services.ExtractionService
}

// NewOCRHandler creates a new OCR handler
func NewOCRHandler(extraction *services.ExtractionService) *OCRHandler {
	return &OCRHandler{extraction: extraction}
}

// ExtractText handles POST /extract-text
func (h *OCRHandler) ExtractText(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, services.MsgMissingFile)
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		// a part without a filename is parsed as a plain value
		if _, ok := form.Value[uploadField]; ok {
			return Error(c, fiber.StatusBadRequest, services.MsgEmptyFilename)
		}
		return Error(c, fiber.StatusBadRequest, services.MsgMissingFile)
	}

	item := readUpload(files[0])

	ctx := services.ContextWithRequestID(c.UserContext(), middleware.RequestID(c))
	extraction, err := h.extraction.Extract(ctx, item)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("Warning: OCR failed for %s: %v", item.Filename, err)
		}
		return Error(c, status, services.ClientMessage(err))
	}

	return c.JSON(models.ExtractTextResponse{
		Success:          true,
		Text:             extraction.Text,
		Confidence:       extraction.Confidence,
		ProcessingTimeMS: extraction.ProcessingTimeMS,
		Metadata:         extraction.Metadata,
	})
}

// ExtractTextBatch handles POST /extract-text-batch. Per-file failures are
// reported inside results; only a request with no files fails as a whole.
func (h *OCRHandler) ExtractTextBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, services.MsgMissingFiles)
	}

	files := form.File[uploadField]
	unnamed := form.Value[uploadField]
	if len(files) == 0 && len(unnamed) == 0 {
		return Error(c, fiber.StatusBadRequest, services.MsgMissingFiles)
	}

	items := make([]models.UploadItem, 0, len(files)+len(unnamed))
	for _, fh := range files {
		items = append(items, readUpload(fh))
	}
	// parts sent without a filename still get a failed entry each
	for range unnamed {
		items = append(items, models.UploadItem{})
	}

	ctx := services.ContextWithRequestID(c.UserContext(), middleware.RequestID(c))
	results := h.extraction.RunBatch(ctx, items)

	return c.JSON(models.BatchResponse{
		Success: true,
		Results: results,
	})
}

// Health handles GET /health. It never touches the OCR provider.
func (h *OCRHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{Status: "healthy"})
}

// readUpload loads a multipart file into memory. Unreadable files keep
// their name and carry no content, so validation rejects them as empty.
func readUpload(fh *multipart.FileHeader) models.UploadItem {
	item := models.UploadItem{
		Filename:     fh.Filename,
		DeclaredMIME: fh.Header.Get(fiber.HeaderContentType),
	}

	src, err := fh.Open()
	if err != nil {
		log.Printf("Warning: Failed to open upload %s: %v", fh.Filename, err)
		return item
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		log.Printf("Warning: Failed to read upload %s: %v", fh.Filename, err)
		return item
	}
	item.Content = content
	return item
}

func statusFor(err error) int {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, services.ErrEmptyInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
