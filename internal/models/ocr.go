package models

// UploadItem is one file taken from a multipart request
type UploadItem struct {
	Filename     string
	DeclaredMIME string
	Content      []byte
}

// OCRResult is the text extracted from a single image
type OCRResult struct {
	Text             string  `json:"text"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
}

// ImageMetadata describes the decoded image header
type ImageMetadata struct {
	Format string `json:"format"`
	Mode   string `json:"mode"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Extraction is the outcome of a successful single-item extraction
type Extraction struct {
	OCRResult
	Metadata *ImageMetadata
}

// BatchItemResult is the per-file outcome inside a batch response.
// Success selects which of the optional fields are populated.
type BatchItemResult struct {
	Filename         string         `json:"filename"`
	Success          bool           `json:"success"`
	Text             *string        `json:"text,omitempty"`
	Confidence       *float64       `json:"confidence,omitempty"`
	ProcessingTimeMS *int64         `json:"processing_time_ms,omitempty"`
	Metadata         *ImageMetadata `json:"metadata,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// NewBatchItemSuccess builds a successful batch entry from an extraction
func NewBatchItemSuccess(filename string, e *Extraction) BatchItemResult {
	text := e.Text
	confidence := e.Confidence
	elapsed := e.ProcessingTimeMS

	return BatchItemResult{
		Filename:         filename,
		Success:          true,
		Text:             &text,
		Confidence:       &confidence,
		ProcessingTimeMS: &elapsed,
		Metadata:         e.Metadata,
	}
}

// NewBatchItemFailure builds a failed batch entry
func NewBatchItemFailure(filename, message string) BatchItemResult {
	return BatchItemResult{
		Filename: filename,
		Success:  false,
		Error:    message,
	}
}

// ExtractTextResponse is the body of a successful single-item extraction
type ExtractTextResponse struct {
	Success          bool           `json:"success"`
	Text             string         `json:"text"`
	Confidence       float64        `json:"confidence"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	Metadata         *ImageMetadata `json:"metadata,omitempty"`
}

// BatchResponse is the body of a batch extraction
type BatchResponse struct {
	Success bool              `json:"success"`
	Results []BatchItemResult `json:"results"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}
