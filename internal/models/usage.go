package models

import (
	"time"
)

// OCRCall is one row of the usage ledger. It never carries image bytes or
// extracted text.
type OCRCall struct {
	ID               int64     `json:"id"`
	RequestID        string    `json:"request_id"`
	Filename         string    `json:"filename"`
	SizeBytes        int64     `json:"size_bytes"`
	ContentDigest    string    `json:"content_digest"`
	Provider         string    `json:"provider"`
	Success          bool      `json:"success"`
	ErrorMessage     *string   `json:"error_message,omitempty"`
	ProcessingTimeMS int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// UsageSummary aggregates ledger rows over a window
type UsageSummary struct {
	Calls     int64 `json:"calls"`
	Failures  int64 `json:"failures"`
	Bytes     int64 `json:"bytes"`
	AvgTimeMS int64 `json:"avg_time_ms"`
}
