package services

import (
	"fmt"
	"strings"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// ValidationKind tells rejection reasons apart
type ValidationKind string

const (
	ValidationMissingFile   ValidationKind = "missing_file"
	ValidationEmptyFilename ValidationKind = "empty_filename"
	ValidationExtension     ValidationKind = "invalid_extension"
	ValidationMIMEType      ValidationKind = "invalid_mime_type"
	ValidationEmptyContent  ValidationKind = "empty_content"
)

// Messages shared with the HTTP layer
const (
	MsgMissingFile   = "No image file provided in the request"
	MsgMissingFiles  = "No image files provided in the request"
	MsgEmptyFilename = "No file selected"
	MsgEmptyContent  = "Uploaded file is empty or unreadable."
)

// ValidationError rejects an upload before any OCR call is made
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator checks uploads against the configured allow-lists
type Validator struct {
	extensions []string
	mimeTypes  []string
	extSet     map[string]struct{}
	mimeSet    map[string]struct{}
}

// NewValidator creates a validator. Entries are matched case-insensitively.
func NewValidator(extensions, mimeTypes []string) *Validator {
	v := &Validator{
		extSet:  make(map[string]struct{}, len(extensions)),
		mimeSet: make(map[string]struct{}, len(mimeTypes)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if _, dup := v.extSet[ext]; ext == "" || dup {
			continue
		}
		v.extSet[ext] = struct{}{}
		v.extensions = append(v.extensions, ext)
	}
	for _, mt := range mimeTypes {
		mt = strings.ToLower(strings.TrimSpace(mt))
		if _, dup := v.mimeSet[mt]; mt == "" || dup {
			continue
		}
		v.mimeSet[mt] = struct{}{}
		v.mimeTypes = append(v.mimeTypes, mt)
	}
	return v
}

// Validate runs the checks in order and returns the first failure:
// filename, extension, content, declared MIME type.
func (v *Validator) Validate(item models.UploadItem) error {
	if item.Filename == "" {
		return &ValidationError{Kind: ValidationEmptyFilename, Message: MsgEmptyFilename}
	}

	if !v.AllowedExtension(item.Filename) {
		return &ValidationError{
			Kind:    ValidationExtension,
			Message: fmt.Sprintf("Invalid file type. Only %s files are allowed.", strings.ToUpper(strings.Join(v.extensions, "/"))),
		}
	}

	if len(item.Content) == 0 {
		return &ValidationError{Kind: ValidationEmptyContent, Message: MsgEmptyContent}
	}

	if !v.AllowedMIMEType(item.DeclaredMIME) {
		return &ValidationError{
			Kind:    ValidationMIMEType,
			Message: fmt.Sprintf("Invalid MIME type: %s. Allowed types: %s", item.DeclaredMIME, strings.Join(v.mimeTypes, ", ")),
		}
	}

	return nil
}

// AllowedExtension reports whether the text after the last dot is allowed
func (v *Validator) AllowedExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return false
	}
	_, ok := v.extSet[strings.ToLower(filename[idx+1:])]
	return ok
}

// AllowedMIMEType reports whether the declared type is allowed. Parameters
// such as "; charset=binary" are ignored.
func (v *Validator) AllowedMIMEType(mimeType string) bool {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	_, ok := v.mimeSet[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}
