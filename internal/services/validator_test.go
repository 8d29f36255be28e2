package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

func TestValidatorValidate(t *testing.T) {
	v := NewValidator([]string{"jpg", ".JPEG"}, []string{"image/jpeg", "image/jpg"})

	tests := []struct {
		name     string
		item     models.UploadItem
		wantKind ValidationKind
		contains string
	}{
		{
			name: "valid jpeg",
			item: jpegItem("photo.JPG"),
		},
		{
			name:     "empty filename",
			item:     models.UploadItem{Content: []byte("x"), DeclaredMIME: "image/jpeg"},
			wantKind: ValidationEmptyFilename,
			contains: "no file selected",
		},
		{
			name:     "disallowed extension",
			item:     models.UploadItem{Filename: "file.png", Content: []byte("test"), DeclaredMIME: "image/png"},
			wantKind: ValidationExtension,
			contains: "invalid file type",
		},
		{
			name:     "no extension",
			item:     models.UploadItem{Filename: "jpg", Content: []byte("test"), DeclaredMIME: "image/jpeg"},
			wantKind: ValidationExtension,
			contains: "invalid file type",
		},
		{
			name:     "extension is checked before content",
			item:     models.UploadItem{Filename: "virus.exe", DeclaredMIME: "application/octet-stream"},
			wantKind: ValidationExtension,
			contains: "invalid file type",
		},
		{
			name:     "empty content",
			item:     models.UploadItem{Filename: "empty.jpg", DeclaredMIME: "image/jpeg"},
			wantKind: ValidationEmptyContent,
			contains: "empty",
		},
		{
			name:     "content is checked before mime type",
			item:     models.UploadItem{Filename: "empty.jpg", DeclaredMIME: "text/plain"},
			wantKind: ValidationEmptyContent,
			contains: "empty",
		},
		{
			name:     "disallowed mime type",
			item:     models.UploadItem{Filename: "file.jpg", Content: []byte("test"), DeclaredMIME: "text/plain"},
			wantKind: ValidationMIMEType,
			contains: "invalid mime type: text/plain",
		},
		{
			name: "mime parameters are ignored",
			item: models.UploadItem{Filename: "file.jpeg", Content: []byte("test"), DeclaredMIME: "Image/JPEG; charset=binary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.item)
			if tt.wantKind == "" {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Contains(t, strings.ToLower(verr.Message), tt.contains)
		})
	}
}

func TestValidatorMessageListsAllowedExtensions(t *testing.T) {
	v := NewValidator([]string{"jpg", "jpeg", "png", "jpg", ""}, nil)

	err := v.Validate(models.UploadItem{Filename: "a.gif", Content: []byte("x")})

	require.Error(t, err)
	assert.Equal(t, "Invalid file type. Only JPG/JPEG/PNG files are allowed.", err.Error())
}
