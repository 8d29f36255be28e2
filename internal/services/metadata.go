package services

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// ProbeImage decodes only the image header. Any failure yields nil.
func ProbeImage(content []byte) *models.ImageMetadata {
	if len(content) == 0 {
		return nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}

	return &models.ImageMetadata{
		Format: strings.ToUpper(format),
		Mode:   colorMode(cfg.ColorModel),
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// colorMode names a color model the way imaging tools usually report it.
// Decoders report 8-bit truecolor without alpha as RGBA and with alpha as
// NRGBA.
func colorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}

	switch m {
	case color.YCbCrModel, color.RGBAModel, color.RGBA64Model:
		return "RGB"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	default:
		return "UNKNOWN"
	}
}
