package services

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/foxxcyber/ocr-gateway/internal/config"
)

// NewOCRClient builds the provider selected by OCR_PROVIDER. For Vision the
// credentials are resolved here, once, so a misconfigured deployment fails
// at startup instead of on the first request. Passing extra options skips
// credential resolution, e.g. option.WithoutAuthentication for an emulator.
func NewOCRClient(ctx context.Context, cfg *config.Config, extra ...option.ClientOption) (OCRClient, error) {
	switch cfg.OCRProvider {
	case config.ProviderVision, "":
		opts := make([]option.ClientOption, 0, len(extra)+2)
		if len(extra) == 0 {
			source := CredentialSourceFromConfig(cfg)
			creds, err := source.Resolve(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s google credentials: %w", source.Name(), err)
			}
			opts = append(opts, option.WithCredentials(creds))
		}
		if cfg.VisionEndpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.VisionEndpoint))
		}
		opts = append(opts, extra...)

		svc, err := NewVisionService(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return svc, nil

	case config.ProviderTesseract:
		svc, err := NewTesseractService(cfg.TesseractLanguages)
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.OCRProvider)
	}
}
