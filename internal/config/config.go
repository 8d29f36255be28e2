package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Upload profiles select the default extension and MIME allow-lists
const (
	ProfileJPEG     = "jpeg"
	ProfileExtended = "extended"
)

// OCR providers
const (
	ProviderVision    = "vision"
	ProviderTesseract = "tesseract"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string
	MaxUploadBytes int

	// Environment
	Environment string

	// Upload validation
	Profile           string
	AllowedExtensions []string
	AllowedMIMETypes  []string

	// OCR
	OCRProvider    string
	OCRCallTimeout time.Duration
	VisionEndpoint string

	// Google credentials, resolved once at startup
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
	GoogleProjectID       string
	GooglePrivateKeyID    string
	GooglePrivateKey      string
	GoogleClientEmail     string
	GoogleClientID        string

	// Tesseract
	TesseractLanguages []string

	// Usage ledger (disabled when empty)
	DatabaseURL        string
	UsageRetentionDays int
}

func Load() *Config {
	profile := strings.ToLower(getEnv("OCR_PROFILE", ProfileJPEG))
	extensions, mimeTypes := profileDefaults(profile)

	return &Config{
		Port:                  getEnv("PORT", "5000"),
		AllowedOrigins:        getEnv("ALLOWED_ORIGINS", "*"),
		MaxUploadBytes:        getIntEnv("MAX_UPLOAD_BYTES", 10*1024*1024),
		Environment:           getEnv("ENVIRONMENT", "development"),
		Profile:               profile,
		AllowedExtensions:     getListEnv("ALLOWED_EXTENSIONS", extensions),
		AllowedMIMETypes:      getListEnv("ALLOWED_MIME_TYPES", mimeTypes),
		OCRProvider:           strings.ToLower(getEnv("OCR_PROVIDER", ProviderVision)),
		OCRCallTimeout:        getDurationEnv("OCR_CALL_TIMEOUT", 30) * time.Second,
		VisionEndpoint:        getEnv("VISION_ENDPOINT", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
		GooglePrivateKeyID:    getEnv("GOOGLE_PRIVATE_KEY_ID", ""),
		GooglePrivateKey:      getEnv("GOOGLE_PRIVATE_KEY", ""),
		GoogleClientEmail:     getEnv("GOOGLE_CLIENT_EMAIL", ""),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		TesseractLanguages:    getListEnv("TESSERACT_LANGUAGES", []string{"eng"}),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		UsageRetentionDays:    getIntEnv("USAGE_RETENTION_DAYS", 30),
	}
}

// profileDefaults returns the extension and MIME allow-lists for a profile.
// Unknown profiles fall back to JPEG only.
func profileDefaults(profile string) ([]string, []string) {
	extensions := []string{"jpg", "jpeg"}
	mimeTypes := []string{"image/jpeg", "image/jpg"}

	if profile == ProfileExtended {
		extensions = append(extensions, "png", "gif", "webp")
		mimeTypes = append(mimeTypes, "image/png", "image/gif", "image/webp")
	}

	return extensions, mimeTypes
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

// getListEnv splits a comma separated variable, lower-cases and trims each entry
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LedgerEnabled reports whether OCR calls should be recorded in Postgres
func (c *Config) LedgerEnabled() bool {
	return c.DatabaseURL != ""
}
