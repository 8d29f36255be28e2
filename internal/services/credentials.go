package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	vision "google.golang.org/api/vision/v1"

	"github.com/foxxcyber/ocr-gateway/internal/config"
)

// ErrCredentialsNotConfigured is returned when an explicit strategy is
// missing required fields
var ErrCredentialsNotConfigured = errors.New("google credentials not configured")

// CredentialSource resolves Google service credentials in memory
type CredentialSource interface {
	Name() string
	Resolve(ctx context.Context) (*google.Credentials, error)
}

// FileCredentials reads a service account key file
type FileCredentials struct {
	Path string
}

func (f FileCredentials) Name() string { return "file" }

func (f FileCredentials) Resolve(ctx context.Context) (*google.Credentials, error) {
	if f.Path == "" {
		return nil, ErrCredentialsNotConfigured
	}
	if !strings.HasSuffix(strings.ToLower(f.Path), ".json") {
		return nil, fmt.Errorf("invalid credentials file %s: must be a .json file", f.Path)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("google credentials file not found at %s: %w", f.Path, err)
	}

	return credentialsFromJSON(ctx, data)
}

// JSONCredentials holds a service account document passed inline
type JSONCredentials struct {
	JSON string
}

func (j JSONCredentials) Name() string { return "inline-json" }

func (j JSONCredentials) Resolve(ctx context.Context) (*google.Credentials, error) {
	if strings.TrimSpace(j.JSON) == "" {
		return nil, ErrCredentialsNotConfigured
	}
	return credentialsFromJSON(ctx, []byte(j.JSON))
}

// EnvCredentials assembles a service account document from individual fields
type EnvCredentials struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
}

func (e EnvCredentials) Name() string { return "env" }

func (e EnvCredentials) Resolve(ctx context.Context) (*google.Credentials, error) {
	data, err := e.ServiceAccountJSON()
	if err != nil {
		return nil, err
	}
	return credentialsFromJSON(ctx, data)
}

// ServiceAccountJSON renders the fields as a service account key document.
// Escaped "\n" sequences in the private key are turned into newlines.
func (e EnvCredentials) ServiceAccountJSON() ([]byte, error) {
	if e.ClientEmail == "" || e.PrivateKey == "" {
		return nil, ErrCredentialsNotConfigured
	}

	doc := map[string]string{
		"type":           "service_account",
		"project_id":     e.ProjectID,
		"private_key_id": e.PrivateKeyID,
		"private_key":    strings.ReplaceAll(e.PrivateKey, `\n`, "\n"),
		"client_email":   e.ClientEmail,
		"client_id":      e.ClientID,
		"auth_uri":       "https://accounts.google.com/o/oauth2/auth",
		"token_uri":      "https://oauth2.googleapis.com/token",
	}
	return json.Marshal(doc)
}

// DefaultCredentials falls back to Application Default Credentials
type DefaultCredentials struct{}

func (DefaultCredentials) Name() string { return "default" }

func (DefaultCredentials) Resolve(ctx context.Context) (*google.Credentials, error) {
	creds, err := google.FindDefaultCredentials(ctx, vision.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return creds, nil
}

// CredentialSourceFromConfig picks a strategy: inline JSON, then structured
// env fields, then a key file, then Application Default Credentials.
func CredentialSourceFromConfig(cfg *config.Config) CredentialSource {
	switch {
	case cfg.GoogleCredentialsJSON != "":
		return JSONCredentials{JSON: cfg.GoogleCredentialsJSON}
	case cfg.GoogleClientEmail != "" && cfg.GooglePrivateKey != "":
		return EnvCredentials{
			ProjectID:    cfg.GoogleProjectID,
			PrivateKeyID: cfg.GooglePrivateKeyID,
			PrivateKey:   cfg.GooglePrivateKey,
			ClientEmail:  cfg.GoogleClientEmail,
			ClientID:     cfg.GoogleClientID,
		}
	case cfg.GoogleCredentialsFile != "":
		return FileCredentials{Path: cfg.GoogleCredentialsFile}
	default:
		return DefaultCredentials{}
	}
}

func credentialsFromJSON(ctx context.Context, data []byte) (*google.Credentials, error) {
	creds, err := google.CredentialsFromJSON(ctx, data, vision.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	return creds, nil
}
