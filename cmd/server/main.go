package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/ocr-gateway/internal/config"
	"github.com/foxxcyber/ocr-gateway/internal/database"
	"github.com/foxxcyber/ocr-gateway/internal/handlers"
	"github.com/foxxcyber/ocr-gateway/internal/server"
	"github.com/foxxcyber/ocr-gateway/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	ctx := context.Background()

	// Initialize OCR provider; credentials are checked here, not per request
	client, err := services.NewOCRClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s OCR provider: %v", cfg.OCRProvider, err)
	}
	log.Printf("OCR provider initialized: %s", client.Name())

	// Optional usage ledger
	var recorder services.UsageRecorder = services.NopRecorder{}
	if cfg.LedgerEnabled() {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		recorder = db

		// Drop ledger rows past retention on startup
		go func() {
			removed, err := db.CleanupOldCalls(ctx, cfg.UsageRetentionDays)
			if err != nil {
				log.Printf("Warning: Failed to cleanup old OCR calls: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("Cleaned up %d OCR call(s) older than %d days", removed, cfg.UsageRetentionDays)
			}
		}()
	} else {
		log.Println("DATABASE_URL not set, usage ledger disabled")
	}

	validator := services.NewValidator(cfg.AllowedExtensions, cfg.AllowedMIMETypes)
	extraction := services.NewExtractionService(client, validator, recorder, cfg.OCRCallTimeout)

	app := server.New(cfg, handlers.NewOCRHandler(extraction))

	log.Printf("Server starting on port %s (profile %s, extensions %v)", cfg.Port, cfg.Profile, cfg.AllowedExtensions)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
