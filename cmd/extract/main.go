package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/ocr-gateway/internal/config"
	"github.com/foxxcyber/ocr-gateway/internal/database"
	"github.com/foxxcyber/ocr-gateway/internal/models"
	"github.com/foxxcyber/ocr-gateway/internal/services"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Validate files without calling the OCR provider")
	mimeOverride := flag.String("mime", "", "Declared MIME type for every file (default: sniffed from content)")
	usageDays := flag.Int("usage", 0, "Print the usage ledger summary for the last N days and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] image...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()
	ctx := context.Background()

	if *usageDays > 0 {
		printUsage(ctx, cfg, *usageDays)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	items := make([]models.UploadItem, 0, flag.NArg())
	for _, path := range flag.Args() {
		items = append(items, loadItem(path, *mimeOverride))
	}

	validator := services.NewValidator(cfg.AllowedExtensions, cfg.AllowedMIMETypes)

	var results []models.BatchItemResult
	if *dryRun {
		results = validateOnly(validator, items)
	} else {
		client, err := services.NewOCRClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize %s OCR provider: %v", cfg.OCRProvider, err)
		}
		extraction := services.NewExtractionService(client, validator, nil, cfg.OCRCallTimeout)
		results = extraction.RunBatch(ctx, items)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(models.BatchResponse{Success: true, Results: results}); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	for _, r := range results {
		if !r.Success {
			os.Exit(1)
		}
	}
}

// loadItem reads a file from disk. Unreadable files are kept with no
// content so they are reported as failed entries.
func loadItem(path, mimeOverride string) models.UploadItem {
	item := models.UploadItem{Filename: filepath.Base(path)}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Failed to read %s: %v", path, err)
		return item
	}
	item.Content = content

	if mimeOverride != "" {
		item.DeclaredMIME = mimeOverride
	} else {
		item.DeclaredMIME = http.DetectContentType(content)
	}
	return item
}

func validateOnly(v *services.Validator, items []models.UploadItem) []models.BatchItemResult {
	results := make([]models.BatchItemResult, len(items))
	for i, item := range items {
		if err := v.Validate(item); err != nil {
			results[i] = models.NewBatchItemFailure(item.Filename, services.ClientMessage(err))
			continue
		}
		results[i] = models.BatchItemResult{Filename: item.Filename, Success: true}
	}
	return results
}

func printUsage(ctx context.Context, cfg *config.Config, days int) {
	if !cfg.LedgerEnabled() {
		log.Fatal("DATABASE_URL not set, no usage ledger to read")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	since := time.Now().AddDate(0, 0, -days)
	summary, err := db.GetUsageSummary(ctx, since)
	if err != nil {
		log.Fatalf("Failed to read usage: %v", err)
	}

	fmt.Printf("OCR usage since %s\n", since.Format("2006-01-02"))
	fmt.Printf("  Calls:    %d\n", summary.Calls)
	fmt.Printf("  Failures: %d\n", summary.Failures)
	fmt.Printf("  Bytes:    %d\n", summary.Bytes)
	fmt.Printf("  Avg time: %dms\n", summary.AvgTimeMS)

	recent, err := db.ListRecentCalls(ctx, 10)
	if err != nil {
		log.Printf("Warning: Failed to list recent calls: %v", err)
		return
	}
	if len(recent) > 0 {
		fmt.Printf("\nRecent calls (last %d):\n", len(recent))
	}
	for _, c := range recent {
		status := "ok"
		if !c.Success {
			status = "failed"
		}
		fmt.Printf("  %s  %-8s %-6s %6dms  %s\n",
			c.CreatedAt.Format(time.RFC3339), c.Provider, status, c.ProcessingTimeMS, c.Filename)
	}
}
