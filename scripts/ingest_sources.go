package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/compliance-dashboard/internal/config"
	"alfredoptarigan/compliance-dashboard/internal/repositories"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

// Copies every configured source file from DATA_DIR into the database so the
// postgres backend can serve it.
func main() {
	log.Println("🚀 Starting source ingestion...")

	cfg := config.Load()
	sources := cfg.Sources

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	files := sources.Files()
	fileLoader := services.NewFileLoader(sources.DataDir, files)
	sourceRepo := repositories.NewSourceRepository(db)
	writer := services.NewRepositorySourceWriter(sourceRepo)
	// Validation only; nothing is loaded through this dashboard.
	validator := services.NewDashboardService(fileLoader, nil, sources.DocumentPairs, sources.ResultNames())

	ctx := context.Background()
	names := append([]string{sources.DocumentPairs}, sources.ResultNames()...)

	successCount := 0
	failCount := 0

	for _, name := range names {
		log.Printf("\n📄 Processing: %s", name)
		log.Printf("   File: %s", files[name])

		content, err := fileLoader.Load(ctx, name)
		if err != nil {
			log.Printf("   ⚠️  %s, skipping...", services.ErrorMessage(name, 0, err))
			failCount++
			continue
		}

		if err := validator.ValidateSource(name, content); err != nil {
			log.Printf("   ❌ %s (%v)", services.ErrorMessage(name, 0, err), err)
			failCount++
			continue
		}

		if err := writer.Save(ctx, name, content); err != nil {
			log.Printf("   ❌ Failed to store source: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored %d bytes", len(content))
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d sources", successCount)
	log.Printf("   ❌ Failed: %d sources", failCount)
	if stored, err := sourceRepo.ListNames(ctx); err == nil {
		log.Printf("   📋 Stored: %s", strings.Join(stored, ", "))
	}
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some sources failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All sources ingested successfully!")
}
