package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/config"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

// Rebuilds the similar-jobs index from analyses already stored in Postgres.
// Run this after changing the embedding model or wiping the Qdrant collection.
func main() {
	log.Println("🚀 Starting job reindexing...")

	// Load configuration
	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for reindexing")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	similarityService, err := services.NewSimilarityService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := similarityService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	var analyses []models.Analysis
	if err := db.Where("status = ?", models.StatusCompleted).Order("created_at ASC").Find(&analyses).Error; err != nil {
		log.Fatalf("❌ Failed to load analyses: %v", err)
	}
	log.Printf("📄 Found %d completed analyses", len(analyses))

	successCount := 0
	failCount := 0

	for i, analysis := range analyses {
		log.Printf("🔄 Indexing %s (%s)", analysis.ID, analysis.JobTitle)

		if err := similarityService.IndexJob(ctx, analysis.ID, analysis.JobTitle, analysis.JobDescription); err != nil {
			log.Printf("   ❌ Failed to index: %v", err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%10 == 0 || i == len(analyses)-1 {
			log.Printf("📊 Progress: %d/%d analyses indexed", i+1, len(analyses))
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindexing Summary:")
	log.Printf("   ✅ Successful: %d analyses", successCount)
	log.Printf("   ❌ Failed: %d analyses", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some analyses failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All analyses indexed successfully!")
}
