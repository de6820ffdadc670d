package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/config"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/handlers"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/repositories"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize extraction pipeline. OCR is an optional fallback tier.
	var ocrClient services.OCRClient
	if cfg.OCR.APIKey != "" {
		ocrClient = services.NewOCRClient(
			cfg.OCR.APIKey,
			cfg.OCR.Endpoint,
			cfg.OCR.Providers,
			cfg.OCR.Language,
			cfg.OCR.Timeout,
		)
		log.Println("✅ OCR fallback enabled")
	} else {
		log.Println("⚠️  OCR_API_KEY not set, OCR fallback disabled")
	}

	pdfParser := services.NewPDFParserService()
	extractor := services.NewExtractorService(pdfParser, ocrClient)
	log.Println("✅ Extraction pipeline initialized")

	// Initialize Gemini AI (optional, powers briefings and similar jobs)
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, briefings and similar jobs degraded")
	}

	// Initialize similar-jobs index (needs both Qdrant and Gemini)
	var similarityService services.SimilarityService
	if geminiService != nil && cfg.Qdrant.URL != "" {
		similarityService, err = services.NewSimilarityService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			geminiService,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := similarityService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Similar jobs index initialized")
	} else {
		log.Println("⚠️  Similar jobs index disabled")
	}

	// Initialize analysis pipeline. The remote workflow is the primary tier;
	// without it every analysis uses the keyword fallback scorer.
	var workflowClient services.WorkflowClient
	if cfg.Workflow.APIKey != "" && cfg.Workflow.BaseURL != "" && len(cfg.Workflow.WorkflowIDs) > 0 {
		workflowClient = services.NewWorkflowClient(
			cfg.Workflow.APIKey,
			cfg.Workflow.BaseURL,
			cfg.Workflow.WorkflowIDs,
			cfg.Workflow.PollInterval,
			cfg.Workflow.PollMaxAttempts,
			cfg.Workflow.Timeout,
		)
		log.Println("✅ Job-fit workflow enabled")
	} else {
		log.Println("⚠️  Workflow not configured, analyses will use fallback scoring")
	}

	analyzer := services.NewAnalyzerService(workflowClient, cfg.Workflow.Timeout)
	runner := services.NewAnalysisRunnerService(analysisRepo, docRepo, analyzer, similarityService)
	log.Println("✅ Analysis pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(
		analysisRepo,
		runner,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		extractor,
		cfg.Storage.MaxFileSize,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(
		analysisRepo,
		docRepo,
		worker,
	)
	resultHandler := handlers.NewResultHandler(analysisRepo, similarityService)

	var briefingHandler *handlers.BriefingHandler
	if geminiService != nil {
		briefingService := services.NewBriefingService(geminiService, cfg.Worker.RetryMaxAttempts)
		briefingHandler = handlers.NewBriefingHandler(briefingService)
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Job Sprint Launchpad API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/documents", uploadHandler.HandleUpload)
	api.Post("/analyses", analyzeHandler.HandleAnalyze)
	api.Get("/analyses/:id", resultHandler.HandleGetResult)
	api.Get("/analyses/:id/similar", resultHandler.HandleGetSimilar)

	if briefingHandler != nil {
		api.Post("/briefings", briefingHandler.HandleGenerateBriefing)
	}

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job Sprint Launchpad API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/documents",
				"POST /api/v1/analyses",
				"GET /api/v1/analyses/:id",
				"GET /api/v1/analyses/:id/similar",
				"POST /api/v1/briefings",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
