package main

import (
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

	"ats-engine/internal/config"
	"ats-engine/internal/handlers"
	"ats-engine/internal/models"
	"ats-engine/internal/services"
)

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.TempDir)
	if err := storageService.EnsureTempDir(); err != nil {
		log.Fatalf("❌ Failed to create temp directory: %v", err)
	}

	downloaderService := services.NewDownloaderService(cfg.Storage.TempDir)
	if err := downloaderService.EnsureTempDir(); err != nil {
		log.Fatalf("❌ Failed to create download directory: %v", err)
	}

	extractorService := services.NewExtractorService()
	sheetService := services.NewSheetService()
	exportService := services.NewExportService()
	log.Println("✅ Services initialized successfully")

	// Initialize scoring pipeline
	clientFactory := services.NewClientFactory(cfg.LLM.OpenAIModel, cfg.LLM.GeminiModel)
	llmJudge := services.NewLLMJudgeService(
		clientFactory,
		cfg.LLM.RetryMaxAttempts,
		cfg.LLM.RetryBackoffBase,
	)
	keywordMatcher := services.NewKeywordMatcherService()
	scorerService := services.NewScorerService(
		keywordMatcher,
		llmJudge,
		cfg.Scoring.LLMWeight,
		cfg.Scoring.KeywordWeight,
	)
	log.Println("✅ Scoring pipeline initialized")

	// Initialize orchestrator
	orchestratorService := services.NewOrchestratorService(
		scorerService,
		downloaderService,
		extractorService,
		cfg.Batch.Size,
		cfg.Batch.BatchPause,
	)
	log.Println("✅ Orchestrator initialized successfully")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		cfg,
		orchestratorService,
		sheetService,
		extractorService,
		storageService,
	)
	exportHandler := handlers.NewExportHandler(exportService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Candidate Scoring Engine",
		ReadTimeout:  30 * time.Second,
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
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.HealthResponse{
			Status:           "healthy",
			Version:          appVersion,
			OpenAIConfigured: cfg.LLM.OpenAIKey != "",
			GeminiConfigured: cfg.LLM.GeminiKey != "",
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze-direct", analyzeHandler.HandleAnalyzeDirect)
	api.Post("/export", exportHandler.HandleExport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Candidate Scoring Engine",
			"version": appVersion,
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/analyze-direct",
				"POST /api/v1/export",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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
