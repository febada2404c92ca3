package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"mockmate/interview-api/internal/auth"
	"mockmate/interview-api/internal/config"
	"mockmate/interview-api/internal/handlers"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage and parsing
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	pdfParser := services.NewPDFParserService()

	// Fallback data must be valid at startup; a broken override file is a
	// configuration error, not something to degrade around.
	fallbacks, err := services.NewFallbackStore(cfg.Fallback.DataPath)
	if err != nil {
		log.Fatalf("❌ Failed to load fallback data: %v", err)
	}
	log.Println("✅ Fallback data loaded")

	// Gemini is optional: without it the API still serves interviews from
	// fallback questions and scorecards.
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Printf("⚠️  Gemini unavailable: %v. Running on fallback data\n", err)
		geminiService = nil
	} else {
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Qdrant is optional too: question generation works without retrieved
	// guide material.
	var guideStore services.GuideRetriever
	if gs, err := services.NewQdrantGuideStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	); err != nil {
		log.Printf("⚠️  Qdrant unavailable: %v. Guide retrieval disabled\n", err)
	} else if err := gs.InitCollection(); err != nil {
		log.Printf("⚠️  Qdrant collection init failed: %v. Guide retrieval disabled\n", err)
	} else {
		guideStore = gs
		log.Println("✅ Qdrant initialized successfully")
	}

	// Core services
	qualityGate := services.NewQualityGate(cfg.Quality.EchoOverlapThreshold)
	interviewer := services.NewInterviewerService(geminiService, guideStore, fallbacks)
	feedback := services.NewFeedbackService(geminiService, qualityGate, fallbacks)
	resumeAnalyzer := services.NewResumeService(geminiService)

	sessions := services.NewSessionManager()
	if cfg.Session.SweepEnabled {
		sessions.StartSweeper(cfg.Session.SweepInterval, cfg.Session.MaxAge)
	}
	log.Println("✅ Services initialized successfully")

	// Auth
	tokens := auth.NewTokenGenerator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authRequired := auth.NewMiddleware(tokens)

	// Initialize handlers
	validate := validator.New()
	authHandler := handlers.NewAuthHandler(userRepo, tokens, validate)
	interviewHandler := handlers.NewInterviewHandler(sessions, interviewer, feedback, validate)
	historyHandler := handlers.NewHistoryHandler(interviewRepo, validate)
	resumeHandler := handlers.NewResumeHandler(storageService, pdfParser, resumeAnalyzer, resumeRepo, validate)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MockMate Interview API",
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
			"status":   "healthy",
			"time":     time.Now(),
			"ai":       geminiService != nil,
			"guides":   guideStore != nil,
			"sessions": sessions.Stats(),
		})
	})

	// Auth
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)

	// Interview sessions
	api.Post("/interview/questions", interviewHandler.HandleGenerateQuestions)
	api.Post("/interview/:sessionId/answers", interviewHandler.HandleSubmitAnswer)
	api.Get("/interview/:sessionId/answers", interviewHandler.HandleGetAnswers)
	api.Get("/interview/:sessionId/feedback", interviewHandler.HandleGetFeedback)
	api.Delete("/interview/:sessionId", interviewHandler.HandleEndSession)

	// Resume
	api.Post("/resume/upload", resumeHandler.HandleUploadResume)
	api.Post("/resume", authRequired, resumeHandler.HandleSaveResume)
	api.Get("/resume/active", authRequired, resumeHandler.HandleGetActiveResume)

	// History
	history := api.Group("/history", authRequired)
	history.Post("/interviews", historyHandler.HandleSaveInterview)
	history.Get("/interviews", historyHandler.HandleListInterviews)
	history.Get("/interviews/:id", historyHandler.HandleGetInterview)
	history.Delete("/interviews/:id", historyHandler.HandleDeleteInterview)
	history.Get("/stats", historyHandler.HandleGetStats)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "MockMate Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/interview/questions",
				"POST /api/v1/interview/:sessionId/answers",
				"GET /api/v1/interview/:sessionId/feedback",
				"POST /api/v1/resume/upload",
				"GET /api/v1/history/interviews",
				"GET /api/v1/history/stats",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if cfg.Session.SweepEnabled {
			sessions.StopSweeper()
		}
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
