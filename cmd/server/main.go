package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/legalia/intake-api/internal/config"
	"github.com/legalia/intake-api/internal/handlers"
	"github.com/legalia/intake-api/internal/knowledge"
	"github.com/legalia/intake-api/internal/logger"
	"github.com/legalia/intake-api/internal/middleware"
	"github.com/legalia/intake-api/internal/ratelimit"
	"github.com/legalia/intake-api/internal/services/ai"
	"github.com/legalia/intake-api/internal/triage"
	"go.uber.org/zap"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	// Load .env if present, real environment wins
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
	)

	// Load the knowledge base (embedded dataset unless a path is configured)
	kb, err := knowledge.Load(cfg.KnowledgeBasePath)
	if err != nil {
		zapLogger.Fatal("failed_to_load_knowledge_base",
			zap.String("path", cfg.KnowledgeBasePath),
			zap.Error(err),
		)
	}
	zapLogger.Info("knowledge_base_loaded",
		zap.Int("entries", kb.Size()),
		zap.Int("version", kb.Version()),
	)

	// Initialize the question classifier
	classifier, err := createClassifier(cfg, zapLogger, debugMode)
	if err != nil {
		zapLogger.Fatal("failed_to_create_classifier", zap.Error(err))
	}

	triageService := triage.NewService(classifier, kb, zapLogger)

	// Rate limiters: standard preset for intake, strict preset for the
	// detailed-answer endpoint
	standardLimiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	strictLimiter := ratelimit.New(cfg.StrictRateLimitRequests, cfg.StrictRateLimitWindow)

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(triageService, zapLogger)
	categoryHandler := handlers.NewCategoryHandler(kb)
	healthChecker := handlers.NewHealthChecker(kb, classifier)

	// Setup router
	r := mux.NewRouter()

	// Note: In gorilla/mux, middleware executes in reverse order of registration
	// Middleware registered LAST executes FIRST (outermost wrapper)
	zapLogger.Info("setting_up_middleware")

	// 1. Security headers (should be set on all responses)
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	// 2. CORS
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	// 3. Request size limits (protects against DoS)
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	// 4. Content-Type validation for POST/PATCH/PUT requests
	r.Use(middleware.ContentType)
	// 5. Request timeout (30 seconds default)
	r.Use(middleware.Timeout(30 * time.Second))
	// 6. Error handler (catches panics)
	r.Use(middleware.ErrorHandler(zapLogger))
	// 7. Logging (innermost, executes last before handler)
	r.Use(middleware.Logging(zapLogger))

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// API v1 routes
	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	// Category listing (standard limiter)
	categoriesRouter := apiRouter.PathPrefix("/categories").Subrouter()
	categoriesRouter.Use(middleware.RateLimit(standardLimiter, zapLogger))
	categoriesRouter.HandleFunc("", categoryHandler.ListCategories).Methods("GET")

	// Question intake (standard limiter on the main endpoint, strict
	// limiter on detailed answers since each call costs an LLM request).
	// The detailed prefix must be registered first, mux subrouters do not
	// fall through once a prefix matches.
	detailedRouter := apiRouter.PathPrefix("/questions/detailed").Subrouter()
	detailedRouter.Use(middleware.RateLimit(strictLimiter, zapLogger))
	detailedRouter.HandleFunc("", questionHandler.DetailedAnswer).Methods("POST")

	questionsRouter := apiRouter.PathPrefix("/questions").Subrouter()
	questionsRouter.Use(middleware.RateLimit(standardLimiter, zapLogger))
	questionsRouter.HandleFunc("", questionHandler.AskQuestion).Methods("POST")

	// Catch-all OPTIONS handler for preflight requests
	// The CORS middleware will handle setting headers before this is called
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// createClassifier creates a question classifier based on configuration
func createClassifier(cfg *config.Config, logger *zap.Logger, debugMode bool) (ai.Classifier, error) {
	providerType := cfg.AIProvider
	if providerType == "" {
		providerType = "openai"
	}

	// Create the classifier directly with logger support
	if providerType == "openai" {
		return ai.NewOpenAIClassifierWithLogger(
			cfg.OpenAIKey,
			cfg.AIBaseURL,
			cfg.AIModel,
			logger,
			debugMode,
		)
	}

	// Fallback to registry for other providers (without logger)
	registry := ai.NewClassifierRegistry()
	ai.RegisterOpenAI(registry)

	return registry.GetClassifier(providerType, map[string]string{
		"api_key":  cfg.OpenAIKey,
		"model":    cfg.AIModel,
		"base_url": cfg.AIBaseURL,
	})
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// Only expose minimal version info (sanitized for security)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
