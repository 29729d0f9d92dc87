package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/salescope/src/config"
	"github.com/username/salescope/src/database"
	"github.com/username/salescope/src/handlers"
	"github.com/username/salescope/src/llm"
	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/metrics"
	"github.com/username/salescope/src/processors"
	"github.com/username/salescope/src/prompt"
	"github.com/username/salescope/src/security"
	"github.com/username/salescope/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Salescope backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing LLM answer cache...")
	answerCache := cache.New(config.Cfg.ReportCacheTTL, 2*config.Cfg.ReportCacheTTL)

	logger.L.Info("Initializing services and handlers...")
	registry := metrics.NewRegistry()
	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.DashboardAPIKey, config.Cfg.TokenExpiry)
	emailService := services.NewEmailService()
	geminiClient := llm.NewGeminiClient(config.Cfg.GeminiAPIBaseURL, config.Cfg.GeminiModel, config.Cfg.GeminiAPIKey, config.Cfg.LLMTimeout)

	recordNormalizer := processors.NewRecordNormalizer()
	salesAggregator := processors.NewSalesAggregator()
	promptBuilder := prompt.NewBuilder()

	reportService := services.NewReportService(
		recordNormalizer, salesAggregator, promptBuilder,
		geminiClient, answerCache, config.Cfg.ReportCacheTTL, registry,
	)

	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	chatHandler := handlers.NewChatHandler(reportService)
	emailHandler := handlers.NewEmailHandler(emailService)
	healthHandler := handlers.NewHealthHandler(geminiClient)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("POST /api/auth/token", authHandler.HandleIssueToken)

	apiRouter.Handle("POST /api/generate-report", authHandler.AuthMiddleware(reportHandler.HandleGenerateReport))
	apiRouter.Handle("POST /api/chat", authHandler.AuthMiddleware(chatHandler.HandleChat))
	apiRouter.Handle("POST /api/report/email", authHandler.AuthMiddleware(emailHandler.HandleEmailReport))
	apiRouter.Handle("GET /api/llm/health", authHandler.AuthMiddleware(healthHandler.HandleLLMHealth))

	rootMux.Handle("/api/", apiRouter)
	rootMux.Handle("GET /metrics", registry.Handler())

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Salescope backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(handlers.RequestIDMiddleware(rootMux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:    serverAddr,
		Handler: finalHandler,
		// Report generation waits on the LLM collaborator; the write timeout
		// must outlive the LLM client timeout.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: config.Cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
