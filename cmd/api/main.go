package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"giftcertificates/config"
	_ "giftcertificates/docs"
	"giftcertificates/internal/adapters/auth"
	delivery "giftcertificates/internal/delivery/http"
	"giftcertificates/internal/delivery/http/controllers"
	"giftcertificates/internal/delivery/http/middleware"
	"giftcertificates/internal/repository/postgres"
	"giftcertificates/internal/services"
)

// @title Gift Certificates API
// @version 1.0
// @description REST API for gift certificates with tags, keyword search, and two-key sorting.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	certRepo := postgres.NewCertificateRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := auth.NewJWTTokens(cfg.JWTSecret)

	certService := services.NewCertificateService(certRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)

	certController := controllers.NewCertificateController(logger, certService)
	tagController := controllers.NewTagController(logger, tagService)
	authController := controllers.NewAuthController(logger, authService)

	mux := delivery.NewRouter(certController, tagController, authController, tokenVerifier)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
