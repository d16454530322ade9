package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mercadoscout/config"
	"mercadoscout/internal/analyzer"
	"mercadoscout/internal/auth"
	"mercadoscout/internal/favorites"
	"mercadoscout/internal/handlers"
	"mercadoscout/internal/routes"
	"mercadoscout/internal/scraper"
	"mercadoscout/internal/storage"
	"mercadoscout/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	log := logger.ForServer()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal().Msg("Invalid configuration")
	}

	ctx := context.Background()
	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal().Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error().Msg("Failed to disconnect MongoDB client")
		}
	}()

	users := storage.NewUserRepository(client.Database(cfg.MongoDB))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal().Msg("Failed to create indexes")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(users, tokens)
	favSvc := favorites.NewService(users)
	searcher := scraper.New(cfg.ListingBaseURL, scraper.DiscountScorer{})
	ranker := analyzer.New(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlers.New(searcher, ranker, authSvc, favSvc), tokens)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal().Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error().Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
