package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/auri-community/blog/blog/application"
	"github.com/auri-community/blog/blog/persistence"
	"github.com/auri-community/blog/internal/config"
	"github.com/auri-community/blog/internal/logger"
	"github.com/auri-community/blog/internal/middleware"
	"github.com/auri-community/blog/internal/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Setup(cfg.LogLevel)

	// Initialize dependencies
	postRepo := persistence.NewMemoryPostRepository()
	postService := application.NewPostService(postRepo)

	if cfg.SeedSamples {
		if err := postService.SeedSamplePosts(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed sample posts")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.NewApi(r, rest.NewPostsHandler(postService), rest.NewUploadHandler(cfg.UploadDir))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
