package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/config"
	"research-blog-backend/pkg/logger"
)

func main() {
	// Load từ .env file (development/local).
	// Production dùng system environment variables.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting")

	if err := Serve(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}
