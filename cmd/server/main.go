package main

import (
	"context"

	firebaseSDK "firebase.google.com/go/v4"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/router"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/pkg/config"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/pkg/firebase"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/pkg/logger"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable not set")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()
	log.Info().Msg("database connections established")

	// Initialize Firebase for image storage. The server runs without it,
	// with uploads disabled.
	var fbApp *firebaseSDK.App
	if cfg.FirebaseCredentialsPath != "" {
		fbApp, err = firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath, cfg.StorageBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize firebase")
		}
		log.Info().Msg("firebase app initialized")
	} else {
		log.Warn().Msg("firebase credentials not configured, image uploads disabled")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, fbApp, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
