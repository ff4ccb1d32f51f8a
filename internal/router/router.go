package router

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/handlers"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/middleware"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/storage"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, fbApp *firebase.App, cfg *config.Config, log zerolog.Logger) error {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		return err
	}
	log.Info().Msg("postgres auto-migrations completed")

	mgdb := mgClient.Database(cfg.MongoDatabase)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	tagRepo := repositories.NewMongoTagRepository(mgdb)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tagRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info().Msg("mongo indexes ensured")

	// --- Initialize services ---
	var blobs storage.BlobStore
	if fbApp != nil {
		blobs = storage.NewFirebaseBlobStore(fbApp, cfg.StorageBucket)
	}
	tagService := service.NewTagService(tagRepo)
	postService := service.NewPostService(postRepo, tagService, blobs, log)
	feedService := service.NewFeedService(postRepo, userRepo, followRepo, tagRepo)
	engagementService := service.NewEngagementService(postRepo, commentRepo)

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	public := e.Group("/api/v1")
	tagHandler := handlers.NewTagHandler(tagService)
	tagHandler.RegisterPublicTagRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, tagService)
	userHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)

	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api)

	tagHandler.RegisterTagRoutes(api)

	if blobs != nil {
		uploadHandler := handlers.NewUploadHandler(blobs)
		uploadHandler.RegisterUploadRoutes(api)
	}

	log.Info().Msg("all routes configured")
	return nil
}
