package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/handlers"
	"github.com/nft-maker-one/twitter-clone/internal/middleware"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
	"github.com/nft-maker-one/twitter-clone/pkg/firebase"
)

// Options carries what SetupRoutes needs beyond the database handle.
type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	// Paging defaults to handlers.DefaultPaging when unset.
	Paging    handlers.Paging
	// Firebase is nil when Firebase login is disabled.
	Firebase  firebase.TokenVerifier
	Logger    *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, opts Options) {
	log := opts.Logger
	paging := opts.Paging
	if paging.MaxLimit == 0 {
		paging = handlers.DefaultPaging
	}

	healthHandler := handlers.NewHealthHandler(db)
	e.GET("/health", healthHandler.HealthCheck)

	// --- Initialize Repositories ---
	followRepo := repositories.NewPostgresFollowRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db, followRepo)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	feedRepo := repositories.NewPostgresFeedRepository(db, likeRepo)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, opts.Firebase, opts.JWTSecret, opts.JWTTTL, log)
	userHandler := handlers.NewUserHandler(userRepo, paging)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, paging)
	postHandler := handlers.NewPostHandler(postRepo, feedRepo, likeRepo, paging)
	commentHandler := handlers.NewCommentHandler(commentRepo, paging)
	likeHandler := handlers.NewLikeHandler(likeRepo)
	feedHandler := handlers.NewFeedHandler(feedRepo, paging)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, paging)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Read routes with an optional viewer ---
	public := e.Group("/api/v1", middleware.OptionalJWTAuth(opts.JWTSecret))
	userHandler.RegisterUserRoutes(public)
	followHandler.RegisterFollowListRoutes(public)
	postHandler.RegisterPostReadRoutes(public)
	commentHandler.RegisterCommentReadRoutes(public)
	likeHandler.RegisterLikeReadRoutes(public)
	feedHandler.RegisterSearchRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(opts.JWTSecret))
	userHandler.RegisterProfileRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info("routes configured", zap.Int("count", len(e.Routes())))
}
