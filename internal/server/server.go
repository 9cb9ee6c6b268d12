package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// Server wraps the HTTP server and its route wiring
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New builds a server with all routes registered. redisClient and s3Config
// are optional; without them rate limiting and image upload are disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	recipeService := service.NewRecipeService(db)

	var imageService *service.ImageService
	if s3Config != nil {
		imageService = service.NewImageService(s3Config)
	}

	var authMW []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     20,
			KeyPrefix: "ratelimit:auth",
		})
		authMW = append(authMW, limiter.Middleware())
	}

	api.NewAuthHandler(authService).RegisterRoutes(router, authMW...)
	api.NewRecipeHandler(recipeService, imageService, authService).RegisterRoutes(router)

	return &Server{
		cfg:    cfg,
		router: router,
	}
}

// Start runs the HTTP server until it fails or is shut down
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.router,
	}

	logrus.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
