// Package server contains the HTTP surface of the board: the Fiber app
// wiring, the auth gate and the request handlers.
package server

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"agora/internal/bootstrap"
	"agora/internal/config"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/service"
)

// Server holds all dependencies and provides the request handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB      // nil when the file backend is active
	redis          *redis.Client // nil when Redis is unavailable (degraded mode)
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	authService    *service.AuthService
	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
	imageService   *service.ImageService
}

// NewServer creates a server instance, opening the storage backend named by
// STORAGE_DRIVER and connecting to Redis if it is reachable.
func NewServer(cfg *config.Config) (*Server, error) {
	storage, err := bootstrap.OpenStorage(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, storage.DB, storage.Users, storage.Posts, storage.Comments, connectRedis(cfg.RedisURL)), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish storage themselves.
func NewServerWithDeps(cfg *config.Config, userRepo repository.UserRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository, redisClient *redis.Client) *Server {
	return newServer(cfg, nil, userRepo, postRepo, commentRepo, redisClient)
}

func newServer(cfg *config.Config, db *gorm.DB, userRepo repository.UserRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository, redisClient *redis.Client) *Server {
	s := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	// Prometheus collectors register globally; a second registration in the
	// same process panics, so test servers skip metrics.
	if cfg.Env != "test" {
		s.promMiddleware = fiberprometheus.New("agora-api")
	}
	s.authService = service.NewAuthService(userRepo)
	s.userService = service.NewUserService(userRepo)
	s.postService = service.NewPostService(postRepo, commentRepo, userRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo, userRepo)
	s.imageService = service.NewImageService(cfg.UploadDir, cfg.BaseURL)
	return s
}

// connectRedis pings the configured Redis and returns nil on failure; the
// server then runs without rate limits and token revocation.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: redisURL})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, running degraded (no rate limits, no token revocation)",
			"addr", redisURL, "error", err.Error())
		_ = client.Close()
		return nil
	}
	return client
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID to slog
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded post images are served statically.
	app.Static("/uploads", s.config.UploadDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)
	auth.Get("/email-available", s.EmailAvailable)
	auth.Get("/nickname-available", s.NicknameAvailable)

	// Public post routes
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:postId/comments", s.GetComments)
	publicPosts.Get("/:postId", s.GetPost)

	// User routes
	users := api.Group("/users")
	users.Get("/me", s.AuthRequired(), s.GetMyProfile)
	users.Put("/me", s.AuthRequired(), s.UpdateMyProfile)
	users.Patch("/me/password", s.AuthRequired(), s.UpdateMyPassword)
	users.Delete("/me", s.AuthRequired(), s.DeleteMyAccount)
	users.Get("/:userId", s.GetUserProfile)

	// Protected post routes.
	// Specific /:postId/:resource routes go BEFORE the generic /:postId routes.
	posts := api.Group("/posts", s.AuthRequired())
	posts.Post("/", s.CreatePost)
	posts.Post("/:postId/image", s.UploadPostImage)
	posts.Post("/:postId/likes", s.AddLike)
	posts.Delete("/:postId/likes", s.RemoveLike)
	posts.Post("/:postId/comments", s.CreateComment)
	posts.Get("/:postId/comments/:commentId", s.GetComment)
	posts.Patch("/:postId/comments/:commentId", s.UpdateComment)
	posts.Delete("/:postId/comments/:commentId", s.DeleteComment)
	posts.Patch("/:postId", s.UpdatePost)
	posts.Delete("/:postId", s.DeletePost)
}

// HealthCheck reports the storage and Redis status.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storageStatus := "healthy"
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			storageStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			storageStatus = "unhealthy"
		}
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the server degrades without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storageStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"storage": storageStatus,
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the
// Bearer JWT, rejects revoked tokens and stores the caller's identity in
// locals for the handlers.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "agora-api" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "agora-client" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c,
						models.NewUnauthorizedError("token has been revoked"))
				}
			}
			c.Locals("jti", jti)
		}
		if exp, exists := claims["exp"].(float64); exists {
			c.Locals("tokenExp", int64(exp))
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// buildApp constructs the Fiber app with the full middleware and route set.
func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Agora API",
		BodyLimit: 10 * 1024 * 1024, // uploads are capped lower by the image service
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start builds the Fiber app and begins serving.
func (s *Server) Start() error {
	s.app = s.buildApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
