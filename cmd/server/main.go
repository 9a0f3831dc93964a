package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	chatapp "github.com/pollwise/backend/internal/application/chat"
	identityapp "github.com/pollwise/backend/internal/application/identity"
	votingapp "github.com/pollwise/backend/internal/application/voting"
	"github.com/pollwise/backend/internal/infrastructure/auth"
	"github.com/pollwise/backend/internal/infrastructure/config"
	"github.com/pollwise/backend/internal/infrastructure/logger"
	"github.com/pollwise/backend/internal/infrastructure/persistence"
	"github.com/pollwise/backend/internal/infrastructure/storage"
	"github.com/pollwise/backend/internal/interfaces/http/handler"
	"github.com/pollwise/backend/internal/interfaces/http/middleware"
	"github.com/pollwise/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	appVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Pollwise Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	pollRepo := persistence.NewGormPollRepository(db.DB)
	voteRepo := persistence.NewGormVoteRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Token blacklist: Redis when configured, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist; revocations do not survive restarts")
	}

	// Object storage for poll attachments
	var objectStorage votingapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
			cancelBucket()
			log.Fatal("Failed to prepare attachment bucket", zap.Error(err))
		}
		cancelBucket()
		objectStorage = s3Storage
		log.Info("Object storage enabled",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint))
	} else if cfg.App.Env != "production" {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, using stub storage")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	pollService := votingapp.NewPollService(pollRepo, voteRepo, objectStorage)
	if cfg.Storage.PresignExpiration > 0 {
		pollService.SetConfig(votingapp.PollServiceConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		})
	}
	voteService := votingapp.NewVoteService(pollRepo, voteRepo, votingapp.VoteServiceConfig{
		AllowVoteAfterClose: cfg.Voting.AllowVoteAfterClose,
	})
	resultService := votingapp.NewResultService(pollRepo, voteRepo)
	chatService := chatapp.NewService(chatapp.ServiceConfig{
		UpstreamURL: cfg.Chat.UpstreamURL,
		APIKey:      cfg.Chat.APIKey,
		Timeout:     cfg.Chat.Timeout,
		Development: cfg.App.IsDevelopment(),
	}, log)

	if cfg.Voting.AllowVoteAfterClose {
		log.Warn("Votes on closed polls are accepted by configuration")
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	pollHandler := handler.NewPollHandler(pollService)
	voteHandler := handler.NewVoteHandler(voteService)
	resultHandler := handler.NewResultHandler(resultService)
	chatHandler := handler.NewChatHandler(chatService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, appVersion)

	if cfg.App.IsDevelopment() {
		for _, base := range []*handler.BaseHandler{
			&authHandler.BaseHandler,
			&pollHandler.BaseHandler,
			&voteHandler.BaseHandler,
			&resultHandler.BaseHandler,
			&chatHandler.BaseHandler,
			&systemHandler.BaseHandler,
		} {
			base.Development = true
		}
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	installMiddleware(engine, cfg, log)

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes. Authentication is optional at the middleware
	// level: anonymous voters carry a session token instead, and the
	// role gate on admin routes rejects requests without claims.
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.OptionalJWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}))
	r.Use(middleware.VoterSession())

	r.Register(authHandler).
		Register(pollHandler).
		Register(voteHandler).
		Register(resultHandler).
		Register(chatHandler).
		Register(systemHandler)

	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	serve(engine, cfg, log)
}

// installMiddleware wires the global middleware stack. Order matters:
// request IDs and recovery come first so every later stage logs with them.
func installMiddleware(engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", middleware.VoterSessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests for up to 30 seconds.
func serve(engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
