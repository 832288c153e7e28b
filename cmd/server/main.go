package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/api"
	"github.com/learnhub/lesson-api/internal/api/handler"
	"github.com/learnhub/lesson-api/internal/api/middleware"
	"github.com/learnhub/lesson-api/internal/core/service"
	"github.com/learnhub/lesson-api/internal/infrastructure/config"
	mongodb "github.com/learnhub/lesson-api/internal/infrastructure/db/mongo"
	redisdb "github.com/learnhub/lesson-api/internal/infrastructure/db/redis"
	"github.com/learnhub/lesson-api/internal/infrastructure/generation"
	"github.com/learnhub/lesson-api/internal/infrastructure/ratelimit"
	"github.com/learnhub/lesson-api/internal/infrastructure/token"
	"github.com/learnhub/lesson-api/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Minute
)

// @title                      Lesson API
// @version                    1.0
// @description                Generates short lessons for a chosen category and topic and keeps each user's history.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	readiness := map[string]handler.Pinger{"mongodb": mongodb.NewPinger(mongoClient)}

	// --- Rate limiting ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer closeRedis(rdb, log)
		readiness["redis"] = redisdb.NewPinger(rdb)
	}
	apiLimiter, loginLimiter := newLimiters(ctx, cfg.RateLimit, rdb, log)

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	prompts := mongodb.NewPromptRepository(db)

	// --- Collaborators ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	generator := generation.NewOpenAIGenerator(generation.Config{
		APIKey:    cfg.OpenAI.APIKey,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
		BaseURL:   cfg.OpenAI.BaseURL,
	}, log)

	// --- Services ---
	ref := service.NewReferential(users, categories)

	router := api.NewRouter(api.Deps{
		Log:          log,
		Dev:          cfg.IsDevelopment(),
		Tokens:       tokens,
		Auth:         service.NewAuthService(users, ref, hasher, tokens, log),
		Prompts:      service.NewPromptService(ref, prompts, generator, log),
		Users:        service.NewUserService(users, ref, hasher, log),
		Admin:        service.NewAdminService(users, prompts, ref, log),
		Categories:   service.NewCategoryService(categories, ref),
		APILimiter:   apiLimiter,
		LoginLimiter: loginLimiter,
		Readiness:    readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// newLimiters returns the API and login limiters. With a Redis client the
// counters are shared between instances; without one they live in process
// and are swept every cleanupInterval until ctx ends.
func newLimiters(ctx context.Context, cfg config.RateLimitConfig, rdb *goredis.Client, log zerolog.Logger) (apiLimiter, loginLimiter middleware.Limiter) {
	if rdb != nil {
		log.Info().Msg("rate limits shared through redis")
		return redisdb.NewWindowLimiter(rdb, "api", cfg.Max, cfg.Window),
			redisdb.NewWindowLimiter(rdb, "login", cfg.LoginMax, cfg.LoginWindow)
	}

	apiMem := ratelimit.NewMemoryLimiter(cfg.Max, cfg.Window)
	loginMem := ratelimit.NewMemoryLimiter(cfg.LoginMax, cfg.LoginWindow)
	go apiMem.RunCleanup(ctx, cleanupInterval)
	go loginMem.RunCleanup(ctx, cleanupInterval)
	log.Info().Msg("rate limits kept in process")
	return apiMem, loginMem
}

func closeRedis(c *goredis.Client, log zerolog.Logger) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
