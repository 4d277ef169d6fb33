package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/adapters/cache/redis"
	"github.com/SscSPs/money_transfer_service/internal/adapters/ratefeed"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/core/services"
	"github.com/SscSPs/money_transfer_service/internal/handlers"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/SscSPs/money_transfer_service/internal/platform/config"
	"github.com/SscSPs/money_transfer_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/money_transfer_service/internal/repositories/memory"
	"github.com/SscSPs/money_transfer_service/pkg/database"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

//go:generate swag init -g main.go -d .,../../internal -o ../docs

// @title Money Transfer Service API
// @version 1.0
// @description Multi-currency accounts, exchange rates and transfers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to connect to redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		repos.CurrencyRepo = redis.NewCurrencyCache(repos.CurrencyRepo, redisClient, cfg.CurrencyCacheTTL, logger)
		logger.Info("Currency cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.CurrencyCacheTTL))
	}

	serviceContainer := services.NewServiceContainer(repos)

	rateLimiter, err := setupRateLimiter(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	scheduler := cron.New()
	if cfg.RateFeedURL != "" {
		feedClient := ratefeed.NewClient(cfg.RateFeedURL, cfg.RateFeedTimeout, logger)
		job := ratefeed.NewJob(feedClient, serviceContainer.ExchangeRate, cfg.RateFeedTimeout, logger)
		if _, err := ratefeed.Schedule(ctx, scheduler, cfg.RateFeedSchedule, job); err != nil {
			logger.Error("Failed to schedule rate feed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("Rate feed scheduled", slog.String("url", cfg.RateFeedURL), slog.String("schedule", cfg.RateFeedSchedule))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	run(ctx, logger, net.JoinHostPort("", cfg.Port), r)

	// Wait for an in-flight feed run before storage is closed.
	<-scheduler.Stop().Done()
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("address", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
		return
	case <-ctx.Done():
	}

	logger.Info("Gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down http server", slog.String("error", err.Error()))
	}
}

// setupRepositories builds the repository provider for the configured backend
// and returns a function releasing its resources.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Info("Using in-memory storage")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// setupRateLimiter uses the redis store when a client is available so that
// limits are shared across instances.
func setupRateLimiter(cfg *config.Config, redisClient *goredis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "mts_limiter"})
		if err != nil {
			return nil, err
		}
	} else {
		store = memorystore.NewStore()
	}

	return limiter.New(store, rate), nil
}
