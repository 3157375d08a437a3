package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umairtariqsalam/Palate/internal/adapters/cache"
	"github.com/umairtariqsalam/Palate/internal/adapters/http/api"
	"github.com/umairtariqsalam/Palate/internal/adapters/repository"
	app "github.com/umairtariqsalam/Palate/internal/app"
	"github.com/umairtariqsalam/Palate/internal/config"
	"github.com/umairtariqsalam/Palate/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	mongoConnTimeout  = 10 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Document store: MongoDB when configured, in-memory otherwise.
	var store repository.Store
	if cfg.MongoURI != "" {
		connCtx, cancel := context.WithTimeout(ctx, mongoConnTimeout)
		client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.MongoURI))
		cancel()
		if err != nil {
			log.Fatal(ctx, "failed to connect to mongodb", logger.Error(err))
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn(context.Background(), "mongodb disconnect failed", logger.Error(err))
			}
		}()
		store = repository.NewMongoStore(client.Database(cfg.MongoDatabase), log)
		log.Info(ctx, "using mongodb store", logger.String("database", cfg.MongoDatabase))
	} else {
		store = repository.NewMemStore()
		log.Warn(ctx, "no mongo_uri configured; using in-memory store")
	}

	// Optional Redis guard for the feedback throttle fast path.
	throttleWindow := time.Duration(cfg.ThrottleWindowMinutes) * time.Minute
	opts := []app.Option{
		app.WithStore(store),
		app.WithLogger(log),
		app.WithCrowdWindow(time.Duration(cfg.CrowdWindowMinutes) * time.Minute),
		app.WithThrottleWindow(throttleWindow),
		app.WithFetchConcurrency(cfg.RestaurantFetchConcurrency),
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() { _ = rdb.Close() }()
		opts = append(opts, app.WithGuard(cache.NewRecentSubmissionGuard(rdb, throttleWindow)))
		log.Info(ctx, "throttle guard enabled", logger.String("redis", cfg.RedisAddr))
	}

	svc := app.New(opts...)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
