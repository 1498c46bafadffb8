package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"upvote.app/relay/common/id"
	"upvote.app/relay/common/logger"
	"upvote.app/relay/common/otel"
	"upvote.app/relay/core/config"
	"upvote.app/relay/core/db"
	"upvote.app/relay/internal/http/middleware"
	httprouter "upvote.app/relay/internal/http/router"
	"upvote.app/relay/internal/records"
	"upvote.app/relay/internal/service"
	"upvote.app/relay/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "relay starting",
		"env", cfg.Env,
		"service", cfg.OTel.ServiceName,
		"records_backend", cfg.Records.Backend)

	ids, err := id.NewSnowflake(cfg.NodeID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	client, closeClient, err := newRecordClient(ctx, cfg.Records, ids)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize record backend", "backend", cfg.Records.Backend, "error", err)
		os.Exit(1)
	}
	defer closeClient()

	stores := store.NewStores(client)
	services := service.NewServices(stores, cfg.Roadmap)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// newRecordClient connects the configured backend. The returned func releases its resources.
func newRecordClient(ctx context.Context, cfg config.RecordsConfig, ids id.Source) (records.Client, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("ensuring schema: %w", err)
		}
		slog.InfoContext(ctx, "database connected")
		return records.NewPostgresClient(database.Pool(), ids), database.Close, nil

	case config.BackendArangoDB:
		client, err := records.NewArangoClient(records.ArangoConfig{
			URL:      cfg.ArangoDB.URL,
			Username: cfg.ArangoDB.Username,
			Password: cfg.ArangoDB.Password,
			Database: cfg.ArangoDB.Database,
		}, ids)
		if err != nil {
			return nil, nil, err
		}
		if err := client.EnsureDatabase(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensuring arangodb database: %w", err)
		}
		if err := client.EnsureCollections(ctx, store.Tables...); err != nil {
			return nil, nil, fmt.Errorf("ensuring arangodb collections: %w", err)
		}
		slog.InfoContext(ctx, "arangodb connected", "database", cfg.ArangoDB.Database)
		return client, func() {}, nil

	default:
		slog.WarnContext(ctx, "using in-memory record backend, data is lost on restart")
		return records.NewMemoryClient(nil), func() {}, nil
	}
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → request id joins log fields → Recovery catches panics → Logger logs with both
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID(cfg.HTTP.RequestIDHeader))
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AdminAPIKey:     cfg.AdminAPIKey,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		RequestIDHeader: cfg.HTTP.RequestIDHeader,
	})

	return router
}
