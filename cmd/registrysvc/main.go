package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shyntr/shyntr/internal/connection"
	"github.com/shyntr/shyntr/internal/dashboard"
	"github.com/shyntr/shyntr/internal/oidcclient"
	"github.com/shyntr/shyntr/internal/samlclient"
	"github.com/shyntr/shyntr/internal/tenant"
	"github.com/shyntr/shyntr/pkg/config"
	"github.com/shyntr/shyntr/pkg/database"
	"github.com/shyntr/shyntr/pkg/logger"
	"github.com/shyntr/shyntr/pkg/middleware"
	"github.com/shyntr/shyntr/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck // best effort

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("service exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:  cfg.App.ServiceName,
		Environment:  cfg.App.Environment,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
	}, zapLogger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := shutdownTracer(shutdownCtx); err != nil {
			zapLogger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	client, db, err := database.Connect(ctx, database.Config{
		URL:            cfg.Mongo.URL,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := client.Disconnect(disconnectCtx); err != nil {
			zapLogger.Warn("mongo disconnect", zap.Error(err))
		}
	}()
	zapLogger.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	clientStore := oidcclient.NewStore(db)
	samlClientStore := samlclient.NewStore(db)
	samlConnStore := connection.NewSAMLStore(db)
	oidcConnStore := connection.NewOIDCStore(db)
	tenantStore := tenant.NewStore(db)

	indexCtx, stopIndexes := context.WithTimeout(ctx, 10*time.Second)
	defer stopIndexes()
	if err := clientStore.EnsureIndexes(indexCtx); err != nil {
		return err
	}
	if err := samlClientStore.EnsureIndexes(indexCtx); err != nil {
		return err
	}
	if err := tenantStore.EnsureIndexes(indexCtx); err != nil {
		return err
	}

	clientSvc := oidcclient.NewService(clientStore)
	samlClientSvc := samlclient.NewService(samlClientStore)
	connectionSvc := connection.NewService(samlConnStore, oidcConnStore)
	tenantSvc := tenant.NewService(tenantStore)
	dashboardSvc := dashboard.NewService(clientStore, samlClientStore, samlConnStore, oidcConnStore, tenantStore)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(rate.Limit(100), 200))
	router.Use(otelgin.Middleware(cfg.App.ServiceName))

	metrics := observability.NewMetrics()
	router.Use(observability.PrometheusMiddleware(metrics))
	router.GET("/metrics", gin.WrapH(observability.PrometheusHandler()))

	router.GET("/healthz", func(c *gin.Context) {
		pingCtx, stop := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer stop()
		if err := client.Ping(pingCtx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Shyntr IAM API"})
	})
	oidcclient.NewHTTPHandler(clientSvc, zapLogger).RegisterRoutes(api)
	samlclient.NewHTTPHandler(samlClientSvc, zapLogger).RegisterRoutes(api)
	connection.NewHTTPHandler(connectionSvc, zapLogger).RegisterRoutes(api)
	tenant.NewHTTPHandler(tenantSvc, zapLogger).RegisterRoutes(api)
	dashboard.NewHTTPHandler(dashboardSvc, zapLogger).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zapLogger.Info("server stopped")
	return nil
}
