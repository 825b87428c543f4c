// Package main runs the event platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MoisesFigueroaV/panorama-sub000/config"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/auth"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/categories"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/events"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/notifications"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/organizers"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/roles"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/users"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/worker"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/database"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/queue"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/redis"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/storage"
)

// apiHandlers groups the feature handlers wired into the router.
type apiHandlers struct {
	auth          *auth.Handler
	users         *users.Handler
	roles         *roles.Handler
	organizers    *organizers.Handler
	categories    *categories.Handler
	events        *events.Handler
	notifications *notifications.Handler
}

// newRouter builds the gin engine with middleware and the /api/v1 route table.
func newRouter(frontendURL string, logger *zap.Logger, tokens *auth.TokenService, h apiHandlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(frontendURL))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api/v1")
	api.Use(middleware.Session(tokens))

	// Auth (public)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/registro", h.auth.Register)
		authGroup.POST("/login", h.auth.Login)
		authGroup.POST("/token/refresh", h.auth.Refresh)
	}

	// Public catalog
	api.GET("/categorias", h.categories.List)
	api.GET("/eventos", h.events.List)
	api.GET("/eventos/:id", h.events.GetByID)
	api.GET("/organizadores", h.organizers.List)
	api.GET("/organizadores/:id", h.organizers.GetByID)

	// Authenticated users
	authed := api.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.GET("/usuarios/yo", h.users.Me)
		authed.PUT("/usuarios/yo", h.users.UpdateMe)

		authed.POST("/organizadores", h.organizers.Create)
		authed.GET("/organizadores/yo", h.organizers.Me)
		authed.PUT("/organizadores/:id", h.organizers.Update)
		authed.POST("/organizadores/yo/documento", h.organizers.UploadDocument)

		authed.POST("/eventos", h.events.Create)
		authed.GET("/eventos/mis-eventos", h.events.MyEvents)
		authed.PUT("/eventos/:id", h.events.Update)
		authed.DELETE("/eventos/:id", h.events.Delete)
		authed.POST("/eventos/:id/imagen", h.events.UploadImage)

		authed.GET("/notificaciones/yo", h.notifications.ListMine)
		authed.DELETE("/notificaciones/:id", h.notifications.Delete)
	}

	// Admin
	admin := api.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admin/usuarios", h.users.List)

		admin.GET("/roles-usuario", h.roles.List)
		admin.GET("/roles-usuario/:id", h.roles.Get)
		admin.POST("/roles-usuario", h.roles.Create)
		admin.PUT("/roles-usuario/:id", h.roles.Update)
		admin.DELETE("/roles-usuario/:id", h.roles.Delete)

		admin.PATCH("/admin/organizadores/:id/acreditacion", h.organizers.SetAccreditation)
		admin.GET("/admin/organizadores/:id/acreditacion/historial", h.organizers.History)
		admin.GET("/admin/organizadores/:id/documento", h.organizers.DocumentURL)

		admin.GET("/admin/events", h.events.AdminList)
		admin.PATCH("/admin/events/:id/estado", h.events.SetStatus)

		admin.POST("/notificaciones", h.notifications.Create)
	}

	return router
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.URL, database.PoolSettings{
		MaxConns:          cfg.Database.PoolMax,
		IdleTimeoutSec:    cfg.Database.PoolIdleTimeoutSec,
		ConnectTimeoutSec: cfg.Database.PoolConnectTimeoutSec,
	}, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			DocumentsBucket:      cfg.AWS.DocumentsBucket,
			ImagesBucket:         cfg.AWS.ImagesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	tokens := auth.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpireMinutes, cfg.JWT.RefreshExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	authRepo := auth.NewRepository(pool)
	userRepo := users.NewRepository(pool)
	roleRepo := roles.NewRepository(pool)
	orgRepo := organizers.NewRepository(pool)
	categoryRepo := categories.NewRepository(pool)
	eventRepo := events.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)

	handlers := apiHandlers{
		auth:          auth.NewHandler(authRepo, tokens, logger),
		users:         users.NewHandler(userRepo, logger),
		roles:         roles.NewHandler(roleRepo, logger),
		organizers:    organizers.NewHandler(orgRepo, s3Client, logger),
		categories:    categories.NewHandler(categoryRepo, logger),
		events:        events.NewHandler(eventRepo, orgRepo, s3Client, logger),
		notifications: notifications.NewHandler(notificationRepo, jobQueue, logger),
	}
	notificationProcessor := worker.NewNotificationProcessor(notificationRepo, jobQueue, logger)

	router := newRouter(cfg.Server.FrontendURL, logger, tokens, handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (notification dispatch)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workerDone := make(chan struct{})
	go func() {
		notificationProcessor.Run(workerCtx)
		close(workerDone)
	}()
	logger.Info("notification worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn("notification worker did not stop in time")
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
