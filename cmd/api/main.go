package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"placenet/internal/app"
	"placenet/internal/config"
	"placenet/internal/database"
	"placenet/internal/demo"
	apphttp "placenet/internal/http"
	"placenet/internal/http/handlers"
	"placenet/internal/http/metrics"
	httpmw "placenet/internal/http/middleware"
	"placenet/internal/http/response"
	"placenet/internal/observability"
	"placenet/internal/realtime"
	"placenet/internal/repository/postgres"
	"placenet/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	studentRepo := postgres.NewStudentProfileRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	overlay := demo.NewOverlay()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := realtime.NewHub(logger, cfg.HeartbeatInterval)
	go hub.Run(ctx)

	pipelineService := app.NewPipelineService(applicationRepo, jobRepo, studentRepo, analyticsRepo, overlay, cfg.DemoMode)
	jobService := app.NewJobService(jobRepo, analyticsRepo, cfg.DemoMode)
	chatService := app.NewChatService(chatRepo, analyticsRepo, hub)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info("rate limiting backed by redis at " + cfg.RedisAddr)
	}

	applicationHandler := handlers.NewApplicationHandler(pipelineService)
	jobHandler := handlers.NewJobHandler(jobService)
	messageHandler := handlers.NewMessageHandler(chatService, limiter)
	wsHandler := handlers.NewWSHandler(hub, logger)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		MessageHandler:     messageHandler,
		WSHandler:          wsHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     authMiddleware,
		Limiter:            limiter,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
