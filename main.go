package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"user-lookup-service/internal/config"
	"user-lookup-service/internal/db"
	"user-lookup-service/internal/handlers"
	"user-lookup-service/internal/metrics"
	"user-lookup-service/internal/middleware"
	"user-lookup-service/internal/observability"
	"user-lookup-service/internal/rabbitmq"
	"user-lookup-service/internal/repositories"
	"user-lookup-service/internal/services"
	"user-lookup-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Printf("configuration loaded: %v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	provider := db.NewProvider(database)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout+time.Second)
	if err := provider.Ping(pingCtx); err != nil {
		log.Printf("warning: database not reachable at startup; lookups will fail until it is: %v", err)
	}
	cancel()

	observability.InitMetrics(prometheus.DefaultRegisterer)
	observability.RegisterDBStats(prometheus.DefaultRegisterer, provider.Stats)
	metrics.RegisterLookupMetrics()

	auditPublisher := rabbitmq.NewNoopPublisher()
	if cfg.AMQP.URL == "" {
		log.Printf("warning: AMQP_URL not set; audit publishing disabled")
	} else {
		pub, err := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.LogsExchange)
		if err != nil {
			log.Printf("warning: failed to initialize RabbitMQ audit publisher: %v", err)
		} else {
			auditPublisher = pub
		}
	}
	defer auditPublisher.Close()

	auditEmitter := telemetry.NewAuditEmitter(auditPublisher, cfg.ServiceName, cfg.Environment)
	userRepo := repositories.NewUserRepository(provider)
	userService := services.NewUserService(userRepo, auditEmitter)

	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(provider)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.Metrics())

	r.GET("/users/:user_id", userHandler.GetUserByID)
	r.GET("/healthz", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
