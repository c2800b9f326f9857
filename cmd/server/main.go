package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lorenzodc/catalyst-api/config"
	"github.com/lorenzodc/catalyst-api/internal/api/rest"
	"github.com/lorenzodc/catalyst-api/internal/app"
	"github.com/lorenzodc/catalyst-api/internal/gate"
	"github.com/lorenzodc/catalyst-api/internal/integration/openai"
	"github.com/lorenzodc/catalyst-api/internal/kafka"
	"github.com/lorenzodc/catalyst-api/internal/metrics"
	"github.com/lorenzodc/catalyst-api/internal/repository/postgres"
	"github.com/lorenzodc/catalyst-api/internal/service"
	"github.com/lorenzodc/catalyst-api/internal/stripe"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

var log *logger.Logger

func init() {
	logLevel := logger.INFO
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = logger.DEBUG
	}
	log = logger.New(logLevel)
}

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prometheus
	promRegistry := prometheus.NewRegistry()
	gateMetrics := metrics.NewGateMetrics(promRegistry, log)
	systemMetrics := metrics.NewSystemMetrics(promRegistry, log)

	systemMetrics.StartRecording(15 * time.Second)
	defer systemMetrics.Stop()

	// Database
	dbPool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	quotaRepo := postgres.NewQuotaRepository(dbPool, log)
	goalRepo := postgres.NewGoalRepository(dbPool, log)

	// Kafka is analytics-only: a broker outage degrades the event stream,
	// not the API.
	producer, err := kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		log.Warn("Kafka producer unavailable, usage events will not be published: %v", err)
		producer = nil
	} else {
		defer producer.Close()
	}

	usageService := service.NewUsageService(quotaRepo, producer, gateMetrics, log)
	goalService := service.NewGoalService(goalRepo, log)
	assessmentService := service.NewAssessmentService()

	usageGate := gate.New(usageService, gateMetrics, log)

	aiClient := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	}, log)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application := app.NewApp(cfg, app.Dependencies{
		Gate:       usageGate,
		Usage:      usageService,
		Goals:      goalService,
		Assessment: assessmentService,
		AI:         aiClient,
		Stripe:     stripeClient,
	}, log)

	router := rest.SetupRouter(application, promRegistry, log)
	server := rest.NewServer(router, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
