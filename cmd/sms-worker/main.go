package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"unistay/internal/config"
	"unistay/internal/metrics"
	"unistay/internal/pkg/smstemplate"
	"unistay/internal/queue"
	"unistay/internal/repository"
	"unistay/internal/service"
	"unistay/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("sms-worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redis != nil {
		defer redis.Close()
	}

	if cfg.SMSTemplateDir != "" {
		if err := smstemplate.LoadTemplates(cfg.SMSTemplateDir); err != nil {
			logger.Fatal("Failed to load SMS templates", zap.Error(err))
		}
	}

	metrics.Init()

	services, err := service.NewServices(repository.NewRepositories(db), service.Deps{Redis: redis}, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create services", zap.Error(err))
	}

	var source worker.JobSource
	if len(cfg.KafkaBrokers) > 0 {
		consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
		defer consumer.Close()
		source = consumer
	}
	if source == nil && cfg.SweepInterval <= 0 {
		logger.Fatal("Nothing to do: set KAFKA_BROKERS or SMS_SWEEP_INTERVAL")
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	go func() {
		if err := app.Listen(":" + cfg.MetricsPort); err != nil {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()
	defer func() { _ = app.Shutdown() }()

	logger.Info("Worker starting",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.Duration("sweep_interval", cfg.SweepInterval),
	)
	if err := worker.New(source, services.Dispatch, cfg.SweepInterval, logger).Run(ctx); err != nil {
		logger.Error("Worker stopped", zap.Error(err))
	}
	logger.Info("Worker stopped")
}
