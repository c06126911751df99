package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"unistay/internal/config"
	"unistay/internal/handler"
	"unistay/internal/metrics"
	"unistay/internal/middleware"
	"unistay/internal/pkg/smstemplate"
	"unistay/internal/queue"
	"unistay/internal/repository"
	"unistay/internal/service"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redis != nil {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg, logger)
	if err != nil {
		logger.Warn("Failed to connect to MinIO, cleanup will not archive", zap.Error(err))
	}

	if cfg.SMSTemplateDir != "" {
		if err := smstemplate.LoadTemplates(cfg.SMSTemplateDir); err != nil {
			logger.Fatal("Failed to load SMS templates", zap.Error(err))
		}
	}

	deps := service.Deps{Redis: redis, MinIO: minioClient}
	if len(cfg.KafkaBrokers) > 0 {
		producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		deps.Publisher = producer
	} else {
		logger.Info("KAFKA_BROKERS not set, SMS is sent on page load and admin request only")
	}

	metrics.Init()

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, deps, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handler.SetupRoutes(app, handlers, services.Auth)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
