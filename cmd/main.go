package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pipecrm/docs/swagger"
	"pipecrm/internal/api"
	"pipecrm/internal/config"
	"pipecrm/internal/db"
	"pipecrm/internal/handlers"
	"pipecrm/internal/models"
	"pipecrm/internal/services"
	"pipecrm/internal/tasks"
	console "pipecrm/internal/utils/logger"
)

// @title pipecrm API
// @version 1.0
// @description API documentation for the pipecrm application
// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	logger := console.New("pipecrm")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Initialize task client and wire campaign scheduling events
	taskClient := tasks.NewTaskClient(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	defer taskClient.Close()
	taskClient.WatchCampaigns()

	// Initialize task handlers
	taskHandler := tasks.NewTaskHandler(dbInstance, taskClient)

	// Initialize task server
	taskServer := tasks.NewServer(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Worker.Concurrency,
		taskHandler,
		logger,
	)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Start task server
	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		logger,
	)

	// Start task scheduler
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance)
	go func() {

		// Initialize S3 service when credentials are present; without it
		// uploads are rejected and signed URLs are skipped.
		if cfg.S3.BucketName != "" {
			s3Service, err := services.NewS3Service(
				cfg.S3.BucketName,
				cfg.S3.Endpoint,
				cfg.S3.Region,
				cfg.S3.AccessKey,
				cfg.S3.SecretKey,
			)
			if err != nil {
				log.Fatalf("Failed to initialize S3 service: %v", err)
			}

			models.RegisterURLGenerator(s3Service)
			handlers.RegisterStorageHandler(s3Service)
		} else {
			logger.Warn("S3 not configured, attachment uploads disabled")
		}

		logger.Success("API server started")

		// Swagger documentation
		swagger.SwaggerInfo.Title = "pipecrm API Documentation"
		swagger.SwaggerInfo.Description = "API documentation for the pipecrm application"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.PublicURL
		swagger.SwaggerInfo.Schemes = []string{"http", "https"}

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	taskScheduler.Stop()

	// Stop task server
	serverCancel()
	taskServer.Shutdown()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}
