package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docurgent/cmd"
	httpin "docurgent/internal/adapters/in/http"
	"docurgent/internal/adapters/out/postgres/relaypointrepo"
	"docurgent/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := app.ClosePublisher(); err != nil {
			logger.Error("closing event publisher", "error", err)
		}
	}()

	jobManager := app.CreateJobManager(configs)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:              envVariable("HTTP_PORT"),
		DBHost:                envVariable("DB_HOST"),
		DBPort:                envVariable("DB_PORT"),
		DBUser:                envVariable("DB_USER"),
		DBPassword:            envVariable("DB_PASSWORD"),
		DBName:                envVariable("DB_NAME"),
		DBSslMode:             envVariable("DB_SSLMODE"),
		AuthSecret:            envVariable("AUTH_SECRET"),
		KafkaHost:             envVariable("KAFKA_HOST"),
		KafkaStatusEventTopic: envVariable("KAFKA_STATUS_EVENT_TOPIC"),
		CompletionGrace:       envDuration("COMPLETION_GRACE", 48*time.Hour),
	}
}

func envVariable(key string) string {
	return os.Getenv(key)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s duration %q: %v", key, raw, err)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.DeliveryStepDTO{},
		&relaypointrepo.RelayPointDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e, httpin.AuthMiddleware([]byte(configs.AuthSecret)))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
}
