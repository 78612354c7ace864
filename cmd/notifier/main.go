package main

import (
	"context"
	"database/sql"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wysanalytics/takwimu-plus/internal/config"
	"github.com/wysanalytics/takwimu-plus/internal/logger"
	"github.com/wysanalytics/takwimu-plus/internal/orchestrator/notifier"
	"github.com/wysanalytics/takwimu-plus/internal/pgmq"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	dsn := "host=" + cfg.DBHost +
		" port=" + strconv.Itoa(cfg.DBPort) +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=disable"
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Msgf("Failed to ping DB: %v", err)
	}
	logger.Info().Msg("Database connection established")

	pgmqClient := pgmq.New(db)
	smsClient := service.NewSMSClient(cfg.SMSBaseURL, cfg.SMSAPIKey, cfg.SMSUsername, cfg.SMSSenderID, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := notifier.Run(ctx, cfg, logger, pgmqClient, smsClient); err != nil {
		logger.Fatal().Msgf("SMS notifier failed: %v", err)
	}
	logger.Info().Msg("SMS notifier stopped gracefully")
}
