package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/amqp"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/cli"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/log"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/sheets"
	gsheet "github.com/FelipeMTN/pocket-prodigy-plan/internal/sheets/google"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/sheets/memory"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting prodigy-worker")

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	var backup sheets.BackupWriter
	switch cfg.SheetsBackup {
	case "google":
		client, err := gsheet.NewFromEnv(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		backup = client
		logger.Info("Google Sheets backup initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	case "memory":
		backup = memory.New()
		logger.Info("In-memory backup initialized")
	default:
		logger.Info("Backup disabled, worker exiting")
		return
	}

	var consumer worker.Consumer
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		consumer = amqpClient
	} else {
		logger.Info("AMQP disabled, relying on periodic backlog sweep only")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	syncWorker := worker.NewSyncWorker(repo, backup, consumer, cfg.SyncBatchSize, cfg.SyncInterval)

	logger.Info("Sync worker running",
		"batch_size", cfg.SyncBatchSize,
		"interval", cfg.SyncInterval.String())

	if err := syncWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Sync worker failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
