package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/amqp"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/cli"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/completion"
	apphttp "github.com/FelipeMTN/pocket-prodigy-plan/internal/http"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/log"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// The broker is optional: without it expenses stay pending until the
	// worker's backlog sweep picks them up.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, expense backups will rely on the backlog sweep", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	var completionOpts []completion.Option
	if cfg.OpenAIBaseURL != "" {
		completionOpts = append(completionOpts, completion.WithBaseURL(cfg.OpenAIBaseURL))
	}
	if cfg.OpenAIModel != "" {
		completionOpts = append(completionOpts, completion.WithModel(cfg.OpenAIModel))
	}
	completer := completion.NewClient(cfg.OpenAIAPIKey, completionOpts...)

	expenses := services.NewExpenseService(repo, publisher)
	srv := apphttp.NewServer(apphttp.Config{
		Addr:           ":" + cfg.Port,
		DefaultOwnerID: cfg.DefaultOwnerID,
		Expenses:       expenses,
		Assistant:      services.NewAssistantService(expenses, repo, completer),
		Dashboard:      services.NewDashboardService(expenses, repo),
		Exporter:       services.NewExportService(repo),
		Storage:        repo,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := expenses.Close(); err != nil {
			logger.Error("Storage close error", log.FieldError, err)
		}
	})

	logger.Info("Starting prodigy server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
