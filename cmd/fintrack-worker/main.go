package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
	"fintrack/internal/store/sqlite"
	"fintrack/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("starting fintrack-worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}

	var recordStore store.RecordStore
	switch cfg.DataBackend {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("failed to open sqlite store",
				log.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		recordStore = s
	default:
		// A memory store in the worker only makes sense for local runs
		// against seed data; it shares nothing with the API process.
		recordStore = memory.New()
		logger.Warn("worker running on the memory backend sees no API data")
	}
	defer recordStore.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer, err := export.NewSheetsClient(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("failed to initialize Google Sheets client", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.WithComponent(log.ComponentExport).Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	queries := query.NewClient(recordStore, logger)
	exportWorker := worker.NewExportWorker(queries, writer, core.Period(cfg.ExportPeriod), cfg.ExportDebounce, logger)

	go func() {
		if err := amqpClient.ConsumeRecordChanges(ctx, exportWorker.HandleRecordChange); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("message consumption failed", log.FieldError, err.Error())
			}
			cancel()
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", log.FieldOperation, log.OpShutdown, "signal", sig.String())
		cancel()
	}()

	if err := exportWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("worker stopped gracefully")
}
