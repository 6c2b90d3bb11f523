// Command ingest performs a single ingestion pass: it fetches unseen
// allocation mail, runs every PDF attachment through OCR and field
// extraction, and persists the results. Run it from cron or a systemd
// timer to poll the inbox.
package main

import (
	"context"
	"log"
	"os"

	"github.com/riddhisiddhi/cottonflow/internal/allocations"
	"github.com/riddhisiddhi/cottonflow/internal/config"
	"github.com/riddhisiddhi/cottonflow/internal/emaillogs"
	"github.com/riddhisiddhi/cottonflow/internal/infrastructure"
	"github.com/riddhisiddhi/cottonflow/internal/mailbox"
	"github.com/riddhisiddhi/cottonflow/internal/ocr"
	"github.com/riddhisiddhi/cottonflow/internal/pipeline"
	"github.com/riddhisiddhi/cottonflow/internal/processinglogs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed:", err)
	}
	infra.Lifecycle.WaitForStartup()

	logger := infra.Logger.With("module", "ingest")
	db := infra.Database.Connection()

	recorder := pipeline.NewRecorder(
		emaillogs.New(db, logger, cfg.API.Pagination),
		processinglogs.New(db, logger, cfg.API.Pagination),
		allocations.New(db, logger, cfg.API.Pagination),
		logger,
	)

	processor := pipeline.NewProcessor(
		mailbox.New(&cfg.Mailbox, logger),
		pipeline.NewMaterializer(infra.Storage, &cfg.Pipeline, logger),
		ocr.New(&cfg.OCR, logger),
		recorder,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.RunTimeoutDuration())
	defer cancel()

	runErr := processor.Run(ctx)

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	if runErr != nil {
		logger.Error("ingestion run failed", "error", runErr)
		os.Exit(1)
	}
}
