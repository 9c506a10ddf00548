package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/config"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/logger"
	"github.com/shelfwise/bookstore/internal/mail"
	"github.com/shelfwise/bookstore/internal/outbox"
	"github.com/shelfwise/bookstore/internal/repository/postgresql"
)

// main runs one claim/deliver batch and exits, so the binary can sit
// behind cron or a systemd timer. Exit code 0 covers the nothing-to-do
// case; 1 means the run itself could not proceed.
func main() {
	limit := flag.Int("limit", outbox.DefaultLimit, "max jobs to claim in this run")
	maxAttempts := flag.Int("max-attempts", outbox.DefaultMaxAttempts, "attempts before a job is marked failed")
	staleAfter := flag.Duration("stale-after", outbox.DefaultStaleAfter, "requeue sending jobs older than this")
	flag.Parse()

	config.Load()
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Error("database init failed", zap.Error(err))
		os.Exit(1)
	}
	defer database.GetPool().Close()

	dispatcher, err := mail.NewDispatcher(mail.ConfigFromEnv())
	if err != nil {
		log.Error("mail transport init failed", zap.Error(err))
		os.Exit(1)
	}

	worker := outbox.NewWorker(database, postgresql.NewOutboxRepo(), dispatcher, outbox.Config{
		Limit:       *limit,
		MaxAttempts: *maxAttempts,
		StaleAfter:  *staleAfter,
	}, log)

	start := time.Now()
	summary, err := worker.Run(ctx)
	if err != nil {
		log.Error("worker run failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("worker run completed",
		zap.Int("claimed", summary.Claimed),
		zap.Int("sent", summary.Sent),
		zap.Int("retried", summary.Retried),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Int64("requeued", summary.Requeued),
		zap.Duration("elapsed", time.Since(start)))
}
