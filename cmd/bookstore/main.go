package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/cache"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/config"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/kafka"
	"github.com/shelfwise/bookstore/internal/logger"
	"github.com/shelfwise/bookstore/internal/outbox"
	"github.com/shelfwise/bookstore/internal/repository/postgresql"
	"github.com/shelfwise/bookstore/internal/server"
)

func main() {
	config.Load()
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.GetPool().Close()

	salesColumn, err := postgresql.DetectSalesColumn(ctx, database)
	if err != nil {
		log.Fatal("sales column probe failed", zap.Error(err))
	}
	if salesColumn == "" {
		log.Info("books table has no sales counter column, checkout skips the bump")
	} else {
		log.Info("sales counter column detected", zap.String("column", salesColumn))
	}

	bookRepo := postgresql.NewBookRepo(database, salesColumn)
	authorRepo := postgresql.NewAuthorRepo(database)
	categoryRepo := postgresql.NewCategoryRepo(database)
	customerRepo := postgresql.NewCustomerRepo(database)
	adminRepo := postgresql.NewAdminRepo(database)
	storeRepo := postgresql.NewUserStoreRepo(database)
	outboxRepo := postgresql.NewOutboxRepo()

	bookCache := cache.NewBookCache(bookRepo)
	if err := bookCache.LoadInitialData(ctx); err != nil {
		log.Warn("book cache preload failed, serving from database", zap.Error(err))
	}

	enqueuer := outbox.NewEnqueuer(database, outboxRepo, log)
	checkoutSvc := checkout.NewService(database, bookRepo, storeRepo, enqueuer, log)

	signer := auth.NewSigner(
		config.String("JWT_SECRET", "dev-secret-change-me"),
		config.Duration("JWT_TTL", 24*time.Hour),
	)

	var producer kafka.Producer
	if brokers := config.String("KAFKA_BROKERS", ""); brokers != "" {
		producer = kafka.NewKafkaProducer(brokers, config.String("KAFKA_AUDIT_TOPIC", "bookstore-audit"))
	} else {
		producer = kafka.NewConsoleProducer()
	}
	defer func() { _ = producer.Close() }()

	audit := server.NewAuditManager(producer, log,
		config.Int("AUDIT_WORKERS", 2),
		config.Int("AUDIT_BATCH_SIZE", 5),
		500*time.Millisecond)
	audit.Start(ctx)

	srv := server.New(server.Deps{
		Books:      bookRepo,
		Authors:    authorRepo,
		Categories: categoryRepo,
		Customers:  customerRepo,
		Admins:     adminRepo,
		Cart:       checkoutSvc,
		BookCache:  bookCache,
		Signer:     signer,
		Audit:      audit,
		Logger:     log,
	})

	metricsServer := &http.Server{
		Addr:    config.String("METRICS_ADDR", ":9090"),
		Handler: promhttp.Handler(),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Run(config.String("HTTP_ADDR", ":9000"))
	})
	group.Go(func() error {
		log.Info("metrics server listening", zap.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown failed", zap.Error(err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", zap.Error(err))
		}
		audit.Shutdown(shutdownCtx)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}
