//go:generate mockgen -source ./worker.go -destination=./mocks/worker.go -package=mock_outbox
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/mail"
	"github.com/shelfwise/bookstore/internal/metrics"
	"github.com/shelfwise/bookstore/internal/repository"
)

var ErrInvalidPayload = errors.New("invalid outbox payload")

const (
	DefaultLimit       = 20
	DefaultMaxAttempts = 6
	DefaultStaleAfter  = 15 * time.Minute

	maxBackoffSeconds = 300
	maxBackoffShift   = 8
)

// Repository is the outbox row state machine as seen by the worker.
type Repository interface {
	SelectClaimableTx(ctx context.Context, tx db.Tx, limit int) ([]*repository.OutboxJob, error)
	MarkSendingTx(ctx context.Context, tx db.Tx, ids []int64) error
	MarkSent(ctx context.Context, dbc db.DB, id int64, attempts int) error
	MarkSkipped(ctx context.Context, dbc db.DB, id int64, attempts int, reason string) error
	MarkFailed(ctx context.Context, dbc db.DB, id int64, attempts int, lastError string) error
	Reschedule(ctx context.Context, dbc db.DB, id int64, attempts, delaySeconds int, lastError string) error
	RequeueStale(ctx context.Context, dbc db.DB, olderThan time.Duration) (int64, error)
}

// Dispatcher delivers one rendered purchase alert.
type Dispatcher interface {
	SendPurchaseAlert(ctx context.Context, order checkout.Order, pc mail.PayloadContext) error
}

type Config struct {
	Limit       int
	MaxAttempts int
	StaleAfter  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Limit < 1 {
		c.Limit = DefaultLimit
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = DefaultStaleAfter
	}
	return c
}

// Summary is the end-of-run accounting.
type Summary struct {
	Claimed  int
	Sent     int
	Retried  int
	Failed   int
	Skipped  int
	Requeued int64
}

// Worker is the scheduled batch job behind the purchase-alert queue:
// claim a batch under row locks, deliver outside any transaction,
// record each outcome independently.
type Worker struct {
	db         db.DB
	repo       Repository
	dispatcher Dispatcher
	cfg        Config
	logger     *zap.Logger
}

func NewWorker(db db.DB, repo Repository, dispatcher Dispatcher, cfg Config, logger *zap.Logger) *Worker {
	return &Worker{
		db:         db,
		repo:       repo,
		dispatcher: dispatcher,
		cfg:        cfg.withDefaults(),
		logger:     logger,
	}
}

// Run executes one batch and returns. A zero-job run is a clean no-op.
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	requeued, err := w.repo.RequeueStale(ctx, w.db, w.cfg.StaleAfter)
	if err != nil {
		return summary, err
	}
	summary.Requeued = requeued
	if requeued > 0 {
		w.logger.Warn("requeued stale sending jobs", zap.Int64("count", requeued))
	}

	jobs, err := w.claim(ctx)
	if err != nil {
		return summary, err
	}
	summary.Claimed = len(jobs)
	if len(jobs) == 0 {
		w.logger.Info("no pending jobs")
		return summary, nil
	}
	w.logger.Info("claimed jobs", zap.Int("count", len(jobs)))

	for _, job := range jobs {
		outcome := w.process(ctx, job)
		switch outcome {
		case "sent":
			summary.Sent++
		case "retry":
			summary.Retried++
		case "failed":
			summary.Failed++
		case "skipped":
			summary.Skipped++
		}
		metrics.OutboxJobsTotal.WithLabelValues(outcome).Inc()
	}

	w.logger.Info("run summary",
		zap.Int("sent", summary.Sent),
		zap.Int("retried", summary.Retried),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// claim atomically takes ownership of up to limit due jobs. The locked
// select plus the status flip commit together, so two overlapping runs
// can never own the same row.
func (w *Worker) claim(ctx context.Context) ([]*repository.OutboxJob, error) {
	tx, err := w.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	jobs, err := w.repo.SelectClaimableTx(ctx, tx, w.cfg.Limit)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, tx.Commit(ctx)
	}

	ids := make([]int64, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	if err := w.repo.MarkSendingTx(ctx, tx, ids); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}
	return jobs, nil
}

// process delivers one claimed job. Runs outside any transaction so no
// lock is held across the network call.
func (w *Worker) process(ctx context.Context, job *repository.OutboxJob) string {
	attempt := job.AttemptCount + 1

	payload, err := decodePayload(job.Payload)
	if err == nil {
		err = w.dispatcher.SendPurchaseAlert(ctx, payload.Order, payload.Ctx)
	}

	switch {
	case err == nil:
		if markErr := w.repo.MarkSent(ctx, w.db, job.ID, attempt); markErr != nil {
			w.logger.Error("failed to record sent job", zap.Int64("job_id", job.ID), zap.Error(markErr))
			return "retry"
		}
		w.logger.Info("sent purchase alert",
			zap.Int64("job_id", job.ID), zap.String("order_number", job.OrderNumber))
		return "sent"

	case errors.Is(err, mail.ErrSkipped):
		if markErr := w.repo.MarkSkipped(ctx, w.db, job.ID, attempt, err.Error()); markErr != nil {
			w.logger.Error("failed to record skipped job", zap.Int64("job_id", job.ID), zap.Error(markErr))
			return "retry"
		}
		w.logger.Info("skipped purchase alert",
			zap.Int64("job_id", job.ID), zap.String("order_number", job.OrderNumber), zap.String("reason", err.Error()))
		return "skipped"

	case attempt >= w.cfg.MaxAttempts:
		if markErr := w.repo.MarkFailed(ctx, w.db, job.ID, attempt, err.Error()); markErr != nil {
			w.logger.Error("failed to record failed job", zap.Int64("job_id", job.ID), zap.Error(markErr))
			return "retry"
		}
		w.logger.Error("purchase alert failed permanently",
			zap.Int64("job_id", job.ID), zap.String("order_number", job.OrderNumber),
			zap.Int("attempts", attempt), zap.Error(err))
		return "failed"

	default:
		delay := backoffSeconds(attempt)
		if markErr := w.repo.Reschedule(ctx, w.db, job.ID, attempt, delay, err.Error()); markErr != nil {
			w.logger.Error("failed to reschedule job", zap.Int64("job_id", job.ID), zap.Error(markErr))
			return "retry"
		}
		w.logger.Warn("retry scheduled",
			zap.Int64("job_id", job.ID), zap.String("order_number", job.OrderNumber),
			zap.Int("attempts", attempt), zap.Int("delay_seconds", delay), zap.Error(err))
		return "retry"
	}
}

func decodePayload(raw json.RawMessage) (*Payload, error) {
	var decoded struct {
		Order *checkout.Order      `json:"order"`
		Ctx   *mail.PayloadContext `json:"ctx"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if decoded.Order == nil || decoded.Ctx == nil {
		return nil, fmt.Errorf("%w: missing order/ctx", ErrInvalidPayload)
	}
	return &Payload{Order: *decoded.Order, Ctx: *decoded.Ctx}, nil
}

// backoffSeconds is the retry schedule: exponential in the attempt
// count, capped at five minutes.
func backoffSeconds(attempt int) int {
	shift := attempt
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	delay := 1 << shift
	if delay > maxBackoffSeconds {
		delay = maxBackoffSeconds
	}
	return delay
}
