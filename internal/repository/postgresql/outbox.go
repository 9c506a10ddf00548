package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

type OutboxRepo struct {
}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

// Insert creates a pending job, claimable immediately.
func (r *OutboxRepo) Insert(ctx context.Context, dbc db.DB, job *repository.OutboxJob) (int64, error) {
	var id int64
	err := dbc.ExecQueryRow(ctx, `
        INSERT INTO purchase_alert_outbox
            (order_id, order_number, user_type, user_id, payload, status, attempt_count, next_attempt_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW(), NOW())
        RETURNING id
    `, job.OrderID, job.OrderNumber, job.UserType, job.UserID, job.Payload, repository.JobStatusPending).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert outbox job: %w", err)
	}
	return id, nil
}

// SelectClaimableTx locks up to limit due pending rows, skipping rows
// already locked by a concurrent worker run. Must be paired with
// MarkSendingTx inside the same transaction.
func (r *OutboxRepo) SelectClaimableTx(ctx context.Context, tx db.Tx, limit int) ([]*repository.OutboxJob, error) {
	var jobs []*repository.OutboxJob
	err := tx.Select(ctx, &jobs, `
        SELECT id, order_id, order_number, user_type, user_id, payload, status,
               attempt_count, next_attempt_at, last_error, created_at, updated_at, sent_at
        FROM purchase_alert_outbox
        WHERE status = $1 AND next_attempt_at <= NOW()
        ORDER BY id ASC
        FOR UPDATE SKIP LOCKED
        LIMIT $2
    `, repository.JobStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select claimable jobs: %w", err)
	}
	return jobs, nil
}

// MarkSendingTx flips freshly locked rows to sending, completing the
// claim.
func (r *OutboxRepo) MarkSendingTx(ctx context.Context, tx db.Tx, ids []int64) error {
	_, err := tx.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, updated_at = NOW()
        WHERE id = ANY($2)
    `, repository.JobStatusSending, ids)
	if err != nil {
		return fmt.Errorf("failed to mark jobs as sending: %w", err)
	}
	return nil
}

func (r *OutboxRepo) MarkSent(ctx context.Context, dbc db.DB, id int64, attempts int) error {
	_, err := dbc.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, attempt_count = $2, sent_at = NOW(), last_error = NULL, updated_at = NOW()
        WHERE id = $3
    `, repository.JobStatusSent, attempts, id)
	if err != nil {
		return fmt.Errorf("failed to mark job %d as sent: %w", id, err)
	}
	return nil
}

// MarkSkipped records a job whose delivery was administratively
// disabled. Terminal, with the reason kept for auditing.
func (r *OutboxRepo) MarkSkipped(ctx context.Context, dbc db.DB, id int64, attempts int, reason string) error {
	_, err := dbc.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, attempt_count = $2, last_error = $3, updated_at = NOW()
        WHERE id = $4
    `, repository.JobStatusSkipped, attempts, reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark job %d as skipped: %w", id, err)
	}
	return nil
}

func (r *OutboxRepo) MarkFailed(ctx context.Context, dbc db.DB, id int64, attempts int, lastError string) error {
	_, err := dbc.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, attempt_count = $2, last_error = $3, updated_at = NOW()
        WHERE id = $4
    `, repository.JobStatusFailed, attempts, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to mark job %d as failed: %w", id, err)
	}
	return nil
}

// Reschedule puts a job back in the pending pool after a failed
// attempt, claimable again once the backoff delay elapses.
func (r *OutboxRepo) Reschedule(ctx context.Context, dbc db.DB, id int64, attempts, delaySeconds int, lastError string) error {
	_, err := dbc.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, attempt_count = $2,
            next_attempt_at = NOW() + ($3 * INTERVAL '1 second'),
            last_error = $4, updated_at = NOW()
        WHERE id = $5
    `, repository.JobStatusPending, attempts, delaySeconds, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to reschedule job %d: %w", id, err)
	}
	return nil
}

// RequeueStale returns rows stuck in sending (a worker crashed
// mid-attempt) to the pending pool once they are older than the
// staleness window.
func (r *OutboxRepo) RequeueStale(ctx context.Context, dbc db.DB, olderThan time.Duration) (int64, error) {
	tag, err := dbc.Exec(ctx, `
        UPDATE purchase_alert_outbox
        SET status = $1, next_attempt_at = NOW(), updated_at = NOW()
        WHERE status = $2 AND updated_at < NOW() - ($3 * INTERVAL '1 second')
    `, repository.JobStatusPending, repository.JobStatusSending, int(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale sending jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats is the read-only aggregate behind the stats reporter.
func (r *OutboxRepo) Stats(ctx context.Context, dbc db.DB) (*repository.OutboxStats, error) {
	var stats repository.OutboxStats
	err := dbc.Get(ctx, &stats, `
        SELECT
            COUNT(*) FILTER (WHERE status = 'pending')  AS pending_count,
            COUNT(*) FILTER (WHERE status = 'sending')  AS sending_count,
            COUNT(*) FILTER (WHERE status = 'failed')   AS failed_count,
            COUNT(*) FILTER (WHERE status = 'sent')     AS sent_count,
            COUNT(*) FILTER (WHERE status = 'skipped')  AS skipped_count,
            COALESCE(
                EXTRACT(EPOCH FROM (
                    NOW() - MIN(CASE WHEN status = 'pending' THEN next_attempt_at END)
                )),
                0
            ) AS oldest_pending_age_seconds
        FROM purchase_alert_outbox
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read outbox stats: %w", err)
	}
	return &stats, nil
}
