package repository

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusSending JobStatus = "sending"
	JobStatusSent    JobStatus = "sent"
	JobStatusFailed  JobStatus = "failed"
	JobStatusSkipped JobStatus = "skipped"
)

// OutboxJob is one row of purchase_alert_outbox. Rows are created by
// checkout, mutated only by the queue worker, and never deleted here.
type OutboxJob struct {
	ID            int64           `db:"id"`
	OrderID       string          `db:"order_id"`
	OrderNumber   string          `db:"order_number"`
	UserType      string          `db:"user_type"`
	UserID        int64           `db:"user_id"`
	Payload       json.RawMessage `db:"payload"`
	Status        JobStatus       `db:"status"`
	AttemptCount  int             `db:"attempt_count"`
	NextAttemptAt time.Time       `db:"next_attempt_at"`
	LastError     *string         `db:"last_error"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	SentAt        *time.Time      `db:"sent_at"`
}

// OutboxStats is the read-only aggregate emitted by the stats reporter.
type OutboxStats struct {
	PendingCount            int     `db:"pending_count" json:"pending_count"`
	SendingCount            int     `db:"sending_count" json:"sending_count"`
	FailedCount             int     `db:"failed_count" json:"failed_count"`
	SentCount               int     `db:"sent_count" json:"sent_count"`
	SkippedCount            int     `db:"skipped_count" json:"skipped_count"`
	OldestPendingAgeSeconds float64 `db:"oldest_pending_age_seconds" json:"oldest_pending_age_seconds"`

	// Stamped by the reporter, not read from the database.
	GeneratedAtUTC string `db:"-" json:"generated_at_utc"`
}
