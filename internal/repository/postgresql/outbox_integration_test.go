//go:build integration

package postgresql_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
	"github.com/shelfwise/bookstore/internal/repository/postgresql"
)

const outboxTestDDL = `
CREATE TABLE IF NOT EXISTS purchase_alert_outbox (
    id              BIGSERIAL PRIMARY KEY,
    order_id        TEXT NOT NULL,
    order_number    TEXT NOT NULL,
    user_type       TEXT NOT NULL,
    user_id         BIGINT NOT NULL,
    payload         JSONB NOT NULL,
    status          TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'sending', 'sent', 'failed', 'skipped')),
    attempt_count   INTEGER NOT NULL DEFAULT 0,
    next_attempt_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_error      TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    sent_at         TIMESTAMPTZ
)`

func newTestDatabase(t *testing.T) *db.Database {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	pool, err := pgxpool.Connect(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	database := db.NewDatabase(pool)
	_, err = database.Exec(context.Background(), outboxTestDDL)
	require.NoError(t, err)
	_, err = database.Exec(context.Background(), "TRUNCATE purchase_alert_outbox RESTART IDENTITY")
	require.NoError(t, err)
	return database
}

func insertPendingJobs(t *testing.T, database *db.Database, repo *postgresql.OutboxRepo, n int) {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"order": map[string]interface{}{"orderNumber": "ORD-20260830-120000-001"},
		"ctx":   map[string]interface{}{"user_type": "customer", "user_id": 42},
	})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := repo.Insert(context.Background(), database, &repository.OutboxJob{
			OrderID:     fmt.Sprintf("175750000000%04d", i),
			OrderNumber: fmt.Sprintf("ORD-20260830-120000-%03d", i),
			UserType:    "customer",
			UserID:      42,
			Payload:     payload,
		})
		require.NoError(t, err)
	}
}

func jobIDs(jobs []*repository.OutboxJob) []int64 {
	ids := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

// Two worker runs claiming concurrently must end up with disjoint
// batches: the second claim starts before the first commits, so only
// the skip-locked read keeps them apart.
func TestOutboxClaimExactlyOnce(t *testing.T) {
	database := newTestDatabase(t)
	repo := postgresql.NewOutboxRepo()
	ctx := context.Background()

	insertPendingJobs(t, database, repo, 10)

	tx1, err := database.BeginTx(ctx)
	require.NoError(t, err)
	defer tx1.Rollback(ctx)

	first, err := repo.SelectClaimableTx(ctx, tx1, 6)
	require.NoError(t, err)
	require.Len(t, first, 6)
	require.NoError(t, repo.MarkSendingTx(ctx, tx1, jobIDs(first)))

	tx2, err := database.BeginTx(ctx)
	require.NoError(t, err)
	defer tx2.Rollback(ctx)

	second, err := repo.SelectClaimableTx(ctx, tx2, 6)
	require.NoError(t, err)
	require.Len(t, second, 4)
	require.NoError(t, repo.MarkSendingTx(ctx, tx2, jobIDs(second)))

	require.NoError(t, tx1.Commit(ctx))
	require.NoError(t, tx2.Commit(ctx))

	claimed := make(map[int64]int)
	for _, id := range jobIDs(first) {
		claimed[id]++
	}
	for _, id := range jobIDs(second) {
		claimed[id]++
	}
	assert.Len(t, claimed, 10)
	for id, n := range claimed {
		assert.Equal(t, 1, n, "job %d claimed more than once", id)
	}

	var pending int
	require.NoError(t, database.Get(ctx, &pending,
		"SELECT COUNT(*) FROM purchase_alert_outbox WHERE status = $1", repository.JobStatusPending))
	assert.Zero(t, pending)

	tx3, err := database.BeginTx(ctx)
	require.NoError(t, err)
	defer tx3.Rollback(ctx)

	third, err := repo.SelectClaimableTx(ctx, tx3, 6)
	require.NoError(t, err)
	assert.Empty(t, third)
}

// A rolled-back claim releases its rows for the next run.
func TestOutboxClaimRollbackReleasesRows(t *testing.T) {
	database := newTestDatabase(t)
	repo := postgresql.NewOutboxRepo()
	ctx := context.Background()

	insertPendingJobs(t, database, repo, 3)

	tx1, err := database.BeginTx(ctx)
	require.NoError(t, err)
	first, err := repo.SelectClaimableTx(ctx, tx1, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NoError(t, tx1.Rollback(ctx))

	tx2, err := database.BeginTx(ctx)
	require.NoError(t, err)
	defer tx2.Rollback(ctx)

	second, err := repo.SelectClaimableTx(ctx, tx2, 3)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}
