package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/shelfwise/bookstore/internal/db/mocks"
	"github.com/shelfwise/bookstore/internal/repository"
	"github.com/shelfwise/bookstore/internal/repository/postgresql"
)

type rowStub struct {
	id  int64
	err error
}

func (r rowStub) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if id, ok := dest[0].(*int64); ok {
			*id = r.id
		}
	}
	return nil
}

func TestOutboxRepo_Insert(t *testing.T) {
	ctx := context.Background()
	repo := postgresql.NewOutboxRepo()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		job := &repository.OutboxJob{
			OrderID:     "171234567890123",
			OrderNumber: "ORD-20250101-120000-123",
			UserType:    "customer",
			UserID:      42,
			Payload:     []byte(`{"order":{},"ctx":{}}`),
		}

		mockDB.EXPECT().ExecQueryRow(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(job.OrderID),
			gomock.Eq(job.OrderNumber),
			gomock.Eq(job.UserType),
			gomock.Eq(job.UserID),
			gomock.Eq(job.Payload),
			gomock.Eq(repository.JobStatusPending),
		).Return(rowStub{id: 17})

		id, err := repo.Insert(ctx, mockDB, job)
		require.NoError(t, err)
		assert.Equal(t, int64(17), id)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().ExecQueryRow(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		).Return(rowStub{err: errors.New("relation does not exist")})

		_, err := repo.Insert(ctx, mockDB, &repository.OutboxJob{})
		assert.Error(t, err)
	})
}

func TestOutboxRepo_Claim(t *testing.T) {
	ctx := context.Background()
	repo := postgresql.NewOutboxRepo()

	t.Run("select locks only due pending rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)

		mockTx.EXPECT().Select(
			gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusPending), gomock.Eq(20),
		).Return(nil)

		jobs, err := repo.SelectClaimableTx(ctx, mockTx, 20)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("mark sending flips the claimed ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)

		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusSending), gomock.Eq([]int64{3, 5}),
		).Return(pgconn.CommandTag("UPDATE 2"), nil)

		err := repo.MarkSendingTx(ctx, mockTx, []int64{3, 5})
		assert.NoError(t, err)
	})
}

func TestOutboxRepo_Outcomes(t *testing.T) {
	ctx := context.Background()
	repo := postgresql.NewOutboxRepo()

	t.Run("sent clears the last error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusSent), gomock.Eq(2), gomock.Eq(int64(9)),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.MarkSent(ctx, mockDB, 9, 2))
	})

	t.Run("skipped keeps the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusSkipped), gomock.Eq(1),
			gomock.Eq("purchase alert skipped: MAIL_ENABLED=false"), gomock.Eq(int64(9)),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.MarkSkipped(ctx, mockDB, 9, 1, "purchase alert skipped: MAIL_ENABLED=false"))
	})

	t.Run("reschedule returns the row to pending with a delay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusPending), gomock.Eq(3), gomock.Eq(8),
			gomock.Eq("smtp timeout"), gomock.Eq(int64(9)),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.Reschedule(ctx, mockDB, 9, 3, 8, "smtp timeout"))
	})

	t.Run("requeue stale reports affected rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.JobStatusPending), gomock.Eq(repository.JobStatusSending),
			gomock.Eq(900),
		).Return(pgconn.CommandTag("UPDATE 4"), nil)

		n, err := repo.RequeueStale(ctx, mockDB, 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}
