package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/mail"
	"github.com/shelfwise/bookstore/internal/metrics"
	"github.com/shelfwise/bookstore/internal/repository"
)

var ErrEnqueueFailed = errors.New("failed to enqueue purchase alert")

// Payload is the JSON blob stored in the outbox row: everything the
// worker needs to deliver without touching other tables.
type Payload struct {
	Order checkout.Order      `json:"order"`
	Ctx   mail.PayloadContext `json:"ctx"`
}

// EnqueueRepository is the slice of the outbox repo the enqueuer needs.
type EnqueueRepository interface {
	Insert(ctx context.Context, dbc db.DB, job *repository.OutboxJob) (int64, error)
}

// Enqueuer files one outbox row per committed order. It runs after the
// checkout transaction on the pool, never inside it: a failed enqueue
// must not roll the order back.
type Enqueuer struct {
	db     db.DB
	repo   EnqueueRepository
	logger *zap.Logger
}

func NewEnqueuer(db db.DB, repo EnqueueRepository, logger *zap.Logger) *Enqueuer {
	return &Enqueuer{db: db, repo: repo, logger: logger}
}

func (e *Enqueuer) Enqueue(ctx context.Context, order checkout.Order, ac auth.Context) (int64, error) {
	payload, err := json.Marshal(Payload{
		Order: order,
		Ctx:   mail.PayloadContext{UserType: string(ac.UserType), UserID: ac.UserID},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEnqueueFailed, err)
	}

	id, err := e.repo.Insert(ctx, e.db, &repository.OutboxJob{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserType:    string(ac.UserType),
		UserID:      ac.UserID,
		Payload:     payload,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEnqueueFailed, err)
	}

	metrics.OutboxEnqueuedTotal.Inc()
	e.logger.Info("purchase alert enqueued",
		zap.Int64("job_id", id),
		zap.String("order_number", order.OrderNumber))
	return id, nil
}
