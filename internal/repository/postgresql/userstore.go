package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository"
)

// UserStoreRepo reads and writes the per-user JSON document holding the
// cart and order history. Customers keep it in customers.order_history,
// admins in admins.processed_orders.
type UserStoreRepo struct {
	db db.DB
}

func NewUserStoreRepo(db db.DB) *UserStoreRepo {
	return &UserStoreRepo{db: db}
}

func storeLocation(ac auth.Context) (table, column string) {
	if ac.UserType == auth.UserTypeAdmin {
		return "admins", "processed_orders"
	}
	return "customers", "order_history"
}

func (r *UserStoreRepo) Load(ctx context.Context, ac auth.Context) (checkout.Store, error) {
	table, column := storeLocation(ac)
	var payload []byte
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", column, table)
	err := r.db.ExecQueryRow(ctx, query, ac.UserID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkout.Store{}, repository.ErrObjectNotFound
		}
		return checkout.Store{}, fmt.Errorf("failed to load user store: %w", err)
	}
	return checkout.DecodeStore(payload), nil
}

func (r *UserStoreRepo) Save(ctx context.Context, ac auth.Context, st checkout.Store) error {
	payload, err := checkout.EncodeStore(st)
	if err != nil {
		return err
	}
	table, column := storeLocation(ac)
	query := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE id = $2", table, column)
	tag, err := r.db.Exec(ctx, query, payload, ac.UserID)
	if err != nil {
		return fmt.Errorf("failed to save user store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *UserStoreRepo) SaveTx(ctx context.Context, tx db.Tx, ac auth.Context, st checkout.Store) error {
	payload, err := checkout.EncodeStore(st)
	if err != nil {
		return err
	}
	table, column := storeLocation(ac)
	query := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE id = $2", table, column)
	tag, err := tx.Exec(ctx, query, payload, ac.UserID)
	if err != nil {
		return fmt.Errorf("failed to save user store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
