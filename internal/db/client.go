package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/shelfwise/bookstore/internal/config"
)

// NewDb connects a pgx pool using the standard POSTGRES_* environment
// variables. Callers are expected to have run config.Load() first.
func NewDb(ctx context.Context) (*Database, error) {
	pool, err := pgxpool.Connect(ctx, generateDsn())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewDatabase(pool), nil
}

func generateDsn() string {
	host := config.String("DB_HOST", "localhost")
	port := config.Int("DB_PORT", 5432)
	user := config.String("POSTGRES_USER", "postgres")
	password := config.String("POSTGRES_PASSWORD", "")
	dbname := config.String("POSTGRES_DB", "bookstore")

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
}
