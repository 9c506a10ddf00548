package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shelfwise/bookstore/internal/config"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/repository/postgresql"
)

// main prints one JSON snapshot of the purchase-alert queue, meant for
// monitoring scripts and humans alike.
func main() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database init failed:", err)
		os.Exit(1)
	}
	defer database.GetPool().Close()

	stats, err := postgresql.NewOutboxRepo().Stats(ctx, database)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stats query failed:", err)
		os.Exit(1)
	}
	stats.GeneratedAtUTC = time.Now().UTC().Format(time.RFC3339)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(stats); err != nil {
		fmt.Fprintln(os.Stderr, "encode failed:", err)
		os.Exit(1)
	}
}
