package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/config"
	"github.com/shelfwise/bookstore/internal/logger"
)

// main tails the audit topic and prints each record, for operators
// watching what the API is doing.
func main() {
	config.Load()
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := config.String("KAFKA_BROKERS", "localhost:9092")
	topic := config.String("KAFKA_AUDIT_TOPIC", "bookstore-audit")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        config.String("KAFKA_CONSUMER_GROUP", "bookstore-audit-consumer"),
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	log.Info("audit consumer connected", zap.String("topic", topic), zap.String("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("failed to read message", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		fmt.Printf("\n--- AUDIT RECORD ---\n")
		fmt.Printf("Timestamp: %s\n", m.Time.Format(time.RFC3339))
		fmt.Printf("Partition: %d\n", m.Partition)
		fmt.Printf("Offset:    %d\n", m.Offset)
		fmt.Printf("Key:       %s\n", string(m.Key))
		fmt.Printf("Value:     %s\n", string(m.Value))
		fmt.Println("--- END RECORD ---")
	}
}
