package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_checkouts_completed_total",
		Help: "Total number of checkouts that committed successfully.",
	})

	CheckoutFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_checkout_failures_total",
		Help: "Total number of failed checkouts by reason.",
	},
		[]string{"reason"},
	)

	OutboxEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_outbox_enqueued_total",
		Help: "Total number of purchase alert jobs enqueued.",
	})

	OutboxJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_outbox_jobs_total",
		Help: "Outbox worker job outcomes by result.",
	},
		[]string{"result"},
	)

	BookCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookstore_book_cache_items",
		Help: "Current number of items in the book cache.",
	})
)
