package module

import (
	"time"

	"tipline/internal/platform/config"
)

// Options controls the snapshot dispatch worker
type Options struct {
	Concurrency    int
	QueueTakeBatch int
	LeaseFor       time.Duration
	RetryBaseMs    int
	MaxAttempts    int

	TicketsURL   string
	TicketsToken string
	RatePerSec   float64
	Burst        int
	UserAgent    string
}

// FromConfig reads with SNAPSHOT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SNAPSHOT_")
	return Options{
		Concurrency:    c.MayInt("WORKER_CONCURRENCY", 2),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 16),
		LeaseFor:       c.MayDuration("LEASE_FOR", 60*time.Second),
		RetryBaseMs:    int(c.MayDuration("RETRY_BASE", 500*time.Millisecond).Milliseconds()),
		MaxAttempts:    c.MayInt("MAX_ATTEMPTS", 6),
		TicketsURL:     c.MayString("TICKETS_URL", ""),
		TicketsToken:   c.MayString("TICKETS_TOKEN", ""),
		RatePerSec:     c.MayFloat64("DISPATCH_RPS", 1.0),
		Burst:          c.MayInt("DISPATCH_BURST", 2),
		UserAgent:      c.MayString("DISPATCH_UA", ""),
	}
}
