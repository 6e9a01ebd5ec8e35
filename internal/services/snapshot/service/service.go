// Package service implements the snapshot dispatch worker and enqueue service
package service

import (
	"context"
	"time"

	"tipline/internal/adapters/tickets"
	"tipline/internal/core/canon"
	"tipline/internal/modkit"
	"tipline/internal/modkit/repokit"

	dom "tipline/internal/services/snapshot/domain"
	srepo "tipline/internal/services/snapshot/repo"
)

// Service implements both worker and enqueue ports
type Service interface {
	dom.WorkerPort
	dom.EnqueuePort
}

// Config controls the dispatch worker
type Config struct {
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

// Svc implements the snapshot dispatch worker and enqueue service
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[srepo.Repo]
	repo   srepo.Repo

	dispatch dom.DispatcherPort
	canon    canon.Config
	cfg      Config
	deps     modkit.Deps
}

// New constructs the service with the default ticket client
func New(deps modkit.Deps, cfg Config) *Svc {
	b := srepo.NewPG()
	client := tickets.NewClient(tickets.Options{
		BaseURL:    cfg.TicketsURL,
		Token:      cfg.TicketsToken,
		UserAgent:  cfg.UserAgent,
		MaxRetries: 1,
		RetryBase:  durationMs(cfg.RetryBaseMs),
		RatePerSec: cfg.RatePerSec,
		Burst:      cfg.Burst,
	})
	return &Svc{
		db:       deps.PG,
		binder:   b,
		repo:     b.Bind(deps.PG),
		dispatch: client,
		canon:    canon.Default(),
		cfg:      cfg,
		deps:     deps,
	}
}

// EnqueueSnapshot schedules an attachment dispatch for an accepted work report
func (s *Svc) EnqueueSnapshot(ctx context.Context, reportID int64, workID string) error {
	_, err := s.repo.Enqueue(ctx, reportID, workID)
	return err
}

func durationMs(ms int) time.Duration {
	if ms <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
