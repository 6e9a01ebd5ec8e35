// Package service contains decision audit workflows
package service

import (
	"context"

	"tipline/internal/services/stats/domain"
	"tipline/internal/services/stats/repo"
)

const defaultWindowDays = 30

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	repo repo.Repo
}

// New constructs a stats service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("stats.Service requires a non nil Repo")
	}
	return &Svc{repo: r}
}

// RecordDecision appends a triage decision to the audit stream
func (s *Svc) RecordDecision(ctx context.Context, d domain.Decision) error {
	return s.repo.InsertDecision(ctx, d)
}

// DecisionsByDay returns per day decision counts bucketed by outcome
func (s *Svc) DecisionsByDay(ctx context.Context, days int) ([]domain.DayRow, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	return s.repo.DecisionsByDay(ctx, days)
}
