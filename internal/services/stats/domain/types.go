// Package domain defines the decision audit types and ports
package domain

import (
	"context"
	"time"
)

// Decision is one triage outcome written to the audit stream
type Decision struct {
	At            time.Time
	Outcome       string
	Kind          string
	ComparisonKey string
	Authenticated bool
}

// DayRow is one day of decision counts for a single outcome
type DayRow struct {
	Day     string `json:"day" example:"2026-08-01"`
	Outcome string `json:"outcome" example:"accepted"`
	Count   uint64 `json:"count"`
}

// RecorderPort appends decisions to the audit stream
type RecorderPort interface {
	RecordDecision(ctx context.Context, d Decision) error
}

// ReaderPort serves decision aggregates
type ReaderPort interface {
	DecisionsByDay(ctx context.Context, days int) ([]DayRow, error)
}
