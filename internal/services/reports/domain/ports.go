package domain

import (
	"context"
	"time"

	"tipline/internal/adapters/akismet"
	"tipline/internal/core/creators"
)

// HistoryPort counts prior accepted reports inside a rolling window
// since is the exclusive window start, entries exactly at it do not count
type HistoryPort interface {
	CountByKey(ctx context.Context, comparisonKey string, since time.Time) (int, error)
	CountByEmail(ctx context.Context, email string, since time.Time) (int, error)
}

// OwnershipPort reads work authorship records and the chapter map
// LookupWork returns nil when the work does not exist
// OwningWork satisfies canon.ChapterResolver
type OwnershipPort interface {
	LookupWork(ctx context.Context, workID string) (*creators.Ownership, error)
	OwningWork(ctx context.Context, chapterID string) (workID string, ok bool, err error)
}

// ClassifierPort is the external spam classification seam
// A failed call must surface as an error, never as a verdict
type ClassifierPort interface {
	Spam(ctx context.Context, a akismet.Attributes) (bool, error)
}

// ServicePort is the orchestrator contract consumed by transport
type ServicePort interface {
	Evaluate(ctx context.Context, in SubmitInput) (Evaluation, error)
	Submit(ctx context.Context, in SubmitInput) (Receipt, error)
}

// Repo is the persistence surface bound per query or per transaction
type Repo interface {
	HistoryPort
	OwnershipPort

	// Insert persists an accepted report and returns its id
	Insert(ctx context.Context, w ReportWrite) (int64, error)
}
