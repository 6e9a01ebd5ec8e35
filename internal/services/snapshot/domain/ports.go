// Package domain defines the ports and types for the snapshot worker
package domain

import (
	"context"
	"time"
)

// Job is one leased snapshot request
type Job struct {
	JobID        string
	ReportID     int64
	WorkID       string
	Attempts     int
	LastStatus   *int
	LastError    string
	NextAttempt  time.Time
	LeaseExpires time.Time
	LeasedBy     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EnqueuePort schedules a work download attachment for the report's ticket
type EnqueuePort interface {
	EnqueueSnapshot(ctx context.Context, reportID int64, workID string) error
}

// WorkerPort runs the dispatch loop until the context ends
type WorkerPort interface {
	Run(ctx context.Context) error
}

// DispatcherPort requests a work download attachment on a ticket
// A 404 or 410 status with a nil error means the ticket is gone
type DispatcherPort interface {
	AttachWorkDownload(ctx context.Context, ticketRef, workID, workURL string) (status int, err error)
}
