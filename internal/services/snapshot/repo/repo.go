// Package repo provides the snapshot queue persistence
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tipline/internal/modkit/repokit"
	"tipline/internal/services/snapshot/domain"
)

// Repo is the snapshot persistence surface used by the worker
type Repo interface {
	// Enqueue idempotently creates (or refreshes) the job for a report
	Enqueue(ctx context.Context, reportID int64, workID string) (string, error)

	// LeaseJobs leases up to limit ready jobs for leaseFor
	LeaseJobs(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.Job, error)

	// RecordDispatch records a delivered attachment request for a report
	RecordDispatch(ctx context.Context, reportID int64, workID string, status int, dispatchedAt time.Time) error

	// CompleteJob removes a finished job
	CompleteJob(ctx context.Context, jobID string, lastStatus *int) error

	// RequeueJob reschedules a failed job and clears its lease
	RequeueJob(ctx context.Context, jobID string, lastStatus *int, lastErr string, nextAttemptAt time.Time) error
}

type (
	// PG is a Postgres implementation of the snapshot repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Enqueue(ctx context.Context, reportID int64, workID string) (string, error) {
	const sqlq = `
		INSERT INTO snapshot_jobs (report_id, work_id)
		VALUES ($1, $2)
		ON CONFLICT (report_id)
		DO UPDATE SET updated_at = now()
		RETURNING job_id::text
	`
	var id string
	if err := r.q.QueryRow(ctx, sqlq, reportID, workID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *queries) LeaseJobs(
	ctx context.Context,
	workerID string,
	limit int,
	leaseFor time.Duration,
) ([]domain.Job, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	const sqlq = `
		WITH ready AS (
			SELECT job_id
			  FROM snapshot_jobs
			 WHERE leased_by IS NULL
			   AND next_attempt_at <= now()
			 ORDER BY next_attempt_at ASC
			 LIMIT $1
			 FOR UPDATE SKIP LOCKED
		), upd AS (
			UPDATE snapshot_jobs j
			   SET leased_by = $2,
			       lease_expires_at = now() + $3::interval,
			       updated_at = now()
			 WHERE j.job_id IN (SELECT job_id FROM ready)
			RETURNING j.*
		)
		SELECT job_id::text, report_id, work_id,
		       attempts, last_status, COALESCE(last_error, '') AS last_error,
		       next_attempt_at, COALESCE(lease_expires_at, now()) AS lease_expires_at,
		       COALESCE(leased_by, $2) AS leased_by, created_at, updated_at
		  FROM upd
	`
	rows, err := r.q.Query(ctx, sqlq, limit, workerID, leaseFor.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.JobID, &j.ReportID, &j.WorkID,
			&j.Attempts, &j.LastStatus, &j.LastError,
			&j.NextAttempt, &j.LeaseExpires,
			&j.LeasedBy, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *queries) RecordDispatch(
	ctx context.Context,
	reportID int64,
	workID string,
	status int,
	dispatchedAt time.Time,
) error {
	const sqlq = `
		INSERT INTO snapshot_dispatches (report_id, work_id, http_status, dispatched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (report_id) DO UPDATE
		SET http_status   = EXCLUDED.http_status,
		    dispatched_at = EXCLUDED.dispatched_at
	`
	_, err := r.q.Exec(ctx, sqlq, reportID, workID, status, dispatchedAt)
	return err
}

func (r *queries) CompleteJob(ctx context.Context, jobID string, lastStatus *int) error {
	const upd = `
		UPDATE snapshot_jobs
		   SET last_status = COALESCE($2, last_status),
		       updated_at  = now()
		 WHERE job_id = $1
	`
	if _, err := r.q.Exec(ctx, upd, jobID, lastStatus); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, `DELETE FROM snapshot_jobs WHERE job_id = $1`, jobID)
	return err
}

func (r *queries) RequeueJob(
	ctx context.Context,
	jobID string,
	lastStatus *int,
	lastErr string,
	nextAttemptAt time.Time,
) error {
	const sqlq = `
		UPDATE snapshot_jobs
		   SET attempts         = attempts + 1,
		       last_status      = COALESCE($2, last_status),
		       last_error       = NULLIF($3, ''),
		       next_attempt_at  = $4,
		       leased_by        = NULL,
		       lease_expires_at = NULL,
		       updated_at       = now()
		 WHERE job_id = $1
	`
	_, err := r.q.Exec(ctx, sqlq, jobID, lastStatus, lastErr, nextAttemptAt)
	return err
}
