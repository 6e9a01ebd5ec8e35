package service

import (
	"context"
	"fmt"
	"time"

	"tipline/internal/adapters/tickets"
	"tipline/internal/core/canon"
	"tipline/internal/modkit/repokit"

	dom "tipline/internal/services/snapshot/domain"
)

// handleJob dispatches one work download attachment
// A gone ticket completes the job without a receipt, the report still
// stands on its own. Dispatch errors requeue with backoff until the
// attempt budget runs out
func (s *Svc) handleJob(ctx context.Context, j dom.Job) error {
	if j.Attempts >= s.maxAttempts() {
		return s.repo.CompleteJob(ctx, j.JobID, j.LastStatus)
	}

	status, err := s.dispatch.AttachWorkDownload(ctx, tickets.Ref(j.ReportID), j.WorkID, s.workURL(j.WorkID))
	if err != nil {
		return s.repo.RequeueJob(ctx, j.JobID, nil, fmt.Sprintf("dispatch: %v", err),
			nextAfter(j.Attempts, s.cfg.RetryBaseMs))
	}
	if status == 404 || status == 410 {
		// ticket no longer exists, nothing to attach to
		return s.repo.CompleteJob(ctx, j.JobID, &status)
	}

	dispatchedAt := time.Now().UTC()
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.RecordDispatch(ctx, j.ReportID, j.WorkID, status, dispatchedAt); err != nil {
			return err
		}
		return r.CompleteJob(ctx, j.JobID, &status)
	})
	if err != nil {
		return s.repo.RequeueJob(ctx, j.JobID, &status, fmt.Sprintf("record: %v", err),
			nextAfter(j.Attempts, s.cfg.RetryBaseMs))
	}
	return nil
}

func (s *Svc) workURL(workID string) string {
	u := canon.URL{
		Scheme: "https",
		Host:   s.canon.PrimaryHost,
		Path:   []string{"works", workID},
	}
	return u.String()
}

func (s *Svc) maxAttempts() int {
	if s.cfg.MaxAttempts <= 0 {
		return 10
	}
	return s.cfg.MaxAttempts
}

func nextAfter(attempt int, baseMs int) time.Time {
	back := durationMs(baseMs)
	// simple exponential w/ cap ~30s
	ms := int64(back/time.Millisecond) << uint(attempt)
	if ms > int64(30*time.Second/time.Millisecond) {
		ms = int64(30 * time.Second / time.Millisecond)
	}
	return time.Now().UTC().Add(time.Duration(ms) * time.Millisecond)
}
