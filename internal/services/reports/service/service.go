// Package service implements report triage and submission
package service

import (
	"context"
	"errors"
	"time"

	"tipline/internal/core/canon"
	"tipline/internal/core/creators"
	perr "tipline/internal/platform/errors"
	"tipline/internal/platform/logger"
	"tipline/internal/modkit/repokit"
	"tipline/internal/services/reports/domain"
	snapdom "tipline/internal/services/snapshot/domain"
	statsdom "tipline/internal/services/stats/domain"
)

// URLs are stored verbatim up to this many runes
const maxStoredURLRunes = 2080

// Svc orchestrates triage and persistence for abuse reports
type Svc struct {
	db         repokit.TxRunner
	binder     repokit.Binder[domain.Repo]
	classifier domain.ClassifierPort

	// optional collaborators, nil disables the feature
	snapshots snapdom.EnqueuePort
	audit     statsdom.RecorderPort

	canon canon.Config
	guard GuardConfig

	now func() time.Time
}

// Deps are the required collaborators for New
type Deps struct {
	DB         repokit.TxRunner
	Binder     repokit.Binder[domain.Repo]
	Classifier domain.ClassifierPort

	Snapshots snapdom.EnqueuePort
	Audit     statsdom.RecorderPort

	Canon canon.Config
	Guard GuardConfig
}

// New constructs the reports service
func New(d Deps) *Svc {
	if d.DB == nil {
		panic("reports.Service requires a non-nil TxRunner")
	}
	if d.Binder == nil {
		panic("reports.Service requires a non-nil Repo binder")
	}
	if d.Classifier == nil {
		panic("reports.Service requires a non-nil ClassifierPort")
	}
	return &Svc{
		db:         d.DB,
		binder:     d.Binder,
		classifier: d.Classifier,
		snapshots:  d.Snapshots,
		audit:      d.Audit,
		canon:      d.Canon,
		guard:      d.Guard,
		now:        time.Now,
	}
}

var _ domain.ServicePort = (*Svc)(nil)

// ShouldAttachSnapshot reports whether a snapshot job applies to the
// identity. Only an exact work page qualifies, never a subresource
func ShouldAttachSnapshot(id canon.Identity) bool {
	return id.Kind == canon.KindWork && id.Exact
}

// Evaluate runs the full triage pipeline without persisting anything
// Quota checks are advisory here, Submit re-runs them transactionally
func (s *Svc) Evaluate(ctx context.Context, in domain.SubmitInput) (domain.Evaluation, error) {
	u, err := canon.Normalize(s.canon, in.URL)
	if err != nil {
		if errors.Is(err, canon.ErrInvalidURL) {
			return domain.Evaluation{}, perr.InvalidURLf("url does not point to a reportable page")
		}
		return domain.Evaluation{}, err
	}

	now := s.now()
	var (
		id      canon.Identity
		cu      canon.URL
		outcome domain.Outcome
		reason  string
	)
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		id, cu, err = canon.Extract(ctx, u, r)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "resource identity lookup failed")
		}
		outcome, reason, err = guard(ctx, r, s.guard, id, in.Email, now)
		return err
	})
	if err != nil {
		return domain.Evaluation{}, err
	}

	ev := domain.Evaluation{
		CanonicalURL: cu.String(),
		Identity:     id,
		Kind:         id.Kind.String(),
		Outcome:      outcome,
		Reason:       reason,
	}
	if !ev.Accepted() {
		return ev, nil
	}

	ev.Outcome, ev.Reason, err = gate(ctx, s.classifier, in)
	if err != nil {
		return domain.Evaluation{}, err
	}
	if !ev.Accepted() {
		return ev, nil
	}

	if id.Kind == canon.KindWork && !commentsPage(cu) {
		var own *creators.Ownership
		err = s.db.Tx(ctx, func(q repokit.Queryer) error {
			var err error
			own, err = s.binder.Bind(q).LookupWork(ctx, id.PrimaryKey)
			return err
		})
		if err != nil {
			return domain.Evaluation{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "work ownership lookup failed")
		}
		ids := creators.Resolve(own)
		ev.CreatorIDs = &ids
	}
	return ev, nil
}

// commentsPage reports whether the canonical URL points at a comment
// listing rather than the work itself. Comment threads have their own
// authors, so the work's creators are never resolved for them
func commentsPage(u canon.URL) bool {
	for _, seg := range u.Path {
		if seg == "comments" {
			return true
		}
	}
	return false
}

// Submit evaluates the attempt and persists it when accepted
// Rejections come back as coded errors so transports can map them
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Receipt, error) {
	ev, err := s.Evaluate(ctx, in)
	if err != nil {
		return domain.Receipt{}, err
	}
	now := s.now()
	if !ev.Accepted() {
		s.recordDecision(ctx, ev, in, now)
		return domain.Receipt{}, rejectionError(ev)
	}

	w := domain.ReportWrite{
		URL:           truncateRunes(ev.CanonicalURL, maxStoredURLRunes),
		Email:         in.Email,
		Username:      in.Username,
		Comment:       in.Comment,
		ComparisonKey: ev.Identity.ComparisonKey(),
		CreatorIDs:    ev.CreatorIDs,
		SubmittedAt:   now,
	}

	var reportID int64
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		// re-check quotas inside the transaction so a concurrent accept
		// cannot push the same key past its limit
		outcome, reason, err := guard(ctx, r, s.guard, ev.Identity, in.Email, now)
		if err != nil {
			return err
		}
		if outcome != domain.OutcomeAccepted {
			ev.Outcome, ev.Reason = outcome, reason
			return rejectionError(ev)
		}
		reportID, err = r.Insert(ctx, w)
		return err
	})
	if err != nil {
		// a lost quota race is still a decision, audit it like any other
		// rejection
		if !ev.Accepted() {
			s.recordDecision(ctx, ev, in, now)
		}
		return domain.Receipt{}, err
	}

	s.recordDecision(ctx, ev, in, now)
	if s.snapshots != nil && ShouldAttachSnapshot(ev.Identity) {
		if err := s.snapshots.EnqueueSnapshot(ctx, reportID, ev.Identity.PrimaryKey); err != nil {
			logger.C(ctx).Warn().Err(err).Int64("report_id", reportID).Msg("snapshot enqueue failed")
		}
	}

	return domain.Receipt{ReportID: reportID, Evaluation: ev}, nil
}

// recordDecision writes the triage decision to the audit stream
// Failures are logged, never surfaced to the submitter
func (s *Svc) recordDecision(ctx context.Context, ev domain.Evaluation, in domain.SubmitInput, at time.Time) {
	if s.audit == nil {
		return
	}
	d := statsdom.Decision{
		At:            at,
		Outcome:       string(ev.Outcome),
		Kind:          ev.Kind,
		ComparisonKey: ev.Identity.ComparisonKey(),
		Authenticated: in.Submitter().Authenticated(),
	}
	if err := s.audit.RecordDecision(ctx, d); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("decision audit write failed")
	}
}

func rejectionError(ev domain.Evaluation) error {
	switch ev.Outcome {
	case domain.OutcomeDuplicateResource:
		return perr.DuplicateResourcef("%s", domain.MsgDuplicateResource)
	case domain.OutcomeEmailLimit:
		return perr.EmailLimitf("%s", domain.MsgEmailLimit)
	case domain.OutcomeSpam:
		return perr.Spamf("%s", domain.MsgSpam)
	default:
		return perr.Newf(perr.ErrorCodeUnknown, "unexpected rejection outcome %q", ev.Outcome)
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
