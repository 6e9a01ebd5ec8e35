// Package repo provides Postgres bindings for the reports domain
package repo

import (
	"context"
	"time"

	"tipline/internal/core/creators"
	"tipline/internal/modkit/repokit"
	"tipline/internal/services/reports/domain"
)

// orphanLogin is the placeholder account that holds orphaned works
const orphanLogin = "orphan_account"

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// CountByKey implements domain.HistoryPort
// The window start is exclusive so an entry exactly window old is outside
func (r *queries) CountByKey(ctx context.Context, comparisonKey string, since time.Time) (int, error) {
	const sql = `
		SELECT count(*)
		FROM abuse_reports
		WHERE comparison_key = $1
		AND created_at > $2
	`
	var n int
	if err := r.q.QueryRow(ctx, sql, comparisonKey, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountByEmail implements domain.HistoryPort
func (r *queries) CountByEmail(ctx context.Context, email string, since time.Time) (int, error) {
	const sql = `
		SELECT count(*)
		FROM abuse_reports
		WHERE lower(email) = lower($1)
		AND created_at > $2
	`
	var n int
	if err := r.q.QueryRow(ctx, sql, email, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// OwningWork implements domain.OwnershipPort and canon.ChapterResolver
func (r *queries) OwningWork(ctx context.Context, chapterID string) (string, bool, error) {
	const sql = `
		SELECT work_id::text
		FROM chapters
		WHERE id = $1::bigint
	`
	rows, err := r.q.Query(ctx, sql, chapterID)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return "", false, rows.Err()
	}
	var workID string
	if err := rows.Scan(&workID); err != nil {
		return "", false, err
	}
	return workID, true, rows.Err()
}

// LookupWork implements domain.OwnershipPort
// Returns nil when the work row is gone, which resolves to the deleted
// sentinel upstream
func (r *queries) LookupWork(ctx context.Context, workID string) (*creators.Ownership, error) {
	exists, err := r.workExists(ctx, workID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	own := &creators.Ownership{WorkID: workID}

	const creatorSQL = `
		SELECT c.pseud_id, p.user_id, NOT c.approved, u.login = $2
		FROM creatorships c
		JOIN pseuds p ON p.id = c.pseud_id
		JOIN users u ON u.id = p.user_id
		WHERE c.work_id = $1::bigint
		ORDER BY c.pseud_id
	`
	rows, err := r.q.Query(ctx, creatorSQL, workID, orphanLogin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c creators.Creator
		if err := rows.Scan(&c.PseudID, &c.UserID, &c.Pending, &c.Orphan); err != nil {
			return nil, err
		}
		own.Creators = append(own.Creators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const originalSQL = `
		SELECT user_id
		FROM original_creators
		WHERE work_id = $1::bigint
		ORDER BY user_id
	`
	orows, err := r.q.Query(ctx, originalSQL, workID)
	if err != nil {
		return nil, err
	}
	defer orows.Close()
	for orows.Next() {
		var id int64
		if err := orows.Scan(&id); err != nil {
			return nil, err
		}
		own.OriginalCreatorIDs = append(own.OriginalCreatorIDs, id)
	}
	return own, orows.Err()
}

func (r *queries) workExists(ctx context.Context, workID string) (bool, error) {
	rows, err := r.q.Query(ctx, `SELECT 1 FROM works WHERE id = $1::bigint`, workID)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}

// Insert implements domain.Repo
func (r *queries) Insert(ctx context.Context, w domain.ReportWrite) (int64, error) {
	const sql = `
		INSERT INTO abuse_reports
			(url, email, username, comment, comparison_key, creator_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.q.QueryRow(ctx, sql,
		w.URL, w.Email, w.Username, w.Comment, w.ComparisonKey, w.CreatorIDs, w.SubmittedAt,
	).Scan(&id)
	return id, err
}
