// Package repo provides clickhouse access for the decision audit stream
package repo

import (
	"context"

	"tipline/internal/platform/store"
	"tipline/internal/services/stats/domain"
)

// decision columns in batch append order
const decisionsTable = "triage_decisions (at, outcome, kind, comparison_key, authenticated)"

// Repo is the minimal persistence surface for decision stats
type Repo interface {
	InsertDecision(ctx context.Context, d domain.Decision) error
	DecisionsByDay(ctx context.Context, days int) ([]domain.DayRow, error)
}

// CH implements Repo on the clickhouse seam
type CH struct{ db store.Clickhouse }

// NewCH wires the clickhouse seam into the repo
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

var _ Repo = (*CH)(nil)

// InsertDecision appends one decision row
func (r *CH) InsertDecision(ctx context.Context, d domain.Decision) error {
	auth := uint8(0)
	if d.Authenticated {
		auth = 1
	}
	row := []any{d.At, d.Outcome, d.Kind, d.ComparisonKey, auth}
	return r.db.Insert(ctx, decisionsTable, [][]any{row})
}

// DecisionsByDay aggregates decision counts per day and outcome
func (r *CH) DecisionsByDay(ctx context.Context, days int) ([]domain.DayRow, error) {
	const sql = `
SELECT toString(toDate(at)) AS day, outcome, count() AS decisions
FROM triage_decisions
WHERE at >= now() - INTERVAL ? DAY
GROUP BY day, outcome
ORDER BY day ASC, outcome ASC
`
	rows, err := r.db.Query(ctx, sql, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DayRow
	for rows.Next() {
		var rr domain.DayRow
		if err := rows.Scan(&rr.Day, &rr.Outcome, &rr.Count); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
