// Package http provides http transport for decision stats
package http

import (
	stdhttp "net/http"

	"tipline/internal/modkit/httpkit"
	"tipline/internal/services/stats/domain"
	svc "tipline/internal/services/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// decision counts bucketed by day and outcome
	httpkit.PostJSON[domain.DecisionsInput](r, "/decisions", h.decisions)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /stats/decisions Stats statsDecisions
// @Summary Triage decision counts by day and outcome
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.DecisionsInput true "Query"
// @Success 200 {array} domain.DayRow "ok"
// @Router /stats/decisions [post]
func (h *handlers) decisions(r *stdhttp.Request, in domain.DecisionsInput) (any, error) {
	return h.svc.DecisionsByDay(r.Context(), in.Days)
}
