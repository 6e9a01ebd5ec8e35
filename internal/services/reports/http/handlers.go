// Package http provides http transport for abuse reports
package http

import (
	stdhttp "net/http"

	"tipline/internal/modkit/httpkit"
	"tipline/internal/services/reports/domain"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// full pipeline plus persistence
	httpkit.PostJSON[domain.SubmitInput](r, "/", h.submit)

	// dry run, nothing is stored
	httpkit.PostJSON[domain.SubmitInput](r, "/evaluate", h.evaluate)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /reports Reports reportsSubmit
// @Summary Submit an abuse report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Report"
// @Success 200 {object} domain.Receipt "ok"
// @Failure 409 {object} errors.Wire "page already reported"
// @Failure 422 {object} errors.Wire "invalid url or spam"
// @Failure 429 {object} errors.Wire "reporting limit reached"
// @Router /reports [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in)
}

// swagger:route POST /reports/evaluate Reports reportsEvaluate
// @Summary Evaluate a report without persisting it
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Report"
// @Success 200 {object} domain.Evaluation "ok"
// @Failure 422 {object} errors.Wire "invalid url"
// @Router /reports/evaluate [post]
func (h *handlers) evaluate(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Evaluate(r.Context(), in)
}
