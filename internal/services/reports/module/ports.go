package module

import (
	"context"

	rdom "tipline/internal/services/reports/domain"
	rsvc "tipline/internal/services/reports/service"
	snapdom "tipline/internal/services/snapshot/domain"
	statsdom "tipline/internal/services/stats/domain"
)

// Ports declares the injected worker and audit port(s) for this API module
// Both are optional, a nil port disables the feature
type Ports struct {
	Snapshots snapdom.EnqueuePort
	Audit     statsdom.RecorderPort
}

// Ports returns the module ports (parity with stats)
func (m *Module) Ports() any { return m.ports }

// adaptReportsPort exposes service methods as module ports for cross-module usage
type adaptReportsPort struct{ svc *rsvc.Svc }

func (a adaptReportsPort) Evaluate(ctx context.Context, in rdom.SubmitInput) (rdom.Evaluation, error) {
	return a.svc.Evaluate(ctx, in)
}

func (a adaptReportsPort) Submit(ctx context.Context, in rdom.SubmitInput) (rdom.Receipt, error) {
	return a.svc.Submit(ctx, in)
}
