// Package api provides the HTTP API for the application
package api

import (
	"tipline/internal/platform/config"
	"tipline/internal/platform/logger"
	phttp "tipline/internal/platform/net/http"
	"tipline/internal/platform/store"

	"tipline/internal/modkit"
	"tipline/internal/modkit/httpkit"
	"tipline/internal/modkit/module"
	"tipline/internal/modkit/swaggerkit"

	metamod "tipline/internal/services/api/meta/module"
	reportsmod "tipline/internal/services/reports/module"
	statsmod "tipline/internal/services/stats/module"

	// Worker snapshot module (owns the Enqueuer port)
	workersnapshot "tipline/internal/services/snapshot/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the WORKER snapshot module first and extract its Enqueuer port
	wsOpts := workersnapshot.FromConfig(deps.Cfg) // <- Options required by worker module
	workerSnapshot := workersnapshot.New(deps, wsOpts)
	enq := module.MustPortsOf[workersnapshot.Ports](workerSnapshot).Enqueuer

	// Stats owns the decision audit recorder consumed by reports
	stats := statsmod.New(deps)
	rec := module.MustPortsOf[statsmod.Ports](stats).Recorder

	// Inject the snapshot Enqueuer and audit Recorder into reports
	reports := reportsmod.New(
		deps,
		modkit.WithPorts(reportsmod.Ports{
			Snapshots: enq,
			Audit:     rec,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		stats,
		workerSnapshot, // include worker so its ports are registered
		reports,        // API module that depends on the worker's Enqueuer
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
