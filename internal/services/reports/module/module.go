// Package module wires report triage into the API using modkit
package module

import (
	"context"
	"net/http"

	"tipline/internal/adapters/akismet"
	"tipline/internal/core/canon"
	modkit "tipline/internal/modkit"
	"tipline/internal/modkit/httpkit"

	rdom "tipline/internal/services/reports/domain"
	rhttp "tipline/internal/services/reports/http"
	rrepo "tipline/internal/services/reports/repo"
	rsvc "tipline/internal/services/reports/service"
)

// Module implements the reports API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *rsvc.Svc
}

// allowAll stands in for the classifier when no key is configured
// Everything passes, matching a development setup without Akismet
type allowAll struct{}

func (allowAll) Spam(context.Context, akismet.Attributes) (bool, error) { return false, nil }

// New constructs the reports module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	canonCfg := canon.Default()
	if cfg.PrimaryHost != "" {
		canonCfg.PrimaryHost = cfg.PrimaryHost
	}
	if len(cfg.AliasHosts) > 0 {
		canonCfg.AliasHosts = cfg.AliasHosts
	}
	canonCfg.RequireKnownHost = cfg.RequireKnownHost

	var classifier rdom.ClassifierPort
	if cfg.AkismetKey != "" {
		classifier = akismet.NewClient(akismet.Options{
			APIKey:     cfg.AkismetKey,
			Blog:       cfg.AkismetBlog,
			RatePerSec: cfg.AkismetRPS,
			Burst:      cfg.AkismetBurst,
			Timeout:    cfg.AkismetTimeout,
		})
	} else {
		classifier = allowAll{}
	}

	svc := rsvc.New(rsvc.Deps{
		DB:         deps.PG,
		Binder:     rrepo.NewPG(),
		Classifier: classifier,
		Snapshots:  injected.Snapshots,
		Audit:      injected.Audit,
		Canon:      canonCfg,
		Guard: rsvc.GuardConfig{
			ResourceWindow:  cfg.ResourceWindow,
			EmailWindow:     cfg.EmailWindow,
			MaxPerWork:      cfg.MaxPerWork,
			MaxPerUser:      cfg.MaxPerUser,
			MaxPerUnrelated: cfg.MaxPerUnrelated,
			MaxPerEmail:     cfg.MaxPerEmail,
		},
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptReportsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
