// Package module wires the snapshot worker service and exposes its ports
package module

import (
	"tipline/internal/modkit"
	"tipline/internal/modkit/httpkit"
	"tipline/internal/services/snapshot/service"
)

// Module defines the snapshot worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the snapshot worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.QueueTakeBatch != 0 {
		opts.QueueTakeBatch = overrides.QueueTakeBatch
	}
	if overrides.LeaseFor != 0 {
		opts.LeaseFor = overrides.LeaseFor
	}
	if overrides.RetryBaseMs != 0 {
		opts.RetryBaseMs = overrides.RetryBaseMs
	}
	if overrides.MaxAttempts != 0 {
		opts.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.TicketsURL != "" {
		opts.TicketsURL = overrides.TicketsURL
	}
	if overrides.TicketsToken != "" {
		opts.TicketsToken = overrides.TicketsToken
	}
	if overrides.RatePerSec != 0 {
		opts.RatePerSec = overrides.RatePerSec
	}
	if overrides.Burst != 0 {
		opts.Burst = overrides.Burst
	}
	if overrides.UserAgent != "" {
		opts.UserAgent = overrides.UserAgent
	}

	svc := service.New(deps, service.Config{
		Concurrency:    opts.Concurrency,
		QueueTakeBatch: opts.QueueTakeBatch,
		LeaseFor:       opts.LeaseFor,
		RetryBaseMs:    opts.RetryBaseMs,
		MaxAttempts:    opts.MaxAttempts,
		TicketsURL:     opts.TicketsURL,
		TicketsToken:   opts.TicketsToken,
		RatePerSec:     opts.RatePerSec,
		Burst:          opts.Burst,
		UserAgent:      opts.UserAgent,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Worker:   svc, // svc implements WorkerPort
		Enqueuer: svc, // svc also implements EnqueuePort
	}
	return m
}

// Ports returns the module ports (Worker, Enqueuer)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "snapshot" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
