package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tipline/internal/modkit"
	"tipline/internal/modkit/module"
	"tipline/internal/modkit/repokit"
	"tipline/internal/platform/config"
	"tipline/internal/platform/logger"
	"tipline/internal/platform/store"

	snapshotmod "tipline/internal/services/snapshot/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "tipline-snapshot",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast if the database is unreachable
	repokit.MustGuard(context.Background(), st)

	var (
		fConc   = flag.Int("concurrency", 2, "worker concurrency")
		fBatch  = flag.Int("batch", 16, "DB lease batch size per poll")
		fRetry  = flag.Int("retry_base_ms", 500, "base backoff (ms) for transient failures")
		fMaxAtt = flag.Int("max_attempts", 6, "max attempts before giving up")
		fRPS    = flag.Float64("rps", 1.0, "target attachment dispatches/sec")
		fBurst  = flag.Int("burst", 2, "token-bucket burst for dispatches")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Export as env so module can also read via FromConfig
	mustSetEnv("SNAPSHOT_WORKER_CONCURRENCY", fmt.Sprintf("%d", *fConc))
	mustSetEnv("SNAPSHOT_QUEUE_TAKE_BATCH", fmt.Sprintf("%d", *fBatch))
	mustSetEnv("SNAPSHOT_RETRY_BASE", fmt.Sprintf("%dms", *fRetry))
	mustSetEnv("SNAPSHOT_MAX_ATTEMPTS", fmt.Sprintf("%d", *fMaxAtt))
	mustSetEnv("SNAPSHOT_DISPATCH_RPS", fmt.Sprintf("%.3f", *fRPS))
	mustSetEnv("SNAPSHOT_DISPATCH_BURST", fmt.Sprintf("%d", *fBurst))

	mod := snapshotmod.New(deps, snapshotmod.Options{
		Concurrency:    *fConc,
		QueueTakeBatch: *fBatch,
		RetryBaseMs:    *fRetry,
		MaxAttempts:    *fMaxAtt,
		RatePerSec:     *fRPS,
		Burst:          *fBurst,
	})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[snapshotmod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("snapshot worker failed")
	}
}
