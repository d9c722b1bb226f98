// Command api wires the fingerprint cache, sampling service, worker pool,
// profiling engine, comparison engine, and request orchestrator behind the
// HTTP surface and starts listening.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"dataprofiler/adapters/cache"
	"dataprofiler/adapters/comparison"
	"dataprofiler/adapters/httpapi"
	"dataprofiler/adapters/profiling"
	"dataprofiler/adapters/sampling"
	"dataprofiler/adapters/workerpool"
	"dataprofiler/internal/config"
	"dataprofiler/internal/logging"
	"dataprofiler/internal/orchestrator"
	"dataprofiler/ports"
)

func main() {
	log := logging.NewFromEnv()
	cfg := config.Load()

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, log)
	if err != nil {
		log.Error("could not initialize cache at %s: %v", cfg.Cache.Dir, err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go store.RunSweeper(ctx)

	rngFactory := sampling.Factory{}
	sampler := sampling.NewSampler(rngFactory)
	pool := workerpool.New()
	engine := profiling.NewEngine(pool, cfg.WorkerPool.ParallelThreshold, cfg.WorkerPool.ParallelThreshold, ports.PoolOptions{
		MaxWorkers: cfg.WorkerPool.MaxWorkers,
		ChunkSize:  cfg.WorkerPool.DefaultChunkSize,
		TimeoutMs:  cfg.WorkerPool.DefaultTimeout.Milliseconds(),
	})
	comparator := comparison.New()

	orch := orchestrator.New(rngFactory, sampler, pool, engine, store, comparator)

	server := httpapi.New(orch, cfg, log)
	log.Info("listening on %s (env=%s)", cfg.Server.Port, cfg.Server.Env)
	if err := server.Run(); err != nil {
		log.Error("server exited: %v", err)
	}
}
